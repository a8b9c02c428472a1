package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking is a patient's place in a doctor's schedule. Date and times are
// naive wall-clock values.
type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	HospitalID uuid.UUID `gorm:"type:uuid;not null;index" json:"hospital_id"`
	Hospital   *Hospital `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	DoctorID *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_queues_doctor_slot,priority:1" json:"doctor_id"`
	Doctor   *Doctor    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	AppointmentDate  time.Time `gorm:"type:date;not null;uniqueIndex:idx_queues_doctor_slot,priority:2" json:"appointment_date"`
	AppointmentStart time.Time `gorm:"type:timestamp;not null;uniqueIndex:idx_queues_doctor_slot,priority:3" json:"appointment_start"`
	AppointmentEnd   time.Time `gorm:"type:timestamp;not null;uniqueIndex:idx_queues_doctor_slot,priority:4" json:"appointment_end"`

	Position *int   `json:"position"`
	Status   string `gorm:"size:20;not null;default:'waiting'" json:"status"`

	CalledAt *time.Time `gorm:"type:timestamp" json:"called_at"`
	ServedAt *time.Time `gorm:"type:timestamp" json:"served_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Booking) TableName() string {
	return "queues"
}

func (b *Booking) BeforeCreate(*gorm.DB) error {
	assignID(&b.ID)
	return nil
}
