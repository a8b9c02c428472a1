package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Hospital struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name    string `gorm:"size:200;not null" json:"name"`
	Address string `gorm:"size:255" json:"address"`
	Phone   string `gorm:"size:20" json:"phone"`

	// AdminID is the single user allowed to act for the hospital.
	AdminID *uuid.UUID `gorm:"type:uuid;index" json:"admin_id"`
	Admin   *User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (h *Hospital) BeforeCreate(*gorm.DB) error {
	assignID(&h.ID)
	return nil
}

type Doctor struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	HospitalID uuid.UUID `gorm:"type:uuid;not null;index" json:"hospital_id"`
	Hospital   *Hospital `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100" json:"last_name"`
	Specialty string `gorm:"size:100" json:"specialty"`

	WorkingHours datatypes.JSONType[WeeklyHours] `gorm:"type:jsonb;not null;default:'{}'" json:"working_hours"`

	PhotoKey *string `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *Doctor) BeforeCreate(*gorm.DB) error {
	assignID(&d.ID)
	return nil
}
