package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClinicChat is the single conversation between one hospital and one patient.
type ClinicChat struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	HospitalID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_clinic_chats_pair,priority:1" json:"hospital_id"`
	Hospital   *Hospital `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_clinic_chats_pair,priority:2;index" json:"user_id"`
	User   *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Messages []ClinicChatMessage `gorm:"foreignKey:ThreadID;constraint:OnDelete:CASCADE;" json:"messages,omitempty"`

	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `gorm:"not null;index" json:"modified_at"`
}

func (ClinicChat) TableName() string {
	return "clinic_chats"
}

func (c *ClinicChat) BeforeCreate(*gorm.DB) error {
	assignID(&c.ID)
	if c.ModifiedAt.IsZero() {
		c.ModifiedAt = time.Now()
	}
	return nil
}

type ClinicChatMessage struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ThreadID   uuid.UUID `gorm:"type:uuid;not null;index:idx_clinic_chat_messages_thread_created,priority:1" json:"thread_id"`
	SenderType string    `gorm:"size:32;not null" json:"sender_type"`
	Text       string    `gorm:"type:text;not null" json:"text"`

	CreatedAt time.Time `gorm:"not null;index:idx_clinic_chat_messages_thread_created,priority:2" json:"created_at"`
}

func (ClinicChatMessage) TableName() string {
	return "clinic_chat_messages"
}

func (m *ClinicChatMessage) BeforeCreate(*gorm.DB) error {
	assignID(&m.ID)
	return nil
}
