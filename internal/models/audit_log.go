package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuditLog struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	HospitalID *uuid.UUID `gorm:"type:uuid;index" json:"hospital_id"`
	UserID     *uuid.UUID `gorm:"type:uuid" json:"user_id"`
	Action     string     `gorm:"size:50;not null;index" json:"action"`

	Entity   string         `gorm:"size:50" json:"entity"`
	EntityID *uuid.UUID     `gorm:"type:uuid" json:"entity_id"`
	Metadata datatypes.JSON `gorm:"type:jsonb" json:"metadata"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (a *AuditLog) BeforeCreate(*gorm.DB) error {
	assignID(&a.ID)
	return nil
}
