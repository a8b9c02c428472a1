package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	PhoneNumber  string  `gorm:"size:20;uniqueIndex;not null" json:"phone_number"`
	Email        *string `gorm:"size:100" json:"email"`
	FirstName    string  `gorm:"size:100" json:"first_name"`
	LastName     string  `gorm:"size:100" json:"last_name"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`
	IsActive     bool    `gorm:"not null;default:true" json:"is_active"`

	RoleID *uuid.UUID `gorm:"type:uuid" json:"role_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	assignID(&u.ID)
	return nil
}
