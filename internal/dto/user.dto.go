package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type RegisterRequest struct {
	PhoneNumber string  `json:"phone_number" binding:"required"`
	Password    string  `json:"password" binding:"required,min=6"`
	FirstName   string  `json:"first_name" binding:"required"`
	LastName    string  `json:"last_name"`
	Email       *string `json:"email" binding:"omitempty,email"`
}

type TokenRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type UserDTO struct {
	ID          uuid.UUID `json:"id"`
	PhoneNumber string    `json:"phone_number"`
	Email       *string   `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"is_active"`
}

func UserFromModel(u *models.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		PhoneNumber: u.PhoneNumber,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        access.FromID(u.RoleID).String(),
		IsActive:    u.IsActive,
	}
}
