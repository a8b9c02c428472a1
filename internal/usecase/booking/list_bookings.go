package booking

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

// Execute lists every booking, or only one doctor's when doctorID is set.
func (uc *ListBookings) Execute(ctx context.Context, doctorID *uuid.UUID) ([]models.Booking, error) {
	return uc.repo.ListBookings(ctx, doctorID)
}
