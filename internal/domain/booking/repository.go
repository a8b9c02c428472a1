package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ErrSlotTaken is returned when the exact (doctor, date, start, end) tuple
// is already held by another booking.
var ErrSlotTaken = httperr.ErrConflict("slot_already_booked", "Slot already booked")

// Repository lookups return gorm.ErrRecordNotFound when a row is absent.
type Repository interface {
	// -------- Doctor / Hospital --------
	GetDoctor(ctx context.Context, id uuid.UUID) (*models.Doctor, error)
	GetHospital(ctx context.Context, id uuid.UUID) (*models.Hospital, error)
	UpdateWorkingHours(ctx context.Context, doctorID uuid.UUID, hours models.WeeklyHours) error

	// -------- Booking (create / conflict) --------
	// CreateBooking fails with ErrSlotTaken when the tuple is occupied.
	CreateBooking(ctx context.Context, b *models.Booking) error

	// -------- Booking (state change) --------
	GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	// UpdateBooking fails with ErrSlotTaken when the new tuple collides and
	// with gorm.ErrRecordNotFound when the row is gone. It never inserts.
	UpdateBooking(ctx context.Context, b *models.Booking) error
	DeleteBooking(ctx context.Context, id uuid.UUID) error

	// -------- Listing --------
	ListBookingsForDay(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]models.Booking, error)
	ListBookings(ctx context.Context, doctorID *uuid.UUID) ([]models.Booking, error)
}
