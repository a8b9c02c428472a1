package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/wallclock"
)

type AvailableSlots struct {
	Date  time.Time
	Slots []domain.Slot
}

type GetAvailableSlots struct {
	repo domain.Repository
}

func NewGetAvailableSlots(repo domain.Repository) *GetAvailableSlots {
	return &GetAvailableSlots{repo: repo}
}

func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	doctorID uuid.UUID,
	dateStr string,
) (*AvailableSlots, error) {

	date, err := wallclock.ParseDate(dateStr)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date", "Date must be YYYY-MM-DD")
	}

	doctor, err := uc.repo.GetDoctor(ctx, doctorID)
	if err != nil {
		return nil, notFoundAs(err, errDoctorNotFound)
	}

	hours := doctor.WorkingHours.Data()
	if hours.For(date.Weekday()) == "" {
		return &AvailableSlots{Date: date, Slots: []domain.Slot{}}, nil
	}

	bookings, err := uc.repo.ListBookingsForDay(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	slots, err := domain.ComputeSlots(hours, date, bookings)
	if err != nil {
		return nil, err
	}

	return &AvailableSlots{Date: date, Slots: slots}, nil
}
