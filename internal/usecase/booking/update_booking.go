package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/wallclock"
)

// UpdateBookingInput carries only the fields to change.
type UpdateBookingInput struct {
	BookingID uuid.UUID
	Actor     access.Principal

	Date      *string
	StartTime *string
	EndTime   *string
	Status    *string
}

type UpdateBooking struct {
	repo  domain.Repository
	audit Auditor
	now   func() time.Time
}

func NewUpdateBooking(repo domain.Repository, audit Auditor) *UpdateBooking {
	return &UpdateBooking{repo: repo, audit: audit, now: wallclock.Now}
}

// Execute does not look for other bookings at the new time. Only an exact
// duplicate is refused, by the unique index, as a conflict.
func (uc *UpdateBooking) Execute(ctx context.Context, in UpdateBookingInput) (*models.Booking, error) {
	b, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, notFoundAs(err, errBookingNotFound)
	}

	if in.Date != nil || in.StartTime != nil || in.EndTime != nil {
		dateStr := wallclock.Date(b.AppointmentDate)
		if in.Date != nil {
			dateStr = *in.Date
		}
		startStr := wallclock.Clock(b.AppointmentStart)
		if in.StartTime != nil {
			startStr = *in.StartTime
		}
		endStr := wallclock.Clock(b.AppointmentEnd)
		if in.EndTime != nil {
			endStr = *in.EndTime
		}

		date, start, end, err := parseSlot(dateStr, startStr, endStr)
		if err != nil {
			return nil, err
		}
		b.AppointmentDate = date
		b.AppointmentStart = start
		b.AppointmentEnd = end
	}

	if in.Status != nil {
		st, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		if err := domain.ApplyStatus(b, st, uc.now()); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, notFoundAs(err, errBookingNotFound)
	}

	uc.audit.Dispatch(audit.Event{
		HospitalID: &b.HospitalID,
		UserID:     &in.Actor.ID,
		Action:     "booking_updated",
		Entity:     "booking",
		EntityID:   &b.ID,
		Metadata: map[string]any{
			"date":   wallclock.Date(b.AppointmentDate),
			"start":  wallclock.Clock(b.AppointmentStart),
			"end":    wallclock.Clock(b.AppointmentEnd),
			"status": b.Status,
		},
	})

	return b, nil
}
