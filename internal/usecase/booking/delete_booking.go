package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
)

// DeleteBooking is cancellation: the row is removed outright.
type DeleteBooking struct {
	repo  domain.Repository
	audit Auditor
}

func NewDeleteBooking(repo domain.Repository, audit Auditor) *DeleteBooking {
	return &DeleteBooking{repo: repo, audit: audit}
}

func (uc *DeleteBooking) Execute(ctx context.Context, actor access.Principal, bookingID uuid.UUID) error {
	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return notFoundAs(err, errBookingNotFound)
	}

	if err := uc.repo.DeleteBooking(ctx, bookingID); err != nil {
		return notFoundAs(err, errBookingNotFound)
	}

	uc.audit.Dispatch(audit.Event{
		HospitalID: &b.HospitalID,
		UserID:     &actor.ID,
		Action:     "booking_deleted",
		Entity:     "booking",
		EntityID:   &b.ID,
	})

	return nil
}
