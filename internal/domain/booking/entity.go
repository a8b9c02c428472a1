package booking

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ApplyStatus moves b to the target status and stamps called_at/served_at
// the first time each state is reached.
func ApplyStatus(b *models.Booking, to Status, now time.Time) error {
	if err := CanTransition(Status(b.Status), to); err != nil {
		return err
	}

	switch to {
	case StatusCalled:
		if b.CalledAt == nil {
			b.CalledAt = &now
		}
	case StatusServed:
		if b.ServedAt == nil {
			b.ServedAt = &now
		}
	}

	b.Status = string(to)
	return nil
}
