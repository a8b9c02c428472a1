package booking

import (
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// Auditor receives fire-and-forget audit events.
type Auditor interface {
	Dispatch(ev audit.Event)
}

var (
	errDoctorNotFound  = httperr.ErrNotFound("doctor_not_found", "Doctor not found")
	errBookingNotFound = httperr.ErrNotFound("booking_not_found", "Booking not found")
)

func notFoundAs(err error, as error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return as
	}
	return err
}
