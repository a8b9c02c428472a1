package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/wallclock"
)

// ======================================================
// INPUT
// ======================================================

type BookSlotInput struct {
	DoctorID uuid.UUID
	Actor    access.Principal

	// UserID defaults to the actor.
	UserID *uuid.UUID

	Date      string
	StartTime string
	EndTime   string
}

// ======================================================
// USE CASE
// ======================================================

type BookSlot struct {
	repo  domain.Repository
	audit Auditor
}

func NewBookSlot(repo domain.Repository, audit Auditor) *BookSlot {
	return &BookSlot{repo: repo, audit: audit}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookSlot) Execute(ctx context.Context, in BookSlotInput) (*models.Booking, error) {

	// --------------------------------------------------
	// 1. Date / time
	// --------------------------------------------------
	date, start, end, err := parseSlot(in.Date, in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Doctor
	// --------------------------------------------------
	doctor, err := uc.repo.GetDoctor(ctx, in.DoctorID)
	if err != nil {
		return nil, notFoundAs(err, errDoctorNotFound)
	}

	userID := in.Actor.ID
	if in.UserID != nil {
		userID = *in.UserID
	}

	// --------------------------------------------------
	// 3. Create (exact slot conflict checked inside)
	// --------------------------------------------------
	b := &models.Booking{
		HospitalID:       doctor.HospitalID,
		DoctorID:         &doctor.ID,
		UserID:           userID,
		AppointmentDate:  date,
		AppointmentStart: start,
		AppointmentEnd:   end,
		Status:           string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			uc.audit.Dispatch(audit.Event{
				HospitalID: &doctor.HospitalID,
				UserID:     &in.Actor.ID,
				Action:     "booking_conflict",
				Entity:     "booking",
				Metadata: map[string]any{
					"doctor_id": doctor.ID,
					"date":      wallclock.Date(date),
					"start":     wallclock.Clock(start),
					"end":       wallclock.Clock(end),
				},
			})
		}
		return nil, err
	}

	// --------------------------------------------------
	// 4. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		HospitalID: &b.HospitalID,
		UserID:     &in.Actor.ID,
		Action:     "booking_created",
		Entity:     "booking",
		EntityID:   &b.ID,
	})

	return b, nil
}

// parseSlot turns the request strings into naive timestamps on one day.
func parseSlot(dateStr, startStr, endStr string) (date, start, end time.Time, err error) {
	date, err = wallclock.ParseDate(dateStr)
	if err != nil {
		return date, start, end, httperr.ErrValidation("invalid_date", "Date must be YYYY-MM-DD")
	}

	sc, err := wallclock.ParseClock(startStr)
	if err != nil {
		return date, start, end, httperr.ErrValidation("invalid_start_time", "Start time must be HH:MM")
	}
	ec, err := wallclock.ParseClock(endStr)
	if err != nil {
		return date, start, end, httperr.ErrValidation("invalid_end_time", "End time must be HH:MM")
	}

	start = wallclock.Combine(date, sc)
	end = wallclock.Combine(date, ec)
	if !end.After(start) {
		return date, start, end, httperr.ErrValidation("invalid_time_range", "End time must be after start time")
	}

	return date, start, end, nil
}
