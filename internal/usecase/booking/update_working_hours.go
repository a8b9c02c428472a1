package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type UpdateWorkingHours struct {
	repo  domain.Repository
	audit Auditor
}

func NewUpdateWorkingHours(repo domain.Repository, audit Auditor) *UpdateWorkingHours {
	return &UpdateWorkingHours{repo: repo, audit: audit}
}

// Execute replaces the doctor's whole weekly map.
func (uc *UpdateWorkingHours) Execute(
	ctx context.Context,
	actor access.Principal,
	doctorID uuid.UUID,
	hours models.WeeklyHours,
) (models.WeeklyHours, error) {

	doctor, err := uc.repo.GetDoctor(ctx, doctorID)
	if err != nil {
		return models.WeeklyHours{}, notFoundAs(err, errDoctorNotFound)
	}

	hospital, err := uc.repo.GetHospital(ctx, doctor.HospitalID)
	if err != nil {
		return models.WeeklyHours{}, notFoundAs(err, httperr.ErrNotFound("hospital_not_found", "Hospital not found"))
	}

	if !access.CanManageDoctor(actor, hospital) {
		return models.WeeklyHours{}, httperr.ErrForbidden("forbidden", "Not allowed to manage this doctor")
	}

	if err := domain.ValidateWeekly(hours); err != nil {
		return models.WeeklyHours{}, err
	}

	if err := uc.repo.UpdateWorkingHours(ctx, doctorID, hours); err != nil {
		return models.WeeklyHours{}, notFoundAs(err, errDoctorNotFound)
	}

	uc.audit.Dispatch(audit.Event{
		HospitalID: &hospital.ID,
		UserID:     &actor.ID,
		Action:     "working_hours_updated",
		Entity:     "doctor",
		EntityID:   &doctor.ID,
		Metadata:   hours,
	})

	return hours, nil
}
