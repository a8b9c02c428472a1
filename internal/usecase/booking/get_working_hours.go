package booking

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type GetWorkingHours struct {
	repo domain.Repository
}

func NewGetWorkingHours(repo domain.Repository) *GetWorkingHours {
	return &GetWorkingHours{repo: repo}
}

func (uc *GetWorkingHours) Execute(ctx context.Context, doctorID uuid.UUID) (models.WeeklyHours, error) {
	doctor, err := uc.repo.GetDoctor(ctx, doctorID)
	if err != nil {
		return models.WeeklyHours{}, notFoundAs(err, errDoctorNotFound)
	}
	return doctor.WorkingHours.Data(), nil
}
