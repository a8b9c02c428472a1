package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// PhotoRepository is implemented by repository.DoctorGormRepository.
type PhotoRepository interface {
	GetDoctor(ctx context.Context, id uuid.UUID) (*models.Doctor, error)
	GetHospital(ctx context.Context, id uuid.UUID) (*models.Hospital, error)
	SetPhotoKey(ctx context.Context, doctorID uuid.UUID, key *string) error
}

type Auditor interface {
	Dispatch(ev audit.Event)
}

var (
	errDoctorNotFound = httperr.ErrNotFound("doctor_not_found", "Doctor not found")
	errPhotoNotFound  = httperr.ErrNotFound("photo_not_found", "Doctor has no photo")
)

func loadDoctor(ctx context.Context, repo PhotoRepository, id uuid.UUID) (*models.Doctor, error) {
	d, err := repo.GetDoctor(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errDoctorNotFound
	}
	return d, err
}

// authorize loads the doctor and checks that actor may manage it.
func authorize(ctx context.Context, repo PhotoRepository, actor access.Principal, doctorID uuid.UUID) (*models.Doctor, error) {
	d, err := loadDoctor(ctx, repo, doctorID)
	if err != nil {
		return nil, err
	}

	h, err := repo.GetHospital(ctx, d.HospitalID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrNotFound("hospital_not_found", "Hospital not found")
	}
	if err != nil {
		return nil, err
	}

	if !access.CanManageDoctor(actor, h) {
		return nil, httperr.ErrForbidden("forbidden", "Not allowed to manage this doctor")
	}
	return d, nil
}

func photoKey(doctorID uuid.UUID) string {
	return fmt.Sprintf("doctors/%s/%s.webp", doctorID, uuid.NewString())
}
