package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type DoctorGormRepository struct {
	db *gorm.DB
}

func NewDoctorGormRepository(db *gorm.DB) *DoctorGormRepository {
	return &DoctorGormRepository{db: db}
}

// --------------------------------------------------
// Doctor
// --------------------------------------------------

func (r *DoctorGormRepository) GetDoctor(
	ctx context.Context,
	id uuid.UUID,
) (*models.Doctor, error) {

	var d models.Doctor
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DoctorGormRepository) UpdateWorkingHours(
	ctx context.Context,
	doctorID uuid.UUID,
	hours models.WeeklyHours,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Doctor{}).
		Where("id = ?", doctorID).
		Update("working_hours", datatypes.NewJSONType(hours))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DoctorGormRepository) SetPhotoKey(
	ctx context.Context,
	doctorID uuid.UUID,
	key *string,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Doctor{}).
		Where("id = ?", doctorID).
		Update("photo_key", key)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --------------------------------------------------
// Hospital
// --------------------------------------------------

func (r *DoctorGormRepository) GetHospital(
	ctx context.Context,
	id uuid.UUID,
) (*models.Hospital, error) {

	var h models.Hospital
	if err := r.db.WithContext(ctx).First(&h, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &h, nil
}
