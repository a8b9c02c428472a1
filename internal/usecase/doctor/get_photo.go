package doctor

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/storage"
)

const PhotoURLTTL = 15 * time.Minute

type GetPhotoURL struct {
	repo  PhotoRepository
	store storage.ObjectStore
}

func NewGetPhotoURL(repo PhotoRepository, store storage.ObjectStore) *GetPhotoURL {
	return &GetPhotoURL{repo: repo, store: store}
}

func (uc *GetPhotoURL) Execute(ctx context.Context, doctorID uuid.UUID) (string, error) {
	doctor, err := loadDoctor(ctx, uc.repo, doctorID)
	if err != nil {
		return "", err
	}
	if doctor.PhotoKey == nil {
		return "", errPhotoNotFound
	}
	return uc.store.PresignGet(ctx, *doctor.PhotoKey, PhotoURLTTL)
}
