package doctor

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/storage"
)

type UploadPhoto struct {
	repo  PhotoRepository
	store storage.ObjectStore
	audit Auditor
}

func NewUploadPhoto(repo PhotoRepository, store storage.ObjectStore, audit Auditor) *UploadPhoto {
	return &UploadPhoto{repo: repo, store: store, audit: audit}
}

// Execute stores a new photo for the doctor and returns its object key. The
// previous object, if any, is removed after the doctor row points at the new
// one.
func (uc *UploadPhoto) Execute(
	ctx context.Context,
	actor access.Principal,
	doctorID uuid.UUID,
	data []byte,
) (string, error) {

	if len(data) == 0 {
		return "", httperr.ErrValidation("empty_file", "File is empty")
	}
	if len(data) > storage.MaxPhotoBytes {
		return "", httperr.ErrValidation("photo_too_large", "Photo exceeds 5 MiB")
	}

	doctor, err := authorize(ctx, uc.repo, actor, doctorID)
	if err != nil {
		return "", err
	}

	webp, err := storage.Transcode(data)
	if errors.Is(err, storage.ErrUnsupportedImage) {
		return "", httperr.ErrValidation("unsupported_image", "Only JPEG, PNG and WebP images are accepted")
	}
	if err != nil {
		return "", err
	}

	key := photoKey(doctor.ID)
	if err := uc.store.Put(ctx, key, webp, storage.PhotoMIME); err != nil {
		return "", err
	}

	if err := uc.repo.SetPhotoKey(ctx, doctor.ID, &key); err != nil {
		_ = uc.store.Delete(ctx, key)
		return "", err
	}

	if doctor.PhotoKey != nil {
		if err := uc.store.Delete(ctx, *doctor.PhotoKey); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("key", *doctor.PhotoKey).Msg("doctor photo: old object not removed")
		}
	}

	uc.audit.Dispatch(audit.Event{
		HospitalID: &doctor.HospitalID,
		UserID:     &actor.ID,
		Action:     "doctor_photo_updated",
		Entity:     "doctor",
		EntityID:   &doctor.ID,
	})

	return key, nil
}
