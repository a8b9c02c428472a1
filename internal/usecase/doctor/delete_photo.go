package doctor

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/clinic-scheduler/internal/storage"
)

type DeletePhoto struct {
	repo  PhotoRepository
	store storage.ObjectStore
	audit Auditor
}

func NewDeletePhoto(repo PhotoRepository, store storage.ObjectStore, audit Auditor) *DeletePhoto {
	return &DeletePhoto{repo: repo, store: store, audit: audit}
}

func (uc *DeletePhoto) Execute(ctx context.Context, actor access.Principal, doctorID uuid.UUID) error {
	doctor, err := authorize(ctx, uc.repo, actor, doctorID)
	if err != nil {
		return err
	}
	if doctor.PhotoKey == nil {
		return errPhotoNotFound
	}

	if err := uc.repo.SetPhotoKey(ctx, doctor.ID, nil); err != nil {
		return err
	}

	// the row no longer references the object; a failed delete only leaks storage
	if err := uc.store.Delete(ctx, *doctor.PhotoKey); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", *doctor.PhotoKey).Msg("doctor photo: object not removed")
	}

	uc.audit.Dispatch(audit.Event{
		HospitalID: &doctor.HospitalID,
		UserID:     &actor.ID,
		Action:     "doctor_photo_deleted",
		Entity:     "doctor",
		EntityID:   &doctor.ID,
	})
	return nil
}
