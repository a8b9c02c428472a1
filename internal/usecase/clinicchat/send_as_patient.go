package clinicchat

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/clinicchat"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type SendAsPatientInput struct {
	HospitalID uuid.UUID
	Actor      access.Principal
	Text       string

	// ThreadID pins the message to an existing thread.
	ThreadID *uuid.UUID
}

type SendAsPatient struct {
	repo  domain.Repository
	store *domain.Store
	rooms Broadcaster
}

func NewSendAsPatient(repo domain.Repository, store *domain.Store, rooms Broadcaster) *SendAsPatient {
	return &SendAsPatient{repo: repo, store: store, rooms: rooms}
}

func (uc *SendAsPatient) Execute(ctx context.Context, in SendAsPatientInput) (*models.ClinicChat, error) {
	if err := domain.ValidateText(in.Text); err != nil {
		return nil, err
	}

	var thread *models.ClinicChat

	if in.ThreadID != nil {
		t, err := uc.store.GetThreadByID(ctx, *in.ThreadID)
		if err != nil {
			return nil, err
		}
		if t.UserID != in.Actor.ID {
			return nil, httperr.ErrForbidden("thread_not_owned", "Thread doesn't belong to the current user")
		}
		if t.HospitalID != in.HospitalID {
			return nil, httperr.ErrBadRequest("thread_hospital_mismatch", "Thread does not belong to the provided hospital")
		}
		thread = t
	} else {
		if _, err := loadHospital(ctx, uc.repo, in.HospitalID); err != nil {
			return nil, err
		}
		t, err := uc.store.GetOrCreateThread(ctx, in.HospitalID, in.Actor.ID)
		if err != nil {
			return nil, err
		}
		thread = t
	}

	return publish(ctx, uc.store, uc.rooms, thread.ID, access.RoleOf(in.Actor), in.Text)
}
