package clinicchat

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/clinicchat"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type GetThread struct {
	repo  domain.Repository
	store *domain.Store
}

func NewGetThread(repo domain.Repository, store *domain.Store) *GetThread {
	return &GetThread{repo: repo, store: store}
}

// Execute checks access before looking the thread up, so third parties
// cannot probe which pairs have a conversation.
func (uc *GetThread) Execute(
	ctx context.Context,
	actor access.Principal,
	hospitalID uuid.UUID,
	userID uuid.UUID,
) (*models.ClinicChat, error) {

	h, err := loadHospital(ctx, uc.repo, hospitalID)
	if err != nil {
		// only the patient may learn that the hospital does not exist
		if actor.ID != userID && errors.Is(err, errHospitalNotFound) {
			return nil, errNotParticipant
		}
		return nil, err
	}

	if !isParticipant(actor, userID, h) {
		return nil, errNotParticipant
	}

	return uc.store.GetThread(ctx, hospitalID, userID)
}

type AuthorizeThread struct {
	repo  domain.Repository
	store *domain.Store
}

func NewAuthorizeThread(repo domain.Repository, store *domain.Store) *AuthorizeThread {
	return &AuthorizeThread{repo: repo, store: store}
}

// Execute resolves a thread by id and checks the actor may watch it.
func (uc *AuthorizeThread) Execute(
	ctx context.Context,
	actor access.Principal,
	threadID uuid.UUID,
) (*models.ClinicChat, error) {

	t, err := uc.store.GetThreadByID(ctx, threadID)
	if err != nil {
		return nil, err
	}

	h, err := loadHospital(ctx, uc.repo, t.HospitalID)
	if err != nil {
		return nil, err
	}

	if !isParticipant(actor, t.UserID, h) {
		return nil, errNotParticipant
	}
	return t, nil
}
