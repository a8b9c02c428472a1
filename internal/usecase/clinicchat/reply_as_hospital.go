package clinicchat

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/clinicchat"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ReplyAsHospital appends to a thread the patient already opened. A
// hospital never starts a conversation.
type ReplyAsHospital struct {
	repo  domain.Repository
	store *domain.Store
	rooms Broadcaster
}

func NewReplyAsHospital(repo domain.Repository, store *domain.Store, rooms Broadcaster) *ReplyAsHospital {
	return &ReplyAsHospital{repo: repo, store: store, rooms: rooms}
}

func (uc *ReplyAsHospital) Execute(
	ctx context.Context,
	actor access.Principal,
	threadID uuid.UUID,
	text string,
) (*models.ClinicChat, error) {

	if err := domain.ValidateText(text); err != nil {
		return nil, err
	}

	t, err := uc.store.GetThreadByID(ctx, threadID)
	if err != nil {
		return nil, err
	}

	h, err := loadHospital(ctx, uc.repo, t.HospitalID)
	if err != nil {
		return nil, err
	}

	if !access.IsHospitalAdmin(actor, h) {
		return nil, errNotHospitalAdmin
	}

	return publish(ctx, uc.store, uc.rooms, t.ID, access.RoleOf(actor), text)
}
