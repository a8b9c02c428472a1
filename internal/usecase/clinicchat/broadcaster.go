package clinicchat

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/clinicchat"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Broadcaster pushes an event to whoever is watching a thread right now.
// Delivery is best effort.
type Broadcaster interface {
	Broadcast(threadID uuid.UUID, payload any)
}

var (
	errHospitalNotFound = httperr.ErrNotFound("hospital_not_found", "Hospital not found")
	errNotParticipant   = httperr.ErrForbidden("forbidden", "Not allowed to access this thread")
	errNotHospitalAdmin = httperr.ErrForbidden("not_hospital_admin", "Not hospital admin for this hospital")
)

func loadHospital(ctx context.Context, repo domain.Repository, id uuid.UUID) (*models.Hospital, error) {
	h, err := repo.GetHospital(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errHospitalNotFound
	}
	return h, err
}

// isParticipant is true for the thread's patient and its hospital's admin.
func isParticipant(actor access.Principal, patientID uuid.UUID, h *models.Hospital) bool {
	return actor.ID == patientID || access.IsHospitalAdmin(actor, h)
}

// publish persists a message and fans it out, returning the fresh thread.
func publish(
	ctx context.Context,
	store *domain.Store,
	rooms Broadcaster,
	threadID uuid.UUID,
	role access.Role,
	text string,
) (*models.ClinicChat, error) {

	m, err := store.AppendMessage(ctx, threadID, role, text)
	if err != nil {
		return nil, err
	}

	rooms.Broadcast(threadID, domain.NewMessageCreated(m))

	return store.GetThreadByID(ctx, threadID)
}
