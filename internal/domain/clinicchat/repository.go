package clinicchat

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Repository lookups return gorm.ErrRecordNotFound when a row is absent.
// Threads are always returned with their messages in created_at order.
type Repository interface {
	// -------- Hospital --------
	GetHospital(ctx context.Context, id uuid.UUID) (*models.Hospital, error)
	FindHospitalByAdmin(ctx context.Context, adminID uuid.UUID) (*models.Hospital, error)

	// -------- Thread --------
	FindThread(ctx context.Context, hospitalID, userID uuid.UUID) (*models.ClinicChat, error)
	GetThreadByID(ctx context.Context, id uuid.UUID) (*models.ClinicChat, error)
	// CreateThread surfaces the unique (hospital_id, user_id) violation
	// unchanged so callers can detect a lost race.
	CreateThread(ctx context.Context, t *models.ClinicChat) error

	// -------- Message --------
	// AppendMessage inserts m and bumps the thread's modified_at in one
	// transaction.
	AppendMessage(ctx context.Context, threadID uuid.UUID, m *models.ClinicChatMessage) error

	// -------- Listing --------
	ListThreadsByUser(ctx context.Context, userID uuid.UUID) ([]ThreadSummary, error)
	ListThreadsByHospital(ctx context.Context, hospitalID uuid.UUID) ([]ThreadSummary, error)
}

// ThreadSummary is a thread without its history, plus the newest message.
type ThreadSummary struct {
	Thread      models.ClinicChat
	LastMessage *models.ClinicChatMessage
}
