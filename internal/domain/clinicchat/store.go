package clinicchat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const MaxTextLength = 4000

var ErrThreadNotFound = httperr.ErrNotFound("thread_not_found", "Thread not found")

// Store owns thread resolution and message persistence. It does no
// authorization; callers check access first.
type Store struct {
	repo Repository
	now  func() time.Time
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo, now: time.Now}
}

// GetOrCreateThread returns the single thread for the pair, creating it on
// first use. A concurrent creator winning the unique index is not an error.
func (s *Store) GetOrCreateThread(ctx context.Context, hospitalID, userID uuid.UUID) (*models.ClinicChat, error) {
	t, err := s.repo.FindThread(ctx, hospitalID, userID)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	t = &models.ClinicChat{
		HospitalID: hospitalID,
		UserID:     userID,
		ModifiedAt: s.now(),
	}
	err = s.repo.CreateThread(ctx, t)
	if err == nil {
		return t, nil
	}
	if !httperr.IsUniqueViolation(err) {
		return nil, fmt.Errorf("create thread: %w", err)
	}

	return s.repo.FindThread(ctx, hospitalID, userID)
}

// GetThread looks a thread up by its (hospital, user) pair.
func (s *Store) GetThread(ctx context.Context, hospitalID, userID uuid.UUID) (*models.ClinicChat, error) {
	t, err := s.repo.FindThread(ctx, hospitalID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrThreadNotFound
	}
	return t, err
}

func (s *Store) GetThreadByID(ctx context.Context, id uuid.UUID) (*models.ClinicChat, error) {
	t, err := s.repo.GetThreadByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrThreadNotFound
	}
	return t, err
}

// AppendMessage persists text on the thread attributed to role.
func (s *Store) AppendMessage(ctx context.Context, threadID uuid.UUID, role access.Role, text string) (*models.ClinicChatMessage, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}

	m := &models.ClinicChatMessage{
		ThreadID:   threadID,
		SenderType: role.String(),
		Text:       text,
		CreatedAt:  s.now(),
	}
	if err := s.repo.AppendMessage(ctx, threadID, m); err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}
	return m, nil
}

func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return httperr.ErrValidation("empty_message", "Message text must not be empty")
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return httperr.ErrValidation(
			"message_too_long",
			fmt.Sprintf("Message text must be at most %d characters", MaxTextLength),
		)
	}
	return nil
}
