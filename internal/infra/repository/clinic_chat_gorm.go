package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/clinicchat"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ClinicChatGormRepository struct {
	db *gorm.DB
}

func NewClinicChatGormRepository(db *gorm.DB) *ClinicChatGormRepository {
	return &ClinicChatGormRepository{db: db}
}

func orderedMessages(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

// --------------------------------------------------
// Hospital
// --------------------------------------------------

func (r *ClinicChatGormRepository) GetHospital(
	ctx context.Context,
	id uuid.UUID,
) (*models.Hospital, error) {

	var h models.Hospital
	if err := r.db.WithContext(ctx).First(&h, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *ClinicChatGormRepository) FindHospitalByAdmin(
	ctx context.Context,
	adminID uuid.UUID,
) (*models.Hospital, error) {

	var h models.Hospital
	if err := r.db.WithContext(ctx).
		Where("admin_id = ?", adminID).
		Order("created_at ASC").
		First(&h).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

// --------------------------------------------------
// Thread
// --------------------------------------------------

func (r *ClinicChatGormRepository) FindThread(
	ctx context.Context,
	hospitalID uuid.UUID,
	userID uuid.UUID,
) (*models.ClinicChat, error) {

	var t models.ClinicChat
	if err := r.db.WithContext(ctx).
		Preload("Messages", orderedMessages).
		Where("hospital_id = ? AND user_id = ?", hospitalID, userID).
		First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ClinicChatGormRepository) GetThreadByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.ClinicChat, error) {

	var t models.ClinicChat
	if err := r.db.WithContext(ctx).
		Preload("Messages", orderedMessages).
		First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ClinicChatGormRepository) CreateThread(
	ctx context.Context,
	t *models.ClinicChat,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(t).Error
}

// --------------------------------------------------
// Message
// --------------------------------------------------

func (r *ClinicChatGormRepository) AppendMessage(
	ctx context.Context,
	threadID uuid.UUID,
	m *models.ClinicChatMessage,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}

		res := tx.Model(&models.ClinicChat{}).
			Where("id = ?", threadID).
			Update("modified_at", m.CreatedAt)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *ClinicChatGormRepository) ListThreadsByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]domain.ThreadSummary, error) {
	return r.summaries(ctx, r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *ClinicChatGormRepository) ListThreadsByHospital(
	ctx context.Context,
	hospitalID uuid.UUID,
) ([]domain.ThreadSummary, error) {
	return r.summaries(ctx, r.db.WithContext(ctx).Where("hospital_id = ?", hospitalID))
}

func (r *ClinicChatGormRepository) summaries(
	ctx context.Context,
	q *gorm.DB,
) ([]domain.ThreadSummary, error) {

	var threads []models.ClinicChat
	if err := q.Order("modified_at DESC").Find(&threads).Error; err != nil {
		return nil, err
	}
	if len(threads) == 0 {
		return []domain.ThreadSummary{}, nil
	}

	ids := make([]uuid.UUID, len(threads))
	for i, t := range threads {
		ids[i] = t.ID
	}

	var last []models.ClinicChatMessage
	if err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT ON (thread_id) *
		FROM clinic_chat_messages
		WHERE thread_id IN ?
		ORDER BY thread_id, created_at DESC
	`, ids).Scan(&last).Error; err != nil {
		return nil, err
	}

	byThread := make(map[uuid.UUID]*models.ClinicChatMessage, len(last))
	for i := range last {
		byThread[last[i].ThreadID] = &last[i]
	}

	out := make([]domain.ThreadSummary, len(threads))
	for i, t := range threads {
		out[i] = domain.ThreadSummary{Thread: t, LastMessage: byThread[t.ID]}
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*ClinicChatGormRepository)(nil)
