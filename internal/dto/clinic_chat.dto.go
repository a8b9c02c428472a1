package dto

import (
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/clinicchat"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

type MessageDTO struct {
	ID         uuid.UUID `json:"id"`
	SenderType string    `json:"sender_type"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

func MessageFromModel(m *models.ClinicChatMessage) MessageDTO {
	return MessageDTO{ID: m.ID, SenderType: m.SenderType, Text: m.Text, CreatedAt: m.CreatedAt}
}

type ThreadDTO struct {
	ID         uuid.UUID    `json:"id"`
	HospitalID uuid.UUID    `json:"hospital_id"`
	UserID     uuid.UUID    `json:"user_id"`
	ModifiedAt time.Time    `json:"modified_at"`
	Messages   []MessageDTO `json:"messages"`
}

func ThreadFromModel(t *models.ClinicChat) ThreadDTO {
	out := ThreadDTO{
		ID:         t.ID,
		HospitalID: t.HospitalID,
		UserID:     t.UserID,
		ModifiedAt: t.ModifiedAt,
		Messages:   make([]MessageDTO, 0, len(t.Messages)),
	}
	for i := range t.Messages {
		out.Messages = append(out.Messages, MessageFromModel(&t.Messages[i]))
	}
	return out
}

type ThreadSummaryDTO struct {
	ID          uuid.UUID   `json:"id"`
	HospitalID  uuid.UUID   `json:"hospital_id"`
	UserID      uuid.UUID   `json:"user_id"`
	ModifiedAt  time.Time   `json:"modified_at"`
	LastMessage *MessageDTO `json:"last_message"`
}

func ThreadSummariesFrom(list []domain.ThreadSummary) []ThreadSummaryDTO {
	out := make([]ThreadSummaryDTO, 0, len(list))
	for _, s := range list {
		item := ThreadSummaryDTO{
			ID:         s.Thread.ID,
			HospitalID: s.Thread.HospitalID,
			UserID:     s.Thread.UserID,
			ModifiedAt: s.Thread.ModifiedAt,
		}
		if s.LastMessage != nil {
			m := MessageFromModel(s.LastMessage)
			item.LastMessage = &m
		}
		out = append(out, item)
	}
	return out
}
