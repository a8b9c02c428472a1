package clinicchat

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const (
	EventConnected      = "connected"
	EventMessageCreated = "message.created"
)

type MessagePayload struct {
	ID         uuid.UUID `json:"id"`
	SenderType string    `json:"sender_type"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

type MessageCreated struct {
	Event    string         `json:"event"`
	ThreadID uuid.UUID      `json:"thread_id"`
	Message  MessagePayload `json:"message"`
}

type Connected struct {
	Event    string    `json:"event"`
	ThreadID uuid.UUID `json:"thread_id"`
}

func NewMessageCreated(m *models.ClinicChatMessage) MessageCreated {
	return MessageCreated{
		Event:    EventMessageCreated,
		ThreadID: m.ThreadID,
		Message: MessagePayload{
			ID:         m.ID,
			SenderType: m.SenderType,
			Text:       m.Text,
			CreatedAt:  m.CreatedAt,
		},
	}
}

func NewConnected(threadID uuid.UUID) Connected {
	return Connected{Event: EventConnected, ThreadID: threadID}
}
