package clinicchat

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/clinicchat"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type memRepo struct {
	mu        sync.Mutex
	hospitals map[uuid.UUID]*models.Hospital
	threads   map[uuid.UUID]*models.ClinicChat
}

func newMemRepo() *memRepo {
	return &memRepo{
		hospitals: map[uuid.UUID]*models.Hospital{},
		threads:   map[uuid.UUID]*models.ClinicChat{},
	}
}

func (r *memRepo) addHospital(adminID *uuid.UUID) *models.Hospital {
	h := &models.Hospital{ID: uuid.New(), Name: "General", AdminID: adminID}
	r.hospitals[h.ID] = h
	return h
}

func (r *memRepo) GetHospital(_ context.Context, id uuid.UUID) (*models.Hospital, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.hospitals[id]; ok {
		return h, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memRepo) FindHospitalByAdmin(_ context.Context, adminID uuid.UUID) (*models.Hospital, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.hospitals {
		if h.AdminID != nil && *h.AdminID == adminID {
			return h, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memRepo) copyThread(t *models.ClinicChat) *models.ClinicChat {
	cp := *t
	cp.Messages = append([]models.ClinicChatMessage(nil), t.Messages...)
	sort.SliceStable(cp.Messages, func(i, j int) bool {
		return cp.Messages[i].CreatedAt.Before(cp.Messages[j].CreatedAt)
	})
	return &cp
}

func (r *memRepo) FindThread(_ context.Context, hospitalID, userID uuid.UUID) (*models.ClinicChat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.threads {
		if t.HospitalID == hospitalID && t.UserID == userID {
			return r.copyThread(t), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memRepo) GetThreadByID(_ context.Context, id uuid.UUID) (*models.ClinicChat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.threads[id]; ok {
		return r.copyThread(t), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memRepo) CreateThread(_ context.Context, t *models.ClinicChat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.threads {
		if o.HospitalID == t.HospitalID && o.UserID == t.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	t.ID = uuid.New()
	cp := *t
	r.threads[t.ID] = &cp
	return nil
}

func (r *memRepo) AppendMessage(_ context.Context, threadID uuid.UUID, m *models.ClinicChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.threads[threadID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.ID = uuid.New()
	t.Messages = append(t.Messages, *m)
	t.ModifiedAt = m.CreatedAt
	return nil
}

func (r *memRepo) list(match func(*models.ClinicChat) bool) []domain.ThreadSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.ThreadSummary{}
	for _, t := range r.threads {
		if !match(t) {
			continue
		}
		s := domain.ThreadSummary{Thread: *t}
		if n := len(t.Messages); n > 0 {
			last := t.Messages[n-1]
			s.LastMessage = &last
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Thread.ModifiedAt.After(out[j].Thread.ModifiedAt)
	})
	return out
}

func (r *memRepo) ListThreadsByUser(_ context.Context, userID uuid.UUID) ([]domain.ThreadSummary, error) {
	return r.list(func(t *models.ClinicChat) bool { return t.UserID == userID }), nil
}

func (r *memRepo) ListThreadsByHospital(_ context.Context, hospitalID uuid.UUID) ([]domain.ThreadSummary, error) {
	return r.list(func(t *models.ClinicChat) bool { return t.HospitalID == hospitalID }), nil
}

type sentEvent struct {
	threadID uuid.UUID
	payload  any
}

type captureRooms struct {
	mu   sync.Mutex
	sent []sentEvent
}

func (c *captureRooms) Broadcast(threadID uuid.UUID, payload any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, sentEvent{threadID, payload})
}

var _ domain.Repository = (*memRepo)(nil)
