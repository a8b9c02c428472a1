package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Logger writes events to the audit_logs table.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var meta datatypes.JSON
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			meta = datatypes.JSON(b)
		}
	}

	row := models.AuditLog{
		HospitalID: ev.HospitalID,
		UserID:     ev.UserID,
		Action:     ev.Action,
		Entity:     ev.Entity,
		EntityID:   ev.EntityID,
		Metadata:   meta,
	}

	return l.db.WithContext(ctx).Create(&row).Error
}

// Filter narrows an audit log listing. Zero values match everything.
type Filter struct {
	HospitalID *uuid.UUID
	Action     string
	Entity     string
	From       *time.Time
	To         *time.Time

	Page  int
	Limit int
}

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// Normalize clamps paging to sane bounds.
func (f *Filter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > maxPageSize {
		f.Limit = defaultPageSize
	}
}

// List returns one page of audit rows, newest first, and the total count.
func (l *Logger) List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error) {
	f.Normalize()

	q := l.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.HospitalID != nil {
		q = q.Where("hospital_id = ?", *f.HospitalID)
	}
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", f.To.Add(24*time.Hour))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
