package booking

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"waiting", "called", "served"} {
		if _, err := ParseStatus(s); err != nil {
			t.Errorf("%s: unexpected error %v", s, err)
		}
	}

	_, err := ParseStatus("cancelled")
	if k, ok := httperr.KindOf(err); !ok || k != httperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestApplyStatus(t *testing.T) {
	now := time.Date(2024, 6, 3, 9, 5, 0, 0, time.UTC)

	b := &models.Booking{Status: string(StatusWaiting)}
	if err := ApplyStatus(b, StatusCalled, now); err != nil {
		t.Fatalf("waiting -> called: %v", err)
	}
	if b.CalledAt == nil || !b.CalledAt.Equal(now) {
		t.Fatalf("called_at not set: %v", b.CalledAt)
	}

	later := now.Add(20 * time.Minute)
	if err := ApplyStatus(b, StatusServed, later); err != nil {
		t.Fatalf("called -> served: %v", err)
	}
	if b.ServedAt == nil || !b.ServedAt.Equal(later) {
		t.Fatalf("served_at not set: %v", b.ServedAt)
	}
	if !b.CalledAt.Equal(now) {
		t.Fatal("called_at must not move")
	}

	err := ApplyStatus(b, StatusWaiting, later)
	if k, ok := httperr.KindOf(err); !ok || k != httperr.KindBadRequest {
		t.Fatalf("expected bad request for backwards move, got %v", err)
	}
	if b.Status != string(StatusServed) {
		t.Fatalf("status changed on rejected transition: %s", b.Status)
	}
}

func TestApplyStatus_SkipAhead(t *testing.T) {
	b := &models.Booking{Status: string(StatusWaiting)}
	if err := ApplyStatus(b, StatusServed, time.Now()); err != nil {
		t.Fatalf("waiting -> served: %v", err)
	}
	if b.CalledAt != nil {
		t.Error("called_at should stay empty when skipping called")
	}
}
