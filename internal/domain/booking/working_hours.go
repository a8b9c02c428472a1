package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/wallclock"
)

// Window is one day's opening range as clock times.
type Window struct {
	Start time.Time
	End   time.Time
}

// ParseWindow parses "HH:MM-HH:MM". End may equal start (no slots) but may
// not precede it.
func ParseWindow(s string) (Window, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return Window{}, invalidHours(s)
	}

	start, err := wallclock.ParseClock(strings.TrimSpace(parts[0]))
	if err != nil {
		return Window{}, invalidHours(s)
	}
	end, err := wallclock.ParseClock(strings.TrimSpace(parts[1]))
	if err != nil {
		return Window{}, invalidHours(s)
	}
	if end.Before(start) {
		return Window{}, invalidHours(s)
	}

	return Window{Start: start, End: end}, nil
}

// ValidateWeekly checks every configured day.
func ValidateWeekly(w models.WeeklyHours) error {
	for _, s := range w.Days() {
		if _, err := ParseWindow(s); err != nil {
			return err
		}
	}
	return nil
}

func invalidHours(s string) error {
	return httperr.ErrValidation(
		"invalid_working_hours",
		fmt.Sprintf("Working hours %q must look like HH:MM-HH:MM", s),
	)
}
