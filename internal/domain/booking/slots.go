package booking

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/wallclock"
)

const SlotLength = 30 * time.Minute

type SlotStatus string

const (
	SlotFree   SlotStatus = "free"
	SlotBooked SlotStatus = "booked"
)

type Slot struct {
	Start  time.Time
	End    time.Time
	Status SlotStatus
}

type slotKey struct {
	start string
	end   string
}

// ComputeSlots splits the date's working window into consecutive 30 minute
// slots. A trailing remainder shorter than a slot is dropped. A slot is
// booked only when some booking has exactly the same start and end clock.
func ComputeSlots(hours models.WeeklyHours, date time.Time, bookings []models.Booking) ([]Slot, error) {
	raw := hours.For(date.Weekday())
	if raw == "" {
		return []Slot{}, nil
	}

	win, err := ParseWindow(raw)
	if err != nil {
		return nil, err
	}

	taken := make(map[slotKey]struct{}, len(bookings))
	for _, b := range bookings {
		taken[slotKey{wallclock.Clock(b.AppointmentStart), wallclock.Clock(b.AppointmentEnd)}] = struct{}{}
	}

	day := wallclock.Day(date)
	cur := wallclock.Combine(day, win.Start)
	end := wallclock.Combine(day, win.End)

	slots := make([]Slot, 0, int(end.Sub(cur)/SlotLength))
	for !cur.Add(SlotLength).After(end) {
		next := cur.Add(SlotLength)

		status := SlotFree
		if _, ok := taken[slotKey{wallclock.Clock(cur), wallclock.Clock(next)}]; ok {
			status = SlotBooked
		}

		slots = append(slots, Slot{Start: cur, End: next, Status: status})
		cur = next
	}

	return slots, nil
}
