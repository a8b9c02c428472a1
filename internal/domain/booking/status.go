package booking

import (
	"fmt"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusWaiting Status = "waiting"
	StatusCalled  Status = "called"
	StatusServed  Status = "served"
)

var statusRank = map[Status]int{
	StatusWaiting: 0,
	StatusCalled:  1,
	StatusServed:  2,
}

func InitialStatus() Status {
	return StatusWaiting
}

// ParseStatus accepts only the known vocabulary.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := statusRank[st]; !ok {
		return "", httperr.ErrValidation(
			"invalid_status",
			fmt.Sprintf("Unknown booking status %q", s),
		)
	}
	return st, nil
}

// CanTransition allows staying put or moving forward along
// waiting -> called -> served.
func CanTransition(from, to Status) error {
	fr, ok := statusRank[from]
	if !ok {
		// legacy rows with an unknown status may move anywhere
		return nil
	}
	if statusRank[to] < fr {
		return httperr.ErrBadRequest(
			"invalid_status_transition",
			fmt.Sprintf("Cannot move booking from %s to %s", from, to),
		)
	}
	return nil
}
