package models

import "time"

// WeeklyHours maps each weekday to an "HH:MM-HH:MM" window. A nil day is
// closed.
type WeeklyHours struct {
	Monday    *string `json:"monday"`
	Tuesday   *string `json:"tuesday"`
	Wednesday *string `json:"wednesday"`
	Thursday  *string `json:"thursday"`
	Friday    *string `json:"friday"`
	Saturday  *string `json:"saturday"`
	Sunday    *string `json:"sunday"`
}

// For returns the window for the given weekday, or "" when closed.
func (w WeeklyHours) For(day time.Weekday) string {
	var v *string
	switch day {
	case time.Monday:
		v = w.Monday
	case time.Tuesday:
		v = w.Tuesday
	case time.Wednesday:
		v = w.Wednesday
	case time.Thursday:
		v = w.Thursday
	case time.Friday:
		v = w.Friday
	case time.Saturday:
		v = w.Saturday
	case time.Sunday:
		v = w.Sunday
	}
	if v == nil {
		return ""
	}
	return *v
}

// Days lists the configured windows keyed by weekday.
func (w WeeklyHours) Days() map[time.Weekday]string {
	out := make(map[time.Weekday]string, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if v := w.For(d); v != "" {
			out[d] = v
		}
	}
	return out
}
