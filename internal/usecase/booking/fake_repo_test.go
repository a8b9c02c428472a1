package booking

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/wallclock"
)

// memRepo mimics the gorm repository, including the unique slot index.
type memRepo struct {
	mu        sync.Mutex
	doctors   map[uuid.UUID]*models.Doctor
	hospitals map[uuid.UUID]*models.Hospital
	bookings  map[uuid.UUID]*models.Booking
}

func newMemRepo() *memRepo {
	return &memRepo{
		doctors:   map[uuid.UUID]*models.Doctor{},
		hospitals: map[uuid.UUID]*models.Hospital{},
		bookings:  map[uuid.UUID]*models.Booking{},
	}
}

func (r *memRepo) addDoctor(hours models.WeeklyHours, adminID *uuid.UUID) *models.Doctor {
	h := &models.Hospital{ID: uuid.New(), Name: "City Clinic", AdminID: adminID}
	d := &models.Doctor{
		ID:           uuid.New(),
		HospitalID:   h.ID,
		FirstName:    "Ada",
		WorkingHours: datatypes.NewJSONType(hours),
	}
	r.hospitals[h.ID] = h
	r.doctors[d.ID] = d
	return d
}

func (r *memRepo) GetDoctor(_ context.Context, id uuid.UUID) (*models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.doctors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *memRepo) GetHospital(_ context.Context, id uuid.UUID) (*models.Hospital, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.hospitals[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return h, nil
}

func (r *memRepo) UpdateWorkingHours(_ context.Context, id uuid.UUID, hours models.WeeklyHours) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.doctors[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	d.WorkingHours = datatypes.NewJSONType(hours)
	return nil
}

func (r *memRepo) collides(b *models.Booking) bool {
	if b.DoctorID == nil {
		return false
	}
	for _, o := range r.bookings {
		if o.ID == b.ID || o.DoctorID == nil || *o.DoctorID != *b.DoctorID {
			continue
		}
		if wallclock.Date(o.AppointmentDate) == wallclock.Date(b.AppointmentDate) &&
			o.AppointmentStart.Equal(b.AppointmentStart) &&
			o.AppointmentEnd.Equal(b.AppointmentEnd) {
			return true
		}
	}
	return false
}

func (r *memRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.collides(b) {
		return domain.ErrSlotTaken
	}
	b.ID = uuid.New()
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *memRepo) GetBooking(_ context.Context, id uuid.UUID) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[b.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if r.collides(b) {
		return domain.ErrSlotTaken
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *memRepo) DeleteBooking(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *memRepo) ListBookingsForDay(_ context.Context, doctorID uuid.UUID, date time.Time) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.DoctorID != nil && *b.DoctorID == doctorID && wallclock.Date(b.AppointmentDate) == wallclock.Date(date) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memRepo) ListBookings(_ context.Context, doctorID *uuid.UUID) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if doctorID == nil || (b.DoctorID != nil && *b.DoctorID == *doctorID) {
			out = append(out, *b)
		}
	}
	return out, nil
}

type recordingAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *recordingAuditor) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *recordingAuditor) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.events))
	for i, e := range a.events {
		out[i] = e.Action
	}
	return out
}

var _ domain.Repository = (*memRepo)(nil)
