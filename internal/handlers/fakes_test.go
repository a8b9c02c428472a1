package handlers_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	domainBooking "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	domainChat "github.com/BruksfildServices01/clinic-scheduler/internal/domain/clinicchat"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/realtime"
	"github.com/BruksfildServices01/clinic-scheduler/internal/routes"
	"github.com/BruksfildServices01/clinic-scheduler/internal/storage"
	ucBooking "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/booking"
	ucChat "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/clinicchat"
	ucDoctor "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/doctor"
	"github.com/BruksfildServices01/clinic-scheduler/internal/wallclock"
)

// memStore backs both the booking and the chat repositories plus the user
// lookup, so one engine can be wired end to end without a database.
type memStore struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*models.User
	hospitals map[uuid.UUID]*models.Hospital
	doctors   map[uuid.UUID]*models.Doctor
	bookings  map[uuid.UUID]*models.Booking
	threads   map[uuid.UUID]*models.ClinicChat
	audit     []models.AuditLog
	phones    int
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[uuid.UUID]*models.User{},
		hospitals: map[uuid.UUID]*models.Hospital{},
		doctors:   map[uuid.UUID]*models.Doctor{},
		bookings:  map[uuid.UUID]*models.Booking{},
		threads:   map[uuid.UUID]*models.ClinicChat{},
	}
}

func (s *memStore) addUser(roleID uuid.UUID) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phones++
	u := &models.User{
		ID:          uuid.New(),
		PhoneNumber: fmt.Sprintf("+99890%07d", s.phones),
		IsActive:    true,
		RoleID:      &roleID,
	}
	s.users[u.ID] = u
	return u
}

// -------- users --------

func (s *memStore) FindByPhone(_ context.Context, phone string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.PhoneNumber == phone {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memStore) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.users {
		if o.PhoneNumber == u.PhoneNumber {
			return gorm.ErrDuplicatedKey
		}
	}
	u.ID = uuid.New()
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *memStore) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// -------- doctors / hospitals --------

func (s *memStore) GetDoctor(_ context.Context, id uuid.UUID) (*models.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.doctors[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memStore) GetHospital(_ context.Context, id uuid.UUID) (*models.Hospital, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.hospitals[id]; ok {
		return h, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memStore) FindHospitalByAdmin(_ context.Context, adminID uuid.UUID) (*models.Hospital, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.hospitals {
		if h.AdminID != nil && *h.AdminID == adminID {
			return h, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memStore) UpdateWorkingHours(_ context.Context, id uuid.UUID, hours models.WeeklyHours) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.doctors[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	d.WorkingHours = datatypes.NewJSONType(hours)
	return nil
}

func (s *memStore) SetPhotoKey(_ context.Context, id uuid.UUID, key *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.doctors[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	d.PhotoKey = key
	return nil
}

// -------- audit --------

func (s *memStore) List(_ context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.AuditLog{}
	for _, l := range s.audit {
		if f.Action == "" || l.Action == f.Action {
			out = append(out, l)
		}
	}
	return out, int64(len(out)), nil
}

// -------- bookings --------

func (s *memStore) taken(b *models.Booking) bool {
	for _, o := range s.bookings {
		if o.ID != b.ID && o.DoctorID != nil && b.DoctorID != nil && *o.DoctorID == *b.DoctorID &&
			wallclock.Date(o.AppointmentDate) == wallclock.Date(b.AppointmentDate) &&
			o.AppointmentStart.Equal(b.AppointmentStart) && o.AppointmentEnd.Equal(b.AppointmentEnd) {
			return true
		}
	}
	return false
}

func (s *memStore) CreateBooking(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.taken(b) {
		return domainBooking.ErrSlotTaken
	}
	b.ID = uuid.New()
	cp := *b
	s.bookings[b.ID] = &cp
	return nil
}

func (s *memStore) GetBooking(_ context.Context, id uuid.UUID) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.bookings[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memStore) UpdateBooking(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[b.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if s.taken(b) {
		return domainBooking.ErrSlotTaken
	}
	cp := *b
	s.bookings[b.ID] = &cp
	return nil
}

func (s *memStore) DeleteBooking(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.bookings, id)
	return nil
}

func (s *memStore) ListBookingsForDay(_ context.Context, doctorID uuid.UUID, date time.Time) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Booking
	for _, b := range s.bookings {
		if b.DoctorID != nil && *b.DoctorID == doctorID && wallclock.Date(b.AppointmentDate) == wallclock.Date(date) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *memStore) ListBookings(_ context.Context, doctorID *uuid.UUID) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Booking{}
	for _, b := range s.bookings {
		if doctorID == nil || (b.DoctorID != nil && *b.DoctorID == *doctorID) {
			out = append(out, *b)
		}
	}
	return out, nil
}

// -------- threads --------

func (s *memStore) FindThread(_ context.Context, hospitalID, userID uuid.UUID) (*models.ClinicChat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.threads {
		if t.HospitalID == hospitalID && t.UserID == userID {
			cp := *t
			cp.Messages = append([]models.ClinicChatMessage(nil), t.Messages...)
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memStore) GetThreadByID(_ context.Context, id uuid.UUID) (*models.ClinicChat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.threads[id]; ok {
		cp := *t
		cp.Messages = append([]models.ClinicChatMessage(nil), t.Messages...)
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memStore) CreateThread(_ context.Context, t *models.ClinicChat) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.threads {
		if o.HospitalID == t.HospitalID && o.UserID == t.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	t.ID = uuid.New()
	cp := *t
	s.threads[t.ID] = &cp
	return nil
}

func (s *memStore) AppendMessage(_ context.Context, threadID uuid.UUID, m *models.ClinicChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.threads[threadID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.ID = uuid.New()
	t.Messages = append(t.Messages, *m)
	t.ModifiedAt = m.CreatedAt
	return nil
}

func (s *memStore) summaries(match func(*models.ClinicChat) bool) []domainChat.ThreadSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domainChat.ThreadSummary{}
	for _, t := range s.threads {
		if !match(t) {
			continue
		}
		sum := domainChat.ThreadSummary{Thread: *t}
		if n := len(t.Messages); n > 0 {
			last := t.Messages[n-1]
			sum.LastMessage = &last
		}
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Thread.ModifiedAt.After(out[j].Thread.ModifiedAt) })
	return out
}

func (s *memStore) ListThreadsByUser(_ context.Context, userID uuid.UUID) ([]domainChat.ThreadSummary, error) {
	return s.summaries(func(t *models.ClinicChat) bool { return t.UserID == userID }), nil
}

func (s *memStore) ListThreadsByHospital(_ context.Context, hospitalID uuid.UUID) ([]domainChat.ThreadSummary, error) {
	return s.summaries(func(t *models.ClinicChat) bool { return t.HospitalID == hospitalID }), nil
}

var (
	_ domainBooking.Repository = (*memStore)(nil)
	_ domainChat.Repository    = (*memStore)(nil)
	_ ucDoctor.PhotoRepository = (*memStore)(nil)
	_ handlers.UserStore       = (*memStore)(nil)
	_ handlers.AuditLister     = (*memStore)(nil)
	_ middleware.UserLookup    = (*memStore)(nil)
)

type nopAuditor struct{}

func (nopAuditor) Dispatch(audit.Event) {}

type pinger struct{ err error }

func (p pinger) PingContext(context.Context) error { return p.err }

// memObjects is an in-memory object store whose presigned URLs point at a
// fake host.
type memObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (m *memObjects) Put(_ context.Context, key string, body []byte, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = body
	return nil
}

func (m *memObjects) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://objects.test/" + key, nil
}

func (m *memObjects) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

var _ storage.ObjectStore = (*memObjects)(nil)

// ---------------------------------------------------------------------------
// engine
// ---------------------------------------------------------------------------

type testApp struct {
	store    *memStore
	objects  *memObjects
	auth     *middleware.Authenticator
	rooms    *realtime.Rooms
	engine   *gin.Engine
	hospital *models.Hospital
	doctor   *models.Doctor
	admin    *models.User
	patient  *models.User
	super    *models.User
}

// newTestApp mounts the production route table over in-memory fakes. With
// photos false the photo routes stay unregistered, as when no bucket is
// configured.
func newTestApp(photos bool) *testApp {
	gin.SetMode(gin.TestMode)

	s := newMemStore()
	a := &testApp{store: s, objects: &memObjects{objects: map[string][]byte{}}}

	a.admin = s.addUser(access.HospitalAdminRoleID)
	a.patient = s.addUser(access.PatientRoleID)
	a.super = s.addUser(access.SuperAdminRoleID)

	a.hospital = &models.Hospital{ID: uuid.New(), Name: "City Clinic", AdminID: &a.admin.ID}
	s.hospitals[a.hospital.ID] = a.hospital

	nine := "09:00-10:00"
	a.doctor = &models.Doctor{
		ID:           uuid.New(),
		HospitalID:   a.hospital.ID,
		WorkingHours: datatypes.NewJSONType(models.WeeklyHours{Monday: &nine}),
	}
	s.doctors[a.doctor.ID] = a.doctor

	a.auth = middleware.NewAuthenticator(&config.Config{JWTSecret: "test", JWTTTLMinutes: 60}, s)
	a.rooms = realtime.NewRooms(zerolog.Nop())
	store := domainChat.NewStore(s)

	h := routes.Handlers{
		Health: handlers.NewHealthHandler(pinger{}),
		Auth:   handlers.NewAuthHandler(s, a.auth, false),
		Me:     handlers.NewMeHandler(),
		Booking: handlers.NewBookingHandler(
			ucBooking.NewGetWorkingHours(s),
			ucBooking.NewGetAvailableSlots(s),
			ucBooking.NewBookSlot(s, nopAuditor{}),
			ucBooking.NewUpdateBooking(s, nopAuditor{}),
			ucBooking.NewDeleteBooking(s, nopAuditor{}),
			ucBooking.NewListBookings(s),
		),
		WorkingHours: handlers.NewWorkingHoursHandler(ucBooking.NewUpdateWorkingHours(s, nopAuditor{})),
		Chat: handlers.NewClinicChatHandler(
			ucChat.NewListMyThreads(s),
			ucChat.NewListHospitalThreads(s),
			ucChat.NewGetThread(s, store),
			ucChat.NewSendAsPatient(s, store, a.rooms),
			ucChat.NewReplyAsHospital(s, store, a.rooms),
		),
		ChatWS:    handlers.NewClinicChatWSHandler(a.auth, ucChat.NewAuthorizeThread(s, store), a.rooms),
		AuditLogs: handlers.NewAuditLogsHandler(s),
	}
	if photos {
		h.Photo = handlers.NewDoctorPhotoHandler(
			ucDoctor.NewUploadPhoto(s, a.objects, nopAuditor{}),
			ucDoctor.NewGetPhotoURL(s, a.objects),
			ucDoctor.NewDeletePhoto(s, a.objects, nopAuditor{}),
		)
	}

	r := gin.New()
	routes.Mount(r, h, middleware.AuthMiddleware(a.auth))

	a.engine = r
	return a
}

func (a *testApp) token(u *models.User) string {
	tok, _, err := a.auth.IssueToken(u)
	if err != nil {
		panic(err)
	}
	return tok
}
