package clinicchat

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/clinicchat"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

type fixture struct {
	repo     *memRepo
	store    *domain.Store
	rooms    *captureRooms
	admin    access.Principal
	patient  access.Principal
	stranger access.Principal
	hospital uuid.UUID
}

func principal(roleID uuid.UUID) access.Principal {
	return access.Principal{ID: uuid.New(), RoleID: &roleID}
}

func newFixture() *fixture {
	f := &fixture{
		repo:     newMemRepo(),
		rooms:    &captureRooms{},
		admin:    principal(access.HospitalAdminRoleID),
		patient:  principal(access.PatientRoleID),
		stranger: principal(access.PatientRoleID),
	}
	f.store = domain.NewStore(f.repo)
	f.hospital = f.repo.addHospital(&f.admin.ID).ID
	return f
}

func (f *fixture) send(t *testing.T, who access.Principal, text string, threadID *uuid.UUID) error {
	t.Helper()
	_, err := NewSendAsPatient(f.repo, f.store, f.rooms).Execute(context.Background(), SendAsPatientInput{
		HospitalID: f.hospital, Actor: who, Text: text, ThreadID: threadID,
	})
	return err
}

func assertKind(t *testing.T, err error, want httperr.Kind) {
	t.Helper()
	k, ok := httperr.KindOf(err)
	if !ok || k != want {
		t.Fatalf("expected error kind %v, got %v", want, err)
	}
}

func TestSendAsPatient_ReusesThread(t *testing.T) {
	f := newFixture()
	uc := NewSendAsPatient(f.repo, f.store, f.rooms)
	ctx := context.Background()

	first, err := uc.Execute(ctx, SendAsPatientInput{HospitalID: f.hospital, Actor: f.patient, Text: "hello"})
	if err != nil {
		t.Fatalf("first send: %v", err)
	}
	second, err := uc.Execute(ctx, SendAsPatientInput{HospitalID: f.hospital, Actor: f.patient, Text: "anyone?"})
	if err != nil {
		t.Fatalf("second send: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected same thread, got %s and %s", first.ID, second.ID)
	}
	if len(second.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(second.Messages))
	}
	if second.Messages[0].Text != "hello" || second.Messages[1].Text != "anyone?" {
		t.Fatalf("messages out of order: %+v", second.Messages)
	}
	if second.Messages[0].SenderType != "user" {
		t.Fatalf("expected sender_type user, got %s", second.Messages[0].SenderType)
	}

	if len(f.rooms.sent) != 2 {
		t.Fatalf("expected 2 broadcasts, got %d", len(f.rooms.sent))
	}
	ev, ok := f.rooms.sent[1].payload.(domain.MessageCreated)
	if !ok {
		t.Fatalf("unexpected payload type %T", f.rooms.sent[1].payload)
	}
	if ev.Event != "message.created" || ev.ThreadID != first.ID || ev.Message.Text != "anyone?" {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestSendAsPatient_ExplicitThread(t *testing.T) {
	f := newFixture()
	if err := f.send(t, f.patient, "hi", nil); err != nil {
		t.Fatal(err)
	}
	thread, _ := f.store.GetThread(context.Background(), f.hospital, f.patient.ID)

	if err := f.send(t, f.patient, "again", &thread.ID); err != nil {
		t.Fatalf("owner on own thread: %v", err)
	}

	assertKind(t, f.send(t, f.stranger, "sneaky", &thread.ID), httperr.KindForbidden)

	other := f.repo.addHospital(nil).ID
	_, err := NewSendAsPatient(f.repo, f.store, f.rooms).Execute(context.Background(), SendAsPatientInput{
		HospitalID: other, Actor: f.patient, Text: "wrong place", ThreadID: &thread.ID,
	})
	assertKind(t, err, httperr.KindBadRequest)

	missing := uuid.New()
	assertKind(t, f.send(t, f.patient, "void", &missing), httperr.KindNotFound)
}

func TestSendAsPatient_Validation(t *testing.T) {
	f := newFixture()
	assertKind(t, f.send(t, f.patient, "", nil), httperr.KindValidation)

	_, err := NewSendAsPatient(f.repo, f.store, f.rooms).Execute(context.Background(), SendAsPatientInput{
		HospitalID: uuid.New(), Actor: f.patient, Text: "hi",
	})
	assertKind(t, err, httperr.KindNotFound)

	if len(f.rooms.sent) != 0 {
		t.Fatal("failed sends must not broadcast")
	}
}

func TestGetThread_Access(t *testing.T) {
	f := newFixture()
	if err := f.send(t, f.patient, "hi", nil); err != nil {
		t.Fatal(err)
	}
	uc := NewGetThread(f.repo, f.store)
	ctx := context.Background()

	if _, err := uc.Execute(ctx, f.patient, f.hospital, f.patient.ID); err != nil {
		t.Fatalf("patient: %v", err)
	}
	if _, err := uc.Execute(ctx, f.admin, f.hospital, f.patient.ID); err != nil {
		t.Fatalf("admin: %v", err)
	}

	_, err := uc.Execute(ctx, f.stranger, f.hospital, f.patient.ID)
	assertKind(t, err, httperr.KindForbidden)

	_, err = uc.Execute(ctx, f.stranger, f.hospital, f.stranger.ID)
	assertKind(t, err, httperr.KindNotFound)

	_, err = uc.Execute(ctx, f.patient, uuid.New(), f.patient.ID)
	assertKind(t, err, httperr.KindNotFound)

	// unknown hospital asked about by someone else's id
	_, err = uc.Execute(ctx, f.stranger, uuid.New(), f.patient.ID)
	assertKind(t, err, httperr.KindForbidden)
}

func TestReplyAsHospital(t *testing.T) {
	f := newFixture()
	if err := f.send(t, f.patient, "hi", nil); err != nil {
		t.Fatal(err)
	}
	thread, _ := f.store.GetThread(context.Background(), f.hospital, f.patient.ID)
	uc := NewReplyAsHospital(f.repo, f.store, f.rooms)
	ctx := context.Background()

	_, err := uc.Execute(ctx, f.patient, thread.ID, "I am the hospital")
	assertKind(t, err, httperr.KindForbidden)

	// another hospital's admin
	otherAdmin := principal(access.HospitalAdminRoleID)
	f.repo.addHospital(&otherAdmin.ID)
	_, err = uc.Execute(ctx, otherAdmin, thread.ID, "wrong clinic")
	assertKind(t, err, httperr.KindForbidden)

	got, err := uc.Execute(ctx, f.admin, thread.ID, "how can we help?")
	if err != nil {
		t.Fatalf("admin reply: %v", err)
	}
	last := got.Messages[len(got.Messages)-1]
	if last.SenderType != "hospital_admin" || last.Text != "how can we help?" {
		t.Fatalf("unexpected last message: %+v", last)
	}

	_, err = uc.Execute(ctx, f.admin, uuid.New(), "nobody here")
	assertKind(t, err, httperr.KindNotFound)
}

func TestAuthorizeThread(t *testing.T) {
	f := newFixture()
	if err := f.send(t, f.patient, "hi", nil); err != nil {
		t.Fatal(err)
	}
	thread, _ := f.store.GetThread(context.Background(), f.hospital, f.patient.ID)
	uc := NewAuthorizeThread(f.repo, f.store)
	ctx := context.Background()

	for _, p := range []access.Principal{f.patient, f.admin} {
		if _, err := uc.Execute(ctx, p, thread.ID); err != nil {
			t.Fatalf("participant rejected: %v", err)
		}
	}

	_, err := uc.Execute(ctx, f.stranger, thread.ID)
	assertKind(t, err, httperr.KindForbidden)

	_, err = uc.Execute(ctx, f.patient, uuid.New())
	assertKind(t, err, httperr.KindNotFound)
}

func TestListThreads(t *testing.T) {
	f := newFixture()
	if err := f.send(t, f.patient, "hi", nil); err != nil {
		t.Fatal(err)
	}
	if err := f.send(t, f.stranger, "hello", nil); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	mine, err := NewListMyThreads(f.repo).Execute(ctx, f.patient)
	if err != nil || len(mine) != 1 {
		t.Fatalf("my threads: %v %v", mine, err)
	}
	if mine[0].LastMessage == nil || mine[0].LastMessage.Text != "hi" {
		t.Fatalf("unexpected last message: %+v", mine[0].LastMessage)
	}

	hospitalThreads, err := NewListHospitalThreads(f.repo).Execute(ctx, f.admin)
	if err != nil || len(hospitalThreads) != 2 {
		t.Fatalf("hospital threads: %v %v", hospitalThreads, err)
	}

	none, err := NewListHospitalThreads(f.repo).Execute(ctx, principal(access.HospitalAdminRoleID))
	if err != nil || len(none) != 0 {
		t.Fatalf("admin without hospital: %v %v", none, err)
	}
}
