package dto

import (
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/wallclock"
)

// ======================================================
// REQUESTS
// ======================================================

type BookSlotRequest struct {
	UserID    *uuid.UUID `json:"user_id"`
	Date      string     `json:"date" binding:"required"`
	StartTime string     `json:"start_time" binding:"required"`
	EndTime   string     `json:"end_time" binding:"required"`
}

type UpdateBookingRequest struct {
	Date      *string `json:"date"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Status    *string `json:"status"`
}

// ======================================================
// RESPONSES
// ======================================================

type BookingDTO struct {
	ID               uuid.UUID  `json:"id"`
	HospitalID       uuid.UUID  `json:"hospital_id"`
	DoctorID         *uuid.UUID `json:"doctor_id"`
	UserID           uuid.UUID  `json:"user_id"`
	AppointmentDate  string     `json:"appointment_date"`
	AppointmentStart string     `json:"appointment_start"`
	AppointmentEnd   string     `json:"appointment_end"`
	Status           string     `json:"status"`
	Position         *int       `json:"position"`
	CalledAt         *time.Time `json:"called_at"`
	ServedAt         *time.Time `json:"served_at"`
	CreatedAt        time.Time  `json:"created_at"`
}

func BookingFromModel(b *models.Booking) BookingDTO {
	return BookingDTO{
		ID:               b.ID,
		HospitalID:       b.HospitalID,
		DoctorID:         b.DoctorID,
		UserID:           b.UserID,
		AppointmentDate:  wallclock.Date(b.AppointmentDate),
		AppointmentStart: wallclock.Clock(b.AppointmentStart),
		AppointmentEnd:   wallclock.Clock(b.AppointmentEnd),
		Status:           b.Status,
		Position:         b.Position,
		CalledAt:         b.CalledAt,
		ServedAt:         b.ServedAt,
		CreatedAt:        b.CreatedAt,
	}
}

func BookingsFromModels(bs []models.Booking) []BookingDTO {
	out := make([]BookingDTO, 0, len(bs))
	for i := range bs {
		out = append(out, BookingFromModel(&bs[i]))
	}
	return out
}

type SlotDTO struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Status string `json:"status"`
}

type AvailableSlotsDTO struct {
	Date  string    `json:"date"`
	Slots []SlotDTO `json:"slots"`
}

func AvailableSlotsFrom(date time.Time, slots []domain.Slot) AvailableSlotsDTO {
	out := AvailableSlotsDTO{
		Date:  wallclock.Date(date),
		Slots: make([]SlotDTO, 0, len(slots)),
	}
	for _, s := range slots {
		out.Slots = append(out.Slots, SlotDTO{
			Start:  wallclock.Clock(s.Start),
			End:    wallclock.Clock(s.End),
			Status: string(s.Status),
		})
	}
	return out
}
