package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/wallclock"
)

type BookingGormRepository struct {
	*DoctorGormRepository
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{
		DoctorGormRepository: NewDoctorGormRepository(db),
		db:                   db,
	}
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

// CreateBooking checks the exact slot tuple and inserts in one transaction.
// The idx_queues_doctor_slot unique index catches inserts that race past the
// check.
func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if b.DoctorID != nil {
			taken, err := slotTaken(tx, *b.DoctorID, b, nil)
			if err != nil {
				return err
			}
			if taken {
				return domain.ErrSlotTaken
			}
		}

		return tx.Omit(clause.Associations).Create(b).Error
	})

	if httperr.IsUniqueViolation(err) {
		return domain.ErrSlotTaken
	}
	return err
}

func slotTaken(tx *gorm.DB, doctorID uuid.UUID, b *models.Booking, exclude *uuid.UUID) (bool, error) {
	q := tx.
		Model(&models.Booking{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"doctor_id = ? AND appointment_date = ? AND appointment_start = ? AND appointment_end = ?",
			doctorID,
			wallclock.Date(b.AppointmentDate),
			b.AppointmentStart,
			b.AppointmentEnd,
		)
	if exclude != nil {
		q = q.Where("id <> ?", *exclude)
	}

	var ids []uuid.UUID
	if err := q.Limit(1).Pluck("id", &ids).Error; err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uuid.UUID,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	// plain UPDATE: a booking deleted in the meantime must stay deleted
	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", b.ID).
		Select(
			"appointment_date",
			"appointment_start",
			"appointment_end",
			"status",
			"called_at",
			"served_at",
		).
		Updates(b)

	if httperr.IsUniqueViolation(res.Error) {
		return domain.ErrSlotTaken
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	id uuid.UUID,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Booking{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsForDay(
	ctx context.Context,
	doctorID uuid.UUID,
	date time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Select("id", "appointment_start", "appointment_end").
		Where("doctor_id = ? AND appointment_date = ?", doctorID, wallclock.Date(date)).
		Order("appointment_start ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	doctorID *uuid.UUID,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).Model(&models.Booking{})
	if doctorID != nil {
		q = q.Where("doctor_id = ?", *doctorID)
	}

	var bookings []models.Booking
	if err := q.
		Order("appointment_date ASC, appointment_start ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
