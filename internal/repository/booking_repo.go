package repository

import (
	"context"
	"time"

	"github.com/unievents/venue-booking-service/internal/models"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindByUserID(ctx context.Context, userID uint, status *models.BookingStatus, limit, offset int) ([]models.Booking, error)
	FindAll(ctx context.Context, status *models.BookingStatus, limit, offset int) ([]models.Booking, error)
	FindApprovedOverlapping(ctx context.Context, tx *gorm.DB, venueID uint, start, end time.Time, excludeID uint) ([]models.Booking, error)
	FindPendingOlderThan(ctx context.Context, cutoff time.Time) ([]models.Booking, error)
	FindApprovedEndedBefore(ctx context.Context, cutoff time.Time) ([]models.Booking, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, bookingID uint, fields map[string]any) error
	TransitionStatus(ctx context.Context, tx *gorm.DB, bookingID uint, from []models.BookingStatus, fields map[string]any) (bool, error)
	TransitionToCancelled(ctx context.Context, tx *gorm.DB, bookingID uint, now time.Time) (bool, error)
	CountByStatus(ctx context.Context, status models.BookingStatus) (int64, error)
	AttachEquipment(ctx context.Context, tx *gorm.DB, rows []models.BookingEquipment) error
	UpdateEquipmentSnapshot(ctx context.Context, tx *gorm.DB, row *models.BookingEquipment) error
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Venue").
		Preload("User").
		Preload("Equipment.Equipment").
		First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uint, status *models.BookingStatus, limit, offset int) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx).Preload("Venue").Where("user_id = ?", userID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	err := q.Order("start_datetime DESC").
		Limit(clampLimit(limit)).Offset(max(offset, 0)).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, status *models.BookingStatus, limit, offset int) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx).Preload("Venue").Preload("User")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	err := q.Order("created_at DESC").
		Limit(clampLimit(limit)).Offset(max(offset, 0)).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// clampLimit keeps listings bounded: default 50, never more than 200.
func clampLimit(limit int) int {
	if limit <= 0 || limit > 200 {
		return 50
	}
	return limit
}

// FindApprovedOverlapping returns approved bookings on the venue whose
// [start_datetime, end_datetime) window overlaps [start, end). Half-open:
// a booking ending exactly at `start` does not count.
func (r *bookingRepository) FindApprovedOverlapping(ctx context.Context, tx *gorm.DB, venueID uint, start, end time.Time, excludeID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	q := tx.WithContext(ctx).
		Where("venue_id = ? AND status = ?", venueID, models.StatusApproved).
		Where("start_datetime < ? AND ? < end_datetime", end, start)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindPendingOlderThan(ctx context.Context, cutoff time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("status = ? AND created_at < ?", models.StatusPending, cutoff).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindApprovedEndedBefore(ctx context.Context, cutoff time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("status = ? AND end_datetime < ?", models.StatusApproved, cutoff).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) UpdateFields(ctx context.Context, tx *gorm.DB, bookingID uint, fields map[string]any) error {
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Updates(fields).Error
}

// TransitionStatus performs the atomic conditional update that guards every
// lifecycle transition: fields are applied only while the row still holds one
// of the `from` statuses. Returns false when zero rows matched, meaning a
// concurrent caller already moved the booking.
func (r *bookingRepository) TransitionStatus(ctx context.Context, tx *gorm.DB, bookingID uint, from []models.BookingStatus, fields map[string]any) (bool, error) {
	res := tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status IN ?", bookingID, from).
		Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// TransitionToCancelled cancels a pending booking, or an approved booking
// whose start is still in the future. The time guard lives in the WHERE
// clause so a concurrent approval cannot slip a started booking past it.
func (r *bookingRepository) TransitionToCancelled(ctx context.Context, tx *gorm.DB, bookingID uint, now time.Time) (bool, error) {
	res := tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND (status = ? OR (status = ? AND start_datetime > ?))",
			bookingID, models.StatusPending, models.StatusApproved, now).
		Update("status", models.StatusCancelled)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *bookingRepository) CountByStatus(ctx context.Context, status models.BookingStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *bookingRepository) AttachEquipment(ctx context.Context, tx *gorm.DB, rows []models.BookingEquipment) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&rows).Error
}

func (r *bookingRepository) UpdateEquipmentSnapshot(ctx context.Context, tx *gorm.DB, row *models.BookingEquipment) error {
	return tx.WithContext(ctx).
		Model(&models.BookingEquipment{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"rate_per_unit": row.RatePerUnit,
			"subtotal":      row.Subtotal,
		}).Error
}
