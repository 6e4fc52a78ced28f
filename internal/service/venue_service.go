package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/unievents/venue-booking-service/internal/models"
	"github.com/unievents/venue-booking-service/internal/notifier"
	"github.com/unievents/venue-booking-service/internal/repository"
	"gorm.io/gorm"
)

type VenueStats struct {
	TotalBookings    int64   `json:"total_bookings"`
	ApprovedBookings int64   `json:"approved_bookings"`
	TotalRevenue     float64 `json:"total_revenue"`
	UtilizationRate  float64 `json:"utilization_rate"`
}

type VenueService interface {
	Create(ctx context.Context, venue *models.Venue, actorID *uint) error
	Get(ctx context.Context, id uint) (*models.Venue, error)
	List(ctx context.Context, activeOnly bool) ([]models.Venue, error)
	Update(ctx context.Context, id uint, fields map[string]any, actorID *uint) (*models.Venue, error)
	Delete(ctx context.Context, id uint, actorID *uint) error
	Calendar(ctx context.Context, venueID uint, month time.Time) (map[string][]models.Booking, error)
	Stats(ctx context.Context, venueID uint) (*VenueStats, error)
}

type venueService struct {
	venueRepo   repository.VenueRepository
	bookingRepo repository.BookingRepository
	notifier    *notifier.Notifier
}

func NewVenueService(venueRepo repository.VenueRepository, bookingRepo repository.BookingRepository, n *notifier.Notifier) VenueService {
	return &venueService{venueRepo: venueRepo, bookingRepo: bookingRepo, notifier: n}
}

func (s *venueService) Create(ctx context.Context, venue *models.Venue, actorID *uint) error {
	if venue.Name == "" {
		return fmt.Errorf("%w: venue name is required", ErrValidation)
	}
	if venue.Capacity < 1 {
		return fmt.Errorf("%w: capacity must be a positive integer", ErrValidation)
	}
	if venue.HourlyRate != nil && *venue.HourlyRate < 0 {
		return fmt.Errorf("%w: hourly_rate must not be negative", ErrValidation)
	}

	if err := s.venueRepo.Create(ctx, venue); err != nil {
		return err
	}
	s.notifier.Audit(ctx, models.ActionVenueCreated, "venue", venue.ID,
		nil, venue, fmt.Sprintf("Created venue %s", venue.Name), actorID)
	return nil
}

func (s *venueService) Get(ctx context.Context, id uint) (*models.Venue, error) {
	venue, err := s.venueRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return venue, nil
}

func (s *venueService) List(ctx context.Context, activeOnly bool) ([]models.Venue, error) {
	return s.venueRepo.FindAll(ctx, activeOnly)
}

func (s *venueService) Update(ctx context.Context, id uint, fields map[string]any, actorID *uint) (*models.Venue, error) {
	old, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if capacity, ok := fields["capacity"].(int); ok && capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be a positive integer", ErrValidation)
	}
	if err := s.venueRepo.Update(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}

	venue, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifier.Audit(ctx, models.ActionVenueUpdated, "venue", id,
		old, venue, fmt.Sprintf("Updated venue %s", venue.Name), actorID)
	return venue, nil
}

func (s *venueService) Delete(ctx context.Context, id uint, actorID *uint) error {
	old, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.venueRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVenueNotFound
		}
		return err
	}
	s.notifier.Audit(ctx, models.ActionVenueDeleted, "venue", id,
		old, nil, fmt.Sprintf("Deleted venue %s", old.Name), actorID)
	return nil
}

// Calendar groups the month's approved bookings by day (venue-local dates).
func (s *venueService) Calendar(ctx context.Context, venueID uint, month time.Time) (map[string][]models.Booking, error) {
	if _, err := s.Get(ctx, venueID); err != nil {
		return nil, err
	}

	monthStart := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	bookings, err := s.bookingRepo.FindApprovedOverlapping(ctx, s.bookingRepo.GetDB(), venueID, monthStart, monthEnd, 0)
	if err != nil {
		return nil, err
	}

	calendar := make(map[string][]models.Booking)
	for _, b := range bookings {
		day := b.StartDatetime.Format("2006-01-02")
		calendar[day] = append(calendar[day], b)
	}
	return calendar, nil
}

func (s *venueService) Stats(ctx context.Context, venueID uint) (*VenueStats, error) {
	if _, err := s.Get(ctx, venueID); err != nil {
		return nil, err
	}

	db := s.bookingRepo.GetDB().WithContext(ctx)

	var total, approved int64
	if err := db.Model(&models.Booking{}).Where("venue_id = ?", venueID).Count(&total).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Booking{}).
		Where("venue_id = ? AND status = ?", venueID, models.StatusApproved).
		Count(&approved).Error; err != nil {
		return nil, err
	}

	var revenue float64
	if err := db.Model(&models.Booking{}).
		Where("venue_id = ? AND status = ?", venueID, models.StatusApproved).
		Select("COALESCE(SUM(total_cost), 0)").
		Scan(&revenue).Error; err != nil {
		return nil, err
	}

	stats := &VenueStats{
		TotalBookings:    total,
		ApprovedBookings: approved,
		TotalRevenue:     round2(revenue),
	}
	if total > 0 {
		stats.UtilizationRate = round2(float64(approved) / float64(total) * 100)
	}
	return stats, nil
}
