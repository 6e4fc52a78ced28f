package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/unievents/venue-booking-service/config"
	"github.com/unievents/venue-booking-service/internal/models"
	"github.com/unievents/venue-booking-service/internal/notifier"
	"github.com/unievents/venue-booking-service/internal/repository"
	"gorm.io/gorm"
)

const maxRejectionReasonLen = 500

type EquipmentRequest struct {
	EquipmentID uint
	Quantity    int
}

type CreateBookingInput struct {
	UserID            uint
	VenueID           uint
	EventTitle        string
	EventDescription  string
	StartDatetime     time.Time
	EndDatetime       time.Time
	ExpectedAttendees *int
	Equipment         []EquipmentRequest
}

type BookingService interface {
	Create(ctx context.Context, in CreateBookingInput) (*models.Booking, error)
	Approve(ctx context.Context, bookingID uint, actorID *uint, notes *string) (*models.Booking, error)
	Reject(ctx context.Context, bookingID uint, actorID *uint, reason string) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID, userID uint) (*models.Booking, error)
	UpdateDetails(ctx context.Context, bookingID, userID uint, fields map[string]any) (*models.Booking, error)
	Complete(ctx context.Context, bookingID uint) (*models.Booking, error)
	Get(ctx context.Context, id uint) (*models.Booking, error)
	ListForUser(ctx context.Context, userID uint, status *models.BookingStatus, limit, offset int) ([]models.Booking, error)
	ListAll(ctx context.Context, status *models.BookingStatus, limit, offset int) ([]models.Booking, error)
	IsAvailable(ctx context.Context, venueID uint, start, end time.Time, excludeBookingID uint) (bool, error)
	Stats(ctx context.Context) (map[string]int64, error)
}

type bookingService struct {
	bookingRepo   repository.BookingRepository
	venueRepo     repository.VenueRepository
	equipmentRepo repository.EquipmentRepository
	userRepo      repository.UserRepository
	notifier      *notifier.Notifier
	rules         config.BookingRules
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	venueRepo repository.VenueRepository,
	equipmentRepo repository.EquipmentRepository,
	userRepo repository.UserRepository,
	n *notifier.Notifier,
	rules config.BookingRules,
) BookingService {
	return &bookingService{
		bookingRepo:   bookingRepo,
		venueRepo:     venueRepo,
		equipmentRepo: equipmentRepo,
		userRepo:      userRepo,
		notifier:      n,
		rules:         rules,
	}
}

func (s *bookingService) Create(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	if err := s.validateWindow(in.StartDatetime, in.EndDatetime); err != nil {
		return nil, err
	}
	if in.EventTitle == "" {
		return nil, fmt.Errorf("%w: event_title is required", ErrValidation)
	}
	if in.ExpectedAttendees != nil && *in.ExpectedAttendees < 1 {
		return nil, fmt.Errorf("%w: expected_attendees must be at least 1", ErrValidation)
	}

	var booking *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		venue, err := s.venueRepo.FindByID(ctx, in.VenueID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVenueNotFound
			}
			return err
		}
		if !venue.IsActive {
			return fmt.Errorf("%w: venue %q is not open for bookings", ErrValidation, venue.Name)
		}
		if in.ExpectedAttendees != nil && *in.ExpectedAttendees > venue.Capacity {
			return fmt.Errorf("%w: venue %q holds at most %d attendees", ErrValidation, venue.Name, venue.Capacity)
		}

		booking = &models.Booking{
			UserID:            in.UserID,
			VenueID:           in.VenueID,
			EventTitle:        in.EventTitle,
			EventDescription:  in.EventDescription,
			StartDatetime:     in.StartDatetime,
			EndDatetime:       in.EndDatetime,
			ExpectedAttendees: in.ExpectedAttendees,
			Status:            models.StatusPending,
		}
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return err
		}

		rows, err := s.buildEquipmentRows(ctx, tx, booking.ID, in.Equipment)
		if err != nil {
			return err
		}
		if err := s.bookingRepo.AttachEquipment(ctx, tx, rows); err != nil {
			return err
		}
		booking.Equipment = rows
		booking.Venue = venue
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyAdmins(ctx, booking)
	s.notifier.Audit(ctx, models.ActionBookingCreated, "booking", booking.ID,
		nil, booking, fmt.Sprintf("Booking request for %s", booking.EventTitle), &in.UserID)

	if !s.rules.RequireApproval {
		approved, err := s.Approve(ctx, booking.ID, nil, nil)
		if err != nil {
			// Auto-approval lost to a conflict; the request stays pending
			// for manual review.
			log.Printf("[BookingService] auto-approval of booking %d failed: %v", booking.ID, err)
			return booking, nil
		}
		return approved, nil
	}

	return booking, nil
}

func (s *bookingService) Approve(ctx context.Context, bookingID uint, actorID *uint, notes *string) (*models.Booking, error) {
	var old models.BookingStatus

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.WithContext(ctx).Preload("Equipment").First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		old = booking.Status

		// Lock the venue row: the availability re-check and the status
		// update below must act as one atomic unit per venue.
		venue, err := s.venueRepo.FindByIDForUpdate(ctx, tx, booking.VenueID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVenueNotFound
			}
			return err
		}

		conflicts, err := s.bookingRepo.FindApprovedOverlapping(ctx, tx,
			booking.VenueID, booking.StartDatetime, booking.EndDatetime, booking.ID)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return ErrVenueUnavailable
		}

		total, err := s.snapshotCosts(ctx, tx, &booking, venue)
		if err != nil {
			return err
		}

		fields := map[string]any{
			"status":     models.StatusApproved,
			"total_cost": total,
		}
		if notes != nil {
			fields["notes"] = *notes
		}
		ok, err := s.bookingRepo.TransitionStatus(ctx, tx, bookingID,
			[]models.BookingStatus{models.StatusPending}, fields)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidStateTransition
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.User != nil {
		s.notifier.QueueEmail("booking_approved", booking.User.Email, booking, "")
		s.notifier.NotifyUser(ctx, booking.UserID, models.NotifyBookingApproved, booking)
	}
	s.notifier.Audit(ctx, models.ActionBookingApproved, "booking", booking.ID,
		map[string]any{"status": old},
		map[string]any{"status": booking.Status, "total_cost": booking.TotalCost},
		fmt.Sprintf("Approved booking for %s", booking.EventTitle), actorID)

	return booking, nil
}

func (s *bookingService) Reject(ctx context.Context, bookingID uint, actorID *uint, reason string) (*models.Booking, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", ErrValidation)
	}
	if len(reason) > maxRejectionReasonLen {
		return nil, fmt.Errorf("%w: rejection reason must be at most %d characters", ErrValidation, maxRejectionReasonLen)
	}

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := s.bookingRepo.TransitionStatus(ctx, tx, bookingID,
			[]models.BookingStatus{models.StatusPending}, map[string]any{
				"status":           models.StatusRejected,
				"rejection_reason": reason,
			})
		if err != nil {
			return err
		}
		if !ok {
			return s.transitionFailure(ctx, tx, bookingID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.User != nil {
		s.notifier.QueueEmail("booking_rejected", booking.User.Email, booking, reason)
		s.notifier.NotifyUser(ctx, booking.UserID, models.NotifyBookingRejected, booking)
	}
	s.notifier.Audit(ctx, models.ActionBookingRejected, "booking", booking.ID,
		map[string]any{"status": models.StatusPending},
		map[string]any{"status": booking.Status, "rejection_reason": reason},
		fmt.Sprintf("Rejected booking for %s", booking.EventTitle), actorID)

	return booking, nil
}

// Cancel cancels the caller's own booking. Pending bookings can always be
// cancelled; approved bookings only until their start time.
func (s *bookingService) Cancel(ctx context.Context, bookingID, userID uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrNotOwner
	}

	err = s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := s.bookingRepo.TransitionToCancelled(ctx, tx, bookingID, time.Now())
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidStateTransition
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking.Status = models.StatusCancelled
	s.notifier.Audit(ctx, models.ActionBookingCancelled, "booking", booking.ID,
		nil, map[string]any{"status": models.StatusCancelled},
		fmt.Sprintf("Cancelled booking for %s", booking.EventTitle), &userID)

	return booking, nil
}

// UpdateDetails lets the owner edit title, description or attendee count
// while the booking is still pending. The conditional update keeps a
// concurrent approval from racing the edit.
func (s *bookingService) UpdateDetails(ctx context.Context, bookingID, userID uint, fields map[string]any) (*models.Booking, error) {
	booking, err := s.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrNotOwner
	}
	if len(fields) == 0 {
		return booking, nil
	}

	err = s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := s.bookingRepo.TransitionStatus(ctx, tx, bookingID,
			[]models.BookingStatus{models.StatusPending}, fields)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidStateTransition
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.bookingRepo.FindByID(ctx, bookingID)
}

// Complete moves an approved booking whose event has finished to completed.
// Driven by the sweeper; there is no HTTP trigger.
func (s *bookingService) Complete(ctx context.Context, bookingID uint) (*models.Booking, error) {
	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := s.bookingRepo.TransitionStatus(ctx, tx, bookingID,
			[]models.BookingStatus{models.StatusApproved},
			map[string]any{"status": models.StatusCompleted})
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidStateTransition
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.User != nil {
		s.notifier.NotifyUser(ctx, booking.UserID, models.NotifyBookingCompleted, booking)
	}
	s.notifier.Audit(ctx, models.ActionBookingCompleted, "booking", booking.ID,
		map[string]any{"status": models.StatusApproved},
		map[string]any{"status": models.StatusCompleted},
		fmt.Sprintf("Completed booking for %s", booking.EventTitle), nil)

	return booking, nil
}

func (s *bookingService) Get(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) ListForUser(ctx context.Context, userID uint, status *models.BookingStatus, limit, offset int) ([]models.Booking, error) {
	return s.bookingRepo.FindByUserID(ctx, userID, status, limit, offset)
}

func (s *bookingService) ListAll(ctx context.Context, status *models.BookingStatus, limit, offset int) ([]models.Booking, error) {
	return s.bookingRepo.FindAll(ctx, status, limit, offset)
}

// IsAvailable reports whether no approved booking occupies a window
// overlapping [start, end) on the venue. An unknown venue is an error, never
// a silent false.
func (s *bookingService) IsAvailable(ctx context.Context, venueID uint, start, end time.Time, excludeBookingID uint) (bool, error) {
	if !start.Before(end) {
		return false, fmt.Errorf("%w: start_datetime must be before end_datetime", ErrValidation)
	}
	if _, err := s.venueRepo.FindByID(ctx, venueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrVenueNotFound
		}
		return false, err
	}

	conflicts, err := s.bookingRepo.FindApprovedOverlapping(ctx, s.bookingRepo.GetDB(), venueID, start, end, excludeBookingID)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

func (s *bookingService) Stats(ctx context.Context) (map[string]int64, error) {
	stats := make(map[string]int64, 4)
	for _, status := range []models.BookingStatus{
		models.StatusPending, models.StatusApproved, models.StatusRejected, models.StatusCompleted,
	} {
		count, err := s.bookingRepo.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		stats[string(status)] = count
	}
	return stats, nil
}

// --- helpers ---

func (s *bookingService) validateWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start_datetime and end_datetime are required", ErrValidation)
	}
	if !start.Before(end) {
		return fmt.Errorf("%w: start_datetime must be before end_datetime", ErrValidation)
	}
	now := time.Now()
	if start.Before(now) {
		return fmt.Errorf("%w: start_datetime must be in the future", ErrValidation)
	}
	if start.After(now.AddDate(0, 0, s.rules.MaxAdvanceDays)) {
		return fmt.Errorf("%w: bookings may be made at most %d days in advance", ErrValidation, s.rules.MaxAdvanceDays)
	}
	hours := end.Sub(start).Hours()
	if hours < s.rules.MinDurationHours {
		return fmt.Errorf("%w: booking must last at least %g hours", ErrValidation, s.rules.MinDurationHours)
	}
	if hours > s.rules.MaxDurationHours {
		return fmt.Errorf("%w: booking may last at most %g hours", ErrValidation, s.rules.MaxDurationHours)
	}
	return nil
}

func (s *bookingService) buildEquipmentRows(ctx context.Context, tx *gorm.DB, bookingID uint, reqs []EquipmentRequest) ([]models.BookingEquipment, error) {
	if len(reqs) == 0 {
		return nil, nil
	}

	ids := make([]uint, 0, len(reqs))
	for _, req := range reqs {
		if req.Quantity < 1 {
			return nil, fmt.Errorf("%w: equipment quantity must be at least 1", ErrValidation)
		}
		ids = append(ids, req.EquipmentID)
	}

	eqs, err := s.equipmentRepo.FindByIDs(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Equipment, len(eqs))
	for _, eq := range eqs {
		byID[eq.ID] = eq
	}

	rows := make([]models.BookingEquipment, 0, len(reqs))
	for _, req := range reqs {
		eq, found := byID[req.EquipmentID]
		if !found || !eq.IsActive {
			return nil, fmt.Errorf("%w: equipment %d", ErrEquipmentNotFound, req.EquipmentID)
		}
		if req.Quantity > eq.Quantity {
			return nil, fmt.Errorf("%w: only %d units of %s available", ErrValidation, eq.Quantity, eq.Name)
		}
		rows = append(rows, models.BookingEquipment{
			BookingID:         bookingID,
			EquipmentID:       req.EquipmentID,
			QuantityRequested: req.Quantity,
		})
	}
	return rows, nil
}

// snapshotCosts freezes equipment rates at approval time and returns the
// booking total. Runs inside the approval transaction, so a failed guard
// rolls the snapshots back too.
func (s *bookingService) snapshotCosts(ctx context.Context, tx *gorm.DB, booking *models.Booking, venue *models.Venue) (float64, error) {
	ids := make([]uint, 0, len(booking.Equipment))
	for _, row := range booking.Equipment {
		ids = append(ids, row.EquipmentID)
	}
	eqs, err := s.equipmentRepo.FindByIDs(ctx, tx, ids)
	if err != nil {
		return 0, err
	}
	rates := make(map[uint]float64, len(eqs))
	for _, eq := range eqs {
		rates[eq.ID] = eq.RentalRatePerUnit
	}

	for i := range booking.Equipment {
		row := &booking.Equipment[i]
		row.RatePerUnit = rates[row.EquipmentID]
		row.Subtotal = round2(float64(row.QuantityRequested) * row.RatePerUnit)
		if err := s.bookingRepo.UpdateEquipmentSnapshot(ctx, tx, row); err != nil {
			return 0, err
		}
	}

	return computeTotalCost(venue.HourlyRate, booking.DurationInHours(), booking.Equipment), nil
}

// transitionFailure distinguishes "booking does not exist" from "booking is
// in the wrong status" after a conditional update matched zero rows.
func (s *bookingService) transitionFailure(ctx context.Context, tx *gorm.DB, bookingID uint) error {
	var booking models.Booking
	if err := tx.WithContext(ctx).First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return err
	}
	return ErrInvalidStateTransition
}

func (s *bookingService) notifyAdmins(ctx context.Context, booking *models.Booking) {
	admins, err := s.userRepo.FindAdmins(ctx)
	if err != nil {
		log.Printf("[BookingService] failed to load admins for booking %d: %v", booking.ID, err)
		return
	}
	for _, admin := range admins {
		s.notifier.QueueEmail("booking_request_received", admin.Email, booking, "")
		s.notifier.NotifyUser(ctx, admin.ID, models.NotifyNewBookingRequest, booking)
	}
}
