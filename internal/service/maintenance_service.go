package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/unievents/venue-booking-service/internal/models"
	"github.com/unievents/venue-booking-service/internal/notifier"
	"github.com/unievents/venue-booking-service/internal/repository"
	"gorm.io/gorm"
)

const maxMaintenanceNotesLen = 500

type CreateMaintenanceInput struct {
	ReportedBy    uint
	VenueID       *uint
	EquipmentID   *uint
	Title         string
	Description   string
	Priority      models.MaintenancePriority
	ScheduledDate *time.Time
}

type MaintenanceService interface {
	Create(ctx context.Context, in CreateMaintenanceInput) (*models.MaintenanceRequest, error)
	Assign(ctx context.Context, requestID, technicianID uint, actorID *uint) (*models.MaintenanceRequest, error)
	UpdateStatus(ctx context.Context, requestID uint, status models.MaintenanceStatus, notes *string, actorID *uint) (*models.MaintenanceRequest, error)
	Get(ctx context.Context, id uint) (*models.MaintenanceRequest, error)
	List(ctx context.Context, filter repository.MaintenanceFilter) ([]models.MaintenanceRequest, error)
	ListAssigned(ctx context.Context, userID uint) ([]models.MaintenanceRequest, error)
}

type maintenanceService struct {
	maintenanceRepo repository.MaintenanceRepository
	venueRepo       repository.VenueRepository
	equipmentRepo   repository.EquipmentRepository
	userRepo        repository.UserRepository
	notifier        *notifier.Notifier
}

func NewMaintenanceService(
	maintenanceRepo repository.MaintenanceRepository,
	venueRepo repository.VenueRepository,
	equipmentRepo repository.EquipmentRepository,
	userRepo repository.UserRepository,
	n *notifier.Notifier,
) MaintenanceService {
	return &maintenanceService{
		maintenanceRepo: maintenanceRepo,
		venueRepo:       venueRepo,
		equipmentRepo:   equipmentRepo,
		userRepo:        userRepo,
		notifier:        n,
	}
}

func (s *maintenanceService) Create(ctx context.Context, in CreateMaintenanceInput) (*models.MaintenanceRequest, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.Description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if in.VenueID == nil && in.EquipmentID == nil {
		return nil, fmt.Errorf("%w: a venue_id or equipment_id is required", ErrValidation)
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}
	if in.VenueID != nil {
		if _, err := s.venueRepo.FindByID(ctx, *in.VenueID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrVenueNotFound
			}
			return nil, err
		}
	}
	if in.EquipmentID != nil {
		if _, err := s.equipmentRepo.FindByID(ctx, *in.EquipmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: equipment %d", ErrEquipmentNotFound, *in.EquipmentID)
			}
			return nil, err
		}
	}

	req := &models.MaintenanceRequest{
		VenueID:       in.VenueID,
		EquipmentID:   in.EquipmentID,
		ReportedBy:    in.ReportedBy,
		Title:         in.Title,
		Description:   in.Description,
		Priority:      in.Priority,
		Status:        models.MaintenanceOpen,
		ScheduledDate: in.ScheduledDate,
	}
	if err := s.maintenanceRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.notifier.Audit(ctx, models.ActionMaintenanceCreated, "maintenance_request", req.ID,
		nil, req, fmt.Sprintf("Maintenance request: %s", req.Title), &in.ReportedBy)

	return s.Get(ctx, req.ID)
}

// Assign hands the request to a technician and tells them about it. Terminal
// requests cannot be reassigned.
func (s *maintenanceService) Assign(ctx context.Context, requestID, technicianID uint, actorID *uint) (*models.MaintenanceRequest, error) {
	technician, err := s.userRepo.FindByID(ctx, technicianID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d not found", ErrValidation, technicianID)
		}
		return nil, err
	}

	current, err := s.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}

	ok, err := s.maintenanceRepo.TransitionStatus(ctx, requestID,
		[]models.MaintenanceStatus{models.MaintenanceOpen, models.MaintenanceInProgress},
		map[string]any{"assigned_to": technicianID})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidStateTransition
	}

	req, err := s.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyMaintenance(ctx, technicianID, models.NotifyMaintenanceAssigned, req,
		fmt.Sprintf("Maintenance request #%d (%s) has been assigned to you", req.ID, req.Title))
	s.notifier.QueueMaintenanceEmail("maintenance_assigned", technician.Email, req)
	s.notifier.Audit(ctx, models.ActionMaintenanceAssigned, "maintenance_request", req.ID,
		map[string]any{"assigned_to": current.AssignedTo},
		map[string]any{"assigned_to": technicianID},
		fmt.Sprintf("Assigned maintenance request %s to %s", req.Title, technician.Name), actorID)

	return req, nil
}

// UpdateStatus moves a request forward and notifies all admins. Completed and
// cancelled are terminal.
func (s *maintenanceService) UpdateStatus(ctx context.Context, requestID uint, status models.MaintenanceStatus, notes *string, actorID *uint) (*models.MaintenanceRequest, error) {
	switch status {
	case models.MaintenanceOpen, models.MaintenanceInProgress, models.MaintenanceCompleted, models.MaintenanceCancelled:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	if notes != nil && len(*notes) > maxMaintenanceNotesLen {
		return nil, fmt.Errorf("%w: notes must be at most %d characters", ErrValidation, maxMaintenanceNotesLen)
	}

	current, err := s.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{"status": status}
	if notes != nil {
		fields["notes"] = *notes
	}
	ok, err := s.maintenanceRepo.TransitionStatus(ctx, requestID,
		[]models.MaintenanceStatus{models.MaintenanceOpen, models.MaintenanceInProgress}, fields)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidStateTransition
	}

	req, err := s.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}

	s.notifyAdminsOfUpdate(ctx, req)
	s.notifier.Audit(ctx, models.ActionMaintenanceUpdated, "maintenance_request", req.ID,
		map[string]any{"status": current.Status},
		fields,
		fmt.Sprintf("Maintenance request %s moved to %s", req.Title, status), actorID)

	return req, nil
}

func (s *maintenanceService) Get(ctx context.Context, id uint) (*models.MaintenanceRequest, error) {
	req, err := s.maintenanceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMaintenanceNotFound
		}
		return nil, err
	}
	return req, nil
}

func (s *maintenanceService) List(ctx context.Context, filter repository.MaintenanceFilter) ([]models.MaintenanceRequest, error) {
	return s.maintenanceRepo.Find(ctx, filter)
}

func (s *maintenanceService) ListAssigned(ctx context.Context, userID uint) ([]models.MaintenanceRequest, error) {
	return s.maintenanceRepo.FindOpenForUser(ctx, userID)
}

func (s *maintenanceService) notifyAdminsOfUpdate(ctx context.Context, req *models.MaintenanceRequest) {
	admins, err := s.userRepo.FindAdmins(ctx)
	if err != nil {
		log.Printf("[MaintenanceService] failed to load admins for request %d: %v", req.ID, err)
		return
	}
	for _, admin := range admins {
		s.notifier.NotifyMaintenance(ctx, admin.ID, models.NotifyMaintenanceUpdated, req,
			fmt.Sprintf("Maintenance request #%d (%s) updated to %s", req.ID, req.Title, req.Status))
	}
}
