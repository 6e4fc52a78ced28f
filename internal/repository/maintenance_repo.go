package repository

import (
	"context"

	"github.com/unievents/venue-booking-service/internal/models"
	"gorm.io/gorm"
)

// MaintenanceFilter narrows a maintenance listing. Zero values mean
// "no filter".
type MaintenanceFilter struct {
	Status     models.MaintenanceStatus
	Priority   models.MaintenancePriority
	AssignedTo uint
	Limit      int
	Offset     int
}

type MaintenanceRepository interface {
	Create(ctx context.Context, req *models.MaintenanceRequest) error
	FindByID(ctx context.Context, id uint) (*models.MaintenanceRequest, error)
	Find(ctx context.Context, filter MaintenanceFilter) ([]models.MaintenanceRequest, error)
	FindOpenForUser(ctx context.Context, userID uint) ([]models.MaintenanceRequest, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error
	TransitionStatus(ctx context.Context, id uint, from []models.MaintenanceStatus, fields map[string]any) (bool, error)
}

type maintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

// priorityOrder ranks urgent work first; within a rank, oldest first.
const priorityOrder = "CASE priority WHEN 'urgent' THEN 0 WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END, created_at ASC"

func (r *maintenanceRepository) Create(ctx context.Context, req *models.MaintenanceRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *maintenanceRepository) FindByID(ctx context.Context, id uint) (*models.MaintenanceRequest, error) {
	var req models.MaintenanceRequest
	err := r.db.WithContext(ctx).
		Preload("Venue").
		Preload("Equipment").
		Preload("AssignedUser").
		First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *maintenanceRepository) Find(ctx context.Context, filter MaintenanceFilter) ([]models.MaintenanceRequest, error) {
	var reqs []models.MaintenanceRequest
	q := r.db.WithContext(ctx).Preload("Venue").Preload("AssignedUser")
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}
	if filter.AssignedTo != 0 {
		q = q.Where("assigned_to = ?", filter.AssignedTo)
	}
	err := q.Order(priorityOrder).
		Limit(clampLimit(filter.Limit)).Offset(max(filter.Offset, 0)).
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *maintenanceRepository) FindOpenForUser(ctx context.Context, userID uint) ([]models.MaintenanceRequest, error) {
	var reqs []models.MaintenanceRequest
	err := r.db.WithContext(ctx).
		Preload("Venue").
		Preload("Equipment").
		Where("assigned_to = ? AND status IN ?", userID,
			[]models.MaintenanceStatus{models.MaintenanceOpen, models.MaintenanceInProgress}).
		Order(priorityOrder).
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *maintenanceRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&models.MaintenanceRequest{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// TransitionStatus mirrors the booking transition guard: fields apply only
// while the row still holds one of the `from` statuses.
func (r *maintenanceRepository) TransitionStatus(ctx context.Context, id uint, from []models.MaintenanceStatus, fields map[string]any) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.MaintenanceRequest{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
