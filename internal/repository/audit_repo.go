package repository

import (
	"context"

	"github.com/unievents/venue-booking-service/internal/models"
	"gorm.io/gorm"
)

// AuditFilter narrows an audit log listing. Zero values mean "no filter".
type AuditFilter struct {
	Action  string
	ActorID uint
	Subject string
	Limit   int
}

// AuditLogRepository only ever inserts and reads. The audit trail is
// append-only, so no update or delete method exists.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	Find(ctx context.Context, filter AuditFilter) ([]models.AuditLog, error)
}

type auditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditLogRepository) Find(ctx context.Context, filter AuditFilter) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	q := r.db.WithContext(ctx).Preload("Actor")
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if filter.ActorID != 0 {
		q = q.Where("actor_id = ?", filter.ActorID)
	}
	if filter.Subject != "" {
		q = q.Where("subject_type = ?", filter.Subject)
	}
	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if err := q.Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
