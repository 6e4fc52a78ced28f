package repository

import (
	"context"

	"github.com/unievents/venue-booking-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VenueRepository interface {
	Create(ctx context.Context, venue *models.Venue) error
	FindByID(ctx context.Context, id uint) (*models.Venue, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Venue, error)
	FindAll(ctx context.Context, activeOnly bool) ([]models.Venue, error)
	Update(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
}

type venueRepository struct {
	db *gorm.DB
}

func NewVenueRepository(db *gorm.DB) VenueRepository {
	return &venueRepository{db: db}
}

func (r *venueRepository) Create(ctx context.Context, venue *models.Venue) error {
	return r.db.WithContext(ctx).Create(venue).Error
}

func (r *venueRepository) FindByID(ctx context.Context, id uint) (*models.Venue, error) {
	var venue models.Venue
	if err := r.db.WithContext(ctx).First(&venue, id).Error; err != nil {
		return nil, err
	}
	return &venue, nil
}

// FindByIDForUpdate acquires a row-level lock on the venue within the given
// transaction. Serializes concurrent approvals on the same venue so the
// availability re-check and the status update act as one atomic unit.
func (r *venueRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Venue, error) {
	var venue models.Venue
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&venue, id).Error; err != nil {
		return nil, err
	}
	return &venue, nil
}

func (r *venueRepository) FindAll(ctx context.Context, activeOnly bool) ([]models.Venue, error) {
	var venues []models.Venue
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Order("name ASC").Find(&venues).Error; err != nil {
		return nil, err
	}
	return venues, nil
}

func (r *venueRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&models.Venue{}).
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

func (r *venueRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Venue{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
