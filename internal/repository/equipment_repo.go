package repository

import (
	"context"

	"github.com/unievents/venue-booking-service/internal/models"
	"gorm.io/gorm"
)

type EquipmentRepository interface {
	Create(ctx context.Context, eq *models.Equipment) error
	FindByID(ctx context.Context, id uint) (*models.Equipment, error)
	FindByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]models.Equipment, error)
	FindAll(ctx context.Context, activeOnly bool) ([]models.Equipment, error)
	Update(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
}

type equipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) EquipmentRepository {
	return &equipmentRepository{db: db}
}

func (r *equipmentRepository) Create(ctx context.Context, eq *models.Equipment) error {
	return r.db.WithContext(ctx).Create(eq).Error
}

func (r *equipmentRepository) FindByID(ctx context.Context, id uint) (*models.Equipment, error) {
	var eq models.Equipment
	if err := r.db.WithContext(ctx).First(&eq, id).Error; err != nil {
		return nil, err
	}
	return &eq, nil
}

func (r *equipmentRepository) FindByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]models.Equipment, error) {
	var eqs []models.Equipment
	if len(ids) == 0 {
		return eqs, nil
	}
	if err := tx.WithContext(ctx).Where("id IN ?", ids).Find(&eqs).Error; err != nil {
		return nil, err
	}
	return eqs, nil
}

func (r *equipmentRepository) FindAll(ctx context.Context, activeOnly bool) ([]models.Equipment, error) {
	var eqs []models.Equipment
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Order("name ASC").Find(&eqs).Error; err != nil {
		return nil, err
	}
	return eqs, nil
}

func (r *equipmentRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&models.Equipment{}).
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

func (r *equipmentRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Equipment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
