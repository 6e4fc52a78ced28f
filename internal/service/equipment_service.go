package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/unievents/venue-booking-service/internal/models"
	"github.com/unievents/venue-booking-service/internal/notifier"
	"github.com/unievents/venue-booking-service/internal/repository"
	"gorm.io/gorm"
)

type EquipmentService interface {
	Create(ctx context.Context, eq *models.Equipment, actorID *uint) error
	Get(ctx context.Context, id uint) (*models.Equipment, error)
	List(ctx context.Context, activeOnly bool) ([]models.Equipment, error)
	Update(ctx context.Context, id uint, fields map[string]any, actorID *uint) (*models.Equipment, error)
	Delete(ctx context.Context, id uint, actorID *uint) error
}

type equipmentService struct {
	equipmentRepo repository.EquipmentRepository
	notifier      *notifier.Notifier
}

func NewEquipmentService(equipmentRepo repository.EquipmentRepository, n *notifier.Notifier) EquipmentService {
	return &equipmentService{equipmentRepo: equipmentRepo, notifier: n}
}

func (s *equipmentService) Create(ctx context.Context, eq *models.Equipment, actorID *uint) error {
	if eq.Name == "" {
		return fmt.Errorf("%w: equipment name is required", ErrValidation)
	}
	if eq.Quantity < 0 || eq.RentalRatePerUnit < 0 {
		return fmt.Errorf("%w: quantity and rental rate must not be negative", ErrValidation)
	}

	if err := s.equipmentRepo.Create(ctx, eq); err != nil {
		return err
	}
	s.notifier.Audit(ctx, models.ActionEquipmentCreated, "equipment", eq.ID,
		nil, eq, fmt.Sprintf("Created equipment %s", eq.Name), actorID)
	return nil
}

func (s *equipmentService) Get(ctx context.Context, id uint) (*models.Equipment, error) {
	eq, err := s.equipmentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}
	return eq, nil
}

func (s *equipmentService) List(ctx context.Context, activeOnly bool) ([]models.Equipment, error) {
	return s.equipmentRepo.FindAll(ctx, activeOnly)
}

func (s *equipmentService) Update(ctx context.Context, id uint, fields map[string]any, actorID *uint) (*models.Equipment, error) {
	old, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.equipmentRepo.Update(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}

	eq, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifier.Audit(ctx, models.ActionEquipmentUpdated, "equipment", id,
		old, eq, fmt.Sprintf("Updated equipment %s", eq.Name), actorID)
	return eq, nil
}

func (s *equipmentService) Delete(ctx context.Context, id uint, actorID *uint) error {
	old, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.equipmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEquipmentNotFound
		}
		return err
	}
	s.notifier.Audit(ctx, models.ActionEquipmentDeleted, "equipment", id,
		old, nil, fmt.Sprintf("Deleted equipment %s", old.Name), actorID)
	return nil
}
