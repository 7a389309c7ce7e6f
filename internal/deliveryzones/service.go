package deliveryzones

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/giftflowhq/giftflow-backend/pkg/db"
	"github.com/giftflowhq/giftflow-backend/pkg/db/models"
	pkgerrors "github.com/giftflowhq/giftflow-backend/pkg/errors"
	"github.com/giftflowhq/giftflow-backend/pkg/money"
)

// ZoneInput creates or replaces a delivery zone.
type ZoneInput struct {
	Name string  `json:"name" validate:"required"`
	Fee  float64 `json:"fee" validate:"gte=0"`
}

// Service manages delivery zones and their fees.
type Service interface {
	Create(ctx context.Context, input ZoneInput) (*models.DeliveryZone, error)
	List(ctx context.Context) ([]models.DeliveryZone, error)
	Update(ctx context.Context, id uuid.UUID, input ZoneInput) (*models.DeliveryZone, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	db *gorm.DB
}

// NewService wires delivery zone dependencies.
func NewService(gdb *gorm.DB) (Service, error) {
	if gdb == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "database required")
	}
	return &service{db: gdb}, nil
}

func (s *service) Create(ctx context.Context, input ZoneInput) (*models.DeliveryZone, error) {
	zone := &models.DeliveryZone{
		ID:   uuid.New(),
		Name: input.Name,
		Fee:  money.FromFloat(input.Fee),
	}
	if err := s.db.WithContext(ctx).Create(zone).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "delivery zone name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create delivery zone")
	}
	return zone, nil
}

func (s *service) List(ctx context.Context) ([]models.DeliveryZone, error) {
	var zones []models.DeliveryZone
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&zones).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list delivery zones")
	}
	return zones, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input ZoneInput) (*models.DeliveryZone, error) {
	var zone models.DeliveryZone
	if err := s.db.WithContext(ctx).First(&zone, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "delivery zone not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load delivery zone")
	}

	zone.Name = input.Name
	zone.Fee = money.FromFloat(input.Fee)
	if err := s.db.WithContext(ctx).Save(&zone).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "delivery zone name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update delivery zone")
	}
	return &zone, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.DeliveryZone{}, "id = ?", id)
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "delete delivery zone")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "delivery zone not found")
	}
	return nil
}
