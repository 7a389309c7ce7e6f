package vendororders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/giftflowhq/giftflow-backend/pkg/db/models"
	"github.com/giftflowhq/giftflow-backend/pkg/enums"
	pkgerrors "github.com/giftflowhq/giftflow-backend/pkg/errors"
	"github.com/giftflowhq/giftflow-backend/pkg/money"
)

// Service manages fulfillment handed to outside vendors.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.VendorOrder, error)
	Get(ctx context.Context, id uuid.UUID) (*models.VendorOrder, error)
	List(ctx context.Context, params ListParams) ([]models.VendorOrder, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.VendorOrder, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	db *gorm.DB
}

// NewService wires vendor order dependencies.
func NewService(db *gorm.DB) (Service, error) {
	if db == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "database required")
	}
	return &service{db: db}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.VendorOrder, error) {
	if err := s.ensureExists(ctx, &models.Invoice{}, input.InvoiceID, "invoice not found"); err != nil {
		return nil, err
	}
	if err := s.ensureExists(ctx, &models.Vendor{}, input.VendorID, "vendor not found"); err != nil {
		return nil, err
	}

	order := &models.VendorOrder{
		ID:          uuid.New(),
		InvoiceID:   input.InvoiceID,
		VendorID:    input.VendorID,
		Description: input.Description,
		TotalAmount: money.FromFloat(input.TotalAmount),
		AmountPaid:  money.FromFloat(input.AmountPaid),
		Status:      enums.VendorOrderStatusPending,
		DueDate:     input.DueDate,
	}
	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vendor order")
	}
	return order, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.VendorOrder, error) {
	var order models.VendorOrder
	if err := s.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor order")
	}
	return &order, nil
}

func (s *service) List(ctx context.Context, params ListParams) ([]models.VendorOrder, error) {
	query := s.db.WithContext(ctx).Model(&models.VendorOrder{})
	if params.InvoiceID != nil {
		query = query.Where("invoice_id = ?", *params.InvoiceID)
	}
	if params.VendorID != nil {
		query = query.Where("vendor_id = ?", *params.VendorID)
	}
	if params.Status != "" {
		status, err := enums.ParseVendorOrderStatus(params.Status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parse status")
		}
		query = query.Where("status = ?", status)
	}

	var orders []models.VendorOrder
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendor orders")
	}
	return orders, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.VendorOrder, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		status, err := enums.ParseVendorOrderStatus(*input.Status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parse status")
		}
		order.Status = status
	}
	if input.Description != nil {
		order.Description = *input.Description
	}
	if input.TotalAmount != nil {
		order.TotalAmount = money.FromFloat(*input.TotalAmount)
	}
	if input.AmountPaid != nil {
		order.AmountPaid = money.FromFloat(*input.AmountPaid)
	}
	if input.DueDate != nil {
		order.DueDate = input.DueDate
	}
	if order.AmountPaid.GreaterThan(order.TotalAmount) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount paid cannot exceed total amount")
	}

	if err := s.db.WithContext(ctx).Save(order).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vendor order")
	}
	return order, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.VendorOrder{}, "id = ?", id)
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "delete vendor order")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "vendor order not found")
	}
	return nil
}

func (s *service) ensureExists(ctx context.Context, model any, id uuid.UUID, message string) error {
	err := s.db.WithContext(ctx).First(model, "id = ?", id).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, message)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load reference")
}
