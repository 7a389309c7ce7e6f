package invoices

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/giftflowhq/giftflow-backend/pkg/db/models"
	"github.com/giftflowhq/giftflow-backend/pkg/pagination"
)

// Repository exposes invoice persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, invoice *models.Invoice) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	List(ctx context.Context, params listInvoicesParams) ([]models.Invoice, *pagination.Cursor, error)
	Save(ctx context.Context, invoice *models.Invoice) error
	ReplaceLines(ctx context.Context, invoiceID uuid.UUID, packages []models.InvoicePackage, items []models.InvoiceItem) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	CustomerExists(ctx context.Context, customerID uuid.UUID) (bool, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an invoices repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type listInvoicesParams struct {
	CustomerID  *uuid.UUID
	Status      *string
	OrderStatus *string
	Limit       int
	Cursor      *pagination.Cursor
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).
		Preload("Packages").
		Preload("Packages.Items").
		Preload("Items", "package_id IS NULL").
		Preload("Payments").
		Preload("Receipt").
		First(&invoice, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// FindByIDForUpdate loads the bare invoice row under a row lock so balance
// checks and status transitions cannot race.
func (r *repositoryImpl) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var invoice models.Invoice
	if err := query.First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *repositoryImpl) List(ctx context.Context, params listInvoicesParams) ([]models.Invoice, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.Invoice{})
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.OrderStatus != nil {
		query = query.Where("order_status = ?", *params.OrderStatus)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var invoices []models.Invoice
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&invoices).Error; err != nil {
		return nil, nil, err
	}

	if len(invoices) > normalized {
		next := invoices[normalized]
		invoices = invoices[:normalized]
		return invoices, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return invoices, nil, nil
}

// Save persists the invoice row only, never its associations.
func (r *repositoryImpl) Save(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: false}).
		Omit(clause.Associations).
		Save(invoice).Error
}

// ReplaceLines drops all existing packages/items and inserts the new set.
func (r *repositoryImpl) ReplaceLines(ctx context.Context, invoiceID uuid.UUID, packages []models.InvoicePackage, items []models.InvoiceItem) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("invoice_id = ?", invoiceID).Delete(&models.InvoiceItem{}).Error; err != nil {
		return err
	}
	if err := db.Where("invoice_id = ?", invoiceID).Delete(&models.InvoicePackage{}).Error; err != nil {
		return err
	}
	if len(packages) > 0 {
		if err := db.Create(&packages).Error; err != nil {
			return err
		}
	}
	if len(items) > 0 {
		if err := db.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Invoice{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repositoryImpl) CustomerExists(ctx context.Context, customerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", customerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
