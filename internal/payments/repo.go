package payments

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/giftflowhq/giftflow-backend/pkg/db/models"
)

// Repository exposes payment and receipt persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, payment *models.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]models.Payment, error)
	ReceiptExists(ctx context.Context, invoiceID uuid.UUID) (bool, error)
	CreateReceipt(ctx context.Context, receipt *models.Receipt) error
	FindReceiptByInvoice(ctx context.Context, invoiceID uuid.UUID) (*models.Receipt, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a payments repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Payment{}, "id = ?", id).Error
}

func (r *repositoryImpl) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]models.Payment, error) {
	var rows []models.Payment
	err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("received_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repositoryImpl) ReceiptExists(ctx context.Context, invoiceID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Receipt{}).
		Where("invoice_id = ?", invoiceID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repositoryImpl) CreateReceipt(ctx context.Context, receipt *models.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *repositoryImpl) FindReceiptByInvoice(ctx context.Context, invoiceID uuid.UUID) (*models.Receipt, error) {
	var receipt models.Receipt
	if err := r.db.WithContext(ctx).First(&receipt, "invoice_id = ?", invoiceID).Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}
