package customers

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/giftflowhq/giftflow-backend/pkg/db/models"
	"github.com/giftflowhq/giftflow-backend/pkg/pagination"
)

// Repository exposes customer, recipient and important-date persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, customer *models.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	List(ctx context.Context, params listCustomersParams) ([]models.Customer, *pagination.Cursor, error)
	Save(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	HasInvoices(ctx context.Context, id uuid.UUID) (bool, error)

	CreateRecipient(ctx context.Context, recipient *models.Recipient) error
	FindRecipient(ctx context.Context, customerID, recipientID uuid.UUID) (*models.Recipient, error)
	SaveRecipient(ctx context.Context, recipient *models.Recipient) error
	DeleteRecipient(ctx context.Context, customerID, recipientID uuid.UUID) (bool, error)

	CreateImportantDate(ctx context.Context, date *models.ImportantDate) error
	FindImportantDate(ctx context.Context, customerID, dateID uuid.UUID) (*models.ImportantDate, error)
	SaveImportantDate(ctx context.Context, date *models.ImportantDate) error
	DeleteImportantDate(ctx context.Context, customerID, dateID uuid.UUID) (bool, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a customers repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type listCustomersParams struct {
	Search string
	Tag    string
	Limit  int
	Cursor *pagination.Cursor
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Preload("Recipients").
		Preload("ImportantDates").
		First(&customer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repositoryImpl) List(ctx context.Context, params listCustomersParams) ([]models.Customer, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.Customer{})
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("name LIKE ? OR whatsapp LIKE ? OR email LIKE ?", pattern, pattern, pattern)
	}
	if params.Tag != "" {
		if r.db.Dialector.Name() == "postgres" {
			query = query.Where("tags @> ?", pq.StringArray{params.Tag})
		} else {
			query = query.Where("tags LIKE ?", "%"+params.Tag+"%")
		}
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var customers []models.Customer
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&customers).Error; err != nil {
		return nil, nil, err
	}

	if len(customers) > normalized {
		next := customers[normalized]
		customers = customers[:normalized]
		return customers, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return customers, nil, nil
}

func (r *repositoryImpl) Save(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).
		Omit("Recipients", "ImportantDates").
		Save(customer).Error
}

// Delete removes the customer; recipients and dates go with it in the same
// transaction. Invoices reference customers with RESTRICT, so callers must
// check HasInvoices first.
func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", id).Delete(&models.ImportantDate{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", id).Delete(&models.Recipient{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Customer{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}

func (r *repositoryImpl) HasInvoices(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("customer_id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repositoryImpl) CreateRecipient(ctx context.Context, recipient *models.Recipient) error {
	return r.db.WithContext(ctx).Create(recipient).Error
}

func (r *repositoryImpl) FindRecipient(ctx context.Context, customerID, recipientID uuid.UUID) (*models.Recipient, error) {
	var recipient models.Recipient
	err := r.db.WithContext(ctx).
		First(&recipient, "id = ? AND customer_id = ?", recipientID, customerID).Error
	if err != nil {
		return nil, err
	}
	return &recipient, nil
}

func (r *repositoryImpl) SaveRecipient(ctx context.Context, recipient *models.Recipient) error {
	return r.db.WithContext(ctx).Save(recipient).Error
}

func (r *repositoryImpl) DeleteRecipient(ctx context.Context, customerID, recipientID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Delete(&models.Recipient{}, "id = ? AND customer_id = ?", recipientID, customerID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repositoryImpl) CreateImportantDate(ctx context.Context, date *models.ImportantDate) error {
	return r.db.WithContext(ctx).Create(date).Error
}

func (r *repositoryImpl) FindImportantDate(ctx context.Context, customerID, dateID uuid.UUID) (*models.ImportantDate, error) {
	var date models.ImportantDate
	err := r.db.WithContext(ctx).
		First(&date, "id = ? AND customer_id = ?", dateID, customerID).Error
	if err != nil {
		return nil, err
	}
	return &date, nil
}

func (r *repositoryImpl) SaveImportantDate(ctx context.Context, date *models.ImportantDate) error {
	return r.db.WithContext(ctx).Save(date).Error
}

func (r *repositoryImpl) DeleteImportantDate(ctx context.Context, customerID, dateID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Delete(&models.ImportantDate{}, "id = ? AND customer_id = ?", dateID, customerID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
