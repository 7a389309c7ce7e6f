package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/giftflowhq/giftflow-backend/pkg/db/models"
)

// Repository exposes persistence helpers for products, categories and vendors.
type Repository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, params ProductListParams) ([]models.Product, error)
	SaveProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) (bool, error)

	CreateCategory(ctx context.Context, category *models.Category) error
	FindCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	SaveCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) (bool, error)

	CreateVendor(ctx context.Context, vendor *models.Vendor) error
	FindVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	ListVendors(ctx context.Context) ([]models.Vendor, error)
	SaveVendor(ctx context.Context, vendor *models.Vendor) error
	DeleteVendor(ctx context.Context, id uuid.UUID) (bool, error)
	VendorHasOrders(ctx context.Context, id uuid.UUID) (bool, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a catalog repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *repositoryImpl) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repositoryImpl) ListProducts(ctx context.Context, params ProductListParams) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if params.Search != "" {
		query = query.Where("name LIKE ?", "%"+params.Search+"%")
	}
	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}
	if params.VendorID != nil {
		query = query.Where("vendor_id = ?", *params.VendorID)
	}

	var products []models.Product
	err := query.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *repositoryImpl) SaveProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *repositoryImpl) DeleteProduct(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repositoryImpl) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *repositoryImpl) FindCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repositoryImpl) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *repositoryImpl) SaveCategory(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// DeleteCategory detaches products before removing the category so catalog
// rows survive with a null category.
func (r *repositoryImpl) DeleteCategory(ctx context.Context, id uuid.UUID) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).
			Where("category_id = ?", id).
			UpdateColumn("category_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Category{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}

func (r *repositoryImpl) CreateVendor(ctx context.Context, vendor *models.Vendor) error {
	return r.db.WithContext(ctx).Create(vendor).Error
}

func (r *repositoryImpl) FindVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.WithContext(ctx).First(&vendor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *repositoryImpl) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	var vendors []models.Vendor
	err := r.db.WithContext(ctx).Order("name ASC").Find(&vendors).Error
	return vendors, err
}

func (r *repositoryImpl) SaveVendor(ctx context.Context, vendor *models.Vendor) error {
	return r.db.WithContext(ctx).Save(vendor).Error
}

func (r *repositoryImpl) DeleteVendor(ctx context.Context, id uuid.UUID) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).
			Where("vendor_id = ?", id).
			UpdateColumn("vendor_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Vendor{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}

func (r *repositoryImpl) VendorHasOrders(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.VendorOrder{}).
		Where("vendor_id = ?", id).
		Count(&count).Error
	return count > 0, err
}
