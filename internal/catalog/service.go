package catalog

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

// Service defines catalog operations for products, categories and vendors.
type Service interface {
	CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, params ProductListParams) ([]models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateVendor(ctx context.Context, input VendorInput) (*models.Vendor, error)
	ListVendors(ctx context.Context) ([]models.Vendor, error)
	UpdateVendor(ctx context.Context, id uuid.UUID, input VendorInput) (*models.Vendor, error)
	DeleteVendor(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService wires catalog dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	if err := s.checkProductRefs(ctx, input); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:         uuid.New(),
		Name:       input.Name,
		CategoryID: input.CategoryID,
		VendorID:   input.VendorID,
		CostPrice:  money.FromFloat(input.CostPrice),
		UnitPrice:  money.FromFloat(input.UnitPrice),
	}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return product, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindProduct(ctx, id)
	if err != nil {
		return nil, translate(err, "load product")
	}
	return product, nil
}

func (s *service) ListProducts(ctx context.Context, params ProductListParams) ([]models.Product, error) {
	products, err := s.repo.ListProducts(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return products, nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*models.Product, error) {
	product, err := s.repo.FindProduct(ctx, id)
	if err != nil {
		return nil, translate(err, "load product")
	}
	if err := s.checkProductRefs(ctx, input); err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.CategoryID = input.CategoryID
	product.VendorID = input.VendorID
	product.CostPrice = money.FromFloat(input.CostPrice)
	product.UnitPrice = money.FromFloat(input.UnitPrice)
	if err := s.repo.SaveProduct(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return product, nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

func (s *service) CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error) {
	category := &models.Category{ID: uuid.New(), Name: input.Name}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return category, nil
}

func (s *service) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return categories, nil
}

func (s *service) UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*models.Category, error) {
	category, err := s.repo.FindCategory(ctx, id)
	if err != nil {
		return nil, translate(err, "load category")
	}

	category.Name = input.Name
	if err := s.repo.SaveCategory(ctx, category); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
	}
	return category, nil
}

func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.DeleteCategory(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	return nil
}

func (s *service) CreateVendor(ctx context.Context, input VendorInput) (*models.Vendor, error) {
	vendor := &models.Vendor{
		ID:    uuid.New(),
		Name:  input.Name,
		Phone: input.Phone,
		Notes: input.Notes,
	}
	if err := s.repo.CreateVendor(ctx, vendor); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "vendor name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vendor")
	}
	return vendor, nil
}

func (s *service) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	vendors, err := s.repo.ListVendors(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendors")
	}
	return vendors, nil
}

func (s *service) UpdateVendor(ctx context.Context, id uuid.UUID, input VendorInput) (*models.Vendor, error) {
	vendor, err := s.repo.FindVendor(ctx, id)
	if err != nil {
		return nil, translate(err, "load vendor")
	}

	vendor.Name = input.Name
	vendor.Phone = input.Phone
	vendor.Notes = input.Notes
	if err := s.repo.SaveVendor(ctx, vendor); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "vendor name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vendor")
	}
	return vendor, nil
}

// DeleteVendor refuses while outsourced orders still reference the vendor.
func (s *service) DeleteVendor(ctx context.Context, id uuid.UUID) error {
	hasOrders, err := s.repo.VendorHasOrders(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check vendor orders")
	}
	if hasOrders {
		return pkgerrors.New(pkgerrors.CodeConflict, "vendor has orders and cannot be deleted")
	}

	deleted, err := s.repo.DeleteVendor(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete vendor")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
	}
	return nil
}

func (s *service) checkProductRefs(ctx context.Context, input ProductInput) error {
	if input.CategoryID != nil {
		if _, err := s.repo.FindCategory(ctx, *input.CategoryID); err != nil {
			return translate(err, "load category")
		}
	}
	if input.VendorID != nil {
		if _, err := s.repo.FindVendor(ctx, *input.VendorID); err != nil {
			return translate(err, "load vendor")
		}
	}
	return nil
}

func translate(err error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}
