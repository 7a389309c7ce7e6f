package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/giftflowhq/giftflow-backend/pkg/db/models"
	pkgerrors "github.com/giftflowhq/giftflow-backend/pkg/errors"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS vendors (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  phone TEXT,
  notes TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category_id TEXT,
  vendor_id TEXT,
  cost_price NUMERIC NOT NULL DEFAULT 0,
  unit_price NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS vendor_orders (
  id TEXT PRIMARY KEY,
  invoice_id TEXT NOT NULL,
  vendor_id TEXT NOT NULL,
  description TEXT NOT NULL,
  total_amount NUMERIC NOT NULL DEFAULT 0,
  amount_paid NUMERIC NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'pending',
  due_date DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func newCatalogService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc
}

func TestProductLifecycle(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newCatalogService(t, db)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, CategoryInput{Name: "Hampers"})
	require.NoError(t, err)
	vendor, err := svc.CreateVendor(ctx, VendorInput{Name: "Bloom & Co"})
	require.NoError(t, err)

	product, err := svc.CreateProduct(ctx, ProductInput{
		Name:       "Deluxe Hamper",
		CategoryID: &category.ID,
		VendorID:   &vendor.ID,
		CostPrice:  2500,
		UnitPrice:  4000,
	})
	require.NoError(t, err)
	assert.Equal(t, "2500", product.CostPrice.String())

	updated, err := svc.UpdateProduct(ctx, product.ID, ProductInput{
		Name:      "Deluxe Hamper XL",
		CostPrice: 3000,
		UnitPrice: 5000,
	})
	require.NoError(t, err)
	assert.Equal(t, "Deluxe Hamper XL", updated.Name)
	assert.Nil(t, updated.CategoryID)

	require.NoError(t, svc.DeleteProduct(ctx, product.ID))
	_, err = svc.GetProduct(ctx, product.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestCreateProductRejectsUnknownCategory(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newCatalogService(t, db)

	missing := uuid.New()
	_, err := svc.CreateProduct(context.Background(), ProductInput{
		Name:       "Orphan",
		CategoryID: &missing,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListProductsFilters(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newCatalogService(t, db)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, CategoryInput{Name: "Flowers"})
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, ProductInput{Name: "Rose Bouquet", CategoryID: &category.ID})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, ProductInput{Name: "Chocolate Box"})
	require.NoError(t, err)

	bySearch, err := svc.ListProducts(ctx, ProductListParams{Search: "Rose"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)

	byCategory, err := svc.ListProducts(ctx, ProductListParams{CategoryID: &category.ID})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Rose Bouquet", byCategory[0].Name)
}

func TestDuplicateCategoryNameConflicts(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newCatalogService(t, db)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, CategoryInput{Name: "Hampers"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, CategoryInput{Name: "Hampers"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestDuplicateVendorNameConflicts(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newCatalogService(t, db)
	ctx := context.Background()

	_, err := svc.CreateVendor(ctx, VendorInput{Name: "Bloom & Co"})
	require.NoError(t, err)

	_, err = svc.CreateVendor(ctx, VendorInput{Name: "Bloom & Co"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestDeleteCategoryDetachesProducts(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newCatalogService(t, db)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, CategoryInput{Name: "Hampers"})
	require.NoError(t, err)
	product, err := svc.CreateProduct(ctx, ProductInput{Name: "Deluxe", CategoryID: &category.ID})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(ctx, category.ID))

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Nil(t, reloaded.CategoryID)
}

func TestDeleteVendorBlockedByOrders(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newCatalogService(t, db)
	ctx := context.Background()

	vendor, err := svc.CreateVendor(ctx, VendorInput{Name: "Bloom & Co"})
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.VendorOrder{
		ID:          uuid.New(),
		InvoiceID:   uuid.New(),
		VendorID:    vendor.ID,
		Description: "200 rose stems",
	}).Error)

	err = svc.DeleteVendor(ctx, vendor.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}
