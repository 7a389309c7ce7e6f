package invoices

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/giftflowhq/giftflow-backend/internal/sequence"
	"github.com/giftflowhq/giftflow-backend/pkg/config"
	"github.com/giftflowhq/giftflow-backend/pkg/db/models"
	"github.com/giftflowhq/giftflow-backend/pkg/enums"
	pkgerrors "github.com/giftflowhq/giftflow-backend/pkg/errors"
)

func setupInvoicesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS customers (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  whatsapp TEXT,
  email TEXT,
  country TEXT,
  notes TEXT,
  tags TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS invoices (
  id TEXT PRIMARY KEY,
  invoice_number TEXT NOT NULL UNIQUE,
  customer_id TEXT NOT NULL,
  recipient_id TEXT,
  delivery_zone_id TEXT,
  status TEXT NOT NULL DEFAULT 'pending',
  order_status TEXT NOT NULL DEFAULT 'received',
  subtotal NUMERIC NOT NULL DEFAULT 0,
  discount NUMERIC NOT NULL DEFAULT 0,
  delivery_fee NUMERIC NOT NULL DEFAULT 0,
  total NUMERIC NOT NULL DEFAULT 0,
  total_cost NUMERIC NOT NULL DEFAULT 0,
  total_packaging_cost NUMERIC NOT NULL DEFAULT 0,
  amount_paid NUMERIC NOT NULL DEFAULT 0,
  profit_margin NUMERIC NOT NULL DEFAULT 0,
  markup_percentage NUMERIC NOT NULL DEFAULT 0,
  gift_message TEXT,
  notes TEXT,
  paid_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS invoice_packages (
  id TEXT PRIMARY KEY,
  invoice_id TEXT NOT NULL,
  name TEXT NOT NULL,
  package_price NUMERIC NOT NULL DEFAULT 0,
  packaging_cost NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS invoice_items (
  id TEXT PRIMARY KEY,
  invoice_id TEXT NOT NULL,
  package_id TEXT,
  description TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  unit_price NUMERIC NOT NULL DEFAULT 0,
  cost_price NUMERIC NOT NULL DEFAULT 0,
  total NUMERIC NOT NULL DEFAULT 0,
  product_id TEXT,
  category_id TEXT,
  vendor_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS payments (
  id TEXT PRIMARY KEY,
  invoice_id TEXT NOT NULL,
  amount NUMERIC NOT NULL,
  method TEXT NOT NULL DEFAULT 'cash',
  notes TEXT,
  received_at DATETIME NOT NULL,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS receipts (
  id TEXT PRIMARY KEY,
  receipt_number TEXT NOT NULL UNIQUE,
  invoice_id TEXT NOT NULL UNIQUE,
  amount NUMERIC NOT NULL,
  method TEXT NOT NULL DEFAULT 'cash',
  notes TEXT,
  issued_at DATETIME NOT NULL,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS document_sequences (
  prefix TEXT NOT NULL,
  year INTEGER NOT NULL,
  next_value INTEGER NOT NULL DEFAULT 1,
  PRIMARY KEY (prefix, year)
);`,
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

type testTxRunner struct {
	db *gorm.DB
}

func (r *testTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func seedCustomer(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	customer := models.Customer{ID: uuid.New(), Name: "Anika Perera"}
	require.NoError(t, db.Create(&customer).Error)
	return customer.ID
}

func newInvoiceService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	seqSvc, err := sequence.NewService(sequence.NewRepository(db), config.DocumentsConfig{
		InvoicePrefix:  "INV",
		ReceiptPrefix:  "RCP",
		CurrencySymbol: "Rs.",
	})
	require.NoError(t, err)

	svc, err := NewService(NewRepository(db), seqSvc, &testTxRunner{db: db})
	require.NoError(t, err)
	return svc
}

func scenarioAInput(customerID uuid.UUID) CreateInvoiceInput {
	return CreateInvoiceInput{
		CustomerID:  customerID,
		DeliveryFee: 300,
		Packages: []PackageInput{
			{
				PackageName:   "Deluxe Hamper",
				PackagePrice:  10000,
				PackagingCost: 500,
				Items: []ItemInput{
					{Description: "Chocolate box", Quantity: 2, UnitPrice: 3000, CostPrice: 1000},
				},
			},
		},
	}
}

func TestCreatePersistsAggregateWithTotals(t *testing.T) {
	db := setupInvoicesTestDB(t)
	svc := newInvoiceService(t, db)
	customerID := seedCustomer(t, db)

	created, err := svc.Create(context.Background(), scenarioAInput(customerID))
	require.NoError(t, err)
	assert.Regexp(t, `^INV-\d{4}-0001$`, created.InvoiceNumber)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.InvoiceStatusPending, got.Status)
	assert.Equal(t, enums.OrderStatusReceived, got.OrderStatus)
	assert.Equal(t, "10000", got.Subtotal.String())
	assert.Equal(t, "2500", got.TotalCost.String())
	assert.Equal(t, "10300", got.Total.String())
	assert.Equal(t, "72.82", got.ProfitMargin.StringFixed(2))
	assert.Equal(t, "300.00", got.MarkupPercentage.StringFixed(2))
	require.Len(t, got.Packages, 1)
	require.Len(t, got.Packages[0].Items, 1)
	assert.Equal(t, "6000", got.Packages[0].Items[0].Total.String())
	assert.Empty(t, got.Items, "package invoices carry no flat items")
}

func TestCreateLegacyFlatItems(t *testing.T) {
	db := setupInvoicesTestDB(t)
	svc := newInvoiceService(t, db)
	customerID := seedCustomer(t, db)

	created, err := svc.Create(context.Background(), CreateInvoiceInput{
		CustomerID: customerID,
		Items: []ItemInput{
			{Description: "Mug", Quantity: 3, UnitPrice: 500, CostPrice: 200},
		},
	})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "1500", got.Subtotal.String())
	assert.Empty(t, got.Packages)
	require.Len(t, got.Items, 1)
	assert.Nil(t, got.Items[0].PackageID)
}

func TestCreateEmptyDraftAllowed(t *testing.T) {
	db := setupInvoicesTestDB(t)
	svc := newInvoiceService(t, db)
	customerID := seedCustomer(t, db)

	created, err := svc.Create(context.Background(), CreateInvoiceInput{CustomerID: customerID})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, got.Subtotal.IsZero())
	assert.True(t, got.Total.IsZero())
	assert.Equal(t, enums.InvoiceStatusPending, got.Status)
}

func TestCreateUnknownCustomer(t *testing.T) {
	db := setupInvoicesTestDB(t)
	svc := newInvoiceService(t, db)

	_, err := svc.Create(context.Background(), CreateInvoiceInput{CustomerID: uuid.New()})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestCreateNumbersAreSequential(t *testing.T) {
	db := setupInvoicesTestDB(t)
	svc := newInvoiceService(t, db)
	customerID := seedCustomer(t, db)
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateInvoiceInput{CustomerID: customerID})
	require.NoError(t, err)
	second, err := svc.Create(ctx, CreateInvoiceInput{CustomerID: customerID})
	require.NoError(t, err)

	year := time.Now().UTC().Year()
	assert.Equal(t, fmt.Sprintf("INV-%d-0001", year), first.InvoiceNumber)
	assert.Equal(t, fmt.Sprintf("INV-%d-0002", year), second.InvoiceNumber)
}

func TestUpdateReplacesLinesAndRecomputes(t *testing.T) {
	db := setupInvoicesTestDB(t)
	svc := newInvoiceService(t, db)
	customerID := seedCustomer(t, db)
	ctx := context.Background()

	created, err := svc.Create(ctx, scenarioAInput(customerID))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, UpdateInvoiceInput{
		Packages: []PackageInput{
			{
				PackageName:  "Slim Hamper",
				PackagePrice: 5000,
				Items: []ItemInput{
					{Description: "Soap set", Quantity: 1, UnitPrice: 1200, CostPrice: 400},
				},
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "5000", updated.Subtotal.String())
	assert.Equal(t, "400", updated.TotalCost.String())
	require.Len(t, updated.Packages, 1)
	assert.Equal(t, "Slim Hamper", updated.Packages[0].Name)

	var packageCount, itemCount int64
	require.NoError(t, db.Model(&models.InvoicePackage{}).Where("invoice_id = ?", created.ID).Count(&packageCount).Error)
	require.NoError(t, db.Model(&models.InvoiceItem{}).Where("invoice_id = ?", created.ID).Count(&itemCount).Error)
	assert.EqualValues(t, 1, packageCount)
	assert.EqualValues(t, 1, itemCount)
}

func TestUpdateRejectsTotalBelowAmountPaid(t *testing.T) {
	db := setupInvoicesTestDB(t)
	svc := newInvoiceService(t, db)
	customerID := seedCustomer(t, db)
	ctx := context.Background()

	created, err := svc.Create(ctx, scenarioAInput(customerID))
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Invoice{}).
		Where("id = ?", created.ID).
		Updates(map[string]any{"amount_paid": 8000, "status": "partial"}).Error)

	_, err = svc.Update(ctx, created.ID, UpdateInvoiceInput{
		Packages: []PackageInput{{PackageName: "Tiny", PackagePrice: 1000}},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}

func TestCancelOnlyFromPendingOrPartial(t *testing.T) {
	db := setupInvoicesTestDB(t)
	svc := newInvoiceService(t, db)
	customerID := seedCustomer(t, db)
	ctx := context.Background()

	created, err := svc.Create(ctx, scenarioAInput(customerID))
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.InvoiceStatusCancelled, cancelled.Status)

	_, err = svc.Cancel(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())

	paid, err := svc.Create(ctx, scenarioAInput(customerID))
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Invoice{}).
		Where("id = ?", paid.ID).
		Updates(map[string]any{"status": "paid", "amount_paid": 10300}).Error)

	_, err = svc.Cancel(ctx, paid.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}

func TestAdvanceOrderStatusForwardOnly(t *testing.T) {
	db := setupInvoicesTestDB(t)
	svc := newInvoiceService(t, db)
	customerID := seedCustomer(t, db)
	ctx := context.Background()

	created, err := svc.Create(ctx, scenarioAInput(customerID))
	require.NoError(t, err)

	got, err := svc.AdvanceOrderStatus(ctx, created.ID, enums.OrderStatusDispatched)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusDispatched, got.OrderStatus)

	_, err = svc.AdvanceOrderStatus(ctx, created.ID, enums.OrderStatusProcessing)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}

func TestDeleteInvoice(t *testing.T) {
	db := setupInvoicesTestDB(t)
	svc := newInvoiceService(t, db)
	customerID := seedCustomer(t, db)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInvoiceInput{CustomerID: customerID})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	err = svc.Delete(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListFiltersByStatus(t *testing.T) {
	db := setupInvoicesTestDB(t)
	svc := newInvoiceService(t, db)
	customerID := seedCustomer(t, db)
	ctx := context.Background()

	first, err := svc.Create(ctx, scenarioAInput(customerID))
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInvoiceInput{CustomerID: customerID})
	require.NoError(t, err)
	_, err = svc.Cancel(ctx, first.ID)
	require.NoError(t, err)

	status := enums.InvoiceStatusCancelled
	result, err := svc.List(ctx, ListParams{Status: &status})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, first.ID, result.Items[0].ID)
}

func TestUpdateClearsRecipientOnExplicitNull(t *testing.T) {
	db := setupInvoicesTestDB(t)
	svc := newInvoiceService(t, db)
	customerID := seedCustomer(t, db)
	ctx := context.Background()

	recipientID := uuid.New()
	input := scenarioAInput(customerID)
	input.RecipientID = &recipientID
	created, err := svc.Create(ctx, input)
	require.NoError(t, err)
	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.RecipientID)

	// Absent field keeps the association.
	var update UpdateInvoiceInput
	require.NoError(t, json.Unmarshal([]byte(`{}`), &update))
	updated, err := svc.Update(ctx, created.ID, update)
	require.NoError(t, err)
	require.NotNil(t, updated.RecipientID)
	assert.Equal(t, recipientID, *updated.RecipientID)

	// Explicit null clears it.
	require.NoError(t, json.Unmarshal([]byte(`{"recipient_id": null}`), &update))
	updated, err = svc.Update(ctx, created.ID, update)
	require.NoError(t, err)
	assert.Nil(t, updated.RecipientID)
}
