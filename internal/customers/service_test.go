package customers

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

func setupCustomersTestDB(t *testing.T) *gorm.DB {
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
		`CREATE TABLE IF NOT EXISTS recipients (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  name TEXT NOT NULL,
  phone TEXT,
  address TEXT,
  relationship TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS important_dates (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  recipient_id TEXT,
  title TEXT NOT NULL,
  event_date TEXT NOT NULL,
  recurring INTEGER NOT NULL DEFAULT 0,
  reminder_days INTEGER NOT NULL DEFAULT 7,
  reminder_sent_at DATETIME,
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
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func newCustomersService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc
}

func TestCreateAndGetCustomer(t *testing.T) {
	db := setupCustomersTestDB(t)
	svc := newCustomersService(t, db)
	ctx := context.Background()

	whatsapp := "+94771234567"
	created, err := svc.Create(ctx, CreateCustomerInput{
		Name:     "Anika Perera",
		Whatsapp: &whatsapp,
		Tags:     []string{"vip", "corporate"},
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anika Perera", got.Name)
	assert.Equal(t, []string{"vip", "corporate"}, got.Tags)
	assert.Empty(t, got.Recipients)
	assert.Empty(t, got.ImportantDates)
}

func TestUpdateCustomerPatchesFields(t *testing.T) {
	db := setupCustomersTestDB(t)
	svc := newCustomersService(t, db)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateCustomerInput{Name: "Original"})
	require.NoError(t, err)

	name := "Renamed"
	country := "LK"
	updated, err := svc.Update(ctx, created.ID, UpdateCustomerInput{Name: &name, Country: &country})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	require.NotNil(t, updated.Country)
	assert.Equal(t, "LK", *updated.Country)
}

func TestDeleteCustomerCascadesDependents(t *testing.T) {
	db := setupCustomersTestDB(t)
	svc := newCustomersService(t, db)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateCustomerInput{Name: "To Delete"})
	require.NoError(t, err)
	_, err = svc.AddRecipient(ctx, created.ID, RecipientInput{Name: "Niece"})
	require.NoError(t, err)
	_, err = svc.AddImportantDate(ctx, created.ID, ImportantDateInput{
		Title:     "Birthday",
		EventDate: "2020-03-15",
		Recurring: true,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	var recipients, dates int64
	require.NoError(t, db.Model(&models.Recipient{}).Where("customer_id = ?", created.ID).Count(&recipients).Error)
	require.NoError(t, db.Model(&models.ImportantDate{}).Where("customer_id = ?", created.ID).Count(&dates).Error)
	assert.Zero(t, recipients)
	assert.Zero(t, dates)

	_, err = svc.Get(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestDeleteCustomerWithInvoicesRejected(t *testing.T) {
	db := setupCustomersTestDB(t)
	svc := newCustomersService(t, db)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateCustomerInput{Name: "Billed"})
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: "INV-2026-0001",
		CustomerID:    created.ID,
	}).Error)

	err = svc.Delete(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestRecipientLifecycle(t *testing.T) {
	db := setupCustomersTestDB(t)
	svc := newCustomersService(t, db)
	ctx := context.Background()

	customer, err := svc.Create(ctx, CreateCustomerInput{Name: "Owner"})
	require.NoError(t, err)

	recipient, err := svc.AddRecipient(ctx, customer.ID, RecipientInput{Name: "Mother"})
	require.NoError(t, err)

	updated, err := svc.UpdateRecipient(ctx, customer.ID, recipient.ID, RecipientInput{Name: "Mum"})
	require.NoError(t, err)
	assert.Equal(t, "Mum", updated.Name)

	require.NoError(t, svc.DeleteRecipient(ctx, customer.ID, recipient.ID))
	err = svc.DeleteRecipient(ctx, customer.ID, recipient.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestRecipientScopedToCustomer(t *testing.T) {
	db := setupCustomersTestDB(t)
	svc := newCustomersService(t, db)
	ctx := context.Background()

	owner, err := svc.Create(ctx, CreateCustomerInput{Name: "Owner"})
	require.NoError(t, err)
	other, err := svc.Create(ctx, CreateCustomerInput{Name: "Other"})
	require.NoError(t, err)

	recipient, err := svc.AddRecipient(ctx, owner.ID, RecipientInput{Name: "Brother"})
	require.NoError(t, err)

	_, err = svc.UpdateRecipient(ctx, other.ID, recipient.ID, RecipientInput{Name: "Hijack"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestImportantDateDefaultsReminderDays(t *testing.T) {
	db := setupCustomersTestDB(t)
	svc := newCustomersService(t, db)
	ctx := context.Background()

	customer, err := svc.Create(ctx, CreateCustomerInput{Name: "Owner"})
	require.NoError(t, err)

	date, err := svc.AddImportantDate(ctx, customer.ID, ImportantDateInput{
		Title:     "Anniversary",
		EventDate: "2021-06-10",
		Recurring: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, date.ReminderDays)
}

func TestImportantDateRejectsBadDate(t *testing.T) {
	db := setupCustomersTestDB(t)
	svc := newCustomersService(t, db)
	ctx := context.Background()

	customer, err := svc.Create(ctx, CreateCustomerInput{Name: "Owner"})
	require.NoError(t, err)

	_, err = svc.AddImportantDate(ctx, customer.ID, ImportantDateInput{
		Title:     "Bad",
		EventDate: "15-03-2020",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUpdateImportantDateResetsReminderGuardOnDateChange(t *testing.T) {
	db := setupCustomersTestDB(t)
	svc := newCustomersService(t, db)
	ctx := context.Background()

	customer, err := svc.Create(ctx, CreateCustomerInput{Name: "Owner"})
	require.NoError(t, err)
	date, err := svc.AddImportantDate(ctx, customer.ID, ImportantDateInput{
		Title:     "Birthday",
		EventDate: "2020-03-15",
		Recurring: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.ImportantDate{}).
		Where("id = ?", date.ID).
		UpdateColumn("reminder_sent_at", "2026-03-08 06:00:00").Error)

	updated, err := svc.UpdateImportantDate(ctx, customer.ID, date.ID, ImportantDateInput{
		Title:     "Birthday",
		EventDate: "2020-04-20",
		Recurring: true,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.ReminderSentAt)
}

func TestListCustomersBySearchAndTag(t *testing.T) {
	db := setupCustomersTestDB(t)
	svc := newCustomersService(t, db)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateCustomerInput{Name: "Anika Perera", Tags: []string{"vip"}})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateCustomerInput{Name: "Bimal Silva"})
	require.NoError(t, err)

	byName, err := svc.List(ctx, ListParams{Search: "Anika"})
	require.NoError(t, err)
	require.Len(t, byName.Items, 1)
	assert.Equal(t, "Anika Perera", byName.Items[0].Name)

	byTag, err := svc.List(ctx, ListParams{Tag: "vip"})
	require.NoError(t, err)
	require.Len(t, byTag.Items, 1)
	assert.Equal(t, "Anika Perera", byTag.Items[0].Name)
}
