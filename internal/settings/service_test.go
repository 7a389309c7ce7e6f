package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/giftflowhq/giftflow-backend/pkg/errors"
)

func setupSettingsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`CREATE TABLE IF NOT EXISTS settings (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at DATETIME
);`).Error)
	return db
}

func TestSetAndGet(t *testing.T) {
	db := setupSettingsTestDB(t)
	svc, err := NewService(db)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, KeyInvoicePrefix, "INV"))
	require.NoError(t, svc.Set(ctx, KeyInvoicePrefix, "GF"))

	value, err := svc.Get(ctx, KeyInvoicePrefix)
	require.NoError(t, err)
	assert.Equal(t, "GF", value)
}

func TestGetMissingSetting(t *testing.T) {
	db := setupSettingsTestDB(t)
	svc, err := NewService(db)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), KeyCurrencySymbol)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestUnknownKeyRejected(t *testing.T) {
	db := setupSettingsTestDB(t)
	svc, err := NewService(db)
	require.NoError(t, err)
	ctx := context.Background()

	err = svc.Set(ctx, "theme_color", "red")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	err = svc.SetAll(ctx, map[string]string{
		KeyBusinessName: "GiftFlow",
		"theme_color":   "red",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestSetAllAndGetAll(t *testing.T) {
	db := setupSettingsTestDB(t)
	svc, err := NewService(db)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, svc.SetAll(ctx, map[string]string{
		KeyBusinessName:   "GiftFlow",
		KeyCurrencySymbol: "Rs.",
	}))

	values, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "GiftFlow", values[KeyBusinessName])
	assert.Equal(t, "Rs.", values[KeyCurrencySymbol])
}
