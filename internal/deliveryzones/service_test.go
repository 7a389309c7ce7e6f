package deliveryzones

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/giftflowhq/giftflow-backend/pkg/errors"
)

func setupZonesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`CREATE TABLE IF NOT EXISTS delivery_zones (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  fee NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`).Error)
	return db
}

func TestZoneLifecycle(t *testing.T) {
	db := setupZonesTestDB(t)
	svc, err := NewService(db)
	require.NoError(t, err)
	ctx := context.Background()

	zone, err := svc.Create(ctx, ZoneInput{Name: "Colombo 7", Fee: 350})
	require.NoError(t, err)
	assert.Equal(t, "350", zone.Fee.String())

	updated, err := svc.Update(ctx, zone.ID, ZoneInput{Name: "Colombo 07", Fee: 400})
	require.NoError(t, err)
	assert.Equal(t, "Colombo 07", updated.Name)

	zones, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, zones, 1)

	require.NoError(t, svc.Delete(ctx, zone.ID))
	err = svc.Delete(ctx, zone.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestDuplicateZoneNameConflicts(t *testing.T) {
	db := setupZonesTestDB(t)
	svc, err := NewService(db)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.Create(ctx, ZoneInput{Name: "Kandy", Fee: 800})
	require.NoError(t, err)

	_, err = svc.Create(ctx, ZoneInput{Name: "Kandy", Fee: 900})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestUpdateMissingZone(t *testing.T) {
	db := setupZonesTestDB(t)
	svc, err := NewService(db)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), uuid.New(), ZoneInput{Name: "Galle", Fee: 600})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
