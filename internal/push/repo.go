package push

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/giftflowhq/giftflow-backend/pkg/db/models"
)

// Repository exposes persistence helpers for web push subscriptions.
type Repository interface {
	Upsert(ctx context.Context, sub *models.PushSubscription) error
	ListAll(ctx context.Context) ([]models.PushSubscription, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PushSubscription, error)
	DeleteByEndpoint(ctx context.Context, endpoint string) (bool, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a push subscription repository bound to the database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

// Upsert keeps one row per endpoint. Re-subscribing refreshes the keys and
// reassigns the endpoint to the current user.
func (r *repositoryImpl) Upsert(ctx context.Context, sub *models.PushSubscription) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "p256dh", "auth"}),
		}).
		Create(sub).Error
}

func (r *repositoryImpl) ListAll(ctx context.Context) ([]models.PushSubscription, error) {
	var subs []models.PushSubscription
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&subs).Error
	return subs, err
}

func (r *repositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PushSubscription, error) {
	var subs []models.PushSubscription
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&subs).Error
	return subs, err
}

func (r *repositoryImpl) DeleteByEndpoint(ctx context.Context, endpoint string) (bool, error) {
	result := r.db.WithContext(ctx).Where("endpoint = ?", endpoint).Delete(&models.PushSubscription{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repositoryImpl) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.PushSubscription{}, "id = ?", id).Error
}
