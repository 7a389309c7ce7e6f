package reminders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/giftflowhq/giftflow-backend/pkg/db/models"
)

// Repository exposes the persistence helpers the reminder pass needs.
type Repository interface {
	ListRecurringDates(ctx context.Context) ([]models.ImportantDate, error)
	FindCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	ActiveUserIDs(ctx context.Context) ([]uuid.UUID, error)
	StampReminderSent(ctx context.Context, dateID uuid.UUID, now time.Time) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a reminders repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) ListRecurringDates(ctx context.Context) ([]models.ImportantDate, error) {
	var dates []models.ImportantDate
	err := r.db.WithContext(ctx).
		Where("recurring = ?", true).
		Order("event_date ASC").
		Find(&dates).Error
	return dates, err
}

func (r *repositoryImpl) FindCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repositoryImpl) ActiveUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("is_active = ?", true).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *repositoryImpl) StampReminderSent(ctx context.Context, dateID uuid.UUID, now time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.ImportantDate{}).
		Where("id = ?", dateID).
		UpdateColumn("reminder_sent_at", now).Error
}
