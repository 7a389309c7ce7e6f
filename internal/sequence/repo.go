package sequence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/giftflowhq/giftflow-backend/pkg/db/models"
)

// Repository hands out the next counter value for a (prefix, year) scope.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	NextValue(ctx context.Context, prefix string, year int) (int, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a sequence repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

// NextValue reads, allocates and advances the counter row. Callers must invoke
// it inside the same transaction that persists the numbered document so a
// rollback releases the number.
func (r *repositoryImpl) NextValue(ctx context.Context, prefix string, year int) (int, error) {
	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var seq models.DocumentSequence
	err := query.Where("prefix = ? AND year = ?", prefix, year).First(&seq).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		seq = models.DocumentSequence{Prefix: prefix, Year: year, NextValue: 1}
		if err := r.db.WithContext(ctx).Create(&seq).Error; err != nil {
			return 0, err
		}
	case err != nil:
		return 0, err
	}

	allocated := seq.NextValue
	if err := r.db.WithContext(ctx).
		Model(&models.DocumentSequence{}).
		Where("prefix = ? AND year = ?", prefix, year).
		UpdateColumn("next_value", allocated+1).Error; err != nil {
		return 0, err
	}
	return allocated, nil
}
