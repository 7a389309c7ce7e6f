package settings

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/giftflowhq/giftflow-backend/pkg/db/models"
	pkgerrors "github.com/giftflowhq/giftflow-backend/pkg/errors"
)

// Known setting keys. Unknown keys are rejected so typos do not silently
// create orphan rows.
const (
	KeyInvoicePrefix  = "invoice_prefix"
	KeyReceiptPrefix  = "receipt_prefix"
	KeyCurrencySymbol = "currency_symbol"
	KeyBusinessName   = "business_name"
	KeyBusinessPhone  = "business_phone"
	KeyBusinessEmail  = "business_email"
)

var knownKeys = map[string]struct{}{
	KeyInvoicePrefix:  {},
	KeyReceiptPrefix:  {},
	KeyCurrencySymbol: {},
	KeyBusinessName:   {},
	KeyBusinessPhone:  {},
	KeyBusinessEmail:  {},
}

// Service exposes the key-value settings store.
type Service interface {
	GetAll(ctx context.Context) (map[string]string, error)
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	SetAll(ctx context.Context, values map[string]string) error
}

type service struct {
	db *gorm.DB
}

// NewService wires the settings store.
func NewService(db *gorm.DB) (Service, error) {
	if db == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "database required")
	}
	return &service{db: db}, nil
}

func (s *service) GetAll(ctx context.Context) (map[string]string, error) {
	var rows []models.Setting
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load settings")
	}

	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return values, nil
}

func (s *service) Get(ctx context.Context, key string) (string, error) {
	if _, ok := knownKeys[key]; !ok {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown setting key")
	}

	var row models.Setting
	if err := s.db.WithContext(ctx).First(&row, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgerrors.New(pkgerrors.CodeNotFound, "setting not found")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load setting")
	}
	return row.Value, nil
}

func (s *service) Set(ctx context.Context, key, value string) error {
	if _, ok := knownKeys[key]; !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown setting key")
	}

	row := models.Setting{Key: key, Value: value}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&row).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save setting")
	}
	return nil
}

// SetAll writes every entry atomically; one bad key rejects the batch.
func (s *service) SetAll(ctx context.Context, values map[string]string) error {
	for key := range values {
		if _, ok := knownKeys[key]; !ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown setting key")
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for key, value := range values {
			row := models.Setting{Key: key, Value: value}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value"}),
			}).Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save settings")
	}
	return nil
}
