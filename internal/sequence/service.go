package sequence

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/giftflowhq/giftflow-backend/pkg/config"
	"github.com/giftflowhq/giftflow-backend/pkg/enums"
	pkgerrors "github.com/giftflowhq/giftflow-backend/pkg/errors"
)

// NumberPattern is the canonical shape of every issued document number.
var NumberPattern = regexp.MustCompile(`^[A-Z]+-\d{4}-\d{4}$`)

// Service issues gap-tolerant document numbers like INV-2026-0001.
type Service interface {
	// Next allocates the next number for the document kind. The provided
	// transaction must be the one persisting the document itself.
	Next(ctx context.Context, tx *gorm.DB, kind enums.DocumentKind, now time.Time) (string, error)
}

// PrefixSource looks up a prefix override from the business settings store.
type PrefixSource interface {
	Get(ctx context.Context, key string) (string, error)
}

type service struct {
	repo     Repository
	settings PrefixSource
	cfg      config.DocumentsConfig
}

// NewService wires sequence dependencies.
func NewService(repo Repository, cfg config.DocumentsConfig) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "sequence repository required")
	}
	return &service{repo: repo, cfg: cfg}, nil
}

// NewServiceWithSettings also consults the settings store, letting admins
// change prefixes without a redeploy. Configured defaults remain the
// fallback when no override row exists.
func NewServiceWithSettings(repo Repository, settings PrefixSource, cfg config.DocumentsConfig) (Service, error) {
	svc, err := NewService(repo, cfg)
	if err != nil {
		return nil, err
	}
	svc.(*service).settings = settings
	return svc, nil
}

func (s *service) Next(ctx context.Context, tx *gorm.DB, kind enums.DocumentKind, now time.Time) (string, error) {
	prefix, err := s.prefixFor(ctx, kind)
	if err != nil {
		return "", err
	}

	year := now.UTC().Year()
	value, err := s.repo.WithTx(tx).NextValue(ctx, prefix, year)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "allocate document number")
	}

	return fmt.Sprintf("%s-%d-%04d", prefix, year, value), nil
}

func (s *service) prefixFor(ctx context.Context, kind enums.DocumentKind) (string, error) {
	var key, fallback string
	switch kind {
	case enums.DocumentKindInvoice:
		key, fallback = "invoice_prefix", s.cfg.InvoicePrefix
	case enums.DocumentKindReceipt:
		key, fallback = "receipt_prefix", s.cfg.ReceiptPrefix
	default:
		return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown document kind %q", kind))
	}

	if s.settings != nil {
		if value, err := s.settings.Get(ctx, key); err == nil {
			if override := strings.ToUpper(strings.TrimSpace(value)); override != "" {
				return override, nil
			}
		}
	}
	return fallback, nil
}
