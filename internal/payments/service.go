package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/giftflowhq/giftflow-backend/internal/invoices"
	"github.com/giftflowhq/giftflow-backend/internal/sequence"
	"github.com/giftflowhq/giftflow-backend/pkg/config"
	"github.com/giftflowhq/giftflow-backend/pkg/db/models"
	"github.com/giftflowhq/giftflow-backend/pkg/enums"
	pkgerrors "github.com/giftflowhq/giftflow-backend/pkg/errors"
	"github.com/giftflowhq/giftflow-backend/pkg/money"
)

// autoReceiptNotes marks receipts issued by the accumulator itself.
const autoReceiptNotes = "Auto-generated on full payment"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// SymbolSource resolves the display currency symbol, usually the settings
// store. A missing key falls back to the configured symbol.
type SymbolSource interface {
	Get(ctx context.Context, key string) (string, error)
}

const currencySymbolKey = "currency_symbol"

// Service is the payment accumulator: every mutation runs inside a transaction
// holding a row lock on the invoice, so paid sums never exceed the total and at
// most one receipt exists per invoice.
type Service interface {
	Add(ctx context.Context, input AddPaymentInput) (*AddPaymentResult, error)
	Delete(ctx context.Context, paymentID uuid.UUID) error
	CreateManualReceipt(ctx context.Context, invoiceID uuid.UUID, input CreateReceiptInput) (*ReceiptDTO, error)
	GetReceipt(ctx context.Context, invoiceID uuid.UUID) (*ReceiptDTO, error)
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]models.Payment, error)
}

type service struct {
	repo     Repository
	invoices invoices.Repository
	seq      sequence.Service
	tx       txRunner
	cfg      config.DocumentsConfig
	settings SymbolSource
	now      func() time.Time
}

// NewService wires payment dependencies.
func NewService(repo Repository, invoiceRepo invoices.Repository, seq sequence.Service, tx txRunner, cfg config.DocumentsConfig) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "payments repository required")
	}
	if invoiceRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "invoices repository required")
	}
	if seq == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "sequence service required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction runner required")
	}
	return &service{
		repo:     repo,
		invoices: invoiceRepo,
		seq:      seq,
		tx:       tx,
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// NewServiceWithSettings additionally resolves the currency symbol from the
// settings store when present.
func NewServiceWithSettings(repo Repository, invoiceRepo invoices.Repository, seq sequence.Service, tx txRunner, cfg config.DocumentsConfig, settings SymbolSource) (Service, error) {
	svc, err := NewService(repo, invoiceRepo, seq, tx, cfg)
	if err != nil {
		return nil, err
	}
	svc.(*service).settings = settings
	return svc, nil
}

func (s *service) currencySymbol(ctx context.Context) string {
	if s.settings != nil {
		value, err := s.settings.Get(ctx, currencySymbolKey)
		if err == nil {
			if symbol := strings.TrimSpace(value); symbol != "" {
				return symbol
			}
		}
	}
	return s.cfg.CurrencySymbol
}

func (s *service) Add(ctx context.Context, input AddPaymentInput) (*AddPaymentResult, error) {
	amount := money.Round(money.FromFloat(input.Amount))
	if !money.IsPositive(amount) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment amount must be positive")
	}
	method, err := enums.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method")
	}

	var result *AddPaymentResult
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		invoice, err := s.invoices.WithTx(tx).FindByIDForUpdate(ctx, input.InvoiceID)
		if err != nil {
			return err
		}
		if invoice.Status == enums.InvoiceStatusCancelled {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cannot record a payment on a cancelled invoice")
		}

		balance := invoice.Total.Sub(invoice.AmountPaid)
		newPaid := invoice.AmountPaid.Add(amount)
		if newPaid.GreaterThan(invoice.Total) {
			msg := fmt.Sprintf("Payment exceeds balance. Maximum payment: %s", money.Format(s.currencySymbol(ctx), balance))
			return pkgerrors.New(pkgerrors.CodeValidation, msg)
		}

		now := s.now()
		repo := s.repo.WithTx(tx)
		payment := &models.Payment{
			ID:         uuid.New(),
			InvoiceID:  invoice.ID,
			Amount:     amount,
			Method:     method,
			Notes:      input.Notes,
			ReceivedAt: now,
		}
		if err := repo.Create(ctx, payment); err != nil {
			return err
		}

		invoice.AmountPaid = newPaid
		invoice.Status = invoices.StatusFor(invoice.Status, newPaid, invoice.Total)

		var receiptNumber *string
		if invoice.Status == enums.InvoiceStatusPaid {
			invoice.PaidAt = &now
			number, err := s.ensureReceipt(ctx, tx, repo, invoice, method, nil, now)
			if err != nil {
				return err
			}
			receiptNumber = number
		}

		if err := s.invoices.WithTx(tx).Save(ctx, invoice); err != nil {
			return err
		}

		result = &AddPaymentResult{
			ID:            payment.ID,
			AmountPaid:    invoice.AmountPaid,
			Balance:       invoice.Total.Sub(invoice.AmountPaid),
			IsFullyPaid:   invoice.Status == enums.InvoiceStatusPaid,
			ReceiptNumber: receiptNumber,
		}
		return nil
	})
	if err != nil {
		return nil, s.translate(err, "add payment")
	}
	return result, nil
}

// Delete removes a payment and re-derives the invoice's paid amount and status.
// A fully paid invoice reverts once its paid sum drops below the total.
func (s *service) Delete(ctx context.Context, paymentID uuid.UUID) error {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		payment, err := repo.FindByID(ctx, paymentID)
		if err != nil {
			return err
		}

		invoice, err := s.invoices.WithTx(tx).FindByIDForUpdate(ctx, payment.InvoiceID)
		if err != nil {
			return err
		}

		if err := repo.Delete(ctx, payment.ID); err != nil {
			return err
		}

		newPaid := invoice.AmountPaid.Sub(payment.Amount)
		if money.IsNegative(newPaid) {
			newPaid = money.Zero()
		}
		invoice.AmountPaid = newPaid
		invoice.Status = invoices.StatusFor(invoice.Status, newPaid, invoice.Total)
		if invoice.Status != enums.InvoiceStatusPaid {
			invoice.PaidAt = nil
		}
		return s.invoices.WithTx(tx).Save(ctx, invoice)
	})
	if err != nil {
		return s.translate(err, "delete payment")
	}
	return nil
}

// CreateManualReceipt settles the invoice in full and issues its receipt.
func (s *service) CreateManualReceipt(ctx context.Context, invoiceID uuid.UUID, input CreateReceiptInput) (*ReceiptDTO, error) {
	method, err := enums.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method")
	}

	var dto *ReceiptDTO
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		invoice, err := s.invoices.WithTx(tx).FindByIDForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if invoice.Status == enums.InvoiceStatusCancelled {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cannot issue a receipt for a cancelled invoice")
		}

		repo := s.repo.WithTx(tx)
		exists, err := repo.ReceiptExists(ctx, invoice.ID)
		if err != nil {
			return err
		}
		if exists {
			return pkgerrors.New(pkgerrors.CodeConflict, "a receipt already exists for this invoice")
		}

		now := s.now()
		invoice.AmountPaid = invoice.Total
		invoice.Status = enums.InvoiceStatusPaid
		invoice.PaidAt = &now

		receipt, err := s.issueReceipt(ctx, tx, repo, invoice, method, input.Notes, now)
		if err != nil {
			return err
		}
		if err := s.invoices.WithTx(tx).Save(ctx, invoice); err != nil {
			return err
		}

		dto = receiptDTO(receipt)
		return nil
	})
	if err != nil {
		return nil, s.translate(err, "create receipt")
	}
	return dto, nil
}

func (s *service) GetReceipt(ctx context.Context, invoiceID uuid.UUID) (*ReceiptDTO, error) {
	receipt, err := s.repo.FindReceiptByInvoice(ctx, invoiceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "receipt not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load receipt")
	}
	return receiptDTO(receipt), nil
}

func (s *service) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]models.Payment, error) {
	rows, err := s.repo.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}
	return rows, nil
}

// ensureReceipt issues the auto receipt unless one already exists.
func (s *service) ensureReceipt(ctx context.Context, tx *gorm.DB, repo Repository, invoice *models.Invoice, method enums.PaymentMethod, notes *string, now time.Time) (*string, error) {
	exists, err := repo.ReceiptExists(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nil
	}

	auto := autoReceiptNotes
	if notes == nil {
		notes = &auto
	}
	receipt, err := s.issueReceipt(ctx, tx, repo, invoice, method, notes, now)
	if err != nil {
		return nil, err
	}
	return &receipt.ReceiptNumber, nil
}

func (s *service) issueReceipt(ctx context.Context, tx *gorm.DB, repo Repository, invoice *models.Invoice, method enums.PaymentMethod, notes *string, now time.Time) (*models.Receipt, error) {
	number, err := s.seq.Next(ctx, tx, enums.DocumentKindReceipt, now)
	if err != nil {
		return nil, err
	}

	receipt := &models.Receipt{
		ID:            uuid.New(),
		ReceiptNumber: number,
		InvoiceID:     invoice.ID,
		Amount:        invoice.Total,
		Method:        method,
		Notes:         notes,
		IssuedAt:      now,
	}
	if err := repo.CreateReceipt(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

func (s *service) translate(err error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "not found")
	}
	if coded := pkgerrors.As(err); coded != nil {
		return coded
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}

func receiptDTO(receipt *models.Receipt) *ReceiptDTO {
	return &ReceiptDTO{
		ID:            receipt.ID,
		ReceiptNumber: receipt.ReceiptNumber,
		InvoiceID:     receipt.InvoiceID,
		Amount:        receipt.Amount,
		Method:        receipt.Method.String(),
		Notes:         receipt.Notes,
		IssuedAt:      receipt.IssuedAt,
	}
}
