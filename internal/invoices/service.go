package invoices

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/giftflowhq/giftflow-backend/internal/sequence"
	"github.com/giftflowhq/giftflow-backend/pkg/db/models"
	"github.com/giftflowhq/giftflow-backend/pkg/enums"
	pkgerrors "github.com/giftflowhq/giftflow-backend/pkg/errors"
	"github.com/giftflowhq/giftflow-backend/pkg/money"
	"github.com/giftflowhq/giftflow-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines invoice aggregate operations.
type Service interface {
	Create(ctx context.Context, input CreateInvoiceInput) (*CreatedInvoice, error)
	Get(ctx context.Context, id uuid.UUID) (*InvoiceDTO, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInvoiceInput) (*InvoiceDTO, error)
	Cancel(ctx context.Context, id uuid.UUID) (*InvoiceDTO, error)
	AdvanceOrderStatus(ctx context.Context, id uuid.UUID, next enums.OrderStatus) (*InvoiceDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
	seq  sequence.Service
	tx   txRunner
	now  func() time.Time
}

// NewService wires invoice dependencies.
func NewService(repo Repository, seq sequence.Service, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "invoices repository required")
	}
	if seq == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "sequence service required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction runner required")
	}
	return &service{repo: repo, seq: seq, tx: tx, now: func() time.Time { return time.Now().UTC() }}, nil
}

// Create builds the whole aggregate in one transaction: number allocation,
// invoice row, packages and items all commit or roll back together.
func (s *service) Create(ctx context.Context, input CreateInvoiceInput) (*CreatedInvoice, error) {
	exists, err := s.repo.CustomerExists(ctx, input.CustomerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check customer")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
	}

	now := s.now()
	totals := ComputeTotals(input.Packages, input.Items, money.FromFloat(input.Discount), money.FromFloat(input.DeliveryFee))

	invoice := &models.Invoice{
		ID:                 uuid.New(),
		CustomerID:         input.CustomerID,
		RecipientID:        input.RecipientID,
		DeliveryZoneID:     input.DeliveryZoneID,
		Status:             enums.InvoiceStatusPending,
		OrderStatus:        enums.OrderStatusReceived,
		Subtotal:           totals.Subtotal,
		Discount:           money.Round(money.FromFloat(input.Discount)),
		DeliveryFee:        money.Round(money.FromFloat(input.DeliveryFee)),
		Total:              totals.Total,
		TotalCost:          totals.TotalCost,
		TotalPackagingCost: totals.TotalPackagingCost,
		AmountPaid:         money.Zero(),
		ProfitMargin:       totals.ProfitMargin,
		MarkupPercentage:   totals.MarkupPercentage,
		GiftMessage:        input.GiftMessage,
		Notes:              input.Notes,
	}
	invoice.Packages, invoice.Items = buildLines(invoice.ID, input.Packages, input.Items)

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		number, err := s.seq.Next(ctx, tx, enums.DocumentKindInvoice, now)
		if err != nil {
			return err
		}
		invoice.InvoiceNumber = number
		return s.repo.WithTx(tx).Create(ctx, invoice)
	})
	if err != nil {
		if coded := pkgerrors.As(err); coded != nil {
			return nil, coded
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create invoice")
	}

	return &CreatedInvoice{ID: invoice.ID, InvoiceNumber: invoice.InvoiceNumber}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*InvoiceDTO, error) {
	invoice, err := s.findInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(invoice), nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	query := listInvoicesParams{
		CustomerID: params.CustomerID,
		Limit:      params.Limit,
	}
	if params.Status != nil {
		if !params.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid invoice status filter")
		}
		value := params.Status.String()
		query.Status = &value
	}
	if params.OrderStatus != nil {
		if !params.OrderStatus.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status filter")
		}
		value := params.OrderStatus.String()
		query.OrderStatus = &value
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list invoices")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &ListResult{Items: rows, Cursor: cursor}, nil
}

// Update replaces the invoice's lines and re-runs the rollup in one
// transaction. Cancelled invoices are immutable; the new total may not fall
// below what has already been paid.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInvoiceInput) (*InvoiceDTO, error) {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		invoice, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if invoice.Status == enums.InvoiceStatusCancelled {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cancelled invoices cannot be edited")
		}

		discount := invoice.Discount
		if input.Discount != nil {
			discount = money.Round(money.FromFloat(*input.Discount))
		}
		deliveryFee := invoice.DeliveryFee
		if input.DeliveryFee != nil {
			deliveryFee = money.Round(money.FromFloat(*input.DeliveryFee))
		}

		replaceLines := input.Packages != nil || input.Items != nil
		if replaceLines {
			totals := ComputeTotals(input.Packages, input.Items, discount, deliveryFee)
			if totals.Total.LessThan(invoice.AmountPaid) {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "invoice total cannot fall below the amount already paid")
			}
			invoice.Subtotal = totals.Subtotal
			invoice.TotalCost = totals.TotalCost
			invoice.TotalPackagingCost = totals.TotalPackagingCost
			invoice.Total = totals.Total
			invoice.ProfitMargin = totals.ProfitMargin
			invoice.MarkupPercentage = totals.MarkupPercentage

			packages, items := buildLines(invoice.ID, input.Packages, input.Items)
			if err := repo.ReplaceLines(ctx, invoice.ID, packages, items); err != nil {
				return err
			}
		} else if input.Discount != nil || input.DeliveryFee != nil {
			total := invoice.Subtotal.Sub(discount).Add(deliveryFee)
			if total.LessThan(invoice.AmountPaid) {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "invoice total cannot fall below the amount already paid")
			}
			profit := total.Sub(invoice.TotalCost).Sub(deliveryFee)
			invoice.Total = money.Round(total)
			invoice.ProfitMargin = money.Ratio(profit, total)
			invoice.MarkupPercentage = money.Ratio(profit, invoice.TotalCost)
		}

		invoice.Discount = discount
		invoice.DeliveryFee = deliveryFee
		// An explicit null clears the association; an absent field keeps it.
		if input.RecipientID.Valid {
			invoice.RecipientID = input.RecipientID.Value
		}
		if input.DeliveryZoneID.Valid {
			invoice.DeliveryZoneID = input.DeliveryZoneID.Value
		}
		if input.GiftMessage != nil {
			invoice.GiftMessage = input.GiftMessage
		}
		if input.Notes != nil {
			invoice.Notes = input.Notes
		}

		invoice.Status = StatusFor(invoice.Status, invoice.AmountPaid, invoice.Total)
		if invoice.Status != enums.InvoiceStatusPaid {
			invoice.PaidAt = nil
		}

		return repo.Save(ctx, invoice)
	})
	if err != nil {
		return nil, s.translate(err, "update invoice")
	}
	return s.Get(ctx, id)
}

// Cancel marks the invoice cancelled. Paid invoices cannot be cancelled.
func (s *service) Cancel(ctx context.Context, id uuid.UUID) (*InvoiceDTO, error) {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		invoice, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		switch invoice.Status {
		case enums.InvoiceStatusPending, enums.InvoiceStatusPartial:
			invoice.Status = enums.InvoiceStatusCancelled
			return repo.Save(ctx, invoice)
		case enums.InvoiceStatusCancelled:
			return pkgerrors.New(pkgerrors.CodeStateConflict, "invoice is already cancelled")
		default:
			return pkgerrors.New(pkgerrors.CodeStateConflict, "paid invoices cannot be cancelled")
		}
	})
	if err != nil {
		return nil, s.translate(err, "cancel invoice")
	}
	return s.Get(ctx, id)
}

// AdvanceOrderStatus moves fulfillment forward; the progression never reverses.
func (s *service) AdvanceOrderStatus(ctx context.Context, id uuid.UUID, next enums.OrderStatus) (*InvoiceDTO, error) {
	if !next.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		invoice, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if invoice.Status == enums.InvoiceStatusCancelled {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cancelled invoices cannot progress")
		}
		if !invoice.OrderStatus.CanAdvanceTo(next) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order status can only move forward")
		}
		invoice.OrderStatus = next
		return repo.Save(ctx, invoice)
	})
	if err != nil {
		return nil, s.translate(err, "advance order status")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete invoice")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
	}
	return nil
}

func (s *service) findInvoice(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	invoice, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load invoice")
	}
	return invoice, nil
}

func (s *service) translate(err error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
	}
	if coded := pkgerrors.As(err); coded != nil {
		return coded
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}

// buildLines materializes package and item models with explicit ids so the
// whole aggregate can be inserted in one create.
func buildLines(invoiceID uuid.UUID, packages []PackageInput, items []ItemInput) ([]models.InvoicePackage, []models.InvoiceItem) {
	builtPackages := make([]models.InvoicePackage, 0, len(packages))
	for _, pkg := range packages {
		row := models.InvoicePackage{
			ID:            uuid.New(),
			InvoiceID:     invoiceID,
			Name:          pkg.PackageName,
			PackagePrice:  money.Round(money.FromFloat(pkg.PackagePrice)),
			PackagingCost: money.Round(money.FromFloat(pkg.PackagingCost)),
		}
		for _, item := range pkg.Items {
			row.Items = append(row.Items, buildItem(invoiceID, &row.ID, item))
		}
		builtPackages = append(builtPackages, row)
	}

	var flatItems []models.InvoiceItem
	if len(packages) == 0 {
		flatItems = make([]models.InvoiceItem, 0, len(items))
		for _, item := range items {
			flatItems = append(flatItems, buildItem(invoiceID, nil, item))
		}
	}
	return builtPackages, flatItems
}

func buildItem(invoiceID uuid.UUID, packageID *uuid.UUID, item ItemInput) models.InvoiceItem {
	unitPrice := money.Round(money.FromFloat(item.UnitPrice))
	return models.InvoiceItem{
		ID:          uuid.New(),
		InvoiceID:   invoiceID,
		PackageID:   packageID,
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   unitPrice,
		CostPrice:   money.Round(money.FromFloat(item.CostPrice)),
		Total:       money.MulInt(unitPrice, item.Quantity),
		ProductID:   item.ProductID,
		CategoryID:  item.CategoryID,
		VendorID:    item.VendorID,
	}
}
