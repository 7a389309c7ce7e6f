package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/giftflowhq/giftflow-backend/internal/payments"
	"github.com/giftflowhq/giftflow-backend/pkg/db/models"
	pkgerrors "github.com/giftflowhq/giftflow-backend/pkg/errors"
)

type testPaymentsService struct {
	addFn        func(ctx context.Context, input payments.AddPaymentInput) (*payments.AddPaymentResult, error)
	deleteFn     func(ctx context.Context, paymentID uuid.UUID) error
	manualFn     func(ctx context.Context, invoiceID uuid.UUID, input payments.CreateReceiptInput) (*payments.ReceiptDTO, error)
	getReceiptFn func(ctx context.Context, invoiceID uuid.UUID) (*payments.ReceiptDTO, error)
	listFn       func(ctx context.Context, invoiceID uuid.UUID) ([]models.Payment, error)
}

func (s *testPaymentsService) Add(ctx context.Context, input payments.AddPaymentInput) (*payments.AddPaymentResult, error) {
	if s.addFn != nil {
		return s.addFn(ctx, input)
	}
	return nil, nil
}

func (s *testPaymentsService) Delete(ctx context.Context, paymentID uuid.UUID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, paymentID)
	}
	return nil
}

func (s *testPaymentsService) CreateManualReceipt(ctx context.Context, invoiceID uuid.UUID, input payments.CreateReceiptInput) (*payments.ReceiptDTO, error) {
	if s.manualFn != nil {
		return s.manualFn(ctx, invoiceID, input)
	}
	return nil, nil
}

func (s *testPaymentsService) GetReceipt(ctx context.Context, invoiceID uuid.UUID) (*payments.ReceiptDTO, error) {
	if s.getReceiptFn != nil {
		return s.getReceiptFn(ctx, invoiceID)
	}
	return nil, nil
}

func (s *testPaymentsService) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]models.Payment, error) {
	if s.listFn != nil {
		return s.listFn(ctx, invoiceID)
	}
	return nil, nil
}

func TestAddPaymentCreated(t *testing.T) {
	invoiceID := uuid.New()
	svc := &testPaymentsService{
		addFn: func(ctx context.Context, input payments.AddPaymentInput) (*payments.AddPaymentResult, error) {
			if input.InvoiceID != invoiceID {
				t.Fatalf("unexpected invoice %s", input.InvoiceID)
			}
			if input.Amount != 500 {
				t.Fatalf("unexpected amount %v", input.Amount)
			}
			return &payments.AddPaymentResult{
				ID:          uuid.New(),
				AmountPaid:  decimal.NewFromInt(500),
				Balance:     decimal.NewFromInt(1500),
				IsFullyPaid: false,
			}, nil
		},
	}

	body := `{"invoice_id":"` + invoiceID.String() + `","amount":500,"payment_method":"cash"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader(body))
	resp := httptest.NewRecorder()

	AddPayment(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data payments.AddPaymentResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Data.Balance.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("unexpected balance %s", envelope.Data.Balance)
	}
}

func TestAddPaymentOverpaymentMessagePassesThrough(t *testing.T) {
	svc := &testPaymentsService{
		addFn: func(ctx context.Context, input payments.AddPaymentInput) (*payments.AddPaymentResult, error) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Payment exceeds balance. Maximum payment: Rs. 250.00")
		},
	}

	body := `{"invoice_id":"` + uuid.NewString() + `","amount":500}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader(body))
	resp := httptest.NewRecorder()

	AddPayment(svc, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "Maximum payment: Rs. 250.00") {
		t.Fatalf("expected overpayment message, got %s", resp.Body.String())
	}
}

func TestAddPaymentRejectsUnknownFields(t *testing.T) {
	body := `{"invoice_id":"` + uuid.NewString() + `","amount":500,"tip":25}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader(body))
	resp := httptest.NewRecorder()

	AddPayment(&testPaymentsService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}
