package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/giftflowhq/giftflow-backend/internal/auth"
	"github.com/giftflowhq/giftflow-backend/internal/catalog"
	"github.com/giftflowhq/giftflow-backend/internal/customers"
	"github.com/giftflowhq/giftflow-backend/internal/deliveryzones"
	"github.com/giftflowhq/giftflow-backend/internal/invoices"
	"github.com/giftflowhq/giftflow-backend/internal/notifications"
	"github.com/giftflowhq/giftflow-backend/internal/payments"
	"github.com/giftflowhq/giftflow-backend/internal/push"
	"github.com/giftflowhq/giftflow-backend/internal/reminders"
	"github.com/giftflowhq/giftflow-backend/internal/users"
	"github.com/giftflowhq/giftflow-backend/internal/vendororders"
	pkgauth "github.com/giftflowhq/giftflow-backend/pkg/auth"
	"github.com/giftflowhq/giftflow-backend/pkg/config"
	"github.com/giftflowhq/giftflow-backend/pkg/db/models"
	"github.com/giftflowhq/giftflow-backend/pkg/enums"
	"github.com/giftflowhq/giftflow-backend/pkg/logger"
	"github.com/giftflowhq/giftflow-backend/pkg/redis"
	"github.com/giftflowhq/giftflow-backend/pkg/webpush"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest, clientIP string) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{}, nil
}

func (stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*users.UserDTO, error) {
	return &users.UserDTO{}, nil
}

func (stubAuthService) Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	return &users.UserDTO{ID: userID}, nil
}

type stubCustomersService struct{}

func (stubCustomersService) Create(ctx context.Context, input customers.CreateCustomerInput) (*customers.CustomerDTO, error) {
	panic("unimplemented")
}

func (stubCustomersService) Get(ctx context.Context, id uuid.UUID) (*customers.CustomerDTO, error) {
	panic("unimplemented")
}

func (stubCustomersService) List(ctx context.Context, params customers.ListParams) (*customers.ListResult, error) {
	return &customers.ListResult{}, nil
}

func (stubCustomersService) Update(ctx context.Context, id uuid.UUID, input customers.UpdateCustomerInput) (*customers.CustomerDTO, error) {
	panic("unimplemented")
}

func (stubCustomersService) Delete(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

func (stubCustomersService) AddRecipient(ctx context.Context, customerID uuid.UUID, input customers.RecipientInput) (*models.Recipient, error) {
	panic("unimplemented")
}

func (stubCustomersService) UpdateRecipient(ctx context.Context, customerID, recipientID uuid.UUID, input customers.RecipientInput) (*models.Recipient, error) {
	panic("unimplemented")
}

func (stubCustomersService) DeleteRecipient(ctx context.Context, customerID, recipientID uuid.UUID) error {
	panic("unimplemented")
}

func (stubCustomersService) AddImportantDate(ctx context.Context, customerID uuid.UUID, input customers.ImportantDateInput) (*models.ImportantDate, error) {
	panic("unimplemented")
}

func (stubCustomersService) UpdateImportantDate(ctx context.Context, customerID, dateID uuid.UUID, input customers.ImportantDateInput) (*models.ImportantDate, error) {
	panic("unimplemented")
}

func (stubCustomersService) DeleteImportantDate(ctx context.Context, customerID, dateID uuid.UUID) error {
	panic("unimplemented")
}

type stubInvoicesService struct{}

func (stubInvoicesService) Create(ctx context.Context, input invoices.CreateInvoiceInput) (*invoices.CreatedInvoice, error) {
	panic("unimplemented")
}

func (stubInvoicesService) Get(ctx context.Context, id uuid.UUID) (*invoices.InvoiceDTO, error) {
	panic("unimplemented")
}

func (stubInvoicesService) List(ctx context.Context, params invoices.ListParams) (*invoices.ListResult, error) {
	return &invoices.ListResult{}, nil
}

func (stubInvoicesService) Update(ctx context.Context, id uuid.UUID, input invoices.UpdateInvoiceInput) (*invoices.InvoiceDTO, error) {
	panic("unimplemented")
}

func (stubInvoicesService) Cancel(ctx context.Context, id uuid.UUID) (*invoices.InvoiceDTO, error) {
	panic("unimplemented")
}

func (stubInvoicesService) AdvanceOrderStatus(ctx context.Context, id uuid.UUID, next enums.OrderStatus) (*invoices.InvoiceDTO, error) {
	panic("unimplemented")
}

func (stubInvoicesService) Delete(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

type stubPaymentsService struct{}

func (stubPaymentsService) Add(ctx context.Context, input payments.AddPaymentInput) (*payments.AddPaymentResult, error) {
	panic("unimplemented")
}

func (stubPaymentsService) Delete(ctx context.Context, paymentID uuid.UUID) error {
	panic("unimplemented")
}

func (stubPaymentsService) CreateManualReceipt(ctx context.Context, invoiceID uuid.UUID, input payments.CreateReceiptInput) (*payments.ReceiptDTO, error) {
	panic("unimplemented")
}

func (stubPaymentsService) GetReceipt(ctx context.Context, invoiceID uuid.UUID) (*payments.ReceiptDTO, error) {
	panic("unimplemented")
}

func (stubPaymentsService) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]models.Payment, error) {
	panic("unimplemented")
}

type stubCatalogService struct{}

func (stubCatalogService) CreateProduct(ctx context.Context, input catalog.ProductInput) (*models.Product, error) {
	panic("unimplemented")
}

func (stubCatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	panic("unimplemented")
}

func (stubCatalogService) ListProducts(ctx context.Context, params catalog.ProductListParams) ([]models.Product, error) {
	return nil, nil
}

func (stubCatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input catalog.ProductInput) (*models.Product, error) {
	panic("unimplemented")
}

func (stubCatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

func (stubCatalogService) CreateCategory(ctx context.Context, input catalog.CategoryInput) (*models.Category, error) {
	panic("unimplemented")
}

func (stubCatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return nil, nil
}

func (stubCatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, input catalog.CategoryInput) (*models.Category, error) {
	panic("unimplemented")
}

func (stubCatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

func (stubCatalogService) CreateVendor(ctx context.Context, input catalog.VendorInput) (*models.Vendor, error) {
	panic("unimplemented")
}

func (stubCatalogService) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	return nil, nil
}

func (stubCatalogService) UpdateVendor(ctx context.Context, id uuid.UUID, input catalog.VendorInput) (*models.Vendor, error) {
	panic("unimplemented")
}

func (stubCatalogService) DeleteVendor(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

type stubZonesService struct{}

func (stubZonesService) Create(ctx context.Context, input deliveryzones.ZoneInput) (*models.DeliveryZone, error) {
	panic("unimplemented")
}

func (stubZonesService) List(ctx context.Context) ([]models.DeliveryZone, error) {
	return nil, nil
}

func (stubZonesService) Update(ctx context.Context, id uuid.UUID, input deliveryzones.ZoneInput) (*models.DeliveryZone, error) {
	panic("unimplemented")
}

func (stubZonesService) Delete(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

type stubVendorOrdersService struct{}

func (stubVendorOrdersService) Create(ctx context.Context, input vendororders.CreateInput) (*models.VendorOrder, error) {
	panic("unimplemented")
}

func (stubVendorOrdersService) Get(ctx context.Context, id uuid.UUID) (*models.VendorOrder, error) {
	panic("unimplemented")
}

func (stubVendorOrdersService) List(ctx context.Context, params vendororders.ListParams) ([]models.VendorOrder, error) {
	return nil, nil
}

func (stubVendorOrdersService) Update(ctx context.Context, id uuid.UUID, input vendororders.UpdateInput) (*models.VendorOrder, error) {
	panic("unimplemented")
}

func (stubVendorOrdersService) Delete(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

type stubSettingsService struct{}

func (stubSettingsService) GetAll(ctx context.Context) (map[string]string, error) {
	return map[string]string{}, nil
}

func (stubSettingsService) Get(ctx context.Context, key string) (string, error) {
	return "", nil
}

func (stubSettingsService) Set(ctx context.Context, key, value string) error {
	return nil
}

func (stubSettingsService) SetAll(ctx context.Context, values map[string]string) error {
	return nil
}

type stubNotificationsService struct{}

func (stubNotificationsService) Notify(ctx context.Context, userIDs []uuid.UUID, kind enums.NotificationType, title, message string, link *string) (int, error) {
	return 0, nil
}

func (stubNotificationsService) List(ctx context.Context, params notifications.ListParams) (*notifications.ListResult, error) {
	return &notifications.ListResult{}, nil
}

func (stubNotificationsService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}

func (stubNotificationsService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	return nil
}

func (stubNotificationsService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}

type stubPushService struct{}

func (stubPushService) Subscribe(ctx context.Context, userID uuid.UUID, input push.SubscribeInput) error {
	return nil
}

func (stubPushService) Unsubscribe(ctx context.Context, endpoint string) error {
	return nil
}

func (stubPushService) Broadcast(ctx context.Context, msg webpush.Message) (push.BroadcastResult, error) {
	return push.BroadcastResult{}, nil
}

type stubRemindersService struct{}

func (stubRemindersService) Run(ctx context.Context) (*reminders.CheckResult, error) {
	return &reminders.CheckResult{Timestamp: time.Now().UTC()}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
		Reminders: config.RemindersConfig{CronSecret: "cron-secret"},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		(*redis.Client)(nil),
		Services{
			Auth:          stubAuthService{},
			UsersRepo:     nil,
			Customers:     stubCustomersService{},
			Invoices:      stubInvoicesService{},
			Payments:      stubPaymentsService{},
			Catalog:       stubCatalogService{},
			DeliveryZones: stubZonesService{},
			VendorOrders:  stubVendorOrdersService{},
			Settings:      stubSettingsService{},
			Notifications: stubNotificationsService{},
			Push:          stubPushService{},
			Reminders:     stubRemindersService{},
		},
	)
}

func buildToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestPrivateGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestPrivateGroupAcceptsValidToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleStaff))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRegisterRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleStaff))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for staff got %d", resp.Code)
	}
}

func TestUsersRouteRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleStaff))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for staff got %d", resp.Code)
	}
}

func TestSettingsWriteRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	staff := httptest.NewRequest(http.MethodPut, "/api/v1/settings", nil)
	staff.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleStaff))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, staff)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for staff got %d", resp.Code)
	}
}

func TestReminderCheckRequiresCronSecret(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	missing := httptest.NewRequest(http.MethodGet, "/reminders/check", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, missing)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without secret got %d", resp.Code)
	}

	authorized := httptest.NewRequest(http.MethodGet, "/reminders/check", nil)
	authorized.Header.Set("x-cron-secret", "cron-secret")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, authorized)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with secret got %d: %s", resp.Code, resp.Body.String())
	}
}
