package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/giftflowhq/giftflow-backend/api/controllers"
	"github.com/giftflowhq/giftflow-backend/api/middleware"
	"github.com/giftflowhq/giftflow-backend/internal/auth"
	"github.com/giftflowhq/giftflow-backend/internal/catalog"
	"github.com/giftflowhq/giftflow-backend/internal/customers"
	"github.com/giftflowhq/giftflow-backend/internal/deliveryzones"
	"github.com/giftflowhq/giftflow-backend/internal/invoices"
	"github.com/giftflowhq/giftflow-backend/internal/notifications"
	"github.com/giftflowhq/giftflow-backend/internal/payments"
	"github.com/giftflowhq/giftflow-backend/internal/push"
	"github.com/giftflowhq/giftflow-backend/internal/reminders"
	"github.com/giftflowhq/giftflow-backend/internal/settings"
	"github.com/giftflowhq/giftflow-backend/internal/users"
	"github.com/giftflowhq/giftflow-backend/internal/vendororders"
	"github.com/giftflowhq/giftflow-backend/pkg/config"
	"github.com/giftflowhq/giftflow-backend/pkg/db"
	"github.com/giftflowhq/giftflow-backend/pkg/logger"
	"github.com/giftflowhq/giftflow-backend/pkg/redis"
)

// Services bundles everything the HTTP surface depends on.
type Services struct {
	Auth          auth.Service
	UsersRepo     *users.Repository
	Customers     customers.Service
	Invoices      invoices.Service
	Payments      payments.Service
	Catalog       catalog.Service
	DeliveryZones deliveryzones.Service
	VendorOrders  vendororders.Service
	Settings      settings.Service
	Notifications notifications.Service
	Push          push.Service
	Reminders     reminders.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	// Hit by the external scheduler, authenticated by shared secret
	// rather than a user token.
	r.With(middleware.CronSecret(cfg.Reminders.CronSecret, logg)).
		Get("/reminders/check", controllers.CheckReminders(svcs.Reminders, logg))

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(svcs.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Get("/me", controllers.AuthMe(svcs.Auth, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole("admin", logg))
				r.Use(middleware.Idempotency(redisClient, logg))
				r.Post("/register", controllers.AuthRegister(svcs.Auth, logg))
			})
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/customers", func(r chi.Router) {
			r.Post("/", controllers.CreateCustomer(svcs.Customers, logg))
			r.Get("/", controllers.ListCustomers(svcs.Customers, logg))
			r.Get("/{customerId}", controllers.GetCustomer(svcs.Customers, logg))
			r.Put("/{customerId}", controllers.UpdateCustomer(svcs.Customers, logg))
			r.Delete("/{customerId}", controllers.DeleteCustomer(svcs.Customers, logg))

			r.Post("/{customerId}/recipients", controllers.AddRecipient(svcs.Customers, logg))
			r.Put("/{customerId}/recipients/{recipientId}", controllers.UpdateRecipient(svcs.Customers, logg))
			r.Delete("/{customerId}/recipients/{recipientId}", controllers.DeleteRecipient(svcs.Customers, logg))

			r.Post("/{customerId}/important-dates", controllers.AddImportantDate(svcs.Customers, logg))
			r.Put("/{customerId}/important-dates/{dateId}", controllers.UpdateImportantDate(svcs.Customers, logg))
			r.Delete("/{customerId}/important-dates/{dateId}", controllers.DeleteImportantDate(svcs.Customers, logg))
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Post("/", controllers.CreateInvoice(svcs.Invoices, logg))
			r.Get("/", controllers.ListInvoices(svcs.Invoices, logg))
			r.Get("/{invoiceId}", controllers.GetInvoice(svcs.Invoices, logg))
			r.Patch("/{invoiceId}", controllers.UpdateInvoice(svcs.Invoices, logg))
			r.Post("/{invoiceId}/cancel", controllers.CancelInvoice(svcs.Invoices, logg))
			r.Patch("/{invoiceId}/order-status", controllers.AdvanceOrderStatus(svcs.Invoices, logg))
			r.Delete("/{invoiceId}", controllers.DeleteInvoice(svcs.Invoices, logg))

			r.Get("/{invoiceId}/payments", controllers.ListInvoicePayments(svcs.Payments, logg))
			r.Post("/{invoiceId}/receipt", controllers.CreateReceipt(svcs.Payments, logg))
			r.Get("/{invoiceId}/receipt", controllers.GetReceipt(svcs.Payments, logg))
		})

		r.Route("/payments", func(r chi.Router) {
			r.Post("/", controllers.AddPayment(svcs.Payments, logg))
			r.Delete("/{paymentId}", controllers.DeletePayment(svcs.Payments, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.CreateProduct(svcs.Catalog, logg))
			r.Get("/", controllers.ListProducts(svcs.Catalog, logg))
			r.Get("/{productId}", controllers.GetProduct(svcs.Catalog, logg))
			r.Put("/{productId}", controllers.UpdateProduct(svcs.Catalog, logg))
			r.Delete("/{productId}", controllers.DeleteProduct(svcs.Catalog, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", controllers.CreateCategory(svcs.Catalog, logg))
			r.Get("/", controllers.ListCategories(svcs.Catalog, logg))
			r.Put("/{categoryId}", controllers.UpdateCategory(svcs.Catalog, logg))
			r.Delete("/{categoryId}", controllers.DeleteCategory(svcs.Catalog, logg))
		})

		r.Route("/vendors", func(r chi.Router) {
			r.Post("/", controllers.CreateVendor(svcs.Catalog, logg))
			r.Get("/", controllers.ListVendors(svcs.Catalog, logg))
			r.Put("/{vendorId}", controllers.UpdateVendor(svcs.Catalog, logg))
			r.Delete("/{vendorId}", controllers.DeleteVendor(svcs.Catalog, logg))
		})

		r.Route("/delivery-zones", func(r chi.Router) {
			r.Post("/", controllers.CreateDeliveryZone(svcs.DeliveryZones, logg))
			r.Get("/", controllers.ListDeliveryZones(svcs.DeliveryZones, logg))
			r.Put("/{zoneId}", controllers.UpdateDeliveryZone(svcs.DeliveryZones, logg))
			r.Delete("/{zoneId}", controllers.DeleteDeliveryZone(svcs.DeliveryZones, logg))
		})

		r.Route("/vendor-orders", func(r chi.Router) {
			r.Post("/", controllers.CreateVendorOrder(svcs.VendorOrders, logg))
			r.Get("/", controllers.ListVendorOrders(svcs.VendorOrders, logg))
			r.Get("/{orderId}", controllers.GetVendorOrder(svcs.VendorOrders, logg))
			r.Put("/{orderId}", controllers.UpdateVendorOrder(svcs.VendorOrders, logg))
			r.Delete("/{orderId}", controllers.DeleteVendorOrder(svcs.VendorOrders, logg))
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", controllers.GetSettings(svcs.Settings, logg))
			r.Get("/{key}", controllers.GetSetting(svcs.Settings, logg))
			r.With(middleware.RequireRole("admin", logg)).
				Put("/", controllers.PutSettings(svcs.Settings, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(svcs.Notifications, logg))
			r.Get("/unread-count", controllers.UnreadNotificationCount(svcs.Notifications, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(svcs.Notifications, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(svcs.Notifications, logg))
		})

		r.Route("/push", func(r chi.Router) {
			r.Post("/subscribe", controllers.PushSubscribe(svcs.Push, logg))
			r.Delete("/subscriptions", controllers.PushUnsubscribe(svcs.Push, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireRole("admin", logg))
			r.Get("/", controllers.ListUsers(svcs.UsersRepo, logg))
			r.Put("/{userId}/active", controllers.SetUserActive(svcs.UsersRepo, logg))
		})
	})

	return r
}
