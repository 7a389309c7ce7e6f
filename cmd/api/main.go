package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/giftflowhq/giftflow-backend/api/routes"
	"github.com/giftflowhq/giftflow-backend/internal/auth"
	"github.com/giftflowhq/giftflow-backend/internal/catalog"
	"github.com/giftflowhq/giftflow-backend/internal/customers"
	"github.com/giftflowhq/giftflow-backend/internal/deliveryzones"
	"github.com/giftflowhq/giftflow-backend/internal/invoices"
	"github.com/giftflowhq/giftflow-backend/internal/notifications"
	"github.com/giftflowhq/giftflow-backend/internal/payments"
	"github.com/giftflowhq/giftflow-backend/internal/push"
	"github.com/giftflowhq/giftflow-backend/internal/reminders"
	"github.com/giftflowhq/giftflow-backend/internal/sequence"
	"github.com/giftflowhq/giftflow-backend/internal/settings"
	"github.com/giftflowhq/giftflow-backend/internal/users"
	"github.com/giftflowhq/giftflow-backend/internal/vendororders"
	"github.com/giftflowhq/giftflow-backend/pkg/config"
	"github.com/giftflowhq/giftflow-backend/pkg/db"
	"github.com/giftflowhq/giftflow-backend/pkg/logger"
	"github.com/giftflowhq/giftflow-backend/pkg/metrics"
	"github.com/giftflowhq/giftflow-backend/pkg/migrate"
	"github.com/giftflowhq/giftflow-backend/pkg/redis"
	"github.com/giftflowhq/giftflow-backend/pkg/webpush"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gdb := dbClient.DB()
	usersRepo := users.NewRepository(gdb)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		RateLimiter:    redisClient,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		RateLimit:      cfg.AuthRateLimit,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	customersService, err := customers.NewService(customers.NewRepository(gdb))
	if err != nil {
		logg.Error(context.Background(), "failed to create customers service", err)
		os.Exit(1)
	}

	settingsService, err := settings.NewService(gdb)
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
		os.Exit(1)
	}

	sequenceService, err := sequence.NewServiceWithSettings(sequence.NewRepository(gdb), settingsService, cfg.Documents)
	if err != nil {
		logg.Error(context.Background(), "failed to create sequence service", err)
		os.Exit(1)
	}

	invoicesRepo := invoices.NewRepository(gdb)
	invoicesService, err := invoices.NewService(invoicesRepo, sequenceService, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create invoices service", err)
		os.Exit(1)
	}

	paymentsService, err := payments.NewServiceWithSettings(payments.NewRepository(gdb), invoicesRepo, sequenceService, dbClient, cfg.Documents, settingsService)
	if err != nil {
		logg.Error(context.Background(), "failed to create payments service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(gdb))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	zonesService, err := deliveryzones.NewService(gdb)
	if err != nil {
		logg.Error(context.Background(), "failed to create delivery zones service", err)
		os.Exit(1)
	}

	vendorOrdersService, err := vendororders.NewService(gdb)
	if err != nil {
		logg.Error(context.Background(), "failed to create vendor orders service", err)
		os.Exit(1)
	}

	notificationsService, err := notifications.NewService(notifications.NewRepository(gdb))
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	var pushSender webpush.Sender
	if cfg.WebPush.Enabled() {
		pushSender, err = webpush.NewSender(cfg.WebPush)
		if err != nil {
			logg.Error(context.Background(), "failed to create web push sender", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "web push disabled, VAPID keys not configured")
	}

	pushMetrics := metrics.NewPushMetrics(prometheus.DefaultRegisterer)
	pushService, err := push.NewService(push.NewRepository(gdb), pushSender, logg, pushMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create push service", err)
		os.Exit(1)
	}

	remindersService, err := reminders.NewService(reminders.NewRepository(gdb), notificationsService, pushService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create reminders service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, routes.Services{
			Auth:          authService,
			UsersRepo:     usersRepo,
			Customers:     customersService,
			Invoices:      invoicesService,
			Payments:      paymentsService,
			Catalog:       catalogService,
			DeliveryZones: zonesService,
			VendorOrders:  vendorOrdersService,
			Settings:      settingsService,
			Notifications: notificationsService,
			Push:          pushService,
			Reminders:     remindersService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
