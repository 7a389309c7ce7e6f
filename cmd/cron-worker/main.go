package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/giftflowhq/giftflow-backend/internal/cron"
	"github.com/giftflowhq/giftflow-backend/internal/notifications"
	"github.com/giftflowhq/giftflow-backend/internal/push"
	"github.com/giftflowhq/giftflow-backend/internal/reminders"
	"github.com/giftflowhq/giftflow-backend/pkg/config"
	"github.com/giftflowhq/giftflow-backend/pkg/db"
	"github.com/giftflowhq/giftflow-backend/pkg/logger"
	"github.com/giftflowhq/giftflow-backend/pkg/metrics"
	"github.com/giftflowhq/giftflow-backend/pkg/migrate"
	"github.com/giftflowhq/giftflow-backend/pkg/redis"
	"github.com/giftflowhq/giftflow-backend/pkg/webpush"
)

const lockKeyFormat = "gf:cron-worker:lock:%s"

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "cron-worker"

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
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

	notificationsRepo := notifications.NewRepository(gdb)
	notificationsService, err := notifications.NewService(notificationsRepo)
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

	reminderJob, err := cron.NewReminderJob(cron.ReminderJobParams{
		Logger:    logg,
		Reminders: remindersService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reminder job", err)
		os.Exit(1)
	}

	cleanupJob, err := cron.NewNotificationCleanupJob(cron.NotificationCleanupJobParams{
		Logger:     logg,
		Repository: notificationsRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create notification cleanup job", err)
		os.Exit(1)
	}

	metricsCollector := metrics.NewCronJobMetrics(prometheus.DefaultRegisterer)
	lock, err := cron.NewRedisLock(redisClient, lockKey(cfg.App.Env), 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	registry := cron.NewRegistry(reminderJob, cleanupJob)
	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     lock,
		Metrics:  metricsCollector,
		Interval: cfg.Reminders.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
	})
	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}

func lockKey(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf(lockKeyFormat, env)
}
