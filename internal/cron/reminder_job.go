package cron

import (
	"context"
	"fmt"

	"github.com/giftflowhq/giftflow-backend/internal/reminders"
	"github.com/giftflowhq/giftflow-backend/pkg/logger"
)

type ReminderJobParams struct {
	Logger    *logger.Logger
	Reminders reminders.Service
}

// NewReminderJob wraps the reminder pass for the cron worker.
func NewReminderJob(params ReminderJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Reminders == nil {
		return nil, fmt.Errorf("reminders service required")
	}
	return &reminderJob{logg: params.Logger, reminders: params.Reminders}, nil
}

type reminderJob struct {
	logg      *logger.Logger
	reminders reminders.Service
}

func (j *reminderJob) Name() string { return "important-date-reminders" }

func (j *reminderJob) Run(ctx context.Context) error {
	result, err := j.reminders.Run(ctx)
	if err != nil {
		return fmt.Errorf("reminder pass: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"checked":        result.Checked,
		"reminders_sent": result.RemindersSent,
		"push_sent":      result.Push.Sent,
		"push_failed":    result.Push.Failed,
	})
	j.logg.Info(logCtx, "reminder pass complete")
	return nil
}
