package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/giftflowhq/giftflow-backend/internal/notifications"
	"github.com/giftflowhq/giftflow-backend/internal/push"
	"github.com/giftflowhq/giftflow-backend/pkg/db/models"
	"github.com/giftflowhq/giftflow-backend/pkg/enums"
	pkgerrors "github.com/giftflowhq/giftflow-backend/pkg/errors"
	"github.com/giftflowhq/giftflow-backend/pkg/logger"
	"github.com/giftflowhq/giftflow-backend/pkg/webpush"
	"github.com/google/uuid"
)

// resendGuard suppresses duplicate dispatches when the check endpoint runs
// more than once a day.
const resendGuard = 24 * time.Hour

// DueDate describes one event the pass acted on.
type DueDate struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Customer  string    `json:"customer"`
	DaysUntil int       `json:"daysUntil"`
}

// CheckResult summarizes a reminder pass.
type CheckResult struct {
	Checked       int                  `json:"checked"`
	RemindersSent int                  `json:"reminders_sent"`
	Push          push.BroadcastResult `json:"push_notifications"`
	Dates         []DueDate            `json:"dates"`
	Timestamp     time.Time            `json:"timestamp"`
}

// Service runs the daily reminder pass over recurring important dates.
type Service interface {
	Run(ctx context.Context) (*CheckResult, error)
}

type service struct {
	repo     Repository
	notifier notifications.Service
	push     push.Service
	log      *logger.Logger
	now      func() time.Time
}

// NewService wires reminder dependencies.
func NewService(repo Repository, notifier notifications.Service, pushSvc push.Service, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "reminders repository required")
	}
	if notifier == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications service required")
	}
	if pushSvc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "push service required")
	}
	if log == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{
		repo:     repo,
		notifier: notifier,
		push:     pushSvc,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// Run walks every recurring date, dispatches reminders for those due today
// or exactly reminder_days out, and stamps each dispatched date so repeated
// runs within a day stay quiet.
func (s *service) Run(ctx context.Context) (*CheckResult, error) {
	now := s.now()
	dates, err := s.repo.ListRecurringDates(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list recurring dates")
	}

	userIDs, err := s.repo.ActiveUserIDs(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active users")
	}

	result := &CheckResult{
		Checked:   len(dates),
		Dates:     []DueDate{},
		Timestamp: now,
	}

	for _, date := range dates {
		days, err := daysUntil(now, date.EventDate)
		if err != nil {
			s.log.Error(ctx, "skip reminder with malformed event date", err)
			continue
		}
		if days != 0 && days != date.ReminderDays {
			continue
		}
		if date.ReminderSentAt != nil && now.Sub(*date.ReminderSentAt) < resendGuard {
			continue
		}

		customerName := "Unknown customer"
		if customer, err := s.repo.FindCustomer(ctx, date.CustomerID); err == nil {
			customerName = customer.Name
		}

		pushResult, err := s.dispatch(ctx, date, customerName, days, userIDs)
		if err != nil {
			s.log.Error(ctx, "dispatch reminder", err)
			continue
		}
		result.Push.Sent += pushResult.Sent
		result.Push.Failed += pushResult.Failed
		if err := s.repo.StampReminderSent(ctx, date.ID, now); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "stamp reminder")
		}

		result.RemindersSent++
		result.Dates = append(result.Dates, DueDate{
			ID:        date.ID,
			Title:     date.Title,
			Customer:  customerName,
			DaysUntil: days,
		})
	}

	if result.RemindersSent > 0 {
		s.log.Info(s.log.WithField(ctx, "reminders_sent", result.RemindersSent), "reminder pass dispatched")
	}
	return result, nil
}

func (s *service) dispatch(ctx context.Context, date models.ImportantDate, customerName string, days int, userIDs []uuid.UUID) (push.BroadcastResult, error) {
	kind := enums.NotificationTypeReminderUpcoming
	title := fmt.Sprintf("Upcoming: %s in %d days", date.Title, days)
	if days == 0 {
		kind = enums.NotificationTypeReminderToday
		title = fmt.Sprintf("TODAY: %s", date.Title)
	}
	message := fmt.Sprintf("%s for %s", date.Title, customerName)
	link := fmt.Sprintf("/customers/%s", date.CustomerID)

	if _, err := s.notifier.Notify(ctx, userIDs, kind, title, message, &link); err != nil {
		return push.BroadcastResult{}, err
	}

	return s.push.Broadcast(ctx, webpush.Message{
		Title: title,
		Body:  message,
		Link:  link,
		Type:  kind.String(),
	})
}
