package push

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/giftflowhq/giftflow-backend/pkg/db/models"
	pkgerrors "github.com/giftflowhq/giftflow-backend/pkg/errors"
	"github.com/giftflowhq/giftflow-backend/pkg/logger"
	"github.com/giftflowhq/giftflow-backend/pkg/metrics"
	"github.com/giftflowhq/giftflow-backend/pkg/webpush"
)

// SubscribeInput carries a browser push subscription as produced by the
// PushManager API.
type SubscribeInput struct {
	Endpoint string `json:"endpoint" validate:"required,url"`
	Keys     struct {
		P256dh string `json:"p256dh" validate:"required"`
		Auth   string `json:"auth" validate:"required"`
	} `json:"keys"`
}

// BroadcastResult reports the outcome of a fan-out.
type BroadcastResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// Service manages push subscriptions and delivery.
type Service interface {
	Subscribe(ctx context.Context, userID uuid.UUID, input SubscribeInput) error
	Unsubscribe(ctx context.Context, endpoint string) error
	Broadcast(ctx context.Context, msg webpush.Message) (BroadcastResult, error)
}

type service struct {
	repo    Repository
	sender  webpush.Sender
	log     *logger.Logger
	metrics *metrics.PushMetrics
}

// NewService wires push dependencies. The sender may be nil when VAPID keys
// are not configured; Broadcast then becomes a no-op.
func NewService(repo Repository, sender webpush.Sender, log *logger.Logger, pushMetrics *metrics.PushMetrics) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "push repository required")
	}
	if log == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{repo: repo, sender: sender, log: log, metrics: pushMetrics}, nil
}

func (s *service) Subscribe(ctx context.Context, userID uuid.UUID, input SubscribeInput) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	sub := &models.PushSubscription{
		ID:       uuid.New(),
		UserID:   userID,
		Endpoint: input.Endpoint,
		P256dh:   input.Keys.P256dh,
		Auth:     input.Keys.Auth,
	}
	if err := s.repo.Upsert(ctx, sub); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save push subscription")
	}
	return nil
}

func (s *service) Unsubscribe(ctx context.Context, endpoint string) error {
	if endpoint == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "endpoint required")
	}

	deleted, err := s.repo.DeleteByEndpoint(ctx, endpoint)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete push subscription")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "push subscription not found")
	}
	return nil
}

// Broadcast delivers the message to every stored subscription. Endpoints the
// push service reports as gone are pruned. Individual failures do not abort
// the fan-out.
func (s *service) Broadcast(ctx context.Context, msg webpush.Message) (BroadcastResult, error) {
	if s.sender == nil {
		return BroadcastResult{}, nil
	}

	subs, err := s.repo.ListAll(ctx)
	if err != nil {
		return BroadcastResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list push subscriptions")
	}

	var result BroadcastResult
	var sendErrs error
	for _, sub := range subs {
		err := s.sender.Send(ctx, webpush.Subscription{
			Endpoint: sub.Endpoint,
			P256dh:   sub.P256dh,
			Auth:     sub.Auth,
		}, msg)
		switch {
		case err == nil:
			result.Sent++
			s.metrics.IncSent(msg.Type)
		case errors.Is(err, webpush.ErrSubscriptionGone):
			s.metrics.IncExpired()
			if deleteErr := s.repo.DeleteByID(ctx, sub.ID); deleteErr != nil {
				s.log.Error(ctx, "prune expired push subscription", deleteErr)
			}
		default:
			result.Failed++
			s.metrics.IncFailed(msg.Type)
			sendErrs = multierr.Append(sendErrs, err)
		}
	}
	if sendErrs != nil {
		s.log.Error(ctx, "push broadcast completed with failures", sendErrs)
	}
	return result, nil
}
