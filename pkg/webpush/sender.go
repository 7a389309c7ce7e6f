package webpush

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	webpushgo "github.com/SherClockHolmes/webpush-go"

	"github.com/giftflowhq/giftflow-backend/pkg/config"
)

// ErrSubscriptionGone signals the push service no longer knows the endpoint.
// Callers should delete the stored subscription when they see it.
var ErrSubscriptionGone = fmt.Errorf("push subscription gone")

// Message is the payload delivered to the browser service worker.
type Message struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Link  string `json:"link,omitempty"`
	Type  string `json:"type,omitempty"`
}

// Subscription identifies one browser push endpoint.
type Subscription struct {
	Endpoint string
	P256dh   string
	Auth     string
}

// Sender delivers web push messages using VAPID keys.
type Sender interface {
	Send(ctx context.Context, sub Subscription, msg Message) error
}

type vapidSender struct {
	cfg config.WebPushConfig
	ttl int
}

// NewSender builds a Sender from the configured VAPID key pair.
func NewSender(cfg config.WebPushConfig) (Sender, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("web push is not configured")
	}
	return &vapidSender{cfg: cfg, ttl: 86400}, nil
}

func (s *vapidSender) Send(ctx context.Context, sub Subscription, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal push payload: %w", err)
	}

	target := &webpushgo.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpushgo.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}

	resp, err := webpushgo.SendNotificationWithContext(ctx, payload, target, &webpushgo.Options{
		Subscriber:      s.cfg.Subscriber,
		VAPIDPublicKey:  s.cfg.VAPIDPublicKey,
		VAPIDPrivateKey: s.cfg.VAPIDPrivateKey,
		TTL:             s.ttl,
	})
	if err != nil {
		return fmt.Errorf("send push notification: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return ErrSubscriptionGone
	case resp.StatusCode >= 400:
		return fmt.Errorf("push service responded with status %d", resp.StatusCode)
	}
	return nil
}
