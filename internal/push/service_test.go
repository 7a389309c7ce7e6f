package push

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/giftflowhq/giftflow-backend/pkg/db/models"
	pkgerrors "github.com/giftflowhq/giftflow-backend/pkg/errors"
	"github.com/giftflowhq/giftflow-backend/pkg/logger"
	"github.com/giftflowhq/giftflow-backend/pkg/webpush"
)

func setupPushTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`CREATE TABLE IF NOT EXISTS push_subscriptions (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  endpoint TEXT NOT NULL UNIQUE,
  p256dh TEXT NOT NULL,
  auth TEXT NOT NULL,
  created_at DATETIME
);`).Error)
	return db
}

type stubSender struct {
	sent     []webpush.Subscription
	failWith map[string]error
}

func (s *stubSender) Send(ctx context.Context, sub webpush.Subscription, msg webpush.Message) error {
	if err, ok := s.failWith[sub.Endpoint]; ok {
		return err
	}
	s.sent = append(s.sent, sub)
	return nil
}

func newPushService(t *testing.T, db *gorm.DB, sender webpush.Sender) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db), sender, logger.New(logger.Options{ServiceName: "test"}), nil)
	require.NoError(t, err)
	return svc
}

func subscribeInput(endpoint string) SubscribeInput {
	input := SubscribeInput{Endpoint: endpoint}
	input.Keys.P256dh = "p256dh-key"
	input.Keys.Auth = "auth-key"
	return input
}

func TestSubscribeUpsertsByEndpoint(t *testing.T) {
	db := setupPushTestDB(t)
	svc := newPushService(t, db, &stubSender{})
	ctx := context.Background()

	first := uuid.New()
	second := uuid.New()
	require.NoError(t, svc.Subscribe(ctx, first, subscribeInput("https://push.example/abc")))
	require.NoError(t, svc.Subscribe(ctx, second, subscribeInput("https://push.example/abc")))

	var subs []models.PushSubscription
	require.NoError(t, db.Find(&subs).Error)
	require.Len(t, subs, 1)
	assert.Equal(t, second, subs[0].UserID)
}

func TestUnsubscribe(t *testing.T) {
	db := setupPushTestDB(t)
	svc := newPushService(t, db, &stubSender{})
	ctx := context.Background()

	require.NoError(t, svc.Subscribe(ctx, uuid.New(), subscribeInput("https://push.example/abc")))
	require.NoError(t, svc.Unsubscribe(ctx, "https://push.example/abc"))

	err := svc.Unsubscribe(ctx, "https://push.example/abc")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestBroadcastCountsAndPrunes(t *testing.T) {
	db := setupPushTestDB(t)
	sender := &stubSender{failWith: map[string]error{
		"https://push.example/gone":   webpush.ErrSubscriptionGone,
		"https://push.example/broken": errors.New("upstream 500"),
	}}
	svc := newPushService(t, db, sender)
	ctx := context.Background()

	require.NoError(t, svc.Subscribe(ctx, uuid.New(), subscribeInput("https://push.example/ok")))
	require.NoError(t, svc.Subscribe(ctx, uuid.New(), subscribeInput("https://push.example/gone")))
	require.NoError(t, svc.Subscribe(ctx, uuid.New(), subscribeInput("https://push.example/broken")))

	result, err := svc.Broadcast(ctx, webpush.Message{Title: "TODAY: Birthday", Type: "reminder_today"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, result.Failed)

	var remaining int64
	require.NoError(t, db.Model(&models.PushSubscription{}).Count(&remaining).Error)
	assert.EqualValues(t, 2, remaining)
}

func TestBroadcastWithoutSenderIsNoop(t *testing.T) {
	db := setupPushTestDB(t)
	svc := newPushService(t, db, nil)
	ctx := context.Background()

	require.NoError(t, svc.Subscribe(ctx, uuid.New(), subscribeInput("https://push.example/ok")))
	result, err := svc.Broadcast(ctx, webpush.Message{Title: "ignored"})
	require.NoError(t, err)
	assert.Zero(t, result.Sent)
	assert.Zero(t, result.Failed)
}
