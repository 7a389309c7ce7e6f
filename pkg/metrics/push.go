package metrics

import "github.com/prometheus/client_golang/prometheus"

// PushMetrics records web push delivery outcomes.
type PushMetrics struct {
	sent    *prometheus.CounterVec
	failed  *prometheus.CounterVec
	expired prometheus.Counter
}

// NewPushMetrics registers the push delivery metrics on the provided registerer.
func NewPushMetrics(reg prometheus.Registerer) *PushMetrics {
	if reg == nil {
		return &PushMetrics{}
	}
	sent := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "push_sent",
		Help: "Web push notifications delivered.",
	}, []string{"type"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "push_failed",
		Help: "Web push notifications that could not be delivered.",
	}, []string{"type"})
	expired := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "push_subscriptions_expired",
		Help: "Push subscriptions removed after the endpoint reported them gone.",
	})
	reg.MustRegister(sent, failed, expired)
	return &PushMetrics{sent: sent, failed: failed, expired: expired}
}

// IncSent increments the delivered counter for the notification type.
func (p *PushMetrics) IncSent(notificationType string) {
	if p == nil || p.sent == nil {
		return
	}
	p.sent.WithLabelValues(normalizeLabel(notificationType)).Inc()
}

// IncFailed increments the failure counter for the notification type.
func (p *PushMetrics) IncFailed(notificationType string) {
	if p == nil || p.failed == nil {
		return
	}
	p.failed.WithLabelValues(normalizeLabel(notificationType)).Inc()
}

// IncExpired increments the expired subscription counter.
func (p *PushMetrics) IncExpired() {
	if p == nil || p.expired == nil {
		return
	}
	p.expired.Inc()
}
