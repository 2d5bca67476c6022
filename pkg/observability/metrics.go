package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/hxnotify/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the dispatcher collectors.
type Metrics struct {
	Signals      *prometheus.CounterVec
	Decisions    *prometheus.CounterVec
	Events       *prometheus.CounterVec
	Alerts       prometheus.Counter
	EffectErrors *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Signals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hxnotify_signals_total",
				Help: "Lifecycle signals consumed, by kind",
			},
			[]string{"kind"},
		),
		Decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hxnotify_decisions_total",
				Help: "Before-swap decisions, by outcome",
			},
			[]string{"decision", "band"},
		),
		Events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hxnotify_events_total",
				Help: "Application events emitted, by name",
			},
			[]string{"name"},
		),
		Alerts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hxnotify_alerts_total",
			Help: "Alerts shown to the user",
		}),
		EffectErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hxnotify_effect_errors_total",
				Help: "Side effects that failed, by signal kind",
			},
			[]string{"kind"},
		),
	}

	for _, c := range []prometheus.Collector{m.Signals, m.Decisions, m.Events, m.Alerts, m.EffectErrors} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSignal: func(ctx context.Context, s *domain.Signal) {
			m.Signals.WithLabelValues(string(s.Kind)).Inc()
		},
		OnDecision: func(ctx context.Context, s *domain.Swap, d domain.Decision) {
			m.Decisions.WithLabelValues(d.String(), s.Status.Band().String()).Inc()
		},
		OnEvent: func(ctx context.Context, e domain.AppEvent) {
			m.Events.WithLabelValues(string(e.Name)).Inc()
		},
		OnAlert: func(ctx context.Context, msg string) {
			m.Alerts.Inc()
		},
		OnEffectError: func(ctx context.Context, kind domain.SignalKind, err error) {
			m.EffectErrors.WithLabelValues(string(kind)).Inc()
		},
	}
}

// LogHooks returns lifecycle hooks that log decisions and failures.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDecision: func(ctx context.Context, s *domain.Swap, d domain.Decision) {
			logger.InfoContext(ctx, "swap_decision",
				"status", int(s.Status),
				"decision", d.String(),
				"target", s.Target,
			)
		},
		OnEffectError: func(ctx context.Context, kind domain.SignalKind, err error) {
			logger.WarnContext(ctx, "effect_error", "signal", kind, "error", err)
		},
	}
}
