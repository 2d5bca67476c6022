package http

import (
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aretw0/hxnotify/internal/logging"
	"github.com/aretw0/hxnotify/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type serverConfig struct {
	logger     *slog.Logger
	gatherer   prometheus.Gatherer
	streams    *StreamManager
	middleware []MiddlewareOption
}

// ServerOption configures NewHandler.
type ServerOption func(*serverConfig)

// WithLogger sets the structured logger of the handler and its middleware.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(c *serverConfig) {
		c.logger = logger
	}
}

// WithMetrics exposes the gatherer on GET /metrics.
func WithMetrics(g prometheus.Gatherer) ServerOption {
	return func(c *serverConfig) {
		c.gatherer = g
	}
}

// WithStreams exposes the manager on GET /events.
func WithStreams(sm *StreamManager) ServerOption {
	return func(c *serverConfig) {
		c.streams = sm
	}
}

// WithMiddlewareOptions forwards options to Middleware.
func WithMiddlewareOptions(opts ...MiddlewareOption) ServerOption {
	return func(c *serverConfig) {
		c.middleware = append(c.middleware, opts...)
	}
}

// NewHandler builds the demo server: the dispatcher middleware in front of a probe
// endpoint that answers with any status, plus health, metrics and event stream.
func NewHandler(d Dispatcher, opts ...ServerOption) http.Handler {
	cfg := serverConfig{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	if cfg.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.gatherer, promhttp.HandlerOpts{}))
	}
	if cfg.streams != nil {
		r.Handle("/events", cfg.streams)
	}
	r.Post("/decide", decideHandler(cfg.logger))

	mwOpts := append([]MiddlewareOption{WithMiddlewareLogger(cfg.logger)}, cfg.middleware...)
	r.Group(func(r chi.Router) {
		r.Use(Middleware(d, mwOpts...))
		r.Get("/status/{code}", statusProbe)
	})

	return r
}

// statusProbe answers with the requested status. ?retarget= sets HX-Retarget.
func statusProbe(w http.ResponseWriter, r *http.Request) {
	code, err := strconv.Atoi(chi.URLParam(r, "code"))
	// net/http only writes three-digit codes.
	if err != nil || domain.Status(code).Validate() != nil || code > 999 {
		http.Error(w, "invalid status code", http.StatusBadRequest)
		return
	}
	if rt := r.URL.Query().Get("retarget"); rt != "" {
		w.Header().Set(HeaderRetarget, rt)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	fmt.Fprintf(w, "<p data-status=\"%d\">%s</p>", code, html.EscapeString(http.StatusText(code)))
}

// DecideRequest is the body of POST /decide.
type DecideRequest struct {
	Status   int    `json:"status"`
	Retarget string `json:"retarget,omitempty"`
	Target   string `json:"target,omitempty"`
}

// DecideResponse mirrors the before-swap outcome for hosts that run their own glue.
type DecideResponse struct {
	Decision            string `json:"decision"`
	Band                string `json:"band"`
	Target              string `json:"target"`
	ShouldSwap          bool   `json:"shouldSwap"`
	StopFinishEvt       bool   `json:"stopFinishEvt"`
	AnimateConfirmModal bool   `json:"animateConfirmModal"`
}

func decideHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body DecideRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			logger.Warn("decide: invalid request body", "error", err)
			return
		}
		status := domain.Status(body.Status)
		if err := status.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		swap := domain.NewSwap(status, body.Retarget, body.Target)
		decision := domain.Decide(swap)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(DecideResponse{
			Decision:            decision.String(),
			Band:                status.Band().String(),
			Target:              swap.Target,
			ShouldSwap:          swap.ShouldSwap,
			StopFinishEvt:       decision.StopFinish(),
			AnimateConfirmModal: decision.AnimateConfirmModal(),
		}); err != nil {
			logger.Error("decide: response encode failed", "error", err)
		}
	}
}
