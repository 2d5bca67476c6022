package http

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/hxnotify/internal/logging"
	"github.com/aretw0/hxnotify/pkg/domain"
	"github.com/google/uuid"
)

// Dispatcher is the part of the notification dispatcher the middleware drives.
type Dispatcher interface {
	RequestStarted(ctx context.Context, requestID string, detail domain.Detail) error
	SwapPending(ctx context.Context, requestID string, swap *domain.Swap) (domain.Decision, error)
	AfterUpdate(ctx context.Context, requestID string, detail domain.Detail) error
	RequestFinished(ctx context.Context, requestID string, detail domain.Detail) error
	RequestErrored(ctx context.Context, requestID, body string) error
}

type middlewareConfig struct {
	logger        *slog.Logger
	rewriteStatus bool
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

// WithMiddlewareLogger sets the structured logger.
func WithMiddlewareLogger(logger *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.logger = logger
	}
}

// WithStatusRewrite controls whether swappable 4xx responses (modal redirects and
// retargeted ones) and error-modal responses are sent as 200. Stock htmx does not swap 4xx/5xx bodies, so the rewrite is on by default;
// the original status travels in X-Hxnotify-Status.
func WithStatusRewrite(enabled bool) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.rewriteStatus = enabled
	}
}

// Middleware runs one lifecycle cycle per htmx request and renders the outcome as
// htmx response headers. Other requests pass through untouched.
func Middleware(d Dispatcher, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := middlewareConfig{logger: logging.NewNop(), rewriteStatus: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsHTMXRequest(r) {
				next.ServeHTTP(w, r)
				return
			}
			serveCycle(w, r, next, d, cfg)
		})
	}
}

func serveCycle(w http.ResponseWriter, r *http.Request, next http.Handler, d Dispatcher, cfg middlewareConfig) {
	// The cycle key is always ours; a client X-Request-Id is only echoed and logged,
	// so two requests sharing it never share a cycle.
	id := uuid.NewString()
	clientID := r.Header.Get(HeaderRequestID)
	if clientID == "" {
		clientID = id
	}
	effects := newEffects()
	ctx := WithEffects(r.Context(), effects)
	logger := cfg.logger.With("request_id", clientID, "cycle_id", id, "path", r.URL.Path)

	if err := d.RequestStarted(ctx, id, nil); err != nil {
		logger.WarnContext(ctx, "before-request effects failed", "error", err)
	}

	buf := newBufferedWriter()
	if failed := runHandler(next, buf, r.WithContext(ctx)); failed {
		logger.ErrorContext(ctx, "handler failed before responding")
		if err := d.RequestErrored(ctx, id, ""); err != nil {
			logger.WarnContext(ctx, "response-error effects failed", "error", err)
		}
		finish(ctx, d, id, logger)
		writeResponse(w, effects, http.Header{}, http.StatusInternalServerError, nil, clientID, logger)
		return
	}

	swap := domain.NewSwap(domain.Status(buf.status), buf.Header().Get(HeaderRetarget), targetSelector(r))
	decision, err := d.SwapPending(ctx, id, swap)
	if err != nil {
		logger.WarnContext(ctx, "before-swap effects failed", "error", err)
	}
	if err := d.AfterUpdate(ctx, id, nil); err != nil {
		logger.WarnContext(ctx, "after-swap effects failed", "error", err)
	}
	finish(ctx, d, id, logger)

	header := buf.Header().Clone()
	status := buf.status
	body := buf.body.Bytes()

	switch decision {
	case domain.DecisionRedirectToModal:
		header.Set(HeaderRetarget, swap.Target)
		header.Set(HeaderReswap, "innerHTML")
	case domain.DecisionShowError:
		if fragments := effects.Fragments(); len(fragments) > 0 {
			header.Set(HeaderRetarget, "body")
			header.Set(HeaderReswap, "beforeend")
			header.Del("Content-Length")
			body = []byte(strings.Join(fragments, "\n"))
			status = rewrite(header, status, cfg.rewriteStatus)
		}
	}

	// Client errors that are still meant to be swapped must reach htmx as a success.
	if swap.ShouldSwap {
		status = rewrite(header, status, cfg.rewriteStatus)
	}

	logger.DebugContext(ctx, "cycle rendered", "status", buf.status, "decision", decision)
	writeResponse(w, effects, header, status, body, clientID, logger)
}

func finish(ctx context.Context, d Dispatcher, id string, logger *slog.Logger) {
	if err := d.RequestFinished(ctx, id, nil); err != nil {
		logger.WarnContext(ctx, "after-request effects failed", "error", err)
	}
}

func rewrite(h http.Header, status int, enabled bool) int {
	if !enabled || status < 400 {
		return status
	}
	h.Set(HeaderOriginalStatus, strconv.Itoa(status))
	return http.StatusOK
}

// runHandler reports whether the handler panicked. http.ErrAbortHandler is re-raised.
func runHandler(next http.Handler, w http.ResponseWriter, r *http.Request) (failed bool) {
	defer func() {
		if rec := recover(); rec != nil {
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			failed = true
		}
	}()
	next.ServeHTTP(w, r)
	return false
}

func writeResponse(w http.ResponseWriter, effects *Effects, header http.Header, status int, body []byte, id string, logger *slog.Logger) {
	dst := w.Header()
	for k, v := range header {
		dst[k] = v
	}
	dst.Set(HeaderRequestID, id)
	if err := effects.WriteHeaders(dst); err != nil {
		logger.Error("encode trigger headers", "error", err)
	}
	w.WriteHeader(status)
	if len(body) > 0 {
		if _, err := w.Write(body); err != nil {
			logger.Warn("write response body", "error", err)
		}
	}
}

// bufferedWriter holds the handler's response until the cycle has decided.
type bufferedWriter struct {
	header      http.Header
	body        bytes.Buffer
	status      int
	wroteHeader bool
}

func newBufferedWriter() *bufferedWriter {
	return &bufferedWriter{header: make(http.Header), status: http.StatusOK}
}

func (b *bufferedWriter) Header() http.Header { return b.header }

func (b *bufferedWriter) WriteHeader(status int) {
	if b.wroteHeader {
		return
	}
	b.wroteHeader = true
	b.status = status
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	if !b.wroteHeader {
		b.WriteHeader(http.StatusOK)
	}
	return b.body.Write(p)
}
