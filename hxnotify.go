package hxnotify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/hxnotify/internal/runtime"
	"github.com/aretw0/hxnotify/pkg/domain"
	"github.com/aretw0/hxnotify/pkg/ports"
)

// Version is the release of hxnotify. It is overridden at build time with -ldflags.
var Version = "v0.1.0-dev"

// Handler reacts to a lifecycle signal within its request cycle.
type Handler = runtime.Handler

// Notifier is the high-level entry point for the hxnotify library.
// It wraps the internal dispatcher and provides a simplified API for consumers.
type Notifier struct {
	dispatcher *runtime.Dispatcher

	sinks     MultiSink
	alerter   ports.Alerter
	builder   ports.ErrorModalBuilder
	document  ports.Document
	presenter ports.ErrorPresenter
	modal     *domain.ModalOptions
	fallback  string
	animation time.Duration
	hooks     []domain.LifecycleHooks
	logger    *slog.Logger

	modalRequested bool
}

// Option defines a functional option for configuring the Notifier.
type Option func(*Notifier)

// WithSink adds event sinks. Every app event is delivered to all of them in order.
func WithSink(sinks ...ports.EventSink) Option {
	return func(n *Notifier) {
		n.sinks = append(n.sinks, sinks...)
	}
}

// WithAlerter sets where alerts are shown.
func WithAlerter(a ports.Alerter) Option {
	return func(n *Notifier) {
		n.alerter = a
	}
}

// WithErrorModal presents server errors as a modal built by builder and appended to doc.
func WithErrorModal(builder ports.ErrorModalBuilder, doc ports.Document) Option {
	return func(n *Notifier) {
		n.modalRequested = true
		n.builder = builder
		n.document = doc
	}
}

// WithErrorPresenter replaces the server-error strategy.
func WithErrorPresenter(p ports.ErrorPresenter) Option {
	return func(n *Notifier) {
		n.presenter = p
	}
}

// WithModalOptions overrides the server-error message and button label.
func WithModalOptions(opts domain.ModalOptions) Option {
	return func(n *Notifier) {
		n.modal = &opts
	}
}

// WithFallbackMessage overrides the alert shown for empty transport failures.
func WithFallbackMessage(msg string) Option {
	return func(n *Notifier) {
		n.fallback = msg
	}
}

// WithAnimationDuration sets the confirm-modal entrance length.
func WithAnimationDuration(d time.Duration) Option {
	return func(n *Notifier) {
		n.animation = d
	}
}

// WithLifecycleHooks registers observability hooks. It can be given more than once.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(n *Notifier) {
		n.hooks = append(n.hooks, hooks)
	}
}

// WithLogger sets a custom structured logger for the notifier.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Notifier) {
		n.logger = logger
	}
}

// New initializes a Notifier with the built-in handlers registered.
func New(opts ...Option) (*Notifier, error) {
	n := &Notifier{}
	for _, opt := range opts {
		opt(n)
	}

	if n.modalRequested && (n.builder == nil || n.document == nil) {
		return nil, fmt.Errorf("error modal: %w", domain.ErrNoBuilder)
	}
	if n.animation < 0 {
		return nil, fmt.Errorf("animation duration must not be negative, got %s", n.animation)
	}

	// Ensure logger is initialized so the runtime default is not replaced by nil
	if n.logger == nil {
		n.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	runtimeOpts := []runtime.DispatcherOption{runtime.WithLogger(n.logger)}
	for _, h := range n.hooks {
		runtimeOpts = append(runtimeOpts, runtime.WithLifecycleHooks(h))
	}
	if n.builder != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithErrorModalBuilder(n.builder, n.document))
	}
	if n.presenter != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithErrorPresenter(n.presenter))
	}
	if n.modal != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithModalOptions(*n.modal))
	}
	if n.fallback != "" {
		runtimeOpts = append(runtimeOpts, runtime.WithFallbackMessage(n.fallback))
	}
	if n.animation > 0 {
		runtimeOpts = append(runtimeOpts, runtime.WithAnimationDuration(n.animation))
	}

	var sink ports.EventSink
	if len(n.sinks) > 0 {
		sink = n.sinks
	}
	n.dispatcher = runtime.NewDispatcher(sink, n.alerter, runtimeOpts...)
	return n, nil
}

// On registers an extra handler for kind. It runs after the built-in ones.
func (n *Notifier) On(kind domain.SignalKind, h Handler) {
	n.dispatcher.On(kind, h)
}

// Dispatch delivers a signal to every handler registered for its kind.
func (n *Notifier) Dispatch(ctx context.Context, sig *domain.Signal) error {
	return n.dispatcher.Dispatch(ctx, sig)
}

// RequestStarted signals that a request left the page.
func (n *Notifier) RequestStarted(ctx context.Context, requestID string, detail domain.Detail) error {
	return n.dispatcher.RequestStarted(ctx, requestID, detail)
}

// SwapPending decides what to do with a response before it is swapped in.
func (n *Notifier) SwapPending(ctx context.Context, requestID string, swap *domain.Swap) (domain.Decision, error) {
	return n.dispatcher.SwapPending(ctx, requestID, swap)
}

// AfterUpdate signals that the response content was swapped in.
func (n *Notifier) AfterUpdate(ctx context.Context, requestID string, detail domain.Detail) error {
	return n.dispatcher.AfterUpdate(ctx, requestID, detail)
}

// RequestFinished closes the request cycle.
func (n *Notifier) RequestFinished(ctx context.Context, requestID string, detail domain.Detail) error {
	return n.dispatcher.RequestFinished(ctx, requestID, detail)
}

// RequestErrored reports a transport-level failure with the raw response body.
func (n *Notifier) RequestErrored(ctx context.Context, requestID, body string) error {
	return n.dispatcher.RequestErrored(ctx, requestID, body)
}

// Cycle returns a copy of the open cycle of requestID.
func (n *Notifier) Cycle(requestID string) (domain.Cycle, bool) {
	return n.dispatcher.Cycle(requestID)
}

// InFlight reports how many request cycles are open.
func (n *Notifier) InFlight() int {
	return n.dispatcher.InFlight()
}

// MultiSink fans an event out to several sinks. Every sink is tried; failures are joined.
type MultiSink []ports.EventSink

// Emit delivers evt to each sink in order.
func (m MultiSink) Emit(ctx context.Context, evt domain.AppEvent) error {
	var errs []error
	for _, s := range m {
		if err := s.Emit(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var _ ports.EventSink = MultiSink(nil)
