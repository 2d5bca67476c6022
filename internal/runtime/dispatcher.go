package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/hxnotify/internal/logging"
	"github.com/aretw0/hxnotify/pkg/domain"
	"github.com/aretw0/hxnotify/pkg/ports"
)

// Dispatcher translates request-lifecycle signals into user-visible feedback.
// Signals are consumed synchronously on the caller's goroutine.
type Dispatcher struct {
	bus       *Bus
	sink      ports.EventSink
	alerter   ports.Alerter
	builder   ports.ErrorModalBuilder
	document  ports.Document
	presenter ports.ErrorPresenter
	hooks     hookSet
	logger    *slog.Logger

	modal           domain.ModalOptions
	fallbackMessage string
	animation       time.Duration

	mu     sync.Mutex
	cycles map[string]*domain.Cycle
}

// NewDispatcher creates a dispatcher with the built-in handlers registered first.
// Server errors are alerted unless a modal builder or presenter is configured.
func NewDispatcher(sink ports.EventSink, alerter ports.Alerter, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		bus:             NewBus(),
		sink:            sink,
		logger:          logging.NewNop(),
		modal:           domain.DefaultModalOptions(),
		fallbackMessage: domain.DefaultErrorMessage,
		animation:       domain.DefaultAnimationDuration,
		cycles:          make(map[string]*domain.Cycle),
	}

	for _, opt := range opts {
		opt(d)
	}

	d.alerter = &hookedAlerter{next: alerter, d: d}
	if d.presenter == nil {
		if d.builder != nil {
			d.presenter = ModalPresenter{Builder: d.builder, Document: d.document, Fallback: d.alerter}
		} else {
			d.presenter = AlertPresenter{Alerter: d.alerter}
		}
	}

	d.bus.On(domain.SignalBeforeRequest, d.onRequestStarted)
	d.bus.On(domain.SignalBeforeSwap, d.onSwapPending)
	d.bus.On(domain.SignalAfterSwap, d.onAfterUpdate)
	d.bus.On(domain.SignalAfterRequest, d.onRequestFinished)
	d.bus.On(domain.SignalResponseError, d.onRequestErrored)

	return d
}

// On registers an extra handler. It runs after the handlers registered before it.
func (d *Dispatcher) On(kind domain.SignalKind, h Handler) {
	d.bus.On(kind, h)
}

// Dispatch consumes a signal. Effects are best-effort: every handler runs even when a
// previous one failed, and their errors are joined for diagnostics only.
func (d *Dispatcher) Dispatch(ctx context.Context, sig *domain.Signal) error {
	_, err := d.dispatch(ctx, sig)
	return err
}

// dispatch returns the decision held by the signal's cycle once its handlers ran.
func (d *Dispatcher) dispatch(ctx context.Context, sig *domain.Signal) (domain.Decision, error) {
	if !sig.Kind.Valid() {
		return domain.DecisionNone, fmt.Errorf("%w: %q", domain.ErrUnknownSignal, sig.Kind)
	}
	if !sig.MarkConsumed() {
		return domain.DecisionNone, fmt.Errorf("%w: %s for request %s", domain.ErrSignalConsumed, sig.Kind, sig.RequestID)
	}

	d.hooks.signal(ctx, sig)
	cycle := d.cycle(sig)

	var errs []error
	for _, h := range d.bus.Handlers(sig.Kind) {
		if err := h(ctx, sig, cycle); err != nil {
			d.logger.WarnContext(ctx, "signal effect failed", "signal", sig.Kind, "request_id", sig.RequestID, "error", err)
			d.hooks.effectError(ctx, sig.Kind, err)
			errs = append(errs, err)
		}
	}

	if sig.Kind == domain.SignalAfterRequest {
		d.forget(sig.RequestID)
	}

	return cycle.Decision, errors.Join(errs...)
}

// Cycle returns a copy of the in-flight cycle of a request.
func (d *Dispatcher) Cycle(requestID string) (domain.Cycle, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.cycles[requestID]
	if !ok {
		return domain.Cycle{}, false
	}
	return *c, true
}

// InFlight returns the number of requests whose finish signal has not arrived.
func (d *Dispatcher) InFlight() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.cycles)
}

// cycle returns the request's cycle. Transport failures do not open one, so a
// response-error without a matching after-request leaves nothing behind.
func (d *Dispatcher) cycle(sig *domain.Signal) *domain.Cycle {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.cycles[sig.RequestID]
	if ok {
		return c
	}
	c = &domain.Cycle{RequestID: sig.RequestID}
	if sig.Kind != domain.SignalResponseError {
		d.cycles[sig.RequestID] = c
	}
	return c
}

func (d *Dispatcher) forget(requestID string) {
	d.mu.Lock()
	delete(d.cycles, requestID)
	d.mu.Unlock()
}

func (d *Dispatcher) emit(ctx context.Context, evt domain.AppEvent) error {
	d.hooks.event(ctx, evt)
	if d.sink == nil {
		return nil
	}
	if err := d.sink.Emit(ctx, evt); err != nil {
		return fmt.Errorf("emit %s: %w", evt.Name, err)
	}
	return nil
}

// hookedAlerter reports every alert to the lifecycle hooks, whoever triggers it.
type hookedAlerter struct {
	next ports.Alerter
	d    *Dispatcher
}

func (a *hookedAlerter) Alert(ctx context.Context, msg string) error {
	a.d.hooks.alert(ctx, msg)
	a.d.logger.InfoContext(ctx, "alert shown", "message", msg)
	if a.next == nil {
		return nil
	}
	return a.next.Alert(ctx, msg)
}

func fallbackText(body, fallback string) string {
	if strings.TrimSpace(body) == "" {
		return fallback
	}
	return body
}
