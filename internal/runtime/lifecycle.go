package runtime

import (
	"context"

	"github.com/aretw0/hxnotify/pkg/domain"
)

// RequestStarted dispatches a before-request signal.
func (d *Dispatcher) RequestStarted(ctx context.Context, requestID string, detail domain.Detail) error {
	return d.Dispatch(ctx, domain.NewSignal(domain.SignalBeforeRequest, requestID, detail))
}

// SwapPending dispatches a before-swap signal and returns the decision taken for it.
// The swap is updated in place (Target, ShouldSwap).
func (d *Dispatcher) SwapPending(ctx context.Context, requestID string, swap *domain.Swap) (domain.Decision, error) {
	sig := domain.NewSignal(domain.SignalBeforeSwap, requestID, nil)
	sig.Swap = swap
	return d.dispatch(ctx, sig)
}

// AfterUpdate dispatches an after-swap signal.
func (d *Dispatcher) AfterUpdate(ctx context.Context, requestID string, detail domain.Detail) error {
	return d.Dispatch(ctx, domain.NewSignal(domain.SignalAfterSwap, requestID, detail))
}

// RequestFinished dispatches an after-request signal, closing the cycle.
func (d *Dispatcher) RequestFinished(ctx context.Context, requestID string, detail domain.Detail) error {
	return d.Dispatch(ctx, domain.NewSignal(domain.SignalAfterRequest, requestID, detail))
}

// RequestErrored dispatches a response-error signal with the raw response body.
func (d *Dispatcher) RequestErrored(ctx context.Context, requestID, body string) error {
	sig := domain.NewSignal(domain.SignalResponseError, requestID, nil)
	sig.Body = body
	return d.Dispatch(ctx, sig)
}
