package runtime

import (
	"context"
	"errors"

	"github.com/aretw0/hxnotify/pkg/domain"
)

var errMissingSwap = errors.New("before-swap signal without swap context")

func (d *Dispatcher) onRequestStarted(ctx context.Context, sig *domain.Signal, _ *domain.Cycle) error {
	return d.emit(ctx, domain.NewAppEvent(domain.EventStartLoading, sig.RequestID))
}

// onRequestFinished is vetoed when the cycle redirected into the modal, or when an
// earlier handler of the transport armed stopFinishEvt on the bag itself.
func (d *Dispatcher) onRequestFinished(ctx context.Context, sig *domain.Signal, cycle *domain.Cycle) error {
	flags, err := sig.Detail.Flags()
	if err != nil {
		return err
	}
	if cycle.Decision.StopFinish() || flags.StopFinishEvt {
		d.logger.DebugContext(ctx, "finish event suppressed", "request_id", sig.RequestID, "decision", cycle.Decision)
		return nil
	}
	if err := d.emit(ctx, domain.NewAppEvent(domain.EventFinishLoading, sig.RequestID)); err != nil {
		return err
	}
	cycle.FinishEmitted = true
	return nil
}

func (d *Dispatcher) onSwapPending(ctx context.Context, sig *domain.Signal, cycle *domain.Cycle) error {
	swap := sig.Swap
	if swap == nil {
		return errMissingSwap
	}
	if err := swap.Status.Validate(); err != nil {
		return err
	}

	decision := domain.Decide(swap)
	cycle.Decision = decision
	d.hooks.decision(ctx, swap, decision)
	d.logger.DebugContext(ctx, "swap decided",
		"request_id", sig.RequestID,
		"status", int(swap.Status),
		"band", swap.Status.Band(),
		"decision", decision,
		"target", swap.Target,
	)

	if decision == domain.DecisionShowError {
		return d.presenter.PresentError(ctx, d.modal)
	}
	return nil
}

func (d *Dispatcher) onAfterUpdate(ctx context.Context, sig *domain.Signal, cycle *domain.Cycle) error {
	flags, err := sig.Detail.Flags()
	if err != nil {
		return err
	}
	if !cycle.Decision.AnimateConfirmModal() && !flags.AnimateConfirmModal {
		return nil
	}

	evt := domain.NewAppEvent(domain.EventFinishLoading, sig.RequestID)
	evt.Detail[domain.KeyNextTween] = domain.NewConfirmModalTimeline(d.animation)
	if err := d.emit(ctx, evt); err != nil {
		return err
	}
	cycle.FinishEmitted = true
	return nil
}

func (d *Dispatcher) onRequestErrored(ctx context.Context, sig *domain.Signal, _ *domain.Cycle) error {
	return d.alerter.Alert(ctx, fallbackText(sig.Body, d.fallbackMessage))
}
