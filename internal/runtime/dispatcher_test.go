package runtime_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/hxnotify/internal/runtime"
	"github.com/aretw0/hxnotify/pkg/adapters/memory"
	"github.com/aretw0/hxnotify/pkg/domain"
	"github.com/aretw0/hxnotify/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDispatcher(t *testing.T, opts ...runtime.DispatcherOption) (*runtime.Dispatcher, *memory.Recorder) {
	t.Helper()
	rec := memory.NewRecorder()
	return runtime.NewDispatcher(rec, rec, opts...), rec
}

// runCycle feeds a full request lifecycle and returns the swap as the dispatcher left it.
func runCycle(t *testing.T, d *runtime.Dispatcher, id string, status domain.Status, retarget string) (*domain.Swap, domain.Decision) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, d.RequestStarted(ctx, id, nil))
	swap := domain.NewSwap(status, retarget, "#results")
	decision, err := d.SwapPending(ctx, id, swap)
	require.NoError(t, err)
	require.NoError(t, d.AfterUpdate(ctx, id, nil))
	require.NoError(t, d.RequestFinished(ctx, id, nil))
	return swap, decision
}

func TestDispatcher_RequestStarted_EmitsStartLoading(t *testing.T) {
	d, rec := newDispatcher(t)

	require.NoError(t, d.RequestStarted(context.Background(), "r1", nil))

	events := rec.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventStartLoading, events[0].Name)
	assert.True(t, events[0].Detail.Bool(domain.KeyKeepModalOpen))
}

func TestDispatcher_SuccessStatuses_Proceed(t *testing.T) {
	for _, status := range []domain.Status{200, 201, 204, 302, 399} {
		d, rec := newDispatcher(t)

		swap, decision := runCycle(t, d, "ok", status, "")

		assert.Equal(t, domain.DecisionProceed, decision, status)
		assert.Equal(t, "#results", swap.Target, status)
		assert.True(t, swap.ShouldSwap, status)

		finish := rec.EventsNamed(domain.EventFinishLoading)
		require.Len(t, finish, 1, status)
		assert.True(t, finish[0].Detail.Bool(domain.KeyKeepModalOpen))
		_, hasTween := finish[0].Tween()
		assert.False(t, hasTween)
		assert.Empty(t, rec.Fragments())
		assert.Empty(t, rec.Alerts())
	}
}

func TestDispatcher_ClientError_RedirectsToModal(t *testing.T) {
	for _, status := range []domain.Status{400, 404, 422, 499} {
		d, rec := newDispatcher(t)
		ctx := context.Background()

		require.NoError(t, d.RequestStarted(ctx, "c", nil))
		swap := domain.NewSwap(status, "", "#form")
		decision, err := d.SwapPending(ctx, "c", swap)
		require.NoError(t, err)

		assert.Equal(t, domain.DecisionRedirectToModal, decision)
		assert.Equal(t, domain.ModalWrapperSelector, swap.Target)
		assert.True(t, swap.ShouldSwap)

		cycle, ok := d.Cycle("c")
		require.True(t, ok)
		flags := cycle.Flags()
		assert.True(t, flags.StopFinishEvt)
		assert.True(t, flags.AnimateConfirmModal)

		require.NoError(t, d.RequestFinished(ctx, "c", nil))
		assert.Empty(t, rec.EventsNamed(domain.EventFinishLoading), "finish handler must stay silent")
	}
}

func TestDispatcher_ClientError_WithRetarget_LeavesSwap(t *testing.T) {
	d, rec := newDispatcher(t)

	swap, decision := runCycle(t, d, "rt", 422, "#form-errors")

	assert.Equal(t, domain.DecisionProceed, decision)
	assert.Equal(t, "#results", swap.Target)
	assert.True(t, swap.ShouldSwap)
	require.Len(t, rec.EventsNamed(domain.EventFinishLoading), 1)
}

func TestDispatcher_AfterUpdate_EmitsPausedTimeline(t *testing.T) {
	d, rec := newDispatcher(t)

	runCycle(t, d, "anim", 422, "")

	finish := rec.EventsNamed(domain.EventFinishLoading)
	require.Len(t, finish, 1, "only the animated finish goes out")
	tl, ok := finish[0].Tween()
	require.True(t, ok)
	assert.Equal(t, domain.TimelinePaused, tl.State())
	assert.Equal(t, domain.DefaultAnimationDuration, tl.Duration)
	require.Len(t, tl.Tweens, 2)
	assert.Equal(t, "opacity", tl.Tweens[0].Property)
	assert.Equal(t, "scale", tl.Tweens[1].Property)
	assert.True(t, finish[0].Detail.Bool(domain.KeyKeepModalOpen))
}

func TestDispatcher_ServerError_WithBuilder(t *testing.T) {
	var calls []domain.ModalOptions
	builder := ports.ErrorModalBuilderFunc(func(ctx context.Context, opts domain.ModalOptions) (string, error) {
		calls = append(calls, opts)
		return `<div id="error-modal">` + opts.Message + `</div>`, nil
	})
	rec := memory.NewRecorder()
	d := runtime.NewDispatcher(rec, rec, runtime.WithErrorModalBuilder(builder, rec))

	swap, decision := runCycle(t, d, "boom", 503, "")

	assert.Equal(t, domain.DecisionShowError, decision)
	assert.False(t, swap.ShouldSwap, "server errors keep the default no-swap")
	assert.Equal(t, "#results", swap.Target)
	require.Len(t, calls, 1)
	assert.Equal(t, domain.DefaultModalOptions(), calls[0])
	require.Len(t, rec.Fragments(), 1)
	assert.Contains(t, rec.Fragments()[0], domain.DefaultErrorMessage)
	assert.Empty(t, rec.Alerts())
}

func TestDispatcher_ServerError_WithoutBuilder_Alerts(t *testing.T) {
	for _, status := range []domain.Status{500, 502, 599, 1000} {
		d, rec := newDispatcher(t)

		_, decision := runCycle(t, d, "boom", status, "")

		assert.Equal(t, domain.DecisionShowError, decision)
		assert.Equal(t, []string{domain.DefaultErrorMessage}, rec.Alerts())
		assert.Empty(t, rec.Fragments())
	}
}

func TestDispatcher_ServerError_BuilderFailureDegrades(t *testing.T) {
	failing := ports.ErrorModalBuilderFunc(func(ctx context.Context, opts domain.ModalOptions) (string, error) {
		return "", errors.New("template missing")
	})
	rec := memory.NewRecorder()
	d := runtime.NewDispatcher(rec, rec, runtime.WithErrorModalBuilder(failing, rec))

	_, err := d.SwapPending(context.Background(), "x", domain.NewSwap(500, "", "#t"))

	assert.ErrorContains(t, err, "template missing")
	assert.Equal(t, []string{domain.DefaultErrorMessage}, rec.Alerts())
	assert.Empty(t, rec.Fragments())
}

func TestDispatcher_RequestErrored(t *testing.T) {
	t.Run("EmptyBodyUsesFallback", func(t *testing.T) {
		d, rec := newDispatcher(t)
		require.NoError(t, d.RequestErrored(context.Background(), "e", ""))
		assert.Equal(t, []string{domain.DefaultErrorMessage}, rec.Alerts())
		assert.Zero(t, d.InFlight())
	})

	t.Run("BodyIsShown", func(t *testing.T) {
		d, rec := newDispatcher(t)
		require.NoError(t, d.RequestErrored(context.Background(), "e", "Sin conexión"))
		assert.Equal(t, []string{"Sin conexión"}, rec.Alerts())
	})

	t.Run("CustomFallback", func(t *testing.T) {
		d, rec := newDispatcher(t, runtime.WithFallbackMessage("offline"))
		require.NoError(t, d.RequestErrored(context.Background(), "e", "  "))
		assert.Equal(t, []string{"offline"}, rec.Alerts())
	})
}

func TestDispatcher_StopFinishEvtOnDetail(t *testing.T) {
	d, rec := newDispatcher(t)

	err := d.RequestFinished(context.Background(), "v", domain.Detail{domain.KeyStopFinishEvt: true})

	require.NoError(t, err)
	assert.Empty(t, rec.Events())
}

func TestDispatcher_SignalConsumedOnce(t *testing.T) {
	d, rec := newDispatcher(t)
	sig := domain.NewSignal(domain.SignalBeforeRequest, "once", nil)

	require.NoError(t, d.Dispatch(context.Background(), sig))
	err := d.Dispatch(context.Background(), sig)

	assert.ErrorIs(t, err, domain.ErrSignalConsumed)
	assert.Len(t, rec.Events(), 1)
}

func TestDispatcher_UnknownSignal(t *testing.T) {
	d, _ := newDispatcher(t)
	err := d.Dispatch(context.Background(), domain.NewSignal("htmx:load", "", nil))
	assert.ErrorIs(t, err, domain.ErrUnknownSignal)
}

func TestDispatcher_InvalidStatus(t *testing.T) {
	d, rec := newDispatcher(t)
	_, err := d.SwapPending(context.Background(), "bad", domain.NewSwap(42, "", "#t"))
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	assert.Empty(t, rec.Alerts())
}

func TestDispatcher_MissingSwap(t *testing.T) {
	d, _ := newDispatcher(t)
	err := d.Dispatch(context.Background(), domain.NewSignal(domain.SignalBeforeSwap, "s", nil))
	assert.Error(t, err)
}

func TestDispatcher_HandlersRunInRegistrationOrder(t *testing.T) {
	d, rec := newDispatcher(t)
	var order []string

	d.On(domain.SignalBeforeRequest, func(ctx context.Context, sig *domain.Signal, c *domain.Cycle) error {
		order = append(order, "first:"+string(rec.Events()[0].Name))
		return nil
	})
	d.On(domain.SignalBeforeRequest, func(ctx context.Context, sig *domain.Signal, c *domain.Cycle) error {
		order = append(order, "second")
		return nil
	})

	require.NoError(t, d.RequestStarted(context.Background(), "o", nil))
	assert.Equal(t, []string{"first:start-loading", "second"}, order)
}

func TestDispatcher_FailingHandlerDoesNotStopOthers(t *testing.T) {
	var effectErrs int
	d2, _ := newDispatcher(t, runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnEffectError: func(ctx context.Context, kind domain.SignalKind, err error) { effectErrs++ },
	}))

	d2.On(domain.SignalBeforeRequest, func(ctx context.Context, sig *domain.Signal, c *domain.Cycle) error {
		return errors.New("spinner offline")
	})
	ran := false
	d2.On(domain.SignalBeforeRequest, func(ctx context.Context, sig *domain.Signal, c *domain.Cycle) error {
		ran = true
		return nil
	})

	err := d2.RequestStarted(context.Background(), "f", nil)
	assert.ErrorContains(t, err, "spinner offline")
	assert.True(t, ran)
	assert.Equal(t, 1, effectErrs)
}

func TestDispatcher_CycleDroppedAfterFinish(t *testing.T) {
	d, _ := newDispatcher(t)

	runCycle(t, d, "gone", 422, "")

	_, ok := d.Cycle("gone")
	assert.False(t, ok)
	assert.Zero(t, d.InFlight())
}

func TestDispatcher_DetailIsNotMutated(t *testing.T) {
	d, _ := newDispatcher(t)
	detail := domain.Detail{"custom": 1}
	sig := domain.NewSignal(domain.SignalAfterSwap, "m", detail)

	require.NoError(t, d.Dispatch(context.Background(), sig))
	assert.Equal(t, domain.Detail{"custom": 1}, sig.Detail)
}

func TestDispatcher_Hooks(t *testing.T) {
	var signals []domain.SignalKind
	var decisions []domain.Decision
	var events []domain.EventName
	var alerts []string

	d, _ := newDispatcher(t, runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnSignal:   func(ctx context.Context, s *domain.Signal) { signals = append(signals, s.Kind) },
		OnDecision: func(ctx context.Context, s *domain.Swap, dec domain.Decision) { decisions = append(decisions, dec) },
		OnEvent:    func(ctx context.Context, e domain.AppEvent) { events = append(events, e.Name) },
		OnAlert:    func(ctx context.Context, msg string) { alerts = append(alerts, msg) },
	}))

	runCycle(t, d, "h", 500, "")

	assert.Equal(t, []domain.SignalKind{
		domain.SignalBeforeRequest, domain.SignalBeforeSwap, domain.SignalAfterSwap, domain.SignalAfterRequest,
	}, signals)
	assert.Equal(t, []domain.Decision{domain.DecisionShowError}, decisions)
	assert.Equal(t, []domain.EventName{domain.EventStartLoading, domain.EventFinishLoading}, events)
	assert.Equal(t, []string{domain.DefaultErrorMessage}, alerts)
}

func TestDispatcher_NilSinkAndAlerter(t *testing.T) {
	d := runtime.NewDispatcher(nil, nil)
	_, decision := runCycle(t, d, "nil", 500, "")
	assert.Equal(t, domain.DecisionShowError, decision)
}

func TestDispatcher_SwapPendingReturnsOwnDecision(t *testing.T) {
	d, _ := newDispatcher(t)
	ctx := context.Background()

	// Another caller closes the same request id while the before-swap handlers run.
	d.On(domain.SignalBeforeSwap, func(ctx context.Context, sig *domain.Signal, c *domain.Cycle) error {
		return d.RequestFinished(ctx, sig.RequestID, nil)
	})

	require.NoError(t, d.RequestStarted(ctx, "dup", nil))
	decision, err := d.SwapPending(ctx, "dup", domain.NewSwap(422, "", "#form"))
	require.NoError(t, err)

	assert.Equal(t, domain.DecisionRedirectToModal, decision)
	assert.Zero(t, d.InFlight())
}
