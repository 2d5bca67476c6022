package domain

import (
	"context"
	"time"
)

// EventName is the name of an application-level event.
type EventName string

const (
	EventStartLoading  EventName = "start-loading"
	EventFinishLoading EventName = "finish-loading"
)

// AppEvent is emitted for loading indicators and modal animations.
type AppEvent struct {
	Name      EventName `json:"name"`
	RequestID string    `json:"request_id,omitempty"`
	Detail    Detail    `json:"detail"`
	Timestamp time.Time `json:"timestamp"`
}

// NewAppEvent builds an event whose detail always carries keepModalOpen.
func NewAppEvent(name EventName, requestID string) AppEvent {
	return AppEvent{
		Name:      name,
		RequestID: requestID,
		Detail:    Detail{KeyKeepModalOpen: true},
		Timestamp: time.Now(),
	}
}

// Tween returns the animation handle carried by the event, if any.
func (e AppEvent) Tween() (*Timeline, bool) {
	t, ok := e.Detail[KeyNextTween].(*Timeline)
	return t, ok
}

// ModalOptions are the arguments of an error modal builder.
type ModalOptions struct {
	Message  string `json:"message"`
	BtnLabel string `json:"btnLabel"`
}

// DefaultModalOptions returns the fixed server-error message and label.
func DefaultModalOptions() ModalOptions {
	return ModalOptions{Message: DefaultErrorMessage, BtnLabel: DefaultButtonLabel}
}

// LifecycleHooks defines callbacks for dispatcher observability.
type LifecycleHooks struct {
	OnSignal      func(context.Context, *Signal)
	OnDecision    func(context.Context, *Swap, Decision)
	OnEvent       func(context.Context, AppEvent)
	OnAlert       func(context.Context, string)
	OnEffectError func(context.Context, SignalKind, error)
}
