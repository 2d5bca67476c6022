package runtime

import (
	"log/slog"
	"time"

	"github.com/aretw0/hxnotify/pkg/domain"
	"github.com/aretw0/hxnotify/pkg/ports"
)

// DispatcherOption defines a functional option for configuring the Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithLifecycleHooks adds observability hooks. Hooks run in the order they were added.
func WithLifecycleHooks(hooks domain.LifecycleHooks) DispatcherOption {
	return func(d *Dispatcher) {
		d.hooks = append(d.hooks, hooks)
	}
}

// WithErrorModalBuilder presents server errors as a modal appended to doc.
func WithErrorModalBuilder(builder ports.ErrorModalBuilder, doc ports.Document) DispatcherOption {
	return func(d *Dispatcher) {
		d.builder = builder
		d.document = doc
	}
}

// WithErrorPresenter replaces the server-error strategy entirely.
func WithErrorPresenter(p ports.ErrorPresenter) DispatcherOption {
	return func(d *Dispatcher) {
		d.presenter = p
	}
}

// WithModalOptions overrides the server-error message and button label.
func WithModalOptions(opts domain.ModalOptions) DispatcherOption {
	return func(d *Dispatcher) {
		d.modal = opts
	}
}

// WithFallbackMessage overrides the alert text of empty transport failures.
func WithFallbackMessage(msg string) DispatcherOption {
	return func(d *Dispatcher) {
		d.fallbackMessage = msg
	}
}

// WithAnimationDuration sets the length of the confirm-modal entrance.
func WithAnimationDuration(dur time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		d.animation = dur
	}
}
