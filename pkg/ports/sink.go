package ports

import (
	"context"

	"github.com/aretw0/hxnotify/pkg/domain"
)

// EventSink delivers application-level events to their listeners.
type EventSink interface {
	Emit(ctx context.Context, evt domain.AppEvent) error
}

// Document receives markup inserted at the end of the page body.
type Document interface {
	AppendHTML(ctx context.Context, fragment string) error
}

// Alerter shows a blocking alert. On a browser host it stops the UI until dismissed.
type Alerter interface {
	Alert(ctx context.Context, message string) error
}

// ErrorModalBuilder builds the markup of the server-error modal.
type ErrorModalBuilder interface {
	BuildErrorModal(ctx context.Context, opts domain.ModalOptions) (string, error)
}

// ErrorModalBuilderFunc adapts a function to ErrorModalBuilder.
type ErrorModalBuilderFunc func(ctx context.Context, opts domain.ModalOptions) (string, error)

// BuildErrorModal calls f.
func (f ErrorModalBuilderFunc) BuildErrorModal(ctx context.Context, opts domain.ModalOptions) (string, error) {
	return f(ctx, opts)
}

// ErrorPresenter decides how a server error reaches the user.
type ErrorPresenter interface {
	PresentError(ctx context.Context, opts domain.ModalOptions) error
}
