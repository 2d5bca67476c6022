package runtime

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/hxnotify/pkg/domain"
	"github.com/aretw0/hxnotify/pkg/ports"
)

// AlertPresenter shows server errors as a blocking alert. It is the default strategy.
type AlertPresenter struct {
	Alerter ports.Alerter
}

// PresentError alerts the modal message.
func (p AlertPresenter) PresentError(ctx context.Context, opts domain.ModalOptions) error {
	return p.Alerter.Alert(ctx, opts.Message)
}

// ModalPresenter builds an error modal and appends it to the document.
// Without a builder, or when building or inserting fails, it degrades to Fallback
// and reports why.
type ModalPresenter struct {
	Builder  ports.ErrorModalBuilder
	Document ports.Document
	Fallback ports.Alerter
}

// PresentError shows the modal, or exactly one fallback alert.
// Errors of the modal path are returned after the fallback ran.
func (p ModalPresenter) PresentError(ctx context.Context, opts domain.ModalOptions) error {
	if p.Builder == nil || p.Document == nil {
		return errors.Join(domain.ErrNoBuilder, p.Fallback.Alert(ctx, opts.Message))
	}

	fragment, err := p.Builder.BuildErrorModal(ctx, opts)
	if err != nil {
		return errors.Join(fmt.Errorf("build error modal: %w", err), p.Fallback.Alert(ctx, opts.Message))
	}

	if err := p.Document.AppendHTML(ctx, fragment); err != nil {
		return errors.Join(fmt.Errorf("insert error modal: %w", err), p.Fallback.Alert(ctx, opts.Message))
	}
	return nil
}

var (
	_ ports.ErrorPresenter = AlertPresenter{}
	_ ports.ErrorPresenter = ModalPresenter{}
)
