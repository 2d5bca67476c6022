package template

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/aretw0/hxnotify/pkg/domain"
	"github.com/aretw0/hxnotify/pkg/ports"
	"github.com/aretw0/hxnotify/pkg/theme"
)

// DefaultModalTemplate renders the server-error modal. It reuses the confirm-modal
// data attributes so the same entrance animation applies.
const DefaultModalTemplate = `<div class="fixed inset-0 z-50 flex items-center justify-center" data-confirm-modal data-error-modal style="background-color: {{.Overlay}}cc">
  <div class="rounded-lg p-6 shadow-xl" data-confirm-modal-card style="background-color: #ffffff; border-top: 4px solid {{.Accent}}">
    <p class="mb-4" style="color: {{.Text}}">{{.Message}}</p>
    <button type="button" class="rounded px-4 py-2" style="background-color: {{.Button}}; color: #ffffff" onclick="this.closest('[data-error-modal]').remove()">{{.BtnLabel}}</button>
  </div>
</div>`

type modalData struct {
	Message  string
	BtnLabel string
	Overlay  template.CSS
	Accent   template.CSS
	Text     template.CSS
	Button   template.CSS
}

// ModalBuilder implements ports.ErrorModalBuilder with html/template.
type ModalBuilder struct {
	tmpl  *template.Template
	theme theme.Theme
}

var _ ports.ErrorModalBuilder = (*ModalBuilder)(nil)

// Option configures a ModalBuilder.
type Option func(*ModalBuilder) error

// WithTheme sets the palette the modal is coloured with.
func WithTheme(t theme.Theme) Option {
	return func(b *ModalBuilder) error {
		b.theme = t
		return nil
	}
}

// WithTemplate replaces the modal markup. The template receives Message, BtnLabel and
// the colours Overlay, Accent, Text and Button.
func WithTemplate(text string) Option {
	return func(b *ModalBuilder) error {
		t, err := template.New("error-modal").Parse(text)
		if err != nil {
			return fmt.Errorf("parse modal template: %w", err)
		}
		b.tmpl = t
		return nil
	}
}

// NewModalBuilder creates a builder with the default template and palette.
func NewModalBuilder(opts ...Option) (*ModalBuilder, error) {
	b := &ModalBuilder{
		tmpl:  template.Must(template.New("error-modal").Parse(DefaultModalTemplate)),
		theme: theme.Default(),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// BuildErrorModal renders the fragment. Message and label are HTML-escaped.
func (b *ModalBuilder) BuildErrorModal(ctx context.Context, opts domain.ModalOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data := modalData{
		Message:  opts.Message,
		BtnLabel: opts.BtnLabel,
		Overlay:  template.CSS(b.theme.MustColor("primary-900")),
		Accent:   template.CSS(b.theme.MustColor("secondary-500")),
		Text:     template.CSS(b.theme.MustColor("primary-800")),
		Button:   template.CSS(b.theme.MustColor("primary-500")),
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render modal: %w", err)
	}
	return buf.String(), nil
}
