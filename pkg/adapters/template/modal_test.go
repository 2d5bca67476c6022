package template

import (
	"context"
	"testing"

	"github.com/aretw0/hxnotify/pkg/domain"
	"github.com/aretw0/hxnotify/pkg/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModalBuilder_Default(t *testing.T) {
	b, err := NewModalBuilder()
	require.NoError(t, err)

	html, err := b.BuildErrorModal(context.Background(), domain.DefaultModalOptions())
	require.NoError(t, err)

	assert.Contains(t, html, domain.DefaultErrorMessage)
	assert.Contains(t, html, ">"+domain.DefaultButtonLabel+"<")
	assert.Contains(t, html, "data-confirm-modal-card")
	assert.Contains(t, html, "#BE3CC7")
}

func TestModalBuilder_EscapesMessage(t *testing.T) {
	b, err := NewModalBuilder()
	require.NoError(t, err)

	html, err := b.BuildErrorModal(context.Background(), domain.ModalOptions{
		Message:  `<script>alert(1)</script>`,
		BtnLabel: "Ok",
	})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestModalBuilder_CustomTemplateAndTheme(t *testing.T) {
	th := theme.Default()
	th.Colors["primary-500"] = "#010203"

	b, err := NewModalBuilder(
		WithTheme(th),
		WithTemplate(`<p style="color: {{.Button}}">{{.Message}}|{{.BtnLabel}}</p>`),
	)
	require.NoError(t, err)

	html, err := b.BuildErrorModal(context.Background(), domain.ModalOptions{Message: "m", BtnLabel: "b"})
	require.NoError(t, err)
	assert.Equal(t, `<p style="color: #010203">m|b</p>`, html)
}

func TestModalBuilder_BadTemplate(t *testing.T) {
	_, err := NewModalBuilder(WithTemplate("{{.Message"))
	assert.ErrorContains(t, err, "parse modal template")
}

func TestModalBuilder_CanceledContext(t *testing.T) {
	b, err := NewModalBuilder()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = b.BuildErrorModal(ctx, domain.DefaultModalOptions())
	assert.ErrorIs(t, err, context.Canceled)
}
