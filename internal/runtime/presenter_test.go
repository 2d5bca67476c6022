package runtime

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/hxnotify/pkg/adapters/memory"
	"github.com/aretw0/hxnotify/pkg/domain"
	"github.com/aretw0/hxnotify/pkg/ports"
	"github.com/stretchr/testify/assert"
)

type brokenDocument struct{}

func (brokenDocument) AppendHTML(ctx context.Context, fragment string) error {
	return errors.New("body detached")
}

func TestModalPresenter(t *testing.T) {
	ctx := context.Background()
	opts := domain.DefaultModalOptions()
	builder := ports.ErrorModalBuilderFunc(func(ctx context.Context, o domain.ModalOptions) (string, error) {
		return "<dialog>" + o.Message + "</dialog>", nil
	})

	t.Run("NoBuilderFallsBack", func(t *testing.T) {
		rec := memory.NewRecorder()
		p := ModalPresenter{Document: rec, Fallback: rec}
		assert.ErrorIs(t, p.PresentError(ctx, opts), domain.ErrNoBuilder)
		assert.Equal(t, []string{opts.Message}, rec.Alerts())
	})

	t.Run("InsertFailureFallsBack", func(t *testing.T) {
		rec := memory.NewRecorder()
		p := ModalPresenter{Builder: builder, Document: brokenDocument{}, Fallback: rec}
		err := p.PresentError(ctx, opts)
		assert.ErrorContains(t, err, "body detached")
		assert.Len(t, rec.Alerts(), 1)
	})

	t.Run("Appends", func(t *testing.T) {
		rec := memory.NewRecorder()
		p := ModalPresenter{Builder: builder, Document: rec, Fallback: rec}
		assert.NoError(t, p.PresentError(ctx, opts))
		assert.Equal(t, []string{"<dialog>" + opts.Message + "</dialog>"}, rec.Fragments())
		assert.Empty(t, rec.Alerts())
	})
}

func TestAlertPresenter(t *testing.T) {
	rec := memory.NewRecorder()
	p := AlertPresenter{Alerter: rec}
	assert.NoError(t, p.PresentError(context.Background(), domain.ModalOptions{Message: "m"}))
	assert.Equal(t, []string{"m"}, rec.Alerts())
}

func TestBus_SnapshotIsolation(t *testing.T) {
	b := NewBus()
	noop := func(ctx context.Context, sig *domain.Signal, c *domain.Cycle) error { return nil }
	b.On(domain.SignalAfterSwap, noop)

	snapshot := b.Handlers(domain.SignalAfterSwap)
	b.On(domain.SignalAfterSwap, noop)

	assert.Len(t, snapshot, 1)
	assert.Equal(t, 2, b.Len(domain.SignalAfterSwap))
	assert.Zero(t, b.Len(domain.SignalBeforeRequest))
}

func TestFallbackText(t *testing.T) {
	assert.Equal(t, "fb", fallbackText("", "fb"))
	assert.Equal(t, "fb", fallbackText("\n\t", "fb"))
	assert.Equal(t, "body", fallbackText("body", "fb"))
}
