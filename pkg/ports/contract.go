package ports

import (
	"context"
	"testing"

	"github.com/aretw0/hxnotify/pkg/domain"
)

// RunEventSinkContract checks the behaviour every EventSink must honour.
// received returns the events the sink delivered so far, in order.
func RunEventSinkContract(t *testing.T, sink EventSink, received func() []domain.AppEvent) {
	t.Helper()
	ctx := context.Background()

	t.Run("EmitKeepsOrder", func(t *testing.T) {
		start := domain.NewAppEvent(domain.EventStartLoading, "req-1")
		finish := domain.NewAppEvent(domain.EventFinishLoading, "req-1")

		if err := sink.Emit(ctx, start); err != nil {
			t.Fatalf("Emit start failed: %v", err)
		}
		if err := sink.Emit(ctx, finish); err != nil {
			t.Fatalf("Emit finish failed: %v", err)
		}

		got := received()
		if len(got) < 2 {
			t.Fatalf("Expected at least 2 events, got %d", len(got))
		}
		last := got[len(got)-2:]
		if last[0].Name != domain.EventStartLoading || last[1].Name != domain.EventFinishLoading {
			t.Errorf("Unexpected order: %s, %s", last[0].Name, last[1].Name)
		}
		if !last[1].Detail.Bool(domain.KeyKeepModalOpen) {
			t.Error("Expected keepModalOpen to survive delivery")
		}
		if last[1].RequestID != "req-1" {
			t.Errorf("Expected request id req-1, got %q", last[1].RequestID)
		}
	})
}
