package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/hxnotify/pkg/adapters/memory"
	"github.com/aretw0/hxnotify/pkg/domain"
	"github.com/aretw0/hxnotify/pkg/ports"
	"github.com/stretchr/testify/assert"
)

func TestRecorder_Contract(t *testing.T) {
	rec := memory.NewRecorder()
	ports.RunEventSinkContract(t, rec, rec.Events)
}

func TestRecorder_CopiesDetail(t *testing.T) {
	rec := memory.NewRecorder()
	evt := domain.NewAppEvent(domain.EventStartLoading, "r1")

	assert.NoError(t, rec.Emit(context.Background(), evt))
	evt.Detail["mutated"] = true

	got := rec.Events()
	assert.Len(t, got, 1)
	_, ok := got[0].Detail["mutated"]
	assert.False(t, ok, "recorded detail must not follow caller mutations")
}

func TestRecorder_ConcurrentUse(t *testing.T) {
	rec := memory.NewRecorder()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = rec.Alert(ctx, "x")
			_ = rec.AppendHTML(ctx, "<div></div>")
			_ = rec.Emit(ctx, domain.NewAppEvent(domain.EventFinishLoading, ""))
		}()
	}
	wg.Wait()

	assert.Len(t, rec.Alerts(), 50)
	assert.Len(t, rec.Fragments(), 50)
	assert.Len(t, rec.EventsNamed(domain.EventFinishLoading), 50)

	rec.Reset()
	assert.Empty(t, rec.Events())
}
