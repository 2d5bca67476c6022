package runtime

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/hxnotify/pkg/domain"
)

// Handler reacts to a lifecycle signal. The cycle is shared by every handler of the
// same request and is the only state that survives between signals.
type Handler func(ctx context.Context, sig *domain.Signal, cycle *domain.Cycle) error

// Bus keeps the handlers of each signal kind in registration order.
type Bus struct {
	mu       sync.RWMutex
	handlers map[domain.SignalKind][]Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[domain.SignalKind][]Handler)}
}

// On appends a handler for the given kind.
func (b *Bus) On(kind domain.SignalKind, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[kind] = append(b.handlers[kind], h)
}

// Handlers returns a snapshot so handlers can register others while running.
func (b *Bus) Handlers(kind domain.SignalKind) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.handlers[kind])
}

// Len returns the number of handlers registered for kind.
func (b *Bus) Len(kind domain.SignalKind) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[kind])
}
