package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/hxnotify/pkg/domain"
	"github.com/aretw0/hxnotify/pkg/ports"
)

// Recorder implements ports.EventSink, ports.Document and ports.Alerter in memory.
// Safe for concurrent use.
type Recorder struct {
	mu        sync.RWMutex
	events    []domain.AppEvent
	fragments []string
	alerts    []string
}

var (
	_ ports.EventSink = (*Recorder)(nil)
	_ ports.Document  = (*Recorder)(nil)
	_ ports.Alerter   = (*Recorder)(nil)
)

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Emit records the event. The detail bag is copied so later writes by the caller
// do not leak into the record.
func (r *Recorder) Emit(ctx context.Context, evt domain.AppEvent) error {
	evt.Detail = evt.Detail.Clone()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

// AppendHTML records the fragment as the last child of the body.
func (r *Recorder) AppendHTML(ctx context.Context, fragment string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fragments = append(r.fragments, fragment)
	return nil
}

// Alert records the message.
func (r *Recorder) Alert(ctx context.Context, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, message)
	return nil
}

// Events returns the emitted events in order.
func (r *Recorder) Events() []domain.AppEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.events)
}

// EventsNamed returns the emitted events with the given name.
func (r *Recorder) EventsNamed(name domain.EventName) []domain.AppEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.AppEvent
	for _, e := range r.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

// Fragments returns the appended markup in order.
func (r *Recorder) Fragments() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.fragments)
}

// Alerts returns the alert messages in order.
func (r *Recorder) Alerts() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.alerts)
}

// Reset clears everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
	r.fragments = nil
	r.alerts = nil
}
