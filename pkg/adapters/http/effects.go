package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/aretw0/hxnotify/pkg/domain"
	"github.com/aretw0/hxnotify/pkg/ports"
)

// ErrNoEffects is returned when an effect is produced outside a middleware-wrapped request.
var ErrNoEffects = errors.New("no response effects in context")

type effectsKey struct{}

// Effects collects what the dispatcher produced for one response.
type Effects struct {
	mu          sync.Mutex
	trigger     map[string]any
	afterSettle map[string]any
	fragments   []string
	alerts      []string
}

func newEffects() *Effects {
	return &Effects{
		trigger:     make(map[string]any),
		afterSettle: make(map[string]any),
	}
}

// WithEffects attaches a collector to the context.
func WithEffects(ctx context.Context, e *Effects) context.Context {
	return context.WithValue(ctx, effectsKey{}, e)
}

// EffectsFrom returns the collector of the current request.
func EffectsFrom(ctx context.Context) (*Effects, bool) {
	e, ok := ctx.Value(effectsKey{}).(*Effects)
	return e, ok
}

func (e *Effects) addEvent(evt domain.AppEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	// Events carrying an animation are delivered after the swap has settled,
	// once the modal markup is in the DOM.
	if _, ok := evt.Tween(); ok {
		e.afterSettle[string(evt.Name)] = evt.Detail
		return
	}
	e.trigger[string(evt.Name)] = evt.Detail
}

func (e *Effects) addFragment(fragment string) {
	e.mu.Lock()
	e.fragments = append(e.fragments, fragment)
	e.mu.Unlock()
}

func (e *Effects) addAlert(msg string) {
	e.mu.Lock()
	e.alerts = append(e.alerts, msg)
	e.mu.Unlock()
}

// Fragments returns the markup to append to the body.
func (e *Effects) Fragments() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.fragments...)
}

// Alerts returns the alert messages.
func (e *Effects) Alerts() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.alerts...)
}

// WriteHeaders encodes the collected events as htmx trigger headers.
// Only the last alert is sent; an htmx trigger name maps to one payload.
func (e *Effects) WriteHeaders(h http.Header) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	trigger := make(map[string]any, len(e.trigger)+1)
	for k, v := range e.trigger {
		trigger[k] = v
	}
	if n := len(e.alerts); n > 0 {
		trigger[AlertEvent] = map[string]string{"message": e.alerts[n-1]}
	}

	if err := setJSONHeader(h, HeaderTrigger, trigger); err != nil {
		return err
	}
	return setJSONHeader(h, HeaderTriggerAfterSettle, e.afterSettle)
}

func setJSONHeader(h http.Header, name string, v map[string]any) error {
	if len(v) == 0 {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	h.Set(name, string(raw))
	return nil
}

// ContextEffects implements the dispatcher ports by writing into the Effects of the
// request carried by the context. One value serves every request.
type ContextEffects struct{}

var (
	_ ports.EventSink = ContextEffects{}
	_ ports.Document  = ContextEffects{}
	_ ports.Alerter   = ContextEffects{}
)

// Emit queues the event as an htmx trigger.
func (ContextEffects) Emit(ctx context.Context, evt domain.AppEvent) error {
	e, ok := EffectsFrom(ctx)
	if !ok {
		return ErrNoEffects
	}
	e.addEvent(evt)
	return nil
}

// AppendHTML queues markup for the end of the body.
func (ContextEffects) AppendHTML(ctx context.Context, fragment string) error {
	e, ok := EffectsFrom(ctx)
	if !ok {
		return ErrNoEffects
	}
	if strings.TrimSpace(fragment) == "" {
		return nil
	}
	e.addFragment(fragment)
	return nil
}

// Alert queues a show-alert trigger.
func (ContextEffects) Alert(ctx context.Context, message string) error {
	e, ok := EffectsFrom(ctx)
	if !ok {
		return ErrNoEffects
	}
	e.addAlert(message)
	return nil
}
