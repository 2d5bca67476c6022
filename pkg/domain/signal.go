package domain

import (
	"fmt"
	"maps"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
)

// SignalKind names a lifecycle signal of the transport layer.
type SignalKind string

const (
	SignalBeforeRequest SignalKind = "before-request"
	SignalAfterRequest  SignalKind = "after-request"
	SignalBeforeSwap    SignalKind = "before-swap"
	SignalAfterSwap     SignalKind = "after-swap"
	SignalResponseError SignalKind = "response-error"
)

// Valid reports whether the kind is one the dispatcher understands.
func (k SignalKind) Valid() bool {
	switch k {
	case SignalBeforeRequest, SignalAfterRequest, SignalBeforeSwap, SignalAfterSwap, SignalResponseError:
		return true
	}
	return false
}

// Detail is the opaque key/value bag produced by the transport layer.
// Its contract belongs to the transport; the dispatcher reads it but never writes to it.
type Detail map[string]any

// Clone returns a shallow copy of the bag.
func (d Detail) Clone() Detail {
	if d == nil {
		return Detail{}
	}
	return maps.Clone(d)
}

// Bool returns the boolean stored under key, false when absent or not a bool.
func (d Detail) Bool(key string) bool {
	v, ok := d[key].(bool)
	return ok && v
}

// DetailFlags is the typed view of the well-known keys of a Detail bag.
type DetailFlags struct {
	KeepModalOpen       bool `mapstructure:"keepModalOpen"`
	StopFinishEvt       bool `mapstructure:"stopFinishEvt"`
	AnimateConfirmModal bool `mapstructure:"animateConfirmModal"`
	NextTween           any  `mapstructure:"nextTween"`
}

// Flags decodes the well-known keys. Unknown keys are ignored; string booleans
// ("true") coming from header-decoded bags are accepted.
func (d Detail) Flags() (DetailFlags, error) {
	var flags DetailFlags
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &flags,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return flags, err
	}
	if err := dec.Decode(map[string]any(d)); err != nil {
		return flags, fmt.Errorf("decode detail: %w", err)
	}
	return flags, nil
}

// Signal is a fire-once lifecycle notification. It must be consumed at most once.
type Signal struct {
	Kind      SignalKind
	RequestID string
	Detail    Detail

	// Swap is set for before-swap signals.
	Swap *Swap
	// Body holds the raw response text of a response-error signal.
	Body string

	consumed atomic.Bool
}

// NewSignal creates a signal for the given request. An empty requestID gets a fresh uuid.
func NewSignal(kind SignalKind, requestID string, detail Detail) *Signal {
	if requestID == "" {
		requestID = uuid.NewString()
	}
	return &Signal{
		Kind:      kind,
		RequestID: requestID,
		Detail:    detail.Clone(),
	}
}

// MarkConsumed flags the signal as consumed. It returns false if it already was.
func (s *Signal) MarkConsumed() bool {
	return s.consumed.CompareAndSwap(false, true)
}
