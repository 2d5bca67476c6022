package domain

import (
	"encoding/json"
	"sync"
	"time"
)

// DefaultAnimationDuration is the length of the confirm-modal entrance.
const DefaultAnimationDuration = 300 * time.Millisecond

// Selectors animated by the confirm-modal entrance.
const (
	ConfirmOverlaySelector = "[data-confirm-modal]"
	ConfirmCardSelector    = "[data-confirm-modal-card]"
)

// TimelineState is the playback state of a Timeline.
type TimelineState string

const (
	TimelinePaused   TimelineState = "paused"
	TimelinePlaying  TimelineState = "playing"
	TimelineFinished TimelineState = "finished"
)

// Tween animates one property of the elements matched by Selector.
type Tween struct {
	Selector string  `json:"selector"`
	Property string  `json:"property"`
	From     float64 `json:"from"`
	To       float64 `json:"to"`
}

// Timeline is an ordered set of tweens sharing one duration.
// It is handed to listeners paused so they decide when to play it.
type Timeline struct {
	Duration time.Duration
	Tweens   []Tween

	mu    sync.Mutex
	state TimelineState
}

// NewConfirmModalTimeline builds the paused entrance: overlay fade-in, card scale-in.
func NewConfirmModalTimeline(d time.Duration) *Timeline {
	if d <= 0 {
		d = DefaultAnimationDuration
	}
	return &Timeline{
		Duration: d,
		Tweens: []Tween{
			{Selector: ConfirmOverlaySelector, Property: "opacity", From: 0, To: 1},
			{Selector: ConfirmCardSelector, Property: "scale", From: 0.9, To: 1},
		},
		state: TimelinePaused,
	}
}

// State returns the current playback state.
func (t *Timeline) State() TimelineState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Play starts a paused timeline. It returns false if it was not paused.
func (t *Timeline) Play() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != TimelinePaused {
		return false
	}
	t.state = TimelinePlaying
	return true
}

// Finish marks the timeline as done.
func (t *Timeline) Finish() {
	t.mu.Lock()
	t.state = TimelineFinished
	t.mu.Unlock()
}

type timelineJSON struct {
	Duration float64       `json:"duration"`
	Paused   bool          `json:"paused"`
	Tweens   []Tween       `json:"tweens"`
	State    TimelineState `json:"state"`
}

// MarshalJSON encodes the duration in seconds, the unit browser tween libraries use.
func (t *Timeline) MarshalJSON() ([]byte, error) {
	state := t.State()
	return json.Marshal(timelineJSON{
		Duration: t.Duration.Seconds(),
		Paused:   state == TimelinePaused,
		Tweens:   t.Tweens,
		State:    state,
	})
}
