// Package playback reconciles the timeline clock with a native media surface
// and with pointer gestures on the progress bar and the canvas.
package playback

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/samber/lo"
)

// Surface is the native media output: an mpv window, a remote browser or a
// test recorder.
type Surface interface {
	Play() error
	Pause() error
	SetPosition(seconds float64) error
	SetVisible(visible bool, fade time.Duration) error
}

// NopSurface accepts every call and does nothing.
type NopSurface struct{}

func (NopSurface) Play() error                          { return nil }
func (NopSurface) Pause() error                         { return nil }
func (NopSurface) SetPosition(float64) error            { return nil }
func (NopSurface) SetVisible(bool, time.Duration) error { return nil }

// Call is one recorded surface invocation.
type Call struct {
	Op      string   `json:"op"`
	Seconds *float64 `json:"seconds,omitempty"`
	Visible *bool    `json:"visible,omitempty"`
	FadeMs  int64    `json:"fade_ms,omitempty"`
}

const (
	OpPlay     = "play"
	OpPause    = "pause"
	OpPosition = "position"
	OpVisible  = "visible"
)

// ErrRejected is what a Recorder returns for ops listed in Reject.
var ErrRejected = errors.New("surface rejected the call")

// Recorder keeps every call it receives. Ops named in Reject fail with
// ErrRejected after being recorded.
type Recorder struct {
	Calls  []Call
	Reject map[string]bool
}

func NewRecorder() *Recorder {
	return &Recorder{Reject: make(map[string]bool)}
}

func (r *Recorder) record(c Call) error {
	r.Calls = append(r.Calls, c)
	if r.Reject[c.Op] {
		return ErrRejected
	}
	return nil
}

func (r *Recorder) Play() error {
	return r.record(Call{Op: OpPlay})
}

func (r *Recorder) Pause() error {
	return r.record(Call{Op: OpPause})
}

func (r *Recorder) SetPosition(seconds float64) error {
	return r.record(Call{Op: OpPosition, Seconds: lo.ToPtr(seconds)})
}

func (r *Recorder) SetVisible(visible bool, fade time.Duration) error {
	return r.record(Call{Op: OpVisible, Visible: lo.ToPtr(visible), FadeMs: fade.Milliseconds()})
}

// Ops returns the recorded calls filtered to op.
func (r *Recorder) Ops(op string) []Call {
	return lo.Filter(r.Calls, func(c Call, _ int) bool {
		return c.Op == op
	})
}

// Positions returns every position pushed, in order.
func (r *Recorder) Positions() []float64 {
	return lo.Map(r.Ops(OpPosition), func(c Call, _ int) float64 {
		return *c.Seconds
	})
}

// Last returns the most recent call of op, if any.
func (r *Recorder) Last(op string) (Call, bool) {
	calls := r.Ops(op)
	if len(calls) == 0 {
		return Call{}, false
	}
	return calls[len(calls)-1], true
}

func (r *Recorder) Reset() {
	r.Calls = nil
}

func (r *Recorder) MarshalJSON() ([]byte, error) {
	if r.Calls == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.Calls)
}
