// Package timeline owns the play-head: the trim window, the fixed-rate tick
// that advances time while playing, and the math shared by every renderer.
package timeline

import "math"

// Window is a trim range in seconds.
type Window struct {
	Start float64 `json:"start" jsonschema:"minimum=0"`
	End   float64 `json:"end"`
}

func (w Window) Duration() float64 {
	return w.End - w.Start
}

// Valid reports whether the window is finite, non-negative and non-empty.
func (w Window) Valid() bool {
	if math.IsNaN(w.Start) || math.IsNaN(w.End) || math.IsInf(w.Start, 0) || math.IsInf(w.End, 0) {
		return false
	}
	return w.Start >= 0 && w.End > w.Start
}

// Contains is inclusive on both ends.
func (w Window) Contains(t float64) bool {
	return t >= w.Start && t <= w.End
}

// Clamp bounds t to the window. NaN maps to Start.
func (w Window) Clamp(t float64) float64 {
	switch {
	case math.IsNaN(t), t < w.Start:
		return w.Start
	case t > w.End:
		return math.Max(w.Start, w.End)
	default:
		return t
	}
}

// Lerp maps a fraction of the window onto a time.
func (w Window) Lerp(f float64) float64 {
	return w.Start + f*w.Duration()
}

// Progress is the raw percentage of t through the window. It is NaN or
// infinite for a degenerate window.
func (w Window) Progress(t float64) float64 {
	return (t - w.Start) / w.Duration() * 100
}

// DisplayProgress is Progress bounded to [0, 100] for rendering. A degenerate
// window and a NaN progress both display as 0.
func (w Window) DisplayProgress(t float64) float64 {
	if !(w.End > w.Start) {
		return 0
	}

	p := w.Progress(t)
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
