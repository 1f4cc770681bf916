package timeline

import (
	"math"
	"time"
)

const (
	// TickInterval is the wall-clock period of the play-head tick.
	TickInterval = 100 * time.Millisecond
	// TickStep is how far one tick advances the play-head, in seconds.
	TickStep = 0.1
)

// Reason tells observers what changed the clock.
type Reason int

const (
	ReasonStart Reason = iota
	ReasonStop
	ReasonTick
	ReasonAutoStop
	ReasonSeek
	ReasonReset
	ReasonWindow
)

func (r Reason) String() string {
	switch r {
	case ReasonStart:
		return "start"
	case ReasonStop:
		return "stop"
	case ReasonTick:
		return "tick"
	case ReasonAutoStop:
		return "auto-stop"
	case ReasonSeek:
		return "seek"
	case ReasonReset:
		return "reset"
	case ReasonWindow:
		return "window"
	default:
		return "unknown"
	}
}

// MovesTime reports whether events with this reason may carry a new time.
func (r Reason) MovesTime() bool {
	switch r {
	case ReasonTick, ReasonAutoStop, ReasonSeek, ReasonReset:
		return true
	default:
		return false
	}
}

// Event is delivered to observers after every state change.
type Event struct {
	Reason  Reason
	Time    float64
	Playing bool
}

// Clock is the authoritative play-head. It holds at most one tick
// registration, created on Start and cancelled on Stop, auto-stop, window
// change and Close. A fire belonging to a cancelled registration is dropped.
//
// A Clock is not safe for concurrent use; schedulers must deliver fires on
// the owning goroutine.
type Clock struct {
	window    Window
	current   float64
	playing   bool
	closed    bool
	scheduler Scheduler
	cancel    func()
	session   uint64
	listeners []func(Event)
}

// NewClock returns a paused clock positioned at the start of window.
func NewClock(window Window, scheduler Scheduler) *Clock {
	return &Clock{
		window:    window,
		current:   window.Start,
		scheduler: scheduler,
	}
}

// OnChange registers an observer.
func (c *Clock) OnChange(fn func(Event)) {
	c.listeners = append(c.listeners, fn)
}

// Start plays from the current time, rewinding to the window start first
// when the play-head sits at or past the end. Starting a running clock is a
// no-op.
func (c *Clock) Start() {
	if c.closed || c.playing {
		return
	}

	if c.current >= c.window.End {
		c.current = c.window.Start
		c.emit(ReasonReset)
	}

	c.playing = true
	c.arm()
	c.emit(ReasonStart)
}

// Tick advances the play-head by TickStep. Reaching the end clamps to it and
// stops; playback never wraps on its own.
func (c *Clock) Tick() {
	if c.closed || !c.playing {
		return
	}

	next := snap(c.current + TickStep)
	if next >= c.window.End {
		c.current = c.window.End
		c.playing = false
		c.disarm()
		c.emit(ReasonAutoStop)
		return
	}

	c.current = next
	c.emit(ReasonTick)
}

func (c *Clock) Stop() {
	wasPlaying := c.playing
	c.playing = false
	c.disarm()

	if wasPlaying && !c.closed {
		c.emit(ReasonStop)
	}
}

// SeekTo moves the play-head without clamping; Rendered clamps on read.
func (c *Clock) SeekTo(t float64) {
	if c.closed {
		return
	}
	c.current = t
	c.emit(ReasonSeek)
}

// Reset rewinds to the window start.
func (c *Clock) Reset() {
	if c.closed {
		return
	}
	c.current = c.window.Start
	c.emit(ReasonReset)
}

// SetWindow replaces the trim window. The pending tick is always cancelled;
// a playing clock rewinds if it is now at or past the end, then re-arms. A
// paused clock keeps its time.
func (c *Clock) SetWindow(w Window) {
	if c.closed {
		return
	}

	c.disarm()
	c.window = w

	if c.playing {
		if c.current >= w.End {
			c.current = w.Start
			c.emit(ReasonReset)
		}
		c.arm()
	}

	c.emit(ReasonWindow)
}

// Close stops the clock for good and drops all observers.
func (c *Clock) Close() {
	c.playing = false
	c.disarm()
	c.closed = true
	c.listeners = nil
}

// Time is the raw play-head, possibly outside the window after a seek.
func (c *Clock) Time() float64 {
	return c.current
}

// Rendered is the play-head clamped to the window.
func (c *Clock) Rendered() float64 {
	return c.window.Clamp(c.current)
}

// Progress is the display percentage of the play-head.
func (c *Clock) Progress() float64 {
	return c.window.DisplayProgress(c.current)
}

func (c *Clock) Playing() bool {
	return c.playing
}

func (c *Clock) Window() Window {
	return c.window
}

func (c *Clock) arm() {
	c.disarm()
	session := c.session
	c.cancel = c.scheduler.Every(TickInterval, func() {
		if c.session == session {
			c.Tick()
		}
	})
}

func (c *Clock) disarm() {
	c.session++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Clock) emit(reason Reason) {
	e := Event{Reason: reason, Time: c.current, Playing: c.playing}
	for _, fn := range c.listeners {
		fn(e)
	}
}

// snap rounds to the nanosecond so repeated TickStep additions do not drift
// below the window end.
func snap(v float64) float64 {
	return math.Round(v*1e9) / 1e9
}
