package playback

import (
	"time"

	"github.com/clipedit/clipedit/log"
	"github.com/clipedit/clipedit/media"
	"github.com/clipedit/clipedit/timeline"
	"github.com/clipedit/clipedit/util"
	"github.com/samber/mo"
)

// DefaultFade is the visibility transition applied when none is configured.
const DefaultFade = 200 * time.Millisecond

// Bar is the rendered extent of the progress bar in the caller's coordinate
// space (terminal columns, CSS pixels).
type Bar struct {
	Left  float64 `json:"left"`
	Width float64 `json:"width"`
}

// Fraction maps a pointer x onto [0, 1]. A bar without width maps to 0.
func (b Bar) Fraction(x float64) float64 {
	if !(b.Width > 0) {
		return 0
	}
	return util.Clamp01((x - b.Left) / b.Width)
}

// Options configure a Coordinator. Zero values select the defaults; without a
// Scheduler the clock runs on virtual time the caller must advance.
type Options struct {
	Surface   Surface
	Scheduler timeline.Scheduler
	Fade      time.Duration
}

// Coordinator owns the clock for one element and keeps the native surface,
// the visibility rule and the pointer gestures consistent with it.
//
// Like the clock, it must only be used from a single goroutine.
type Coordinator struct {
	element *media.Element
	clock   *timeline.Clock
	surface Surface
	fade    time.Duration
	log     *log.Scoped

	mode   Mode
	resume bool

	// forceHidden is set by SkipToEnd and cleared by the next time change.
	forceHidden bool
	holdHidden  bool
	visible     mo.Option[bool]
	paused      bool

	dragOffset mo.Option[media.Point]

	batch     int
	listeners []func()
}

// New returns an idle coordinator with the play-head at the element's trim start.
func New(element *media.Element, opts Options) *Coordinator {
	if opts.Surface == nil {
		opts.Surface = NopSurface{}
	}
	if opts.Scheduler == nil {
		opts.Scheduler = timeline.NewManualScheduler()
	}
	if opts.Fade < 0 {
		opts.Fade = 0
	} else if opts.Fade == 0 {
		opts.Fade = DefaultFade
	}

	c := &Coordinator{
		element: element,
		clock:   timeline.NewClock(element.Trim, opts.Scheduler),
		surface: opts.Surface,
		fade:    opts.Fade,
		log:     log.Component("playback"),
		paused:  true,
	}
	c.clock.OnChange(c.onClock)
	c.refreshVisibility()

	return c
}

// OnChange registers an observer notified once after every mutation.
func (c *Coordinator) OnChange(fn func()) {
	c.listeners = append(c.listeners, fn)
}

// PlayPause toggles playback of a video. From Scrubbing it toggles whether
// playback resumes on release. Images ignore it.
func (c *Coordinator) PlayPause() {
	if c.element.Kind != media.Video {
		return
	}

	c.mutate(func() {
		switch c.mode {
		case Idle:
			c.play()
		case Playing:
			c.pause()
			c.mode = Idle
		case Scrubbing:
			c.resume = !c.resume
		}
	})
}

// SkipToStart moves the play-head to the trim start without touching the mode.
func (c *Coordinator) SkipToStart() {
	c.mutate(func() {
		c.clock.SeekTo(c.element.Trim.Start)
	})
}

// SkipToEnd moves the play-head to the trim end, pauses and hides the
// surface until the play-head moves again.
func (c *Coordinator) SkipToEnd() {
	c.mutate(func() {
		if c.mode == Scrubbing {
			c.resume = false
		} else {
			c.mode = Idle
		}
		c.clock.Stop()
		c.pauseSurface()

		c.forceHidden = true
		c.holdHidden = true
		c.clock.SeekTo(c.element.Trim.End)
		c.holdHidden = false
		c.refreshVisibility()
	})
}

// BarPointerDown begins a scrub. Playback is suspended and resumes on release.
func (c *Coordinator) BarPointerDown(x float64, bar Bar) {
	c.mutate(func() {
		if c.mode == Playing {
			c.pauseSurface()
			c.clock.Stop()
			c.resume = true
		}
		c.mode = Scrubbing
		c.seekFraction(bar.Fraction(x))
	})
}

// BarPointerMove follows the pointer while scrubbing.
func (c *Coordinator) BarPointerMove(x float64, bar Bar) {
	if c.mode != Scrubbing {
		return
	}
	c.mutate(func() {
		c.seekFraction(bar.Fraction(x))
	})
}

// BarClick seeks to the clicked fraction of the trim window.
func (c *Coordinator) BarClick(x float64, bar Bar) {
	c.mutate(func() {
		c.seekFraction(bar.Fraction(x))
	})
}

// BarPointerUp ends a scrub with a single push of the final position.
func (c *Coordinator) BarPointerUp() {
	if c.mode != Scrubbing {
		return
	}

	c.mutate(func() {
		c.mode = Idle
		c.syncNative()

		resume := c.resume
		c.resume = false
		if resume && c.clock.Time() < c.element.Trim.End {
			c.playSurface()
			c.clock.Start()
			c.mode = Playing
		}
	})
}

// BarPointerLeave behaves like a release.
func (c *Coordinator) BarPointerLeave() {
	c.BarPointerUp()
}

// CanvasPointerDown starts a drag when p hits the element.
func (c *Coordinator) CanvasPointerDown(p media.Point) bool {
	if !c.element.Contains(p) {
		return false
	}
	c.mutate(func() {
		c.dragOffset = mo.Some(p.Sub(c.element.Geometry.Position))
	})
	return true
}

// CanvasPointerMove repositions the element while dragging. Positions are
// not bounded by the canvas.
func (c *Coordinator) CanvasPointerMove(p media.Point) {
	offset, dragging := c.dragOffset.Get()
	if !dragging {
		return
	}
	c.mutate(func() {
		c.element.MoveTo(p.Sub(offset))
	})
}

func (c *Coordinator) CanvasPointerUp() {
	if c.dragOffset.IsAbsent() {
		return
	}
	c.mutate(func() {
		c.dragOffset = mo.None[media.Point]()
	})
}

func (c *Coordinator) CanvasPointerLeave() {
	c.CanvasPointerUp()
}

// SetTrimWindow validates and applies a new trim window. A playing clock
// rewinds if it is now past the end and keeps playing.
func (c *Coordinator) SetTrimWindow(w timeline.Window) error {
	if err := c.element.SetTrimWindow(w); err != nil {
		return err
	}
	c.mutate(func() {
		c.clock.SetWindow(w)
		c.forceHidden = false
		c.refreshVisibility()
	})
	return nil
}

func (c *Coordinator) SetGeometry(g media.Geometry) error {
	if err := c.element.SetGeometry(g); err != nil {
		return err
	}
	c.mutate(func() {})
	return nil
}

// Resize keeps the element position and changes its size.
func (c *Coordinator) Resize(width, height float64) error {
	g := c.element.Geometry
	g.Width, g.Height = width, height
	return c.SetGeometry(g)
}

// SetPlaybackTime seeks to t clamped to the trim window.
func (c *Coordinator) SetPlaybackTime(t float64) {
	c.mutate(func() {
		c.clock.SeekTo(c.element.Trim.Clamp(t))
	})
}

// Load replaces the element and returns to the initial idle state.
func (c *Coordinator) Load(element *media.Element) {
	c.mutate(func() {
		c.clock.Stop()
		if c.mode == Playing {
			c.pauseSurface()
		}

		c.element = element
		c.mode = Idle
		c.resume = false
		c.forceHidden = false
		c.dragOffset = mo.None[media.Point]()
		c.visible = mo.None[bool]()

		c.clock.SetWindow(element.Trim)
		c.clock.Reset()
	})
}

// NativePaused applies a pause or resume issued from the surface itself.
// Echoes of commands this coordinator sent are ignored.
func (c *Coordinator) NativePaused(paused bool) {
	if paused == c.paused || c.mode == Scrubbing || c.element.Kind != media.Video {
		return
	}

	c.mutate(func() {
		c.paused = paused
		switch {
		case paused && c.mode == Playing:
			c.clock.Stop()
			c.mode = Idle
		case !paused && c.mode == Idle:
			if c.clock.Time() >= c.element.Trim.End {
				c.clock.Reset()
			}
			c.clock.Start()
			c.mode = Playing
		}
	})
}

// Close stops the clock for good. The surface is left to its owner.
func (c *Coordinator) Close() {
	c.clock.Close()
	c.listeners = nil
}

func (c *Coordinator) Mode() Mode {
	return c.mode
}

func (c *Coordinator) Playing() bool {
	return c.clock.Playing()
}

// Seeking reports whether a scrub is in progress.
func (c *Coordinator) Seeking() bool {
	return c.mode == Scrubbing
}

func (c *Coordinator) Dragging() bool {
	return c.dragOffset.IsPresent()
}

// Time is the raw play-head.
func (c *Coordinator) Time() float64 {
	return c.clock.Time()
}

// Rendered is the play-head clamped to the trim window.
func (c *Coordinator) Rendered() float64 {
	return c.clock.Rendered()
}

func (c *Coordinator) Progress() float64 {
	return c.clock.Progress()
}

// Visible is the last visibility pushed onto the surface.
func (c *Coordinator) Visible() bool {
	return c.visible.OrElse(false)
}

// Element returns a copy of the current element.
func (c *Coordinator) Element() media.Element {
	return *c.element
}

func (c *Coordinator) play() {
	if c.clock.Time() >= c.element.Trim.End {
		c.clock.Reset()
	}
	c.forceHidden = false
	c.refreshVisibility()
	c.playSurface()
	c.mode = Playing
	c.clock.Start()
}

func (c *Coordinator) pause() {
	c.pauseSurface()
	c.clock.Stop()
}

func (c *Coordinator) playSurface() {
	c.paused = false
	if err := c.surface.Play(); err != nil {
		c.log.Warnf("surface play rejected: %v", err)
	}
}

func (c *Coordinator) pauseSurface() {
	c.paused = true
	if err := c.surface.Pause(); err != nil {
		c.log.Warnf("surface pause failed: %v", err)
	}
}

func (c *Coordinator) seekFraction(f float64) {
	c.clock.SeekTo(c.element.Trim.Lerp(f))
}

func (c *Coordinator) onClock(e timeline.Event) {
	if e.Reason == timeline.ReasonAutoStop {
		c.mode = Idle
		c.resume = false
		c.pauseSurface()
	}

	if e.Reason.MovesTime() {
		if !c.holdHidden {
			c.forceHidden = false
		}
		c.refreshVisibility()
		c.syncNative()
	}

	if c.batch == 0 {
		c.notify()
	}
}

// refreshVisibility applies the window rule to the raw play-head and pushes
// the result when it changed.
func (c *Coordinator) refreshVisibility() {
	visible := !c.forceHidden && c.element.Trim.Contains(c.clock.Time())
	if last, ok := c.visible.Get(); ok && last == visible {
		return
	}

	c.visible = mo.Some(visible)
	if err := c.surface.SetVisible(visible, c.fade); err != nil {
		c.log.Warnf("surface visibility: %v", err)
	}
}

// syncNative pushes the clamped play-head to a video surface unless a scrub
// is in progress.
func (c *Coordinator) syncNative() {
	if !c.mode.syncs() || c.element.Kind != media.Video {
		return
	}

	if err := c.surface.SetPosition(c.clock.Rendered()); err != nil {
		c.log.Warnf("surface position: %v", err)
	}
}

func (c *Coordinator) mutate(fn func()) {
	c.batch++
	fn()
	c.batch--

	if c.batch == 0 {
		c.notify()
	}
}

func (c *Coordinator) notify() {
	for _, fn := range c.listeners {
		fn()
	}
}
