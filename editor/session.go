// Package editor binds one element, its coordinator and a scheduler into a
// session that scripts, the server and the TUI drive by named steps.
package editor

import (
	"time"

	"github.com/clipedit/clipedit/media"
	"github.com/clipedit/clipedit/playback"
	"github.com/clipedit/clipedit/timeline"
)

// DefaultBar is the bar used when a caller does not describe its own. With a
// width of 100, step x values read as percentages.
var DefaultBar = playback.Bar{Left: 0, Width: 100}

// Session is not safe for concurrent use; it belongs to one goroutine.
type Session struct {
	Coordinator *playback.Coordinator
	Scheduler   timeline.Scheduler
	Bar         playback.Bar
}

// NewSession builds a session over element. A nil opts.Scheduler selects a
// manual scheduler so that the session can be stepped deterministically.
func NewSession(element *media.Element, opts playback.Options) *Session {
	if opts.Scheduler == nil {
		opts.Scheduler = timeline.NewManualScheduler()
	}

	return &Session{
		Coordinator: playback.New(element, opts),
		Scheduler:   opts.Scheduler,
		Bar:         DefaultBar,
	}
}

// Wait advances virtual time. Sessions on wall-clock time cannot wait.
func (s *Session) Wait(d time.Duration) error {
	manual, ok := s.Scheduler.(*timeline.ManualScheduler)
	if !ok {
		return ErrWaitUnsupported
	}
	manual.Advance(d)
	return nil
}

func (s *Session) Snapshot() playback.Snapshot {
	return s.Coordinator.Snapshot()
}

func (s *Session) Close() {
	s.Coordinator.Close()
}
