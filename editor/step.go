package editor

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/clipedit/clipedit/media"
	"github.com/clipedit/clipedit/timeline"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
)

var (
	ErrUnknownOp       = errors.New("unknown step")
	ErrWaitUnsupported = errors.New("wait needs a manual scheduler")
)

// Step is one scripted editor action. Only the fields its op reads matter.
type Step struct {
	Op     string  `json:"op" jsonschema:"enum=play,enum=wait,enum=seek,enum=click,enum=scrub_down,enum=scrub_move,enum=scrub_up,enum=drag_down,enum=drag_move,enum=drag_up,enum=skip_start,enum=skip_end,enum=trim,enum=geometry"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Time   float64 `json:"time,omitempty"`
	Ms     int     `json:"ms,omitempty" jsonschema:"minimum=0"`
	Start  float64 `json:"start,omitempty"`
	End    float64 `json:"end,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

func (s Step) point() media.Point {
	return media.Point{X: s.X, Y: s.Y}
}

type handler func(*Session, Step) error

var handlers = map[string]handler{
	"play": func(s *Session, _ Step) error {
		s.Coordinator.PlayPause()
		return nil
	},
	"wait": func(s *Session, st Step) error {
		return s.Wait(time.Duration(st.Ms) * time.Millisecond)
	},
	"seek": func(s *Session, st Step) error {
		s.Coordinator.SetPlaybackTime(st.Time)
		return nil
	},
	"click": func(s *Session, st Step) error {
		s.Coordinator.BarClick(st.X, s.Bar)
		return nil
	},
	"scrub_down": func(s *Session, st Step) error {
		s.Coordinator.BarPointerDown(st.X, s.Bar)
		return nil
	},
	"scrub_move": func(s *Session, st Step) error {
		s.Coordinator.BarPointerMove(st.X, s.Bar)
		return nil
	},
	"scrub_up": func(s *Session, _ Step) error {
		s.Coordinator.BarPointerUp()
		return nil
	},
	"drag_down": func(s *Session, st Step) error {
		s.Coordinator.CanvasPointerDown(st.point())
		return nil
	},
	"drag_move": func(s *Session, st Step) error {
		s.Coordinator.CanvasPointerMove(st.point())
		return nil
	},
	"drag_up": func(s *Session, _ Step) error {
		s.Coordinator.CanvasPointerUp()
		return nil
	},
	"skip_start": func(s *Session, _ Step) error {
		s.Coordinator.SkipToStart()
		return nil
	},
	"skip_end": func(s *Session, _ Step) error {
		s.Coordinator.SkipToEnd()
		return nil
	},
	"trim": func(s *Session, st Step) error {
		return s.Coordinator.SetTrimWindow(timeline.Window{Start: st.Start, End: st.End})
	},
	"geometry": func(s *Session, st Step) error {
		g := s.Coordinator.Element().Geometry
		g.Width, g.Height = st.Width, st.Height
		g.Position = st.point()
		return s.Coordinator.SetGeometry(g)
	},
}

// Ops lists the step names in order.
func Ops() []string {
	ops := lo.Keys(handlers)
	sort.Strings(ops)
	return ops
}

// Apply runs one step.
func (s *Session) Apply(step Step) error {
	h, ok := handlers[step.Op]
	if !ok {
		return unknownOp(step.Op)
	}

	if err := h(s, step); err != nil {
		return fmt.Errorf("%s: %w", step.Op, err)
	}
	return nil
}

// Run applies steps in order, stopping at the first failure. It reports the
// index of the failed step.
func (s *Session) Run(steps []Step) (int, error) {
	for i, step := range steps {
		if err := s.Apply(step); err != nil {
			return i, err
		}
	}
	return len(steps), nil
}

func unknownOp(op string) error {
	closest := lo.MinBy(Ops(), func(a, b string) bool {
		return levenshtein.Distance(op, a) < levenshtein.Distance(op, b)
	})
	return fmt.Errorf("%w %q, did you mean %q?", ErrUnknownOp, op, closest)
}
