// Package media models the single clip being edited.
package media

import (
	"errors"
	"fmt"
	"math"

	"github.com/clipedit/clipedit/timeline"
	"github.com/samber/mo"
)

var (
	ErrInvalidTrimWindow = errors.New("trim end must be after a non-negative start")
	ErrInvalidGeometry   = errors.New("width and height must be positive")
)

const (
	DefaultWidth    = 640
	DefaultHeight   = 360
	DefaultDuration = 10
)

// Point is a position in canvas pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Geometry is the rectangle the element occupies on the canvas.
type Geometry struct {
	Width    float64 `json:"width" jsonschema:"exclusiveMinimum=0"`
	Height   float64 `json:"height" jsonschema:"exclusiveMinimum=0"`
	Position Point   `json:"position"`
}

func (g Geometry) Valid() bool {
	return finite(g.Width, g.Height, g.Position.X, g.Position.Y) && g.Width > 0 && g.Height > 0
}

// Contains reports whether p lies inside the rectangle, edges included.
func (g Geometry) Contains(p Point) bool {
	return p.X >= g.Position.X && p.X <= g.Position.X+g.Width &&
		p.Y >= g.Position.Y && p.Y <= g.Position.Y+g.Height
}

// Element is the one media clip on the canvas.
type Element struct {
	Kind     Kind
	Source   mo.Option[string]
	Geometry Geometry
	Trim     timeline.Window
}

// New returns an element with the editor defaults: 640x360 at the origin,
// trimmed to the first ten seconds.
func New(kind Kind, source mo.Option[string]) *Element {
	return &Element{
		Kind:   kind,
		Source: source,
		Geometry: Geometry{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		Trim: timeline.Window{Start: 0, End: DefaultDuration},
	}
}

// FromPath builds an element for a file, guessing its kind.
func FromPath(path string) *Element {
	return New(KindFromPath(path), mo.Some(path))
}

// SetTrimWindow replaces the trim window. The element is unchanged on error.
func (e *Element) SetTrimWindow(w timeline.Window) error {
	if !w.Valid() {
		return fmt.Errorf("trim %v..%v: %w", w.Start, w.End, ErrInvalidTrimWindow)
	}
	e.Trim = w
	return nil
}

// SetGeometry replaces size and position. The element is unchanged on error.
func (e *Element) SetGeometry(g Geometry) error {
	if !g.Valid() {
		return fmt.Errorf("geometry %vx%v: %w", g.Width, g.Height, ErrInvalidGeometry)
	}
	e.Geometry = g
	return nil
}

// Resize keeps the position and changes the size.
func (e *Element) Resize(width, height float64) error {
	g := e.Geometry
	g.Width, g.Height = width, height
	return e.SetGeometry(g)
}

// MoveTo sets the position. The canvas does not bound it.
func (e *Element) MoveTo(p Point) {
	e.Geometry.Position = p
}

func (e *Element) Contains(p Point) bool {
	return e.Geometry.Contains(p)
}

// Name is the source handle, or the kind when there is none.
func (e *Element) Name() string {
	return e.Source.OrElse(e.Kind.String())
}

// Clone returns a copy, for undo history.
func (e *Element) Clone() *Element {
	c := *e
	return &c
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
