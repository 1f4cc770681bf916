package media

import (
	"fmt"
	"strconv"
	"strings"
)

// Aspect is a canvas ratio preset such as 16:9.
type Aspect struct {
	W, H int
}

var Landscape = Aspect{W: 16, H: 9}

// ParseAspect reads "W:H" or "WxH".
func ParseAspect(s string) (Aspect, error) {
	sep := ":"
	if !strings.Contains(s, sep) {
		sep = "x"
	}

	w, h, found := strings.Cut(strings.TrimSpace(s), sep)
	if !found {
		return Aspect{}, fmt.Errorf("aspect %q: expected W:H", s)
	}

	width, err := strconv.Atoi(w)
	if err != nil {
		return Aspect{}, fmt.Errorf("aspect %q: %w", s, err)
	}

	height, err := strconv.Atoi(h)
	if err != nil {
		return Aspect{}, fmt.Errorf("aspect %q: %w", s, err)
	}

	if width <= 0 || height <= 0 {
		return Aspect{}, fmt.Errorf("aspect %q: sides must be positive", s)
	}

	return Aspect{W: width, H: height}, nil
}

// Height is the canvas height for a given width.
func (a Aspect) Height(width float64) float64 {
	return width * float64(a.H) / float64(a.W)
}

func (a Aspect) String() string {
	return fmt.Sprintf("%d:%d", a.W, a.H)
}

// Canvas is the virtual stage the element sits on.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Aspect Aspect  `json:"-"`
}

func NewCanvas(width float64, aspect Aspect) Canvas {
	return Canvas{Width: width, Height: aspect.Height(width), Aspect: aspect}
}
