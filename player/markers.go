package player

import (
	"github.com/clipedit/clipedit/timeline"
)

// Chapter is one entry of mpv's chapter-list property.
type Chapter struct {
	Title string  `json:"title"`
	Time  float64 `json:"time"`
}

// Markers describes the trim window as chapters so mpv's seek bar shows it.
// The leading chapter is omitted when the trim starts at zero.
func Markers(w timeline.Window) []Chapter {
	var chapters []Chapter

	if w.Start > 0 {
		chapters = append(chapters, Chapter{Title: "Before trim", Time: 0})
	}

	return append(chapters,
		Chapter{Title: "Trim", Time: w.Start},
		Chapter{Title: "After trim", Time: w.End},
	)
}

// ApplyMarkers publishes the trim window when player.markers is enabled.
func (m *MPV) ApplyMarkers(w timeline.Window) error {
	if !m.markers || !m.running() {
		return nil
	}
	return m.SetChapters(Markers(w))
}

// SetChapters replaces the chapters of the current file.
func (m *MPV) SetChapters(chapters []Chapter) error {
	_, err := m.sendCommand([]any{"set_property", "chapter-list", chapters})
	return err
}
