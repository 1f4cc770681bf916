package playback

import (
	"github.com/clipedit/clipedit/media"
	"github.com/clipedit/clipedit/timeline"
)

// Snapshot is a render-ready view of the coordinator.
type Snapshot struct {
	Kind     media.Kind      `json:"kind"`
	Source   string          `json:"source,omitempty"`
	Mode     Mode            `json:"mode"`
	Playing  bool            `json:"playing"`
	Seeking  bool            `json:"seeking"`
	Dragging bool            `json:"dragging"`
	Visible  bool            `json:"visible"`
	Time     float64         `json:"time"`
	Rendered float64         `json:"rendered"`
	Progress float64         `json:"progress"`
	Window   timeline.Window `json:"window"`
	Geometry media.Geometry  `json:"geometry"`
	Elapsed  string          `json:"elapsed"`
	Total    string          `json:"total"`
}

func (c *Coordinator) Snapshot() Snapshot {
	return Snapshot{
		Kind:     c.element.Kind,
		Source:   c.element.Source.OrEmpty(),
		Mode:     c.mode,
		Playing:  c.clock.Playing(),
		Seeking:  c.Seeking(),
		Dragging: c.Dragging(),
		Visible:  c.Visible(),
		Time:     c.clock.Time(),
		Rendered: c.clock.Rendered(),
		Progress: c.clock.Progress(),
		Window:   c.element.Trim,
		Geometry: c.element.Geometry,
		Elapsed:  timeline.FormatTime(c.clock.Rendered()),
		Total:    timeline.FormatTime(c.element.Trim.End),
	}
}
