// Package inline runs editor scripts without a terminal UI.
package inline

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/clipedit/clipedit/editor"
	"github.com/clipedit/clipedit/media"
	"github.com/clipedit/clipedit/timeline"
	"github.com/samber/mo"
)

// Media describes the element a script starts from. Omitted fields take the
// editor defaults.
type Media struct {
	Kind     string           `json:"kind,omitempty" jsonschema:"enum=video,enum=image"`
	Source   string           `json:"source,omitempty"`
	Trim     *timeline.Window `json:"trim,omitempty"`
	Geometry *media.Geometry  `json:"geometry,omitempty"`
}

// Script is the inline input document.
type Script struct {
	Media Media         `json:"media"`
	Steps []editor.Step `json:"steps"`
}

type Options struct {
	In     io.Reader
	Out    io.Writer
	Json   bool
	Frames bool
	// ContinueOnError records failing steps in the output instead of stopping.
	ContinueOnError bool
}

// ParseScript decodes a script, rejecting unknown fields.
func ParseScript(r io.Reader) (*Script, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var script Script
	if err := decoder.Decode(&script); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	return &script, nil
}

// Element builds the starting element, validating any overrides.
func (m Media) Element() (*media.Element, error) {
	kind := media.Video
	switch {
	case m.Kind != "":
		parsed, err := media.ParseKind(m.Kind)
		if err != nil {
			return nil, err
		}
		kind = parsed
	case m.Source != "":
		kind = media.KindFromPath(m.Source)
	}

	el := media.New(kind, mo.EmptyableToOption(m.Source))

	if m.Trim != nil {
		if err := el.SetTrimWindow(*m.Trim); err != nil {
			return nil, err
		}
	}

	if m.Geometry != nil {
		if err := el.SetGeometry(*m.Geometry); err != nil {
			return nil, err
		}
	}

	return el, nil
}
