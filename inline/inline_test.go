package inline

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/clipedit/clipedit/editor"
	"github.com/clipedit/clipedit/media"
	"github.com/clipedit/clipedit/playback"
	"github.com/clipedit/clipedit/timeline"
	. "github.com/smartystreets/goconvey/convey"
)

const script = `{
  "media": {"source": "clip.mp4", "trim": {"start": 2, "end": 8}},
  "steps": [
    {"op": "play"},
    {"op": "wait", "ms": 1000},
    {"op": "skip_end"}
  ]
}`

func TestRun(t *testing.T) {
	Convey("Given a script that plays and skips to the end", t, func() {
		var buf bytes.Buffer

		Convey("JSON output carries the final state and surface calls", func() {
			err := Run(&Options{In: strings.NewReader(script), Out: &buf, Json: true, Frames: true})
			So(err, ShouldBeNil)

			var output Output
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Steps, ShouldEqual, 3)
			So(output.Frames, ShouldHaveLength, 3)
			So(output.Frames[1].Snapshot.Time, ShouldAlmostEqual, 3, 1e-9)
			So(output.Final.Time, ShouldEqual, 8)
			So(output.Final.Visible, ShouldBeFalse)
			So(output.Final.Playing, ShouldBeFalse)
			So(output.Surface[0].Op, ShouldEqual, playback.OpVisible)
		})

		Convey("Text output ends with the final state", func() {
			err := Run(&Options{In: strings.NewReader(script), Out: &buf})
			So(err, ShouldBeNil)
			So(strings.TrimSpace(buf.String()), ShouldEqual, "00:08.0 / 00:08.0 idle hidden 100%")
		})
	})

	Convey("An empty script still reports the initial state", t, func() {
		var buf bytes.Buffer
		err := Run(&Options{In: strings.NewReader(`{"media": {}, "steps": []}`), Out: &buf, Json: true})
		So(err, ShouldBeNil)

		var output Output
		So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
		So(output.Final.Window, ShouldResemble, timeline.Window{Start: 0, End: 10})
		So(output.Frames, ShouldBeEmpty)
	})

	Convey("Failing steps", t, func() {
		s := &Script{Steps: []editor.Step{{Op: "trim", Start: 5, End: 1}, {Op: "skip_end"}}}

		Convey("stop the run by default", func() {
			_, err := Execute(s, &Options{})
			So(errors.Is(err, media.ErrInvalidTrimWindow), ShouldBeTrue)
		})

		Convey("are recorded when continuing", func() {
			output, err := Execute(s, &Options{Frames: true, ContinueOnError: true})
			So(err, ShouldBeNil)
			So(output.Frames[0].Error, ShouldNotBeEmpty)
			So(output.Final.Time, ShouldEqual, 10)
		})
	})

	Convey("Scripts with unknown fields are rejected", t, func() {
		_, err := ParseScript(strings.NewReader(`{"media": {}, "stpes": []}`))
		So(err, ShouldNotBeNil)
	})

	Convey("Media overrides are validated", t, func() {
		_, err := Media{Kind: "audio"}.Element()
		So(err, ShouldNotBeNil)

		el, err := Media{Source: "still.jpg"}.Element()
		So(err, ShouldBeNil)
		So(el.Kind, ShouldEqual, media.Image)

		_, err = Media{Geometry: &media.Geometry{Width: -1, Height: 1}}.Element()
		So(errors.Is(err, media.ErrInvalidGeometry), ShouldBeTrue)
	})
}
