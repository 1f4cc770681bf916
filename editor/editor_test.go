package editor

import (
	"errors"
	"testing"

	"github.com/clipedit/clipedit/media"
	"github.com/clipedit/clipedit/playback"
	"github.com/clipedit/clipedit/timeline"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func newSession() (*Session, *playback.Recorder) {
	rec := playback.NewRecorder()
	el := media.New(media.Video, mo.Some("clip.mp4"))
	return NewSession(el, playback.Options{Surface: rec}), rec
}

func TestSession(t *testing.T) {
	Convey("Given a fresh session", t, func() {
		s, rec := newSession()

		Convey("Playing and waiting advances virtual time", func() {
			n, err := s.Run([]Step{{Op: "play"}, {Op: "wait", Ms: 1500}})
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 2)
			So(s.Snapshot().Time, ShouldAlmostEqual, 1.5, 1e-9)
			So(s.Snapshot().Elapsed, ShouldEqual, "00:01.5")
		})

		Convey("Click x values read as percentages of the default bar", func() {
			So(s.Apply(Step{Op: "click", X: 25}), ShouldBeNil)
			So(s.Snapshot().Time, ShouldEqual, 2.5)
		})

		Convey("A scrub pushes one position on release", func() {
			rec.Reset()
			_, err := s.Run([]Step{
				{Op: "scrub_down", X: 10},
				{Op: "scrub_move", X: 50},
				{Op: "scrub_move", X: 80},
				{Op: "scrub_up"},
			})
			So(err, ShouldBeNil)
			So(rec.Positions(), ShouldResemble, []float64{8})
		})

		Convey("Drag steps move the element", func() {
			_, err := s.Run([]Step{
				{Op: "drag_down", X: 10, Y: 10},
				{Op: "drag_move", X: 110, Y: 60},
				{Op: "drag_up"},
			})
			So(err, ShouldBeNil)
			So(s.Snapshot().Geometry.Position, ShouldResemble, media.Point{X: 100, Y: 50})
		})

		Convey("Trim and geometry steps validate", func() {
			So(s.Apply(Step{Op: "trim", Start: 2, End: 6}), ShouldBeNil)
			So(s.Snapshot().Window, ShouldResemble, timeline.Window{Start: 2, End: 6})

			err := s.Apply(Step{Op: "trim", Start: 6, End: 2})
			So(errors.Is(err, media.ErrInvalidTrimWindow), ShouldBeTrue)

			So(s.Apply(Step{Op: "geometry", Width: 320, Height: 180, X: 5}), ShouldBeNil)
			So(s.Snapshot().Geometry.Width, ShouldEqual, 320)

			err = s.Apply(Step{Op: "geometry", Width: 0, Height: 180})
			So(errors.Is(err, media.ErrInvalidGeometry), ShouldBeTrue)
		})

		Convey("Skip steps move to the window edges", func() {
			So(s.Apply(Step{Op: "skip_end"}), ShouldBeNil)
			So(s.Snapshot().Time, ShouldEqual, 10)
			So(s.Snapshot().Visible, ShouldBeFalse)

			So(s.Apply(Step{Op: "skip_start"}), ShouldBeNil)
			So(s.Snapshot().Time, ShouldEqual, 0)
			So(s.Snapshot().Visible, ShouldBeTrue)
		})

		Convey("Seek clamps to the window", func() {
			So(s.Apply(Step{Op: "seek", Time: -3}), ShouldBeNil)
			So(s.Snapshot().Time, ShouldEqual, 0)
		})

		Convey("Unknown ops suggest the closest name", func() {
			n, err := s.Run([]Step{{Op: "play"}, {Op: "skip_ned"}})
			So(n, ShouldEqual, 1)
			So(errors.Is(err, ErrUnknownOp), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, `"skip_end"`)
		})
	})

	Convey("A wall-clock session cannot wait", t, func() {
		el := media.New(media.Video, mo.None[string]())
		tasks := make(chan func(), 8)
		s := NewSession(el, playback.Options{
			Scheduler: &timeline.TickerScheduler{Dispatch: func(task func()) { tasks <- task }},
		})
		defer s.Close()

		err := s.Apply(Step{Op: "wait", Ms: 10})
		So(errors.Is(err, ErrWaitUnsupported), ShouldBeTrue)
	})

	Convey("Every op is registered", t, func() {
		So(Ops(), ShouldHaveLength, 14)
		So(Ops()[0], ShouldEqual, "click")
	})
}
