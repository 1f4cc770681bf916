package timeline

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFormatTime(t *testing.T) {
	Convey("FormatTime floors every component", t, func() {
		So(FormatTime(61.49), ShouldEqual, "01:01.4")
		So(FormatTime(0), ShouldEqual, "00:00.0")
		So(FormatTime(1.09), ShouldEqual, "00:01.0")
		So(FormatTime(9.99), ShouldEqual, "00:09.9")
		So(FormatTime(600), ShouldEqual, "10:00.0")
	})

	Convey("FormatTime renders unusable input as zero", t, func() {
		So(FormatTime(-3), ShouldEqual, "00:00.0")
		So(FormatTime(math.NaN()), ShouldEqual, "00:00.0")
		So(FormatTime(math.Inf(1)), ShouldEqual, "00:00.0")
	})
}

func TestWindow(t *testing.T) {
	Convey("Given the window {0, 10}", t, func() {
		w := Window{Start: 0, End: 10}

		Convey("Progress is the raw percentage", func() {
			So(w.Progress(2.5), ShouldEqual, 25)
			So(w.Progress(-1), ShouldEqual, -10)
		})

		Convey("DisplayProgress clamps transient overshoot", func() {
			So(w.DisplayProgress(-1), ShouldEqual, 0)
			So(w.DisplayProgress(11), ShouldEqual, 100)
			So(w.DisplayProgress(math.NaN()), ShouldEqual, 0)
		})

		Convey("Lerp maps fractions onto the window", func() {
			So(w.Lerp(0), ShouldEqual, 0)
			So(w.Lerp(0.5), ShouldEqual, 5)
			So(w.Lerp(1), ShouldEqual, 10)
		})
	})

	Convey("Given the window {2, 8}", t, func() {
		w := Window{Start: 2, End: 8}

		Convey("Contains is inclusive", func() {
			So(w.Contains(1.9), ShouldBeFalse)
			So(w.Contains(2.0), ShouldBeTrue)
			So(w.Contains(8.0), ShouldBeTrue)
			So(w.Contains(8.1), ShouldBeFalse)
			So(w.Contains(math.NaN()), ShouldBeFalse)
		})

		Convey("Clamp bounds the play-head", func() {
			So(w.Clamp(1), ShouldEqual, 2)
			So(w.Clamp(5), ShouldEqual, 5)
			So(w.Clamp(9), ShouldEqual, 8)
			So(w.Clamp(math.NaN()), ShouldEqual, 2)
		})
	})

	Convey("Given the degenerate window {5, 5}", t, func() {
		w := Window{Start: 5, End: 5}

		So(w.Valid(), ShouldBeFalse)
		So(math.IsNaN(w.Progress(5)), ShouldBeTrue)
		So(w.DisplayProgress(5), ShouldEqual, 0)
		So(w.DisplayProgress(6), ShouldEqual, 0)
		So(w.Clamp(7), ShouldEqual, 5)
	})

	Convey("Valid rejects unusable windows", t, func() {
		So(Window{Start: 0, End: 10}.Valid(), ShouldBeTrue)
		So(Window{Start: 4, End: 3}.Valid(), ShouldBeFalse)
		So(Window{Start: -1, End: 3}.Valid(), ShouldBeFalse)
		So(Window{Start: 0, End: math.Inf(1)}.Valid(), ShouldBeFalse)
	})
}
