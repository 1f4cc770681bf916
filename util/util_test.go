package util

import (
	"math"
	"testing"

	"github.com/clipedit/clipedit/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSanitizeFilename(t *testing.T) {
	Convey("SanitizeFilename", t, func() {
		So(SanitizeFilename("my clip: take 2?.lua"), ShouldEqual, "my_clip_take_2_.lua")
		So(SanitizeFilename("__intro__"), ShouldEqual, "intro")
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "frame", "frames"), ShouldEqual, "1 frame")
		So(Quantify(3, "frame", "frames"), ShouldEqual, "3 frames")
	})
}

func TestFileStem(t *testing.T) {
	Convey("FileStem", t, func() {
		So(FileStem("/videos/holiday.mp4"), ShouldEqual, "holiday")
		So(FileStem("poster"), ShouldEqual, "poster")
	})
}

func TestClamp(t *testing.T) {
	Convey("Clamp", t, func() {
		So(Clamp(5, 0, 10), ShouldEqual, 5)
		So(Clamp(-1, 0, 10), ShouldEqual, 0)
		So(Clamp(11.5, 0, 10), ShouldEqual, 10)
	})

	Convey("Clamp01", t, func() {
		So(Clamp01(0.25), ShouldEqual, 0.25)
		So(Clamp01(-3), ShouldEqual, 0)
		So(Clamp01(3), ShouldEqual, 1)
		So(Clamp01(math.NaN()), ShouldEqual, 0)
		So(Clamp01(math.Inf(1)), ShouldEqual, 1)
	})

	Convey("Finite", t, func() {
		So(Finite(1, 2, 3), ShouldBeTrue)
		So(Finite(1, math.NaN()), ShouldBeFalse)
		So(Finite(math.Inf(-1)), ShouldBeFalse)
	})
}

func TestMax(t *testing.T) {
	Convey("Max", t, func() {
		So(Max(3, 9, 2), ShouldEqual, 9)
		So(Max[int](), ShouldEqual, 0)
	})
}

func TestStack(t *testing.T) {
	Convey("Given a stack", t, func() {
		var s Stack[int]
		s.Push(1)
		s.Push(2)

		So(s.Len(), ShouldEqual, 2)
		So(s.Peek(), ShouldEqual, 2)
		So(s.Pop(), ShouldEqual, 2)
		So(s.Pop(), ShouldEqual, 1)
		So(s.Pop(), ShouldEqual, 0)

		s.Push(4)
		s.Clear()
		So(s.Len(), ShouldEqual, 0)
	})
}

func TestDelete(t *testing.T) {
	Convey("Delete", t, func() {
		fs := filesystem.API()
		So(fs.MkdirAll("/tmp/clipedit/sockets", 0o755), ShouldBeNil)
		So(fs.WriteFile("/tmp/clipedit/sockets/a.sock", []byte{}, 0o644), ShouldBeNil)

		So(Delete("/tmp/clipedit/sockets/a.sock"), ShouldBeNil)
		So(Delete("/tmp/clipedit"), ShouldBeNil)

		exists, _ := fs.Exists("/tmp/clipedit")
		So(exists, ShouldBeFalse)
		So(Delete("/tmp/clipedit"), ShouldNotBeNil)
	})
}

func TestBoundedStack(t *testing.T) {
	Convey("Given a stack limited to two entries", t, func() {
		s := NewStack[string](2)
		s.Push("a")
		s.Push("b")
		s.Push("c")

		So(s.Len(), ShouldEqual, 2)
		So(s.Pop(), ShouldEqual, "c")
		So(s.Pop(), ShouldEqual, "b")
		So(s.Len(), ShouldEqual, 0)
	})
}
