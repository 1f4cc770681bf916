package tui

import (
	"testing"
	"time"

	"github.com/clipedit/clipedit/editor"
	"github.com/clipedit/clipedit/key"
	"github.com/clipedit/clipedit/media"
	"github.com/clipedit/clipedit/playback"
	"github.com/clipedit/clipedit/timeline"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	viper.Set(key.TUIPixelsPerColumn, 20)
	viper.Set(key.TUIPixelsPerRow, 40)
	viper.Set(key.TUINudgeMs, 1000)
	viper.Set(key.TUIResizeStep, 10)
	viper.Set(key.CanvasWidth, 1280)
	viper.Set(key.IconsVariant, "plain")
}

func newTestBubble() (*statefulBubble, *editor.Session) {
	session := editor.NewSession(media.New(media.Video, mo.None[string]()), playback.Options{
		Surface: playback.NewRecorder(),
	})

	b := newBubble(session, &Options{Canvas: media.NewCanvas(1280, media.Landscape)})
	b.resize(100, 40)
	return b, session
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func TestLayout(t *testing.T) {
	Convey("Given a 100x40 terminal over a 1280x720 canvas", t, func() {
		l := newLayout(100, 40, media.NewCanvas(1280, media.Landscape), 20, 40)

		Convey("The canvas takes one column per 20 pixels", func() {
			So(l.cols, ShouldEqual, 64)
			So(l.rows, ShouldEqual, 18)
			So(l.canvasPoint(2, 3), ShouldResemble, media.Point{X: 0, Y: 0})
			So(l.canvasPoint(12, 8), ShouldResemble, media.Point{X: 200, Y: 200})
			So(l.inCanvas(65, 3), ShouldBeTrue)
			So(l.inCanvas(66, 3), ShouldBeFalse)
			So(l.inCanvas(2, 2), ShouldBeFalse)
		})

		Convey("The bar sits between the time labels", func() {
			So(l.barRow(), ShouldEqual, 22)
			So(l.bar(), ShouldResemble, playback.Bar{Left: 10, Width: 47})
			So(l.inBar(10, 22), ShouldBeTrue)
			So(l.inBar(57, 22), ShouldBeTrue)
			So(l.inBar(9, 22), ShouldBeFalse)
			So(l.inBar(58, 22), ShouldBeFalse)
			So(l.inBar(20, 21), ShouldBeFalse)
		})

		Convey("Buttons are separated by one column", func() {
			first, ok := l.button(2, l.buttonRow())
			So(ok, ShouldBeTrue)
			So(first, ShouldEqual, skipStartButton)

			second, ok := l.button(2+l.buttonWidth+1, l.buttonRow())
			So(ok, ShouldBeTrue)
			So(second, ShouldEqual, playButton)

			_, ok = l.button(2+l.buttonWidth, l.buttonRow())
			So(ok, ShouldBeFalse)
		})

		Convey("Cells are covered by overlapping geometry", func() {
			g := media.Geometry{Width: 640, Height: 360}
			So(l.covers(g, 0, 0), ShouldBeTrue)
			So(l.covers(g, 31, 8), ShouldBeTrue)
			So(l.covers(g, 32, 0), ShouldBeFalse)
			So(l.covers(g, 0, 9), ShouldBeFalse)
		})

		Convey("A tiny terminal still fits the chrome", func() {
			tiny := newLayout(10, 5, media.NewCanvas(1280, media.Landscape), 20, 40)
			So(tiny.rows, ShouldEqual, 1)
			So(tiny.barWidth, ShouldBeGreaterThanOrEqualTo, minBar)
		})
	})
}

func TestMouse(t *testing.T) {
	Convey("Given an editor bubble", t, func() {
		b, session := newTestBubble()
		c := session.Coordinator
		scheduler := session.Scheduler.(*timeline.ManualScheduler)

		Convey("Scrubbing the bar during playback pauses and resumes", func() {
			b.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			So(c.Mode(), ShouldEqual, playback.Playing)

			b.Update(mouse(tea.MouseActionPress, 57, 22))
			So(c.Mode(), ShouldEqual, playback.Scrubbing)
			So(c.Time(), ShouldAlmostEqual, 10)

			b.Update(mouse(tea.MouseActionMotion, 10, 22))
			So(c.Time(), ShouldAlmostEqual, 0)

			b.Update(mouse(tea.MouseActionRelease, 10, 22))
			So(c.Mode(), ShouldEqual, playback.Playing)

			scheduler.Advance(500 * time.Millisecond)
			So(c.Time(), ShouldAlmostEqual, 0.5)
		})

		Convey("Leaving the bar row ends the scrub", func() {
			b.Update(mouse(tea.MouseActionPress, 20, 22))
			So(c.Seeking(), ShouldBeTrue)

			b.Update(mouse(tea.MouseActionMotion, 20, 10))
			So(c.Seeking(), ShouldBeFalse)
			So(b.target, ShouldEqual, noTarget)
		})

		Convey("Dragging the element moves it and can be undone", func() {
			b.Update(mouse(tea.MouseActionPress, 4, 4))
			So(c.Dragging(), ShouldBeTrue)

			b.Update(mouse(tea.MouseActionMotion, 6, 6))
			So(c.Element().Geometry.Position, ShouldResemble, media.Point{X: 40, Y: 80})

			b.Update(mouse(tea.MouseActionRelease, 6, 6))
			So(c.Dragging(), ShouldBeFalse)

			b.Update(runes("u"))
			So(c.Element().Geometry.Position, ShouldResemble, media.Point{X: 0, Y: 0})
		})

		Convey("Pressing the canvas outside the element does nothing", func() {
			b.Update(mouse(tea.MouseActionPress, 52, 18))
			So(c.Dragging(), ShouldBeFalse)
			So(b.target, ShouldEqual, noTarget)
		})

		Convey("The buttons drive playback", func() {
			row := b.layout.buttonRow()

			b.Update(mouse(tea.MouseActionPress, 2+b.layout.buttonWidth+1, row))
			So(c.Playing(), ShouldBeTrue)

			b.Update(mouse(tea.MouseActionPress, 2+2*(b.layout.buttonWidth+1), row))
			So(c.Playing(), ShouldBeFalse)
			So(c.Time(), ShouldEqual, 10)
			So(c.Visible(), ShouldBeFalse)

			b.Update(mouse(tea.MouseActionPress, 2, row))
			So(c.Time(), ShouldEqual, 0)
			So(c.Visible(), ShouldBeTrue)
		})

		Convey("The wheel nudges the play-head", func() {
			b.Update(tea.MouseMsg{X: 30, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
			So(c.Time(), ShouldEqual, 1)
		})
	})
}

func TestKeys(t *testing.T) {
	Convey("Given an editor bubble", t, func() {
		b, session := newTestBubble()
		c := session.Coordinator

		Convey("Trim keys set the window at the play-head", func() {
			for i := 0; i < 3; i++ {
				b.Update(tea.KeyMsg{Type: tea.KeyRight})
			}
			So(c.Time(), ShouldEqual, 3)

			b.Update(runes("["))
			b.Update(tea.KeyMsg{Type: tea.KeyRight})
			b.Update(tea.KeyMsg{Type: tea.KeyRight})
			b.Update(runes("]"))
			So(c.Element().Trim, ShouldResemble, timeline.Window{Start: 3, End: 5})

			Convey("And undo restores each step", func() {
				b.Update(runes("u"))
				So(c.Element().Trim, ShouldResemble, timeline.Window{Start: 3, End: 10})

				b.Update(runes("u"))
				So(c.Element().Trim, ShouldResemble, timeline.Window{Start: 0, End: 10})

				b.Update(runes("u"))
				So(b.notifier.Text(), ShouldEqual, "Nothing to undo")
			})

			Convey("And an empty window is refused", func() {
				b.Update(runes("["))
				So(c.Element().Trim, ShouldResemble, timeline.Window{Start: 3, End: 5})
				So(b.notifier.Text(), ShouldNotBeEmpty)
			})
		})

		Convey("Resize keys scale the element", func() {
			b.Update(runes("+"))
			g := c.Element().Geometry
			So(g.Width, ShouldAlmostEqual, 704)
			So(g.Height, ShouldAlmostEqual, 396)

			b.Update(runes("-"))
			g = c.Element().Geometry
			So(g.Width, ShouldAlmostEqual, 640)
			So(g.Height, ShouldAlmostEqual, 360)
		})

		Convey("Skip keys move to the window edges", func() {
			b.Update(tea.KeyMsg{Type: tea.KeyEnd})
			So(c.Time(), ShouldEqual, 10)
			So(c.Visible(), ShouldBeFalse)

			b.Update(tea.KeyMsg{Type: tea.KeyHome})
			So(c.Time(), ShouldEqual, 0)
		})

		Convey("A native resume starts playback", func() {
			b.Update(nativePausedMsg(false))
			So(c.Mode(), ShouldEqual, playback.Playing)
		})

		Convey("Scheduled tasks run on the update loop", func() {
			ran := false
			b.Update(taskMsg(func() { ran = true }))
			So(ran, ShouldBeTrue)
		})

		Convey("Help toggles the full key list", func() {
			b.Update(runes("?"))
			So(b.helpC.ShowAll, ShouldBeTrue)
		})

		Convey("The view shows both time labels", func() {
			view := b.View()
			So(view, ShouldContainSubstring, "00:00.0")
			So(view, ShouldContainSubstring, "00:10.0")
		})

		Convey("Errors switch to the error view", func() {
			b.Update(media.ErrInvalidGeometry)
			So(b.state, ShouldEqual, errorState)
			So(b.View(), ShouldContainSubstring, "Error")
		})
	})
}
