package tui

import (
	"math"

	"github.com/clipedit/clipedit/icon"
	"github.com/clipedit/clipedit/media"
	"github.com/clipedit/clipedit/playback"
	"github.com/clipedit/clipedit/timeline"
	"github.com/clipedit/clipedit/util"
	"github.com/charmbracelet/lipgloss"
)

const (
	// title, blank, blank, bar, buttons, blank, help
	chromeRows = 7
	canvasTop  = 2
	minBar     = 10
)

var labelWidth = lipgloss.Width(timeline.FormatTime(0))

type button int

const (
	skipStartButton button = iota
	playButton
	skipEndButton
)

var buttons = []button{skipStartButton, playButton, skipEndButton}

// layout maps terminal cells to the canvas and the progress bar. Cell
// coordinates are absolute, as reported by mouse events.
type layout struct {
	left, top int

	cols, rows   int
	colPx, rowPx float64

	barLeft, barWidth int
	buttonWidth       int
}

func newLayout(width, height int, canvas media.Canvas, pxPerCol, pxPerRow float64) layout {
	left, top := paddingStyle.GetPaddingLeft(), paddingStyle.GetPaddingTop()
	availCols := util.Max(width-paddingStyle.GetHorizontalFrameSize(), 2*labelWidth+2+minBar)
	availRows := util.Max(height-paddingStyle.GetVerticalFrameSize()-chromeRows, 1)

	cols := util.Clamp(int(math.Ceil(canvas.Width/pxPerCol)), 1, availCols)
	rows := util.Clamp(int(math.Ceil(canvas.Height/pxPerRow)), 1, availRows)

	l := layout{
		left:     left,
		top:      top,
		cols:     cols,
		rows:     rows,
		colPx:    canvas.Width / float64(cols),
		rowPx:    canvas.Height / float64(rows),
		barLeft:  labelWidth + 1,
		barWidth: util.Max(cols-2*(labelWidth+1), minBar),
	}

	for _, i := range []icon.Icon{icon.Play, icon.Pause, icon.SkipStart, icon.SkipEnd} {
		l.buttonWidth = util.Max(l.buttonWidth, lipgloss.Width(icon.Get(i))+2)
	}

	return l
}

func (l layout) canvasRow() int { return l.top + canvasTop }

func (l layout) barRow() int { return l.canvasRow() + l.rows + 1 }

func (l layout) buttonRow() int { return l.barRow() + 1 }

// bar spans the bar cells so that the first maps to 0 and the last to 1.
func (l layout) bar() playback.Bar {
	return playback.Bar{
		Left:  float64(l.left + l.barLeft),
		Width: float64(l.barWidth - 1),
	}
}

func (l layout) inBar(x, y int) bool {
	from := l.left + l.barLeft
	return y == l.barRow() && x >= from && x < from+l.barWidth
}

func (l layout) inCanvas(x, y int) bool {
	col, row := x-l.left, y-l.canvasRow()
	return col >= 0 && col < l.cols && row >= 0 && row < l.rows
}

// canvasPoint is the canvas pixel at the top-left corner of a cell.
func (l layout) canvasPoint(x, y int) media.Point {
	return media.Point{
		X: float64(x-l.left) * l.colPx,
		Y: float64(y-l.canvasRow()) * l.rowPx,
	}
}

// covers reports whether g overlaps the cell at col, row.
func (l layout) covers(g media.Geometry, col, row int) bool {
	x0, y0 := float64(col)*l.colPx, float64(row)*l.rowPx
	x1, y1 := x0+l.colPx, y0+l.rowPx

	return g.Position.X < x1 && g.Position.X+g.Width > x0 &&
		g.Position.Y < y1 && g.Position.Y+g.Height > y0
}

func (l layout) button(x, y int) (button, bool) {
	if y != l.buttonRow() || x < l.left {
		return 0, false
	}

	offset := x - l.left
	i := offset / (l.buttonWidth + 1)
	if i >= len(buttons) || offset%(l.buttonWidth+1) == l.buttonWidth {
		return 0, false
	}
	return buttons[i], true
}
