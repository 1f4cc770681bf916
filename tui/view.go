package tui

import (
	"fmt"
	"strings"

	"github.com/clipedit/clipedit/constant"
	"github.com/clipedit/clipedit/icon"
	"github.com/clipedit/clipedit/media"
	"github.com/clipedit/clipedit/playback"
	"github.com/clipedit/clipedit/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
)

var (
	canvasCell  = lipgloss.NewStyle().Background(style.CanvasColor)
	videoCell   = lipgloss.NewStyle().Background(style.VideoColor)
	imageCell   = lipgloss.NewStyle().Background(style.ImageColor)
	hiddenCell  = lipgloss.NewStyle().Background(style.TrackColor)
	buttonStyle = lipgloss.NewStyle().Foreground(style.Text).Background(style.Surface).Align(lipgloss.Center)
	activeStyle = buttonStyle.Foreground(style.Base).Background(style.ActiveBtnColor)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case editState:
		output = b.viewEdit()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewEdit() string {
	snapshot := b.session.Snapshot()

	lines := []string{b.viewTitle(snapshot), ""}
	lines = append(lines, b.viewCanvas(snapshot)...)
	lines = append(lines,
		"",
		b.viewBar(snapshot),
		b.viewButtons(snapshot),
	)

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewTitle(s playback.Snapshot) string {
	kind := icon.Video
	if s.Kind == media.Image {
		kind = icon.Image
	}

	el := b.coordinator().Element()
	title := fmt.Sprintf("%s %s %s", style.Title(constant.App), icon.Get(kind), style.Fg(style.AccentColor)(el.Name()))

	var flags []string
	if s.Seeking {
		flags = append(flags, icon.Get(icon.Scrub))
	}
	if s.Dragging {
		flags = append(flags, icon.Get(icon.Drag))
	}
	if !s.Visible {
		flags = append(flags, icon.Get(icon.Hidden))
	}
	flags = append(flags, style.Faint(s.Mode.String()))

	return style.Truncate(b.width)(title + "  " + strings.Join(flags, " "))
}

// viewCanvas paints one run of cells per uniform stretch of each row.
func (b *statefulBubble) viewCanvas(s playback.Snapshot) []string {
	element := videoCell
	switch {
	case !s.Visible:
		element = hiddenCell
	case s.Kind == media.Image:
		element = imageCell
	}

	rows := make([]string, b.layout.rows)
	for row := range rows {
		var line strings.Builder
		runStart, covered := 0, b.layout.covers(s.Geometry, 0, row)

		flush := func(end int) {
			cell := canvasCell
			if covered {
				cell = element
			}
			line.WriteString(cell.Render(strings.Repeat(" ", end-runStart)))
		}

		for col := 1; col < b.layout.cols; col++ {
			if c := b.layout.covers(s.Geometry, col, row); c != covered {
				flush(col)
				runStart, covered = col, c
			}
		}
		flush(b.layout.cols)

		rows[row] = line.String()
	}

	return rows
}

func (b *statefulBubble) viewBar(s playback.Snapshot) string {
	bar := b.progressC.ViewAs(s.Progress / 100)
	return fmt.Sprintf("%s %s %s", s.Elapsed, bar, style.Faint(s.Total))
}

func (b *statefulBubble) viewButtons(s playback.Snapshot) string {
	play := icon.Play
	if s.Playing {
		play = icon.Pause
	}

	render := func(i icon.Icon, active bool) string {
		st := buttonStyle
		if active {
			st = activeStyle
		}
		return st.Width(b.layout.buttonWidth).Render(icon.Get(i))
	}

	return strings.Join([]string{
		render(icon.SkipStart, false),
		render(play, s.Playing),
		render(icon.SkipEnd, false),
	}, " ")
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(style.ErrorColor).Bold(true)
	errorBody := errorStyle.Render(b.lastError.Error())
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
			wrap.String(errorBody, b.width),
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if rest := b.height - paddingStyle.GetVerticalFrameSize() - h; rest > 1 {
			l += strings.Repeat("\n", rest-1)
		} else {
			l += "\n"
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
