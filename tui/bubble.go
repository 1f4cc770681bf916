package tui

import (
	"time"

	"github.com/clipedit/clipedit/editor"
	"github.com/clipedit/clipedit/internal/ui"
	"github.com/clipedit/clipedit/key"
	"github.com/clipedit/clipedit/log"
	"github.com/clipedit/clipedit/media"
	"github.com/clipedit/clipedit/playback"
	"github.com/clipedit/clipedit/timeline"
	"github.com/clipedit/clipedit/util"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
)

const undoLimit = 64

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

// statefulBubble is the editor model. It owns the session: every clock
// tick and player event reaches it as a message.
type statefulBubble struct {
	state  state
	keymap *statefulKeymap

	session *editor.Session
	canvas  media.Canvas
	layout  layout
	target  pointerTarget
	history *util.Stack[*media.Element]

	pxPerCol, pxPerRow float64
	nudge              time.Duration
	resizeStep         float64

	progressC progress.Model
	helpC     help.Model
	notifier  *ui.Model

	lastError     error
	width, height int

	options *Options
}

func newBubble(session *editor.Session, options *Options) *statefulBubble {
	canvas := options.Canvas
	if canvas.Width <= 0 {
		canvas = media.NewCanvas(float64(viper.GetInt(key.CanvasWidth)), media.Landscape)
	}

	bubble := &statefulBubble{
		keymap:     newStatefulKeymap(),
		session:    session,
		canvas:     canvas,
		history:    util.NewStack[*media.Element](undoLimit),
		pxPerCol:   float64(util.Max(viper.GetInt(key.TUIPixelsPerColumn), 1)),
		pxPerRow:   float64(util.Max(viper.GetInt(key.TUIPixelsPerRow), 1)),
		nudge:      time.Duration(viper.GetInt(key.TUINudgeMs)) * time.Millisecond,
		resizeStep: float64(viper.GetInt(key.TUIResizeStep)) / 100,
		helpC:      help.New(),
		notifier:   &ui.Model{},
		options:    options,
	}
	bubble.progressC = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bubble.setState(editState)

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	} else {
		bubble.resize(80, 24)
	}

	return bubble
}

func (b *statefulBubble) coordinator() *playback.Coordinator {
	return b.session.Coordinator
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.setState(errorState)
}

// resize propagates terminal dimension changes to the layout and child components.
func (b *statefulBubble) resize(width, height int) {
	b.width, b.height = width, height
	b.layout = newLayout(width, height, b.canvas, b.pxPerCol, b.pxPerRow)
	b.session.Bar = b.layout.bar()

	b.progressC.Width = b.layout.barWidth
	b.helpC.Width = width - paddingStyle.GetHorizontalFrameSize()
}

// remember records the element before an edit so that it can be undone.
func (b *statefulBubble) remember() {
	el := b.coordinator().Element()
	b.history.Push(el.Clone())
}

func (b *statefulBubble) undo() tea.Cmd {
	if b.history.Len() == 0 {
		return b.notify("Nothing to undo")
	}

	previous := b.history.Pop()
	c := b.coordinator()
	if err := c.SetTrimWindow(previous.Trim); err != nil {
		return b.notify(err.Error())
	}
	if err := c.SetGeometry(previous.Geometry); err != nil {
		return b.notify(err.Error())
	}

	b.applyMarkers()
	return nil
}

func (b *statefulBubble) setTrim(w timeline.Window) tea.Cmd {
	before := b.coordinator().Element()
	if err := b.coordinator().SetTrimWindow(w); err != nil {
		return b.notify(err.Error())
	}

	b.history.Push(before.Clone())
	b.applyMarkers()
	return nil
}

func (b *statefulBubble) scale(factor float64) tea.Cmd {
	g := b.coordinator().Element().Geometry
	before := b.coordinator().Element()

	if err := b.coordinator().Resize(g.Width*factor, g.Height*factor); err != nil {
		return b.notify(err.Error())
	}

	b.history.Push(before.Clone())
	return nil
}

func (b *statefulBubble) seekBy(d time.Duration) {
	c := b.coordinator()
	c.SetPlaybackTime(c.Time() + d.Seconds())
}

func (b *statefulBubble) applyMarkers() {
	if b.options.Player == nil {
		return
	}
	if err := b.options.Player.ApplyMarkers(b.coordinator().Element().Trim); err != nil {
		log.Warnf("chapter markers: %v", err)
	}
}

func (b *statefulBubble) notify(text string) tea.Cmd {
	return b.notifier.Update(ui.Notification(text))
}
