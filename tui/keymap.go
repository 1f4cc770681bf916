package tui

import (
	"github.com/clipedit/clipedit/color"
	"github.com/clipedit/clipedit/style"
	"github.com/charmbracelet/bubbles/key"
)

// statefulKeymap defines the keyboard interactions available within various application states.
type statefulKeymap struct {
	state state

	quit, forceQuit,
	playPause,
	skipStart, skipEnd,
	back, forward,
	trimStart, trimEnd,
	grow, shrink,
	undo,
	showHelp key.Binding
}

func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		playPause: key.NewBinding(
			key.WithKeys(" ", "space", "p"),
			key.WithHelp(style.Fg(color.Orange)("space"), style.Fg(color.Orange)("play/pause")),
		),
		skipStart: key.NewBinding(
			key.WithKeys("home", "0"),
			key.WithHelp("home", "skip to start"),
		),
		skipEnd: key.NewBinding(
			key.WithKeys("end", "$"),
			key.WithHelp("end", "skip to end"),
		),
		back: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "back"),
		),
		forward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "forward"),
		),
		trimStart: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "trim start here"),
		),
		trimEnd: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "trim end here"),
		),
		grow: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "grow"),
		),
		shrink: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "shrink"),
		),
		undo: key.NewBinding(
			key.WithKeys("u", "ctrl+z"),
			key.WithHelp("u", "undo"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	switch k.state {
	case editState:
		return h(k.playPause, k.back, k.forward, k.trimStart, k.trimEnd, k.showHelp, k.quit),
			h(k.playPause, k.skipStart, k.skipEnd, k.back, k.forward, k.trimStart, k.trimEnd, k.grow, k.shrink, k.undo, k.showHelp, k.quit)
	case errorState:
		return h(k.quit), h(k.quit, k.forceQuit)
	default:
		return h(), h()
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}
