// Package tui provides the terminal editor: a canvas, a progress bar and
// playback controls over one editor session.
package tui

import (
	"sync/atomic"
	"time"

	"github.com/clipedit/clipedit/editor"
	"github.com/clipedit/clipedit/key"
	"github.com/clipedit/clipedit/log"
	"github.com/clipedit/clipedit/media"
	"github.com/clipedit/clipedit/playback"
	"github.com/clipedit/clipedit/player"
	"github.com/clipedit/clipedit/timeline"
	"github.com/clipedit/clipedit/util"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	Element *media.Element
	Canvas  media.Canvas
	// Player mirrors playback into mpv when set.
	Player *player.MPV
}

// taskMsg carries a scheduled task onto the update loop.
type taskMsg func()

type nativePausedMsg bool

type playerExitedMsg struct{}

// sender forwards messages to a program that may not exist yet.
type sender struct {
	program atomic.Pointer[tea.Program]
}

func (s *sender) send(msg tea.Msg) {
	if p := s.program.Load(); p != nil {
		p.Send(msg)
	}
}

// Run initializes and executes the primary Bubble Tea application loop.
func Run(options *Options) error {
	s := &sender{}

	var surface playback.Surface = playback.NopSurface{}
	if mpv := options.Player; mpv != nil {
		if path, ok := options.Element.Source.Get(); ok {
			err := mpv.Open(path, util.FileStem(path), player.Handlers{
				Paused: func(paused bool) { s.send(nativePausedMsg(paused)) },
				Exited: func() { s.send(playerExitedMsg{}) },
			})
			if err != nil {
				log.Warnf("player disabled: %v", err)
				options.Player = nil
			} else {
				surface = mpv
				defer mpv.Close()
			}
		} else {
			options.Player = nil
		}
	}

	session := editor.NewSession(options.Element, playback.Options{
		Surface:   surface,
		Scheduler: &timeline.TickerScheduler{Dispatch: func(task func()) { s.send(taskMsg(task)) }},
		Fade:      time.Duration(viper.GetInt(key.PlayerFadeMs)) * time.Millisecond,
	})
	defer session.Close()

	bubble := newBubble(session, options)
	bubble.applyMarkers()

	program := tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithMouseCellMotion())
	s.program.Store(program)

	_, err := program.Run()
	return err
}
