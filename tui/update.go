package tui

import (
	bubblesKey "github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (b *statefulBubble) Init() tea.Cmd {
	return nil
}

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = uiCmd
	}

	switch msg := msg.(type) {
	case error:
		b.raiseError(msg)
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case taskMsg:
		msg()
	case nativePausedMsg:
		b.coordinator().NativePaused(bool(msg))
	case playerExitedMsg:
		b.options.Player = nil
		return b, tea.Batch(cmd, b.notify("Player closed"))
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
	}

	switch b.state {
	case editState:
		return b, tea.Batch(cmd, b.updateEdit(msg))
	case errorState:
		return b, tea.Batch(cmd, b.updateError(msg))
	}

	return b, cmd
}

func (b *statefulBubble) updateEdit(msg tea.Msg) tea.Cmd {
	c := b.coordinator()

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return b.updateMouse(msg)
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return tea.Quit
		case bubblesKey.Matches(msg, b.keymap.playPause):
			c.PlayPause()
		case bubblesKey.Matches(msg, b.keymap.skipStart):
			c.SkipToStart()
		case bubblesKey.Matches(msg, b.keymap.skipEnd):
			c.SkipToEnd()
		case bubblesKey.Matches(msg, b.keymap.back):
			b.seekBy(-b.nudge)
		case bubblesKey.Matches(msg, b.keymap.forward):
			b.seekBy(b.nudge)
		case bubblesKey.Matches(msg, b.keymap.trimStart):
			w := c.Element().Trim
			w.Start = c.Rendered()
			return b.setTrim(w)
		case bubblesKey.Matches(msg, b.keymap.trimEnd):
			w := c.Element().Trim
			w.End = c.Rendered()
			return b.setTrim(w)
		case bubblesKey.Matches(msg, b.keymap.grow):
			return b.scale(1 + b.resizeStep)
		case bubblesKey.Matches(msg, b.keymap.shrink):
			return b.scale(1 / (1 + b.resizeStep))
		case bubblesKey.Matches(msg, b.keymap.undo):
			return b.undo()
		case bubblesKey.Matches(msg, b.keymap.showHelp):
			b.helpC.ShowAll = !b.helpC.ShowAll
		}
	}

	return nil
}

func (b *statefulBubble) updateMouse(msg tea.MouseMsg) tea.Cmd {
	c := b.coordinator()
	l := b.layout

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			b.seekBy(b.nudge)
			return nil
		case tea.MouseButtonWheelDown:
			b.seekBy(-b.nudge)
			return nil
		case tea.MouseButtonLeft:
		default:
			return nil
		}

		switch {
		case l.inBar(msg.X, msg.Y):
			b.target = barTarget
			c.BarPointerDown(float64(msg.X), b.session.Bar)
		case l.inCanvas(msg.X, msg.Y):
			if c.CanvasPointerDown(l.canvasPoint(msg.X, msg.Y)) {
				b.remember()
				b.target = canvasTarget
			}
		default:
			if pressed, ok := l.button(msg.X, msg.Y); ok {
				b.press(pressed)
			}
		}
	case tea.MouseActionMotion:
		switch b.target {
		case barTarget:
			if msg.Y != l.barRow() {
				c.BarPointerLeave()
				b.target = noTarget
				return nil
			}
			c.BarPointerMove(float64(msg.X), b.session.Bar)
		case canvasTarget:
			if !l.inCanvas(msg.X, msg.Y) {
				c.CanvasPointerLeave()
				b.target = noTarget
				return nil
			}
			c.CanvasPointerMove(l.canvasPoint(msg.X, msg.Y))
		}
	case tea.MouseActionRelease:
		switch b.target {
		case barTarget:
			c.BarPointerUp()
		case canvasTarget:
			c.CanvasPointerUp()
		}
		b.target = noTarget
	}

	return nil
}

func (b *statefulBubble) press(pressed button) {
	c := b.coordinator()
	switch pressed {
	case skipStartButton:
		c.SkipToStart()
	case playButton:
		c.PlayPause()
	case skipEndButton:
		c.SkipToEnd()
	}
}

func (b *statefulBubble) updateError(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.quit) {
		return tea.Quit
	}
	return nil
}
