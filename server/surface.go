package server

import (
	"time"

	"github.com/clipedit/clipedit/playback"
	"github.com/samber/lo"
)

// remoteSurface forwards surface commands to the client, which owns the
// actual player. It runs on the connection loop.
type remoteSurface struct {
	conn *conn
}

var _ playback.Surface = (*remoteSurface)(nil)

func (s *remoteSurface) Play() error {
	return s.send(playback.Call{Op: playback.OpPlay})
}

func (s *remoteSurface) Pause() error {
	return s.send(playback.Call{Op: playback.OpPause})
}

func (s *remoteSurface) SetPosition(seconds float64) error {
	return s.send(playback.Call{Op: playback.OpPosition, Seconds: lo.ToPtr(seconds)})
}

func (s *remoteSurface) SetVisible(visible bool, fade time.Duration) error {
	return s.send(playback.Call{
		Op:      playback.OpVisible,
		Visible: lo.ToPtr(visible),
		FadeMs:  fade.Milliseconds(),
	})
}

func (s *remoteSurface) send(call playback.Call) error {
	if !s.conn.enqueue(&Message{Type: MessageTypeSurface, Payload: call}) {
		return errQueueFull
	}
	return nil
}
