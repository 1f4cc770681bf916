// Package player drives an mpv window as the native playback surface over
// its JSON-IPC socket.
package player

import (
	"time"

	"github.com/clipedit/clipedit/key"
	"github.com/clipedit/clipedit/playback"
	"github.com/spf13/viper"
)

var _ playback.Surface = (*MPV)(nil)

// Handlers receive mpv property changes. They run on the listener goroutine,
// so owners must hand them over to their own loop.
type Handlers struct {
	Paused   func(paused bool)
	Position func(seconds float64)
	Exited   func()
}

// NewFromConfig builds an MPV using the player.* settings.
func NewFromConfig() *MPV {
	m := NewMPV(viper.GetString(key.PlayerBinary))
	m.tolerance = time.Duration(viper.GetInt(key.PlayerSyncTolerance)) * time.Millisecond
	m.markers = viper.GetBool(key.PlayerMarkers)
	return m
}
