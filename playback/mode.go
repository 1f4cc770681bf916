package playback

import "fmt"

// Mode is the play/scrub axis of the coordinator.
type Mode int

const (
	Idle Mode = iota
	Playing
	Scrubbing
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Scrubbing:
		return "scrubbing"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// syncs reports whether time changes in this mode are pushed to the surface.
func (m Mode) syncs() bool {
	return m != Scrubbing
}

func (m *Mode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*m = Idle
	case "playing":
		*m = Playing
	case "scrubbing":
		*m = Scrubbing
	default:
		return fmt.Errorf("unknown mode %q", text)
	}
	return nil
}
