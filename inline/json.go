package inline

import (
	"encoding/json"

	"github.com/clipedit/clipedit/playback"
)

// Frame is the state after one step.
type Frame struct {
	Step     int               `json:"step"`
	Op       string            `json:"op"`
	Error    string            `json:"error,omitempty"`
	Snapshot playback.Snapshot `json:"snapshot"`
}

type Output struct {
	Steps   int               `json:"steps"`
	Final   playback.Snapshot `json:"final"`
	Frames  []Frame           `json:"frames,omitempty"`
	Surface []playback.Call   `json:"surface"`
}

func asJson(output *Output) ([]byte, error) {
	if output.Surface == nil {
		output.Surface = []playback.Call{}
	}
	return json.MarshalIndent(output, "", "  ")
}
