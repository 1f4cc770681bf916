package probe

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/clipedit/clipedit/media"
	"github.com/clipedit/clipedit/timeline"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Info is what the editor needs to know about a file.
type Info struct {
	Path     string     `json:"path"`
	Kind     media.Kind `json:"kind"`
	Format   string     `json:"format,omitempty"`
	Codec    string     `json:"codec,omitempty"`
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	Duration float64    `json:"duration"`
}

type stream struct {
	CodecType string `json:"codec_type"`
	CodecName string `json:"codec_name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Duration  string `json:"duration"`
}

type ffprobeOutput struct {
	Streams []stream `json:"streams"`
	Format struct {
		FormatName string `json:"format_name"`
		Duration   string `json:"duration"`
	} `json:"format"`
}

// Parse reads ffprobe's -print_format json output.
func Parse(data []byte, path string) (*Info, error) {
	var out ffprobeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode ffprobe output: %w", err)
	}

	video, ok := lo.Find(out.Streams, func(s stream) bool {
		return s.CodecType == "video"
	})
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrNoStreams)
	}

	info := &Info{
		Path:   path,
		Kind:   media.KindFromPath(path),
		Format: out.Format.FormatName,
		Codec:  video.CodecName,
		Width:  video.Width,
		Height: video.Height,
	}

	if isImageFormat(out.Format.FormatName) {
		info.Kind = media.Image
	}

	info.Duration = firstDuration(out.Format.Duration, video.Duration)
	return info, nil
}

func isImageFormat(name string) bool {
	return strings.HasSuffix(name, "_pipe") || name == "image2"
}

func firstDuration(values ...string) float64 {
	for _, v := range values {
		d, err := strconv.ParseFloat(v, 64)
		if err == nil && d > 0 && !math.IsInf(d, 0) {
			return d
		}
	}
	return 0
}

// Element builds an editor element that fits within maxWidth and trims to at
// most maxDuration seconds.
func (i *Info) Element(maxWidth, maxDuration float64) *media.Element {
	el := media.New(i.Kind, mo.Some(i.Path))

	if i.Width > 0 && i.Height > 0 {
		width := math.Min(float64(i.Width), maxWidth)
		height := width * float64(i.Height) / float64(i.Width)
		_ = el.Resize(width, height)
	}

	if i.Duration > 0 && maxDuration > 0 {
		_ = el.SetTrimWindow(timeline.Window{Start: 0, End: math.Min(i.Duration, maxDuration)})
	}

	return el
}
