package media

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind is the type of the element. Only video has a native playback surface.
type Kind int

const (
	Video Kind = iota
	Image
)

var imageExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".webp": {},
	".bmp":  {},
}

var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".mkv":  {},
	".webm": {},
	".mov":  {},
	".avi":  {},
	".m4v":  {},
}

func (k Kind) String() string {
	switch k {
	case Video:
		return "video"
	case Image:
		return "image"
	default:
		return "unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind accepts "video" or "image", case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "video":
		return Video, nil
	case "image":
		return Image, nil
	default:
		return Video, fmt.Errorf("unknown media kind %q", s)
	}
}

// KindFromPath guesses the kind by file extension. Unknown extensions are
// treated as video.
func KindFromPath(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := imageExtensions[ext]; ok {
		return Image
	}
	return Video
}

// IsMedia reports whether the path has a known video or image extension.
func IsMedia(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, video := videoExtensions[ext]
	_, image := imageExtensions[ext]
	return video || image
}
