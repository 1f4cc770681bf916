// Package config provides centralized management for application settings and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/clipedit/clipedit/color"
	"github.com/clipedit/clipedit/constant"
	"github.com/clipedit/clipedit/key"
	"github.com/clipedit/clipedit/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.App + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.EditorDefaultDuration, 10, "Trim window length in seconds used when the media duration is unknown")
	register(key.CanvasWidth, 1280, "Width of the virtual canvas in pixels")
	register(key.CanvasAspect, "16:9", "Canvas aspect preset.\nExamples: 16:9 (landscape), 9:16 (portrait), 1:1 (square)")
	register(key.PlayerEnable, true, "Mirror the play-head into an mpv window")
	register(key.PlayerBinary, "mpv", "Path or name of the mpv executable")
	register(key.PlayerFadeMs, 200, "Duration of the visibility fade in milliseconds")
	register(key.PlayerSyncTolerance, 250, "Skip native seeks when mpv is already within this many milliseconds of the play-head")
	register(key.PlayerMarkers, true, "Publish the trim window to mpv as chapter markers")
	register(key.ProbeBinary, "ffprobe", "Path or name of the ffprobe executable")
	register(key.ProbeCache, true, "Cache probe results on disk")
	register(key.ProbeCacheLifetime, "168h", "How long cached probe results stay valid (Go duration syntax)")
	register(key.TUIPixelsPerColumn, 20, "Canvas pixels covered by one terminal column")
	register(key.TUIPixelsPerRow, 40, "Canvas pixels covered by one terminal row")
	register(key.TUINudgeMs, 1000, "Play-head step of the left/right keys in milliseconds")
	register(key.TUIResizeStep, 10, "Percentage the element grows or shrinks per resize key press")
	register(key.ServerAddress, ":7373", "Listen address of the session server")
	register(key.ServerAllowedOrigins, []string{"*"}, "Origins allowed to open sessions")
	register(key.ServerRedisURL, "", "Redis URL used to publish session snapshots.\nPublishing is disabled when empty")
	register(key.ServerRedisChannel, "clipedit.snapshots", "Redis channel snapshots are published to")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
