// Package key defines the canonical set of configuration identifiers.
package key

// DefinedFieldsCount is the number of fields registered by the config package.
const DefinedFieldsCount = 24

// Iconography
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment
const (
	CliColored = "cli.colored"
)

// Editor defaults applied when an element is loaded without explicit values.
const (
	EditorDefaultDuration = "editor.default_duration"
)

// Canvas - the virtual pixel space the element is positioned in.
const (
	CanvasWidth  = "canvas.width"
	CanvasAspect = "canvas.aspect"
)

// Native Surface - these keys configure the mpv window that mirrors the play-head.
const (
	PlayerEnable        = "player.enable"
	PlayerBinary        = "player.binary"
	PlayerFadeMs        = "player.fade_ms"
	PlayerSyncTolerance = "player.sync_tolerance_ms"
	PlayerMarkers       = "player.markers"
)

// Media Probing
const (
	ProbeBinary        = "probe.binary"
	ProbeCache         = "probe.cache"
	ProbeCacheLifetime = "probe.cache_lifetime"
)

// Terminal User Interface (TUI) - these keys define cell scaling and editing steps.
const (
	TUIPixelsPerColumn = "tui.pixels_per_column"
	TUIPixelsPerRow    = "tui.pixels_per_row"
	TUINudgeMs         = "tui.nudge_ms"
	TUIResizeStep      = "tui.resize_step"
)

// Session Server
const (
	ServerAddress        = "server.address"
	ServerAllowedOrigins = "server.allowed_origins"
	ServerRedisURL       = "server.redis_url"
	ServerRedisChannel   = "server.redis_channel"
)
