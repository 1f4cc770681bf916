// Package where resolves the application's filesystem locations.
package where

import (
	"os"
	"path/filepath"

	"github.com/clipedit/clipedit/constant"
	"github.com/clipedit/clipedit/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the configuration directory.
const EnvConfigPath = "CLIPEDIT_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config is the configuration directory, $CLIPEDIT_CONFIG_PATH if set.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.App))
}

// Cache is the persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.App))
}

// Logs is the directory dated log files are written to.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Scripts holds user Lua editing scripts.
func Scripts() string {
	return ensureDir(filepath.Join(Config(), "scripts"))
}

// Probes is the ffprobe result cache file.
func Probes() string {
	return filepath.Join(Cache(), "probes.json")
}

// Temp is a volatile directory for sockets and other transient artifacts.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.App))
}
