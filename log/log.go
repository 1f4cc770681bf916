// Package log routes diagnostics to a dated logrus file when logging is enabled.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/clipedit/clipedit/filesystem"
	"github.com/clipedit/clipedit/key"
	"github.com/clipedit/clipedit/where"
	"github.com/samber/lo"
	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// enabled gates every emission; with logging disabled all calls are no-ops.
var enabled bool

// Setup opens today's log file and applies the configured format and level.
func Setup() error {
	enabled = viper.GetBool(key.LogsWrite)
	if !enabled {
		return nil
	}

	dir := where.Logs()
	if dir == "" {
		return errors.New("log directory path is empty")
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))
	if exists := lo.Must(filesystem.API().Exists(path)); !exists {
		lo.Must(filesystem.API().Create(path))
	}

	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	configure(f)

	return nil
}

func configure(out io.Writer) {
	logrus.SetOutput(out)

	if viper.GetBool(key.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	}

	parsed, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}

// Scoped tags every entry with the component that produced it.
type Scoped struct {
	component string
}

// Component returns a logger whose entries carry a "component" field.
func Component(name string) *Scoped {
	return &Scoped{component: name}
}

func (s *Scoped) entry() *logrus.Entry {
	return logrus.WithField("component", s.component)
}

func (s *Scoped) Errorf(format string, args ...any) {
	if enabled {
		s.entry().Errorf(format, args...)
	}
}

func (s *Scoped) Warnf(format string, args ...any) {
	if enabled {
		s.entry().Warnf(format, args...)
	}
}

func (s *Scoped) Infof(format string, args ...any) {
	if enabled {
		s.entry().Infof(format, args...)
	}
}

func (s *Scoped) Debugf(format string, args ...any) {
	if enabled {
		s.entry().Debugf(format, args...)
	}
}

func (s *Scoped) Tracef(format string, args ...any) {
	if enabled {
		s.entry().Tracef(format, args...)
	}
}

// Package-level emissions for code without a component of its own.

func Error(args ...any) {
	if enabled {
		logrus.Error(args...)
	}
}

func Errorf(format string, args ...any) {
	if enabled {
		logrus.Errorf(format, args...)
	}
}

func Warn(args ...any) {
	if enabled {
		logrus.Warn(args...)
	}
}

func Warnf(format string, args ...any) {
	if enabled {
		logrus.Warnf(format, args...)
	}
}

func Info(args ...any) {
	if enabled {
		logrus.Info(args...)
	}
}

func Infof(format string, args ...any) {
	if enabled {
		logrus.Infof(format, args...)
	}
}

func Debugf(format string, args ...any) {
	if enabled {
		logrus.Debugf(format, args...)
	}
}
