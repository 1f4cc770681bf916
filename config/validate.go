package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/clipedit/clipedit/icon"
	"github.com/clipedit/clipedit/key"
	"github.com/clipedit/clipedit/media"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// ErrInvalidValue is returned when a value does not fit its field.
var ErrInvalidValue = errors.New("invalid value")

type check func(v any) error

func positive(v any) error {
	if n, _ := v.(int); n <= 0 {
		return fmt.Errorf("%w: must be greater than 0", ErrInvalidValue)
	}
	return nil
}

func nonNegative(v any) error {
	if n, _ := v.(int); n < 0 {
		return fmt.Errorf("%w: must not be negative", ErrInvalidValue)
	}
	return nil
}

func percent(v any) error {
	if n, _ := v.(int); n <= 0 || n >= 100 {
		return fmt.Errorf("%w: must be between 1 and 99", ErrInvalidValue)
	}
	return nil
}

func oneOf(options ...string) check {
	return func(v any) error {
		if s, _ := v.(string); !lo.Contains(options, s) {
			return fmt.Errorf("%w: expected one of %s", ErrInvalidValue, strings.Join(options, ", "))
		}
		return nil
	}
}

func wrapped(parse func(string) error) check {
	return func(v any) error {
		s, _ := v.(string)
		if err := parse(s); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return nil
	}
}

var checks = map[string]check{
	key.IconsVariant: oneOf(icon.AvailableVariants()...),
	key.LogsLevel: wrapped(func(s string) error {
		_, err := logrus.ParseLevel(s)
		return err
	}),
	key.EditorDefaultDuration: positive,
	key.CanvasWidth:           positive,
	key.CanvasAspect: wrapped(func(s string) error {
		_, err := media.ParseAspect(s)
		return err
	}),
	key.PlayerFadeMs:        nonNegative,
	key.PlayerSyncTolerance: nonNegative,
	key.ProbeCacheLifetime: wrapped(func(s string) error {
		d, err := time.ParseDuration(s)
		if err == nil && d < 0 {
			err = errors.New("lifetime must not be negative")
		}
		return err
	}),
	key.TUIPixelsPerColumn: positive,
	key.TUIPixelsPerRow:    positive,
	key.TUINudgeMs:         positive,
	key.TUIResizeStep:      percent,
	key.ServerRedisURL: wrapped(func(s string) error {
		if s == "" {
			return nil
		}
		u, err := url.Parse(s)
		if err == nil && u.Scheme != "redis" && u.Scheme != "rediss" {
			err = fmt.Errorf("scheme %q is not redis", u.Scheme)
		}
		return err
	}),
}

// Parse converts raw command-line values into the field's type and checks
// them against the field's domain.
func (f *Field) Parse(raw []string) (any, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: %w: no value given", f.Key, ErrInvalidValue)
	}

	var (
		v   any
		err error
	)

	switch f.Value.(type) {
	case string:
		v = raw[0]
	case int:
		v, err = strconv.Atoi(raw[0])
	case bool:
		v, err = strconv.ParseBool(raw[0])
	case []string:
		v = lo.FlatMap(raw, func(s string, _ int) []string {
			return lo.Compact(lo.Map(strings.Split(s, ","), func(p string, _ int) string {
				return strings.TrimSpace(p)
			}))
		})
	default:
		return nil, fmt.Errorf("%s: unsupported type %s", f.Key, f.typeName())
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w: expected %s, got %q", f.Key, ErrInvalidValue, f.typeName(), raw[0])
	}

	if c, ok := checks[f.Key]; ok {
		if err := c(v); err != nil {
			return nil, fmt.Errorf("%s: %w", f.Key, err)
		}
	}

	return v, nil
}
