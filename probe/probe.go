// Package probe reads media metadata with ffprobe.
package probe

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/clipedit/clipedit/filesystem"
	"github.com/clipedit/clipedit/key"
	"github.com/clipedit/clipedit/log"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

var ErrNoStreams = errors.New("no video stream found")

// Runner executes ffprobe and returns its JSON output.
type Runner func(ctx context.Context, binary, path string) ([]byte, error)

// ExecRunner shells out to the binary.
func ExecRunner(ctx context.Context, binary, path string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		"--", path,
	)

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%s: %s", binary, exitErr.Stderr)
		}
		return nil, fmt.Errorf("%s: %w", binary, err)
	}
	return out, nil
}

type Options struct {
	Binary string
	Runner Runner
	// Cache is consulted before running ffprobe when present.
	Cache mo.Option[*Cache]
}

type Prober struct {
	binary string
	run    Runner
	cache  mo.Option[*Cache]
	log    *log.Scoped
}

func New(opts Options) *Prober {
	if opts.Binary == "" {
		opts.Binary = "ffprobe"
	}
	if opts.Runner == nil {
		opts.Runner = ExecRunner
	}

	return &Prober{
		binary: opts.Binary,
		run:    opts.Runner,
		cache:  opts.Cache,
		log:    log.Component("probe"),
	}
}

// NewFromConfig builds a prober from the probe.* settings.
func NewFromConfig() *Prober {
	cache := mo.None[*Cache]()
	if viper.GetBool(key.ProbeCache) {
		lifetime, err := time.ParseDuration(viper.GetString(key.ProbeCacheLifetime))
		if err != nil {
			log.Warnf("invalid %s: %v", key.ProbeCacheLifetime, err)
			lifetime = 0
		}
		cache = mo.Some(NewCache(lifetime))
	}

	return New(Options{
		Binary: viper.GetString(key.ProbeBinary),
		Cache:  cache,
	})
}

// Probe returns the metadata of path, from the cache when the file has not
// changed since it was last probed.
func (p *Prober) Probe(ctx context.Context, path string) (*Info, error) {
	stat, err := filesystem.API().Stat(path)
	if err != nil {
		return nil, err
	}

	cacheKey := fingerprint(path, stat.Size(), stat.ModTime())
	if cache, ok := p.cache.Get(); ok {
		if info, hit := cache.Get(cacheKey).Get(); hit {
			p.log.Debugf("cache hit for %s", path)
			return info, nil
		}
	}

	out, err := p.run(ctx, p.binary, path)
	if err != nil {
		return nil, err
	}

	info, err := Parse(out, path)
	if err != nil {
		return nil, err
	}

	if cache, ok := p.cache.Get(); ok {
		if err := cache.Set(cacheKey, info); err != nil {
			p.log.Warnf("cache %s: %v", path, err)
		}
	}

	return info, nil
}

func fingerprint(path string, size int64, modified time.Time) string {
	return fmt.Sprintf("%s|%d|%d", path, size, modified.UnixNano())
}
