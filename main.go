// Package main is the entry point for clipedit.
package main

import (
	"time"

	"github.com/clipedit/clipedit/cmd"
	"github.com/clipedit/clipedit/config"
	"github.com/clipedit/clipedit/internal/cache"
	"github.com/clipedit/clipedit/log"
	"github.com/clipedit/clipedit/where"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Player sockets from crashed sessions linger in the temp dir.
	go func() {
		_, _ = cache.CollectGarbage(where.Temp(), cache.TTL, time.Now())
	}()

	cmd.Execute()
}
