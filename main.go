// Package main is the entry point of anitrack.
package main

import (
	"github.com/anitrack-cli/anitrack/cmd"
	"github.com/anitrack-cli/anitrack/config"
	"github.com/anitrack-cli/anitrack/internal/cache"
	"github.com/anitrack-cli/anitrack/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go func() {
		if removed := cache.CollectGarbage(); removed > 0 {
			log.Infof("removed %d stale cache entries", removed)
		}
	}()

	cmd.Execute()
}
