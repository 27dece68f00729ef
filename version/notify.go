package version

import (
	"context"
	"fmt"
	"time"

	"github.com/anitrack-cli/anitrack/color"
	"github.com/anitrack-cli/anitrack/constant"
	"github.com/anitrack-cli/anitrack/icon"
	"github.com/anitrack-cli/anitrack/key"
	"github.com/anitrack-cli/anitrack/style"
	"github.com/anitrack-cli/anitrack/util"
	"github.com/spf13/viper"
)

// Newer returns the latest version when it is ahead of the running one.
func Newer(ctx context.Context) (string, bool) {
	latest, err := Latest(ctx)
	if err != nil {
		return "", false
	}

	comp, err := Compare(latest, constant.Version)
	if err != nil || comp <= 0 {
		return "", false
	}

	return latest, true
}

// Notify prints a notice if a newer release is available.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	latest, ok := Newer(ctx)
	erase()

	if !ok {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/"+constant.Repository+"/releases/tag/v"+latest),
	)
}
