package cmd

import (
	"encoding/json"
	"os"

	"github.com/anitrack-cli/anitrack/color"
	"github.com/anitrack-cli/anitrack/style"
	"github.com/anitrack-cli/anitrack/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

// location is a directory the application reads or writes.
type location struct {
	name  string
	path  func() string
	flag  string
	short mo.Option[string]
	// internal locations are reachable by flag but left out of the listing.
	internal bool
}

var locations = []location{
	{name: "Config", path: where.Config, flag: "config", short: mo.Some("c")},
	{name: "Logs", path: where.Logs, flag: "logs", short: mo.Some("l")},
	{name: "History", path: where.History, flag: "history", short: mo.Some("r")},
	{name: "Cache", path: where.Cache, flag: "cache", internal: true},
	{name: "Genres", path: where.Genres, flag: "genres", internal: true},
	{name: "Catalog", path: where.Catalog, flag: "catalog", internal: true},
	{name: "Queries", path: where.Queries, flag: "queries", internal: true},
	{name: "Temp", path: where.Temp, flag: "temp", internal: true},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, l := range locations {
		if short, ok := l.short.Get(); ok {
			whereCmd.Flags().BoolP(l.flag, short, false, l.name+" path")
		} else {
			whereCmd.Flags().Bool(l.flag, false, l.name+" path")
		}

		if l.internal {
			lo.Must0(whereCmd.Flags().MarkHidden(l.flag))
		}
	}

	whereCmd.Flags().BoolP("json", "j", false, "Print every location as a JSON object")

	whereCmd.MarkFlagsMutuallyExclusive(append(lo.Map(locations, func(l location, _ int) string {
		return l.flag
	}), "json")...)

	whereCmd.SetOut(os.Stdout)
}

// locationPaths maps every location name, internal ones included, to its path.
func locationPaths() map[string]string {
	return lo.SliceToMap(locations, func(l location) (string, string) {
		return l.flag, l.path()
	})
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where config, logs and recent genres are stored",
	Run: func(cmd *cobra.Command, args []string) {
		for _, l := range locations {
			if lo.Must(cmd.Flags().GetBool(l.flag)) {
				cmd.Println(l.path())
				return
			}
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(locationPaths()))
			return
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		listed := lo.Reject(locations, func(l location, _ int) bool {
			return l.internal
		})

		for i, l := range listed {
			cmd.Printf("%s %s\n", header(l.name+"?"), style.Fg(color.Yellow)("--"+l.flag))
			cmd.Println(l.path())

			if i < len(listed)-1 {
				cmd.Println()
			}
		}
	},
}
