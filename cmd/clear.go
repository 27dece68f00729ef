package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/anitrack-cli/anitrack/icon"
	"github.com/anitrack-cli/anitrack/util"
	"github.com/anitrack-cli/anitrack/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

// storedData is something on disk the clear command can drop.
type storedData struct {
	what  string
	flag  string
	short mo.Option[string]
	path  func() string
}

var storedDataKinds = []storedData{
	{"Genre names and counts", "genres", mo.Some("g"), where.Genres},
	{"Catalog snapshots", "catalog", mo.None[string](), where.Catalog},
	{"Recent genres", "history", mo.Some("s"), where.History},
	{"Search queries", "queries", mo.Some("q"), where.Queries},
	{"Cache directory", "cache", mo.Some("c"), where.Cache},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, d := range storedDataKinds {
		help := "clear " + d.what
		if short, ok := d.short.Get(); ok {
			clearCmd.Flags().BoolP(d.flag, short, false, help)
		} else {
			clearCmd.Flags().Bool(d.flag, false, help)
		}
	}

	clearCmd.Flags().BoolP("all", "a", false, "clear everything above")
}

// clearStored removes a stored data kind. Data that was never written is not an error.
func clearStored(d storedData) error {
	err := util.Delete(d.path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop cached genres, catalog snapshots, recent genres or search queries",
	Run: func(cmd *cobra.Command, args []string) {
		all := lo.Must(cmd.Flags().GetBool("all"))

		selected := lo.Filter(storedDataKinds, func(d storedData, _ int) bool {
			return all || lo.Must(cmd.Flags().GetBool(d.flag))
		})

		if len(selected) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, d := range selected {
			erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), d.what))
			err := clearStored(d)
			erase()
			handleErr(err)
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), d.what)
		}
	},
}
