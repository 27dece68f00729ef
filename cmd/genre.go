package cmd

import (
	"fmt"
	"strconv"

	"github.com/anitrack-cli/anitrack/key"
	"github.com/anitrack-cli/anitrack/listing"
	"github.com/anitrack-cli/anitrack/tui"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(genreCmd)

	genreCmd.Flags().StringP("sort", "s", "", "Sort order: Members, Newest, Score or Title")
	lo.Must0(genreCmd.RegisterFlagCompletionFunc("sort", completionSorts))
	genreCmd.Flags().IntP("page", "p", 1, "Page to open")
	genreCmd.Flags().BoolP("compact", "C", false, "Start in the compact table layout")
	lo.Must0(viper.BindPFlag(key.BrowseCompact, genreCmd.Flags().Lookup("compact")))
}

// parseGenreID validates a positional genre id.
func parseGenreID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid genre id %q", arg)
	}
	return id, nil
}

var genreCmd = &cobra.Command{
	Use:     "genre <id>",
	Short:   "Browse the anime of a genre",
	Example: "  anitrack genre 1 --sort newest --page 2",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseGenreID(args[0])
		handleErr(err)

		s, client, service := backend()
		handleErr(tui.Run(&tui.Options{
			GenreID: id,
			Page:    lo.Must(cmd.Flags().GetInt("page")),
			Sort:    sortFlag(cmd),
			Display: listing.Default,
			Compact: viper.GetBool(key.BrowseCompact),
			Service: service,
			Backend: client,
			Session: s,
			WebURL:  viper.GetString(key.APIWebURL),
		}))
	},
}
