package cmd

import (
	"encoding/json"
	"os"

	"github.com/anitrack-cli/anitrack/color"
	"github.com/anitrack-cli/anitrack/history"
	"github.com/anitrack-cli/anitrack/style"
	"github.com/anitrack-cli/anitrack/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(recentCmd)
	recentCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	recentCmd.Flags().IntP("remove", "r", 0, "Forget the genre with this id")
	recentCmd.SetOut(os.Stdout)
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently visited genre pages",
	Run: func(cmd *cobra.Command, args []string) {
		if id := lo.Must(cmd.Flags().GetInt("remove")); id != 0 {
			handleErr(history.Remove(id))
			return
		}

		visits, err := history.Recent()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(visits))
			return
		}

		if len(visits) == 0 {
			cmd.Println(style.Faint("nothing here yet"))
			return
		}

		cmd.Println(style.Bold(util.Quantify(len(visits), "genre", "genres")))
		for _, visit := range visits {
			cmd.Printf("%s %s\n",
				style.Fg(color.Purple)(visit.String()),
				style.Faint(visit.VisitedAt.Format("2006-01-02 15:04")),
			)
		}
	},
}
