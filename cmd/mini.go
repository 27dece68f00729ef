package cmd

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/anitrack-cli/anitrack/key"
	"github.com/anitrack-cli/anitrack/mini"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(miniCmd)
}

// miniCmd runs the prompt based interface.
var miniCmd = &cobra.Command{
	Use:   "mini",
	Short: "Launch the lightweight prompt based interface",
	Long:  `Browse genres and edit the profile through simple prompts instead of the full-screen interface.`,
}

func runMini(options *mini.Options) {
	err := mini.Run(context.Background(), options)
	if errors.Is(err, terminal.InterruptErr) {
		return
	}
	handleErr(err)
}

func init() {
	miniCmd.AddCommand(miniGenreCmd)

	miniGenreCmd.Flags().StringP("sort", "s", "", "Sort order: Members, Newest, Score or Title")
	lo.Must0(miniGenreCmd.RegisterFlagCompletionFunc("sort", completionSorts))
	miniGenreCmd.Flags().IntP("page", "p", 1, "Page to open")
}

var miniGenreCmd = &cobra.Command{
	Use:   "genre <id>",
	Short: "Browse the anime of a genre",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseGenreID(args[0])
		handleErr(err)

		s, client, service := backend()
		runMini(&mini.Options{
			GenreID: id,
			Sort:    sortFlag(cmd),
			Page:    lo.Must(cmd.Flags().GetInt("page")),
			Service: service,
			Backend: client,
			Session: s,
			WebURL:  viper.GetString(key.APIWebURL),
		})
	},
}

func init() {
	miniCmd.AddCommand(miniProfileCmd)
}

var miniProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Edit your profile settings",
	Run: func(cmd *cobra.Command, args []string) {
		s, client, service := backend()
		if !s.LoggedIn() {
			handleErr(errLoggedOut)
		}

		runMini(&mini.Options{
			Profile: true,
			Service: service,
			Backend: client,
			Session: s,
			WebURL:  viper.GetString(key.APIWebURL),
		})
	},
}
