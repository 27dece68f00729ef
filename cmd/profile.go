package cmd

import (
	"errors"

	"github.com/anitrack-cli/anitrack/constant"
	"github.com/anitrack-cli/anitrack/key"
	"github.com/anitrack-cli/anitrack/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(profileCmd)
}

var errLoggedOut = errors.New("not logged in, run " + constant.App + " auth login")

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Edit your profile settings",
	Run: func(cmd *cobra.Command, args []string) {
		s, client, service := backend()
		if !s.LoggedIn() {
			handleErr(errLoggedOut)
		}

		handleErr(tui.Run(&tui.Options{
			Profile: true,
			Service: service,
			Backend: client,
			Session: s,
			WebURL:  viper.GetString(key.APIWebURL),
		}))
	},
}
