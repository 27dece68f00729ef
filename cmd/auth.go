package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/anitrack-cli/anitrack/api"
	"github.com/anitrack-cli/anitrack/color"
	"github.com/anitrack-cli/anitrack/icon"
	"github.com/anitrack-cli/anitrack/session"
	"github.com/anitrack-cli/anitrack/style"
	"github.com/anitrack-cli/anitrack/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.SetOut(os.Stdout)
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the backend token",
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authLoginCmd.Flags().StringP("token", "t", "", "Token to store, prompted for when omitted")
	authLoginCmd.Flags().Bool("no-verify", false, "Store the token without checking it against the backend")
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a token in the system keyring",
	Run: func(cmd *cobra.Command, args []string) {
		token := lo.Must(cmd.Flags().GetString("token"))
		if token == "" {
			handleErr(survey.AskOne(&survey.Password{
				Message: "Token",
			}, &token, survey.WithValidator(survey.Required)))
		}

		s := session.Default()
		handleErr(s.Login(token))

		if lo.Must(cmd.Flags().GetBool("no-verify")) {
			cmd.Printf("%s Token stored\n", icon.Get(icon.Success))
			return
		}

		client, err := api.FromConfig(s)
		handleErr(err)

		erase := util.PrintErasable(fmt.Sprintf("%s Verifying token...", icon.Get(icon.Progress)))
		p, err := client.Profile(context.Background())
		erase()

		if err != nil {
			if api.IsTokenRejected(err) {
				_ = s.Logout()
			}
			handleErr(fmt.Errorf("token not accepted: %w", err))
		}

		cmd.Printf("%s Logged in as %s\n", icon.Get(icon.Success), style.Fg(color.Purple)(p.Username))
	},
}

func init() {
	authCmd.AddCommand(authLogoutCmd)
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored token",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(session.Default().Logout())
		cmd.Printf("%s Logged out\n", icon.Get(icon.Success))
	},
}

func init() {
	authCmd.AddCommand(authStatusCmd)
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a token is stored",
	Run: func(cmd *cobra.Command, args []string) {
		if session.Default().LoggedIn() {
			cmd.Println(style.Fg(color.Green)("logged in"))
		} else {
			cmd.Println(style.Fg(color.Red)("logged out"))
		}
	},
}
