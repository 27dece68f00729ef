// Package cmd implements the command-line interface.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/anitrack-cli/anitrack/api"
	"github.com/anitrack-cli/anitrack/color"
	"github.com/anitrack-cli/anitrack/constant"
	"github.com/anitrack-cli/anitrack/icon"
	"github.com/anitrack-cli/anitrack/key"
	"github.com/anitrack-cli/anitrack/listing"
	"github.com/anitrack-cli/anitrack/log"
	"github.com/anitrack-cli/anitrack/session"
	"github.com/anitrack-cli/anitrack/style"
	"github.com/anitrack-cli/anitrack/tui"
	"github.com/anitrack-cli/anitrack/util"
	"github.com/anitrack-cli/anitrack/version"
	"github.com/anitrack-cli/anitrack/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Remember visited genre pages")
	lo.Must0(viper.BindPFlag(key.HistorySave, rootCmd.PersistentFlags().Lookup("write-history")))

	rootCmd.PersistentFlags().String("mode", "", "Listing mode: server or client")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("mode", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{listing.ServerMode.String(), listing.ClientMode.String()}, cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.BrowseMode, rootCmd.PersistentFlags().Lookup("mode")))

	rootCmd.Flags().IntP("genre", "g", 0, "Genre to open, defaults to browse.default_genre")
	rootCmd.Flags().BoolP("continue", "c", false, "Reopen the most recently visited genre page")
	rootCmd.MarkFlagsMutuallyExclusive("genre", "continue")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Leftovers of previous runs.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the application.
var rootCmd = &cobra.Command{
	Use:   constant.App,
	Short: "A terminal client for your anime tracker",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiCyan).Render("    - A terminal client for your anime tracker"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		s, client, service := backend()
		options := tui.Options{
			Continue: lo.Must(cmd.Flags().GetBool("continue")),
			GenreID:  lo.Must(cmd.Flags().GetInt("genre")),
			Sort:     sortFlag(cmd),
			Compact:  viper.GetBool(key.BrowseCompact),
			Service:  service,
			Backend:  client,
			Session:  s,
			WebURL:   viper.GetString(key.APIWebURL),
		}

		if options.GenreID == 0 {
			options.GenreID = viper.GetInt(key.BrowseDefaultGenre)
		}

		if options.GenreID == 0 && !options.Continue {
			handleErr(cmd.Help())
			return
		}

		err := tui.Run(&options)
		if errors.Is(err, tui.ErrNoRecent) {
			err = fmt.Errorf("%w, open one with %s", err, style.Fg(color.Yellow)(constant.App+" genre <id>"))
		}
		handleErr(err)
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// backend wires the session, the API client and the listing service from the configuration.
func backend() (*session.Session, *api.Client, *listing.Service) {
	s := session.Default()

	client, err := api.FromConfig(s)
	handleErr(err)

	return s, client, listing.NewService(client, s, listing.ParseMode(viper.GetString(key.BrowseMode)))
}

// sortFlag resolves --sort, falling back to browse.sort.
func sortFlag(cmd *cobra.Command) listing.Sort {
	name := viper.GetString(key.BrowseSort)
	if flag := cmd.Flags().Lookup("sort"); flag != nil && flag.Changed {
		name = flag.Value.String()
	}

	sort, err := listing.ParseSort(name)
	handleErr(err)
	return sort
}

func completionSorts(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return listing.SortNames(), cobra.ShellCompDirectiveNoFileComp
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
