package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/anitrack-cli/anitrack/filesystem"
	"github.com/anitrack-cli/anitrack/inline"
	"github.com/anitrack-cli/anitrack/listing"
	"github.com/anitrack-cli/anitrack/query"
	"github.com/anitrack-cli/anitrack/util"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.PersistentFlags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.PersistentFlags().StringP("output", "o", "", "Specify a file path to write the command output")
}

// inlineCmd executes the application in non-interactive, scriptable inline mode.
var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Execute the application in non-interactive, scriptable inline mode",
	Long: `Print backend data without any interaction, for use in scripts.

Without --json a genre page is printed as tab separated lines:
  id, name, score, watch status`,
}

// inlineOutput opens the --output file or falls back to stdout.
func inlineOutput(cmd *cobra.Command) (io.Writer, func()) {
	output := lo.Must(cmd.Flags().GetString("output"))
	if output == "" {
		return os.Stdout, func() {}
	}

	file, err := filesystem.API().Create(output)
	handleErr(err)

	return file, func() {
		util.Ignore(file.Close)
	}
}

func init() {
	inlineCmd.AddCommand(inlineGenreCmd)

	inlineGenreCmd.Flags().StringP("sort", "s", "", "Sort order: Members, Newest, Score or Title")
	lo.Must0(inlineGenreCmd.RegisterFlagCompletionFunc("sort", completionSorts))
	inlineGenreCmd.Flags().IntP("page", "p", 1, "Page to print")
	inlineGenreCmd.Flags().StringP("display", "d", listing.Default.String(), "Display filter: Default, Seen or NotSeen")
	inlineGenreCmd.Flags().StringP("query", "q", "", "Only print titles matching the query")

	lo.Must0(inlineGenreCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	}))
}

var inlineGenreCmd = &cobra.Command{
	Use:   "genre <id>",
	Short: "Print one page of a genre",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseGenreID(args[0])
		handleErr(err)

		out, done := inlineOutput(cmd)
		defer done()

		q := lo.Must(cmd.Flags().GetString("query"))
		if q != "" {
			_ = query.Remember(q, 1)
		}

		_, _, service := backend()
		handleErr(inline.RunGenre(context.Background(), &inline.Options{
			Out:     out,
			Service: service,
			Json:    lo.Must(cmd.Flags().GetBool("json")),
			Query: listing.Query{
				GenreID: id,
				Page:    lo.Must(cmd.Flags().GetInt("page")),
				Sort:    sortFlag(cmd),
				Display: listing.ParseDisplay(lo.Must(cmd.Flags().GetString("display"))),
				Search:  q,
			},
		}))
	},
}

func init() {
	inlineCmd.AddCommand(inlineProfileCmd)
}

var inlineProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Print the profile of the logged in user",
	Run: func(cmd *cobra.Command, args []string) {
		out, done := inlineOutput(cmd)
		defer done()

		_, client, _ := backend()
		handleErr(inline.RunProfile(context.Background(), out, client, lo.Must(cmd.Flags().GetBool("json"))))
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)

	inlineSchemaCmd.Flags().BoolP("profile", "p", false, "Generate the JSON Schema of the profile output")
}

// inlineSchemaCmd generates JSON schemas for structured inline mode outputs.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON schemas for structured inline mode outputs",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "anime", "genre", "profile":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		var schema *jsonschema.Schema

		switch {
		case lo.Must(cmd.Flags().GetBool("profile")):
			schema = reflector.Reflect(&inline.ProfileOutput{})
		default:
			schema = reflector.Reflect(&inline.GenreOutput{})
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}
