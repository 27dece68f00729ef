// Package inline implements the non-interactive, scriptable output mode.
package inline

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/anitrack-cli/anitrack/listing"
	"github.com/anitrack-cli/anitrack/log"
	"github.com/anitrack-cli/anitrack/profile"
)

// Options of a genre page run.
type Options struct {
	Out     io.Writer
	Service *listing.Service
	Query   listing.Query
	Json    bool
}

// RunGenre prints one page of a genre.
func RunGenre(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	name, err := options.Service.Name(ctx, options.Query.GenreID)
	if err != nil {
		return fmt.Errorf("genre name: %w", err)
	}

	result, err := options.Service.Run(ctx, options.Query)
	if err != nil {
		return err
	}

	if result.LoggedOut {
		log.Warn("token rejected, listed without credentials")
	}

	state := listing.New(options.Query.GenreID)
	state.Name = name
	state.Page = options.Query.Page
	state.Sort = options.Query.Sort
	state.Display = options.Query.Display
	state.Search = options.Query.Search
	state.Apply(result)

	if options.Json {
		return writeJson(options.Out, newGenreOutput(state))
	}

	for _, anime := range state.Visible() {
		_, err := fmt.Fprintln(options.Out, strings.Join([]string{
			fmt.Sprint(anime.ID),
			tsv(anime.Name),
			anime.ScoreString(),
			tsv(anime.WatchStatus),
		}, "\t"))
		if err != nil {
			return err
		}
	}

	return nil
}

// RunProfile prints the current user's profile.
func RunProfile(ctx context.Context, out io.Writer, backend profile.Backend, asJson bool) error {
	if out == nil {
		out = os.Stdout
	}

	form := profile.NewForm(backend, nil, nil)
	if err := form.Load(ctx); err != nil {
		return err
	}

	output := &ProfileOutput{
		Username: form.Username,
		Gender:   form.Gender,
		Birthday: form.Birthday,
	}

	if asJson {
		return writeJson(out, output)
	}

	for _, row := range [][2]string{
		{"username", output.Username},
		{"gender", output.Gender},
		{"birthday", output.Birthday},
	} {
		if _, err := fmt.Fprintf(out, "%s\t%s\n", row[0], tsv(row[1])); err != nil {
			return err
		}
	}

	return nil
}

// tsv keeps a value on a single field.
func tsv(s string) string {
	return strings.NewReplacer("\t", " ", "\n", " ", "\r", "").Replace(s)
}
