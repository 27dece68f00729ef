package cmd

import (
	"os"
	"sort"

	"github.com/anitrack-cli/anitrack/color"
	"github.com/anitrack-cli/anitrack/config"
	"github.com/anitrack-cli/anitrack/style"
	"github.com/anitrack-cli/anitrack/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Only variables that are set")
	envCmd.Flags().BoolP("unset-only", "u", false, "Only variables that are not set")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
}

// envVar is an environment variable the application reads.
type envVar struct {
	name  string
	value string
	// err is set when the value would be rejected by config validation.
	err error
}

func (e envVar) set() bool {
	return e.value != ""
}

// environment lists every supported variable with its value in the current process, sorted by name.
func environment() []envVar {
	vars := []envVar{{name: where.EnvConfigPath, value: os.Getenv(where.EnvConfigPath)}}

	for _, field := range config.Default {
		v := envVar{name: field.Env(), value: os.Getenv(field.Env())}
		if v.set() {
			_, v.err = field.Parse([]string{v.value})
		}
		vars = append(vars, v)
	}

	sort.Slice(vars, func(i, j int) bool {
		return vars[i].name < vars[j].name
	})
	return vars
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "List the environment variables that override settings",
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))

		name := style.New().Bold(true).Foreground(color.Purple).Render

		for _, v := range environment() {
			if (setOnly && !v.set()) || (unsetOnly && v.set()) {
				continue
			}

			cmd.Print(name(v.name), "=")

			switch {
			case !v.set():
				cmd.Println(style.Fg(color.Red)("unset"))
			case v.err != nil:
				cmd.Println(style.Fg(color.Yellow)(v.value), style.Faint("("+v.err.Error()+")"))
			default:
				cmd.Println(style.Fg(color.Green)(v.value))
			}
		}
	},
}
