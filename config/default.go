// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/anitrack-cli/anitrack/color"
	"github.com/anitrack-cli/anitrack/constant"
	"github.com/anitrack-cli/anitrack/key"
	"github.com/anitrack-cli/anitrack/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string

	// Options, when set, lists every accepted value of a string field.
	Options []string

	check func(any) error
}

// Validate checks a candidate value for the field. The value must already have the field's type.
func (f *Field) Validate(v any) error {
	if len(f.Options) > 0 {
		s, ok := v.(string)
		if !ok || !lo.ContainsBy(f.Options, func(option string) bool {
			return strings.EqualFold(option, strings.TrimSpace(s))
		}) {
			return fmt.Errorf("invalid %s %v, expected one of %s", f.Key, v, strings.Join(f.Options, ", "))
		}
	}

	if f.check != nil {
		if err := f.check(v); err != nil {
			return fmt.Errorf("invalid %s %v: %w", f.Key, v, err)
		}
	}

	return nil
}

// Parse converts raw command line values into the field's type and validates the result.
func (f *Field) Parse(values []string) (any, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("no value given for %s", f.Key)
	}

	var v any
	switch f.Value.(type) {
	case string:
		v = values[0]
	case int:
		n, err := strconv.Atoi(strings.TrimSpace(values[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid integer value: %s", values[0])
		}
		v = n
	case bool:
		b, err := strconv.ParseBool(strings.TrimSpace(values[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid boolean value: %s", values[0])
		}
		v = b
	case []string:
		v = values
	default:
		return nil, fmt.Errorf("%s cannot be set from the command line", f.Key)
	}

	if err := f.Validate(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.App + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string   `json:"description"`
		Type        string   `json:"type"`
		Options     []string `json:"options,omitempty"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
		Options:     f.Options,
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register adds a new configuration field to the global registry.
	register := func(k string, v any, desc string, rules ...func(*Field)) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		for _, rule := range rules {
			rule(&f)
		}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	oneOf := func(options ...string) func(*Field) {
		return func(f *Field) { f.Options = options }
	}

	atLeast := func(min int) func(*Field) {
		return func(f *Field) {
			f.check = func(v any) error {
				if n, ok := v.(int); ok && n < min {
					return fmt.Errorf("must be at least %d", min)
				}
				return nil
			}
		}
	}

	register(key.APIURL, "http://localhost:8080", "Base URL of the tracking backend")
	register(key.APIWebURL, "http://localhost:3000", "Base URL of the web client.\nUsed to open anime detail pages in the browser")
	register(key.APITimeout, 60, "Timeout of a single backend request, in seconds", atLeast(1))
	register(key.APICache, true, "Cache genre names and counts on disk")
	register(key.BrowseDefaultGenre, 0, "Genre to open when no genre is given.\n0 means none", atLeast(0))
	register(key.BrowseSort, "Score", "Initial sort order", oneOf(Sorts...))
	register(key.BrowseCompact, false, "Start the genre listing in the compact table layout")
	register(key.BrowseMode, "server", "How genre pages are built.\nserver - the backend sorts and pages\nclient - fetch the whole catalog once and filter locally", oneOf(Modes...))
	register(key.HistorySave, true, "Remember visited genre pages")
	register(key.SearchShowQuerySuggestions, true, "Show query suggestions when filtering titles")
	register(key.IconsVariant, "plain", "Icons variant.\nnerd requires a nerd font", oneOf("emoji", "kaomoji", "plain", "squares", "nerd"))
	register(key.TUIItemSpacing, 1, "Spacing between items in the TUI", atLeast(0))
	register(key.TUISearchPromptString, "> ", "Search prompt string to use")
	register(key.TUISynopsisLines, 3, "Number of synopsis lines shown under each card", atLeast(0))
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Log level, from less to most verbose", oneOf("panic", "fatal", "error", "warn", "info", "debug", "trace"))
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"join":     func(options []string) string { return strings.Join(options, ", ") },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}{{ if .Options }}
{{ blue "Options:" }} {{ join .Options }}{{ end }}`))
