// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"sort"
	"strings"

	"github.com/anitrack-cli/anitrack/constant"
	"github.com/anitrack-cli/anitrack/filesystem"
	"github.com/anitrack-cli/anitrack/where"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvKeyReplacer is a strings.Replacer used to normalize configuration keys into environment variable naming conventions.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Modes accepted by browse.mode.
var Modes = []string{"server", "client"}

// Sorts accepted by browse.sort.
var Sorts = []string{"Members", "Newest", "Score", "Title"}

// Setup initializes the global configuration state, including defaults, environment bindings, and localized file resolution.
func Setup() error {
	viper.SetConfigName(constant.App)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	// Synchronize environment variable bindings.
	viper.SetEnvPrefix(constant.App)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	// Initialize factory default values.
	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	return validate()
}

// validate runs every field rule against the loaded configuration.
func validate() error {
	names := lo.Keys(Default)
	sort.Strings(names)

	for _, name := range names {
		field := Default[name]
		if len(field.Options) == 0 && field.check == nil {
			continue
		}

		var v any
		switch field.Value.(type) {
		case string:
			v = viper.GetString(name)
		case int:
			v = viper.GetInt(name)
		default:
			v = viper.Get(name)
		}

		if err := field.Validate(v); err != nil {
			return err
		}
	}

	return nil
}
