package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SPLITLEDGER_LOG_LEVEL.
const EnvPrefix = "SPLITLEDGER"

// Settings are per-invocation options that are not part of a group.
type Settings struct {
	LogLevel  string
	LogFormat string
	Locale    string // overrides the group's display locale when set
	Group     string // group directory
}

// LoadSettings resolves settings from flags, then SPLITLEDGER_* environment
// variables, then defaults. Flags are bound under the keys "log-level",
// "log-format", "locale" and "group" when present in flags.
func LoadSettings(flags *pflag.FlagSet) (Settings, error) {
	v := viper.New()

	v.SetDefault("log-level", "warn")
	v.SetDefault("log-format", "console")
	v.SetDefault("locale", "")
	v.SetDefault("group", ".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, key := range []string{"log-level", "log-format", "locale", "group"} {
			if f := flags.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Settings{}, fmt.Errorf("binding flag %s: %w", key, err)
				}
			}
		}
	}

	return Settings{
		LogLevel:  v.GetString("log-level"),
		LogFormat: v.GetString("log-format"),
		Locale:    v.GetString("locale"),
		Group:     v.GetString("group"),
	}, nil
}
