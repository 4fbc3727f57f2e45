package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables overriding flags, e.g. DISKUSAGE_POLICY.
const EnvPrefix = "DISKUSAGE"

// loadOptions merges flags, environment and an optional config file, in
// that order of precedence.
func loadOptions(v *viper.Viper, flags *pflag.FlagSet, args []string) (Options, error) {
	if err := v.BindPFlags(flags); err != nil {
		return Options{}, fmt.Errorf("binding flags: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return Options{}, fmt.Errorf("reading config file %q: %w", path, err)
		}
	}

	options := Options{
		Path:           v.GetString("path"),
		Policy:         v.GetString("policy"),
		FollowSymlinks: v.GetBool("follow-symlinks"),
		Output:         strings.ToLower(v.GetString("output")),
		TopN:           v.GetInt("top"),
		LogLevel:       v.GetString("log-level"),
		LogFile:        v.GetString("log-file"),
		Debug:          v.GetBool("debug"),
		PrintDir:       v.GetBool("print-dir"),
		ConfigFile:     v.GetString("config"),
		Version:        v.GetBool("version"),
		Integration:    v.GetBool("init"),
	}

	if len(args) > 0 {
		options.Path = args[0]
	}

	return options, nil
}
