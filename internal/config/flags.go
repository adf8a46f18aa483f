package config

// This file registers CLI flags and layers them with the environment and an
// optional config file. Precedence: positional args > flags > environment >
// config file > DefaultConfig.

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Keys shared by flags, environment variables and config files.
const (
	keyDestination   = "destination"
	keyWorkingDir    = "working-dir"
	keyNoShortcut    = "no-shortcut"
	keyNoFlatten     = "no-flatten"
	keyNoInteraction = "no-interaction"
	keySortThreshold = "sort-threshold"
	keySevenZip      = "7z"
	keyVerbose       = "verbose"
	keyColor         = "color"
	keyNoColor       = "no-color"
	keyLog           = "log"
	keyCheck         = "check"
	keyConfig        = "config"
)

// EnvPrefix prefixes every environment variable (PINST_NO_INTERACTION, ...).
const EnvPrefix = "PINST"

// DestinationEnv is the environment variable naming the install root. The
// lower-case spelling is checked first for compatibility with existing setups.
var DestinationEnv = []string{"pinst_destination", "PINST_DESTINATION"}

// BindFlags registers all flags on fs with defaults from DefaultConfig.
func BindFlags(fs *pflag.FlagSet) {
	def := DefaultConfig()

	defineBehaviorFlags(fs, def)
	defineDisplayFlags(fs, def)
	fs.StringP(keyConfig, "", "", "Read settings from a YAML, TOML or JSON file")
}

// defineBehaviorFlags registers -w, -S, -F, -y, --sort-threshold and --7z.
func defineBehaviorFlags(fs *pflag.FlagSet, def Config) {
	fs.StringP(keyWorkingDir, "w", def.WorkingDir, "Working directory the tool will use")
	fs.BoolP(keyNoShortcut, "S", def.NoShortcut, "Do not create start menu shortcuts")
	fs.BoolP(keyNoFlatten, "F", def.NoFlatten, "Do not flatten installed directories")
	fs.BoolP(keyNoInteraction, "y", def.NoInteraction, "Assume the answer that continues execution on all prompts")
	fs.Int(keySortThreshold, def.SortThreshold, "Re-sort parts numerically when more than this many are found")
	fs.String(keySevenZip, def.SevenZip, "7-Zip executable used for extraction")
}

// defineDisplayFlags registers --color, --no-color, -v, -l and -c.
func defineDisplayFlags(fs *pflag.FlagSet, def Config) {
	fs.String(keyColor, string(def.ColorMode), "Colored logs: auto | always | never")
	fs.Bool(keyNoColor, false, "Same as --color=never")
	fs.BoolP(keyVerbose, "v", def.Verbose, "Verbose output")
	fs.StringP(keyLog, "l", def.LogFile, "Append logs to file")
	fs.BoolP(keyCheck, "c", def.CheckOnly, "Run system diagnostics and exit")
}

// Load resolves the final Config from fs (already parsed), the environment,
// an optional config file and the positional args (name, then optional
// destination). v should be a fresh viper instance.
func Load(v *viper.Viper, fs *pflag.FlagSet, args []string) (Config, error) {
	def := DefaultConfig()

	v.SetDefault(keySortThreshold, def.SortThreshold)
	v.SetDefault(keySevenZip, def.SevenZip)
	v.SetDefault(keyColor, string(def.ColorMode))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(append([]string{keyDestination}, DestinationEnv...)...); err != nil {
		return def, err
	}

	if err := v.BindPFlags(fs); err != nil {
		return def, err
	}

	cfgFile := v.GetString(keyConfig)
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return def, fmt.Errorf("reading config file %s: %w", cfgFile, err)
		}
	}

	if len(args) > 2 {
		return def, fmt.Errorf("expected <name> [destination], got %d arguments", len(args))
	}
	if len(args) > 0 {
		def.Name = args[0]
	}
	if len(args) > 1 {
		v.Set(keyDestination, args[1])
	}

	cfg := def
	cfg.ConfigFile = cfgFile
	cfg.Destination = v.GetString(keyDestination)
	cfg.WorkingDir = v.GetString(keyWorkingDir)
	cfg.NoShortcut = v.GetBool(keyNoShortcut)
	cfg.NoFlatten = v.GetBool(keyNoFlatten)
	cfg.NoInteraction = v.GetBool(keyNoInteraction)
	cfg.SortThreshold = v.GetInt(keySortThreshold)
	cfg.SevenZip = v.GetString(keySevenZip)
	cfg.Verbose = v.GetBool(keyVerbose)
	cfg.LogFile = v.GetString(keyLog)
	cfg.CheckOnly = v.GetBool(keyCheck)

	mode, err := ParseColorMode(v.GetString(keyColor))
	if err != nil {
		return cfg, err
	}
	cfg.ColorMode = mode
	if v.GetBool(keyNoColor) {
		cfg.ColorMode = ColorNever
	}
	return cfg, nil
}
