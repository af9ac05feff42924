package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"accessor-rename/internal/codemod"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "ACCREN"

// DefaultPatterns are the include globs used when none are configured.
var DefaultPatterns = []string{"src/**/*.ts", "src/**/*.tsx", "netlify/functions/**/*.ts"}

// DefaultExclude are the exclude globs used when none are configured.
var DefaultExclude = []string{"**/node_modules/**", ".git/**"}

// flagKeys maps command line flag names to canonical config keys. Flags not
// listed here (config, version, suggest) are not configuration values.
var flagKeys = map[string]string{
	"root":         "root",
	"dry-run":      "dry_run",
	"table":        "table",
	"pattern":      "patterns",
	"exclude":      "exclude",
	"access-root":  "access_roots",
	"workers":      "workers",
	"fail-fast":    "fail_fast",
	"output":       "output",
	"metrics-file": "metrics_file",
	"log-level":    "logging.level",
	"log-format":   "logging.format",
}

// LoadFrom loads configuration from args parsed with fs, with the following
// precedence:
// 1. Command line flags
// 2. Environment variables (ACCREN_*)
// 3. Config file
// 4. Default values
//
// Flags are defined on fs when missing and parsed unless fs is already parsed.
// Pattern flags take one glob per occurrence, so commas inside braces survive.
func LoadFrom(fs *pflag.FlagSet, args []string) (*Config, error) {
	v := viper.New()

	// Defaults (lowest priority)
	setDefaults(v)

	// --- Flags ---
	DefineFlags(fs)
	if !fs.Parsed() {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
	}

	// --- Config file ---
	cfgPath, _ := fs.GetString("config")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.SetConfigName("accessor-rename")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.accessor-rename")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if cfgPath != "" {
			return nil, fmt.Errorf("failed to read config file %q: %w", cfgPath, err)
		}
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// --- Environment variables ---
	// Canonical keys: dot + snake_case
	// Env vars: ACCREN_LOGGING_LEVEL, ACCREN_DRY_RUN
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// --- Flags binding (highest normal priority) ---
	bindChangedFlagsToViper(fs, v)

	// --- Unmarshal (strict) ---
	var cfg Config
	if err := v.UnmarshalExact(
		&cfg,
		viper.DecodeHook(
			mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				stringToStringSliceHookFunc(","),
			),
		),
	); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// bindChangedFlagsToViper copies only explicitly-set flags into Viper,
// preserving precedence: flags > env > file > defaults.
func bindChangedFlagsToViper(fs *pflag.FlagSet, v *viper.Viper) {
	fs.Visit(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}

		switch f.Value.Type() {
		case "string":
			val, _ := fs.GetString(f.Name)
			v.Set(key, val)
		case "int":
			val, _ := fs.GetInt(f.Name)
			v.Set(key, val)
		case "bool":
			val, _ := fs.GetBool(f.Name)
			v.Set(key, val)
		case "stringSlice":
			val, _ := fs.GetStringSlice(f.Name)
			v.Set(key, val)
		case "stringArray":
			val, _ := fs.GetStringArray(f.Name)
			v.Set(key, val)
		default:
			v.Set(key, f.Value.String())
		}
	})
}

// DefineFlags defines all command line flags on fs. It is a no-op for flags
// fs already has, so callers may define extra flags first.
func DefineFlags(fs *pflag.FlagSet) {
	define := func(name string, fn func()) {
		if fs.Lookup(name) == nil {
			fn()
		}
	}

	define("root", func() { fs.String("root", "", "Directory the patterns are evaluated against (default: current directory)") })
	define("dry-run", func() { fs.Bool("dry-run", false, "Compute and report replacements without writing files") })
	define("table", func() { fs.String("table", "", "Path to a YAML/JSON rename table (singular: plural) replacing the built-in table") })
	define("pattern", func() {
		fs.StringArray("pattern", nil, "Include glob relative to root (repeatable; default: "+strings.Join(DefaultPatterns, ", ")+")")
	})
	define("exclude", func() {
		fs.StringArray("exclude", nil, "Exclude glob relative to root (repeatable; default: "+strings.Join(DefaultExclude, ", ")+")")
	})
	define("access-root", func() {
		fs.StringSlice("access-root", nil, "Identifier whose member accesses are renamed (repeatable; default: "+strings.Join(codemod.DefaultAccessRoots, ", ")+")")
	})
	define("workers", func() { fs.Int("workers", 0, "Files processed concurrently (default: 1)") })
	define("fail-fast", func() { fs.Bool("fail-fast", false, "Stop at the first file that cannot be read or written") })
	define("output", func() { fs.String("output", "", "Report format (text, json)") })
	define("metrics-file", func() { fs.String("metrics-file", "", "Write run metrics to this file in Prometheus text format") })
	define("log-level", func() { fs.String("log-level", "", "Log level (debug, info, warn, error)") })
	define("log-format", func() { fs.String("log-format", "", "Log format (json, text; default: text on a terminal)") })
	define("config", func() { fs.StringP("config", "c", "", "Config file path") })
}

// setDefaults sets default values (lowest precedence).
func setDefaults(v *viper.Viper) {
	v.SetDefault("root", ".")
	v.SetDefault("dry_run", false)
	v.SetDefault("table", "")
	v.SetDefault("patterns", DefaultPatterns)
	v.SetDefault("exclude", DefaultExclude)
	v.SetDefault("access_roots", codemod.DefaultAccessRoots)
	v.SetDefault("workers", 1)
	v.SetDefault("fail_fast", false)
	v.SetDefault("output", "text")
	v.SetDefault("metrics_file", "")

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "")

	v.SetDefault("naming.plural_overrides", map[string]string{})
}

func stringToStringSliceHookFunc(sep string) mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to != reflect.TypeOf([]string{}) {
			return data, nil
		}

		raw := strings.TrimSpace(data.(string))
		if raw == "" {
			return []string{}, nil
		}

		parts := splitOutsideBraces(raw, sep)
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts, nil
	}
}

// splitOutsideBraces splits s on sep, ignoring separators inside {...} so
// glob alternations such as "*.{ts,tsx}" stay whole.
func splitOutsideBraces(s, sep string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '{':
			depth++
		case s[i] == '}' && depth > 0:
			depth--
		case depth == 0 && strings.HasPrefix(s[i:], sep):
			parts = append(parts, s[start:i])
			start = i + len(sep)
			i += len(sep) - 1
		}
	}
	return append(parts, s[start:])
}
