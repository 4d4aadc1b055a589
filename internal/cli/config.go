package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/Wladim1r/xoconf/internal/options"
)

// EnvPrefix prefixes every environment variable the CLI reads, e.g.
// XO_SPACE=4 or XO_ENVS=node,mocha.
const EnvPrefix = "XO_"

// Settings is the fully layered CLI configuration.
type Settings struct {
	// Raw is the lint option bag; the project manifest is merged later.
	Raw options.Raw

	ESLint      string
	Concurrency int
	LogLevel    string
	Pretty      bool
}

// listKeys are the options that accept several values. Singular flag and
// variable names are folded into the plural key so that later layers
// replace earlier ones.
var listKeys = map[string]string{
	"env":     "envs",
	"envs":    "envs",
	"global":  "globals",
	"globals": "globals",
	"ignore":  "ignores",
	"ignores": "ignores",
	"plugin":  "plugins",
	"plugins": "plugins",
	"extend":  "extends",
	"extends": "extends",
}

func defaults() map[string]any {
	return map[string]any{
		"concurrency": runtime.NumCPU(),
		"log_level":   "warn",
		"pretty":      false,
	}
}

// Load layers the built-in defaults, XO_* environment variables and the
// flags the user set, in that order, and decodes the result.
func Load(flags *pflag.FlagSet) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("xoconf: loading defaults: %w", err)
	}
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("xoconf: loading environment: %w", err)
	}
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, flagValue(flags)), nil); err != nil {
			return nil, fmt.Errorf("xoconf: loading flags: %w", err)
		}
	}

	raw, err := options.Decode(k.Raw())
	if err != nil {
		return nil, err
	}

	return &Settings{
		Raw:         raw,
		ESLint:      k.String("eslint"),
		Concurrency: k.Int("concurrency"),
		LogLevel:    k.String("log_level"),
		Pretty:      k.Bool("pretty"),
	}, nil
}

// envValue maps XO_LOG_LEVEL to log_level and splits comma-separated lists.
// A singular list variable is dropped when its plural one is also set, so
// XO_ENVS always beats XO_ENV.
func envValue(key, val string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	plural, ok := listKeys[key]
	if !ok {
		return key, val
	}
	if plural != key {
		if _, set := os.LookupEnv(EnvPrefix + strings.ToUpper(plural)); set {
			return "", nil
		}
	}
	return plural, splitList(val)
}

func flagValue(flags *pflag.FlagSet) func(f *pflag.Flag) (string, any) {
	return func(f *pflag.Flag) (string, any) {
		if !f.Changed {
			return "", nil
		}

		switch f.Name {
		case "no-semicolon":
			on, _ := flags.GetBool(f.Name)
			return "semicolon", !on
		case "rule":
			items, _ := flags.GetStringArray(f.Name)
			return "rules", parseRules(items)
		}

		key := strings.ReplaceAll(f.Name, "-", "_")
		if plural, ok := listKeys[key]; ok {
			return plural, posflag.FlagVal(flags, f)
		}
		return key, posflag.FlagVal(flags, f)
	}
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// parseRules turns name=setting pairs into a rule map. A setting that
// parses as JSON is used as such, anything else is taken as a string.
func parseRules(items []string) map[string]any {
	rules := make(map[string]any, len(items))
	for _, item := range items {
		name, setting, _ := strings.Cut(item, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		var v any
		if err := json.Unmarshal([]byte(setting), &v); err != nil {
			v = setting
		}
		rules[name] = v
	}
	return rules
}
