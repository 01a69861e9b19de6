// Package config loads tablez settings from defaults, an optional config
// file, TABLEZ_* environment variables and command-line flags, in that order
// of increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/tablez/internal/facts"
)

// EnvPrefix is prepended to every environment variable, e.g. TABLEZ_DB.
const EnvPrefix = "TABLEZ"

// Config holds all runtime settings.
type Config struct {
	// DBPath overrides the default database location when non-empty.
	DBPath string `mapstructure:"db"`

	// Debug enables debug logging.
	Debug bool `mapstructure:"debug"`

	// QuestionCount is the default number of questions per quiz.
	QuestionCount int `mapstructure:"question_count"`

	// DefaultScope is the tables preselected on the dashboard.
	DefaultScope []int `mapstructure:"-"`

	// RecentWindow is the number of most recent attempts per table used for
	// accuracy and latency.
	RecentWindow int `mapstructure:"recent_window"`

	// MaxHistoryPerFact bounds stored attempts per fact.
	MaxHistoryPerFact int `mapstructure:"max_history_per_fact"`

	// RecentPenaltyWindow is how long after an attempt a fact is
	// de-prioritised by the sampler.
	RecentPenaltyWindow time.Duration `mapstructure:"recent_penalty_window"`

	// AllowRepeats fills requests larger than the fact pool with repeats.
	AllowRepeats bool `mapstructure:"allow_repeats"`

	// SkipSplash starts the TUI on the dashboard without the intro.
	SkipSplash bool `mapstructure:"skip_splash"`
}

// DefaultConfig returns a Config with the standard settings.
func DefaultConfig() Config {
	return Config{
		QuestionCount:       12,
		DefaultScope:        []int{},
		RecentWindow:        30,
		MaxHistoryPerFact:   100,
		RecentPenaltyWindow: 60 * time.Second,
	}
}

// Options controls where Load looks for settings.
type Options struct {
	// File is an explicit config file. Empty means search the default
	// locations; a missing default file is not an error.
	File string

	// Flags, when set, are bound so that explicitly set flags win.
	Flags *pflag.FlagSet
}

// Load builds a Config from all sources.
func Load(opts Options) (*Config, error) {
	def := DefaultConfig()

	v := viper.New()
	v.SetDefault("db", def.DBPath)
	v.SetDefault("debug", def.Debug)
	v.SetDefault("question_count", def.QuestionCount)
	v.SetDefault("default_scope", def.DefaultScope)
	v.SetDefault("recent_window", def.RecentWindow)
	v.SetDefault("max_history_per_fact", def.MaxHistoryPerFact)
	v.SetDefault("recent_penalty_window", def.RecentPenaltyWindow)
	v.SetDefault("allow_repeats", def.AllowRepeats)
	v.SetDefault("skip_splash", def.SkipSplash)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName("config")
		if dir, err := DefaultConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if opts.Flags != nil {
		for key, flag := range map[string]string{
			"db":             "db",
			"debug":          "debug",
			"question_count": "count",
			"allow_repeats":  "allow-repeats",
			"skip_splash":    "skip-splash",
		} {
			if f := opts.Flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", flag, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	scope, err := parseScope(v.Get("default_scope"))
	if err != nil {
		return nil, fmt.Errorf("default_scope: %w", err)
	}
	cfg.DefaultScope = scope

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.QuestionCount <= 0 {
		return fmt.Errorf("question_count must be positive, got %d", c.QuestionCount)
	}
	if c.RecentWindow <= 0 {
		return fmt.Errorf("recent_window must be positive, got %d", c.RecentWindow)
	}
	if c.MaxHistoryPerFact <= 0 {
		return fmt.Errorf("max_history_per_fact must be positive, got %d", c.MaxHistoryPerFact)
	}
	if c.RecentPenaltyWindow <= 0 {
		return fmt.Errorf("recent_penalty_window must be positive, got %s", c.RecentPenaltyWindow)
	}
	return nil
}

// DefaultConfigDir resolves $XDG_CONFIG_HOME/tablez, falling back to
// ~/.config/tablez.
func DefaultConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "tablez"), nil
}

// parseScope accepts a list from a config file or a comma-separated string
// from the environment, and normalises it.
func parseScope(raw any) ([]int, error) {
	var scope []int
	switch val := raw.(type) {
	case nil:
	case string:
		for _, part := range strings.Split(val, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid table %q", part)
			}
			scope = append(scope, n)
		}
	case []int:
		scope = val
	case []any:
		for _, item := range val {
			n, err := strconv.Atoi(strings.TrimSpace(fmt.Sprint(item)))
			if err != nil {
				return nil, fmt.Errorf("invalid table %v", item)
			}
			scope = append(scope, n)
		}
	default:
		return nil, fmt.Errorf("unsupported value %v", raw)
	}
	return facts.NormalizeScope(scope), nil
}
