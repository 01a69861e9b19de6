package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points config discovery at an empty directory.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(Options{})
	require.NoError(t, err)

	want := DefaultConfig()
	assert.Equal(t, want.QuestionCount, cfg.QuestionCount)
	assert.Equal(t, want.RecentWindow, cfg.RecentWindow)
	assert.Equal(t, want.MaxHistoryPerFact, cfg.MaxHistoryPerFact)
	assert.Equal(t, 60*time.Second, cfg.RecentPenaltyWindow)
	assert.Empty(t, cfg.DefaultScope)
	assert.False(t, cfg.AllowRepeats)
	assert.Empty(t, cfg.DBPath)
}

func TestLoadFromFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "tablez.yaml")
	content := `question_count: 20
default_scope: [7, 3, 13]
recent_penalty_window: 90s
allow_repeats: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(Options{File: path})
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.QuestionCount)
	assert.Equal(t, []int{3, 7}, cfg.DefaultScope)
	assert.Equal(t, 90*time.Second, cfg.RecentPenaltyWindow)
	assert.True(t, cfg.AllowRepeats)
}

func TestLoadFromDefaultDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "tablez"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tablez", "config.toml"), []byte("question_count = 5\n"), 0o644))

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.QuestionCount)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load(Options{File: filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "tablez.yaml")
	require.NoError(t, os.WriteFile(path, []byte("question_count: 20\n"), 0o644))
	t.Setenv("TABLEZ_QUESTION_COUNT", "8")
	t.Setenv("TABLEZ_DEFAULT_SCOPE", "2, 5,5")
	t.Setenv("TABLEZ_DB", "/tmp/x.db")

	cfg, err := Load(Options{File: path})
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.QuestionCount)
	assert.Equal(t, []int{2, 5}, cfg.DefaultScope)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
}

func TestFlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("TABLEZ_QUESTION_COUNT", "8")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("count", 12, "")
	fs.String("db", "", "")
	require.NoError(t, fs.Parse([]string{"--count", "30", "--db", "/tmp/flag.db"}))

	cfg, err := Load(Options{Flags: fs})
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.QuestionCount)
	assert.Equal(t, "/tmp/flag.db", cfg.DBPath)
}

func TestInvalidEnvScope(t *testing.T) {
	isolate(t)
	t.Setenv("TABLEZ_DEFAULT_SCOPE", "3,x")

	_, err := Load(Options{})
	require.Error(t, err)
}

func TestZeroPenaltyFromFileRejected(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "tablez.yaml")
	require.NoError(t, os.WriteFile(path, []byte("recent_penalty_window: 0s\n"), 0o644))

	_, err := Load(Options{File: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recent_penalty_window")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero count", func(c *Config) { c.QuestionCount = 0 }},
		{"zero window", func(c *Config) { c.RecentWindow = 0 }},
		{"zero history", func(c *Config) { c.MaxHistoryPerFact = 0 }},
		{"negative penalty", func(c *Config) { c.RecentPenaltyWindow = -time.Second }},
		{"zero penalty", func(c *Config) { c.RecentPenaltyWindow = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, DefaultConfig().Validate())
}
