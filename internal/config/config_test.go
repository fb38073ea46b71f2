package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, DefaultAlgo, cfg.Algorithm)
	assert.Equal(t, DefaultMaxJobs, cfg.MaxJobs)
	assert.Equal(t, "release", cfg.Group.Key)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, []int{6, 8, 9}, cfg.Bench.Jobs)
	assert.Equal(t, 10, cfg.Bench.Runs)
	assert.Equal(t, time.Duration(0), cfg.Bench.PerRunTimeout)
	assert.Positive(t, cfg.Workers)

	assert.NoError(t, cfg.Validate())
	assert.NoError(t, cfg.Bench.Validate())
}

func TestNew_ConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rpq.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
algorithm = "exact-parallel"
workers = 3

[group]
key = "delivery"

[bench]
runs = 4
per_run_timeout = "2s"
`), 0o644))

	t.Setenv("RPQ_MAX_JOBS", "8")
	t.Setenv("RPQ_LOG_LEVEL", "debug")

	v, err := New(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "exact-parallel", cfg.Algorithm)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 8, cfg.MaxJobs)
	assert.Equal(t, "delivery", cfg.Group.Key)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 4, cfg.Bench.Runs)
	assert.Equal(t, 2*time.Second, cfg.Bench.PerRunTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestNew_MissingExplicitFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		v := viper.New()
		SetDefaults(v)
		cfg, err := Load(v)
		require.NoError(t, err)
		return *cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "unknown algorithm", mutate: func(c *Config) { c.Algorithm = "annealing" }},
		{name: "negative workers", mutate: func(c *Config) { c.Workers = -2 }},
		{name: "zero max jobs", mutate: func(c *Config) { c.MaxJobs = 0 }},
		{name: "max jobs overflow", mutate: func(c *Config) { c.MaxJobs = 21 }},
		{name: "bad group key", mutate: func(c *Config) { c.Group.Key = "id" }},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "chatty" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestBenchConfig_Validate(t *testing.T) {
	ok := BenchConfig{Jobs: []int{5}, Runs: 1, Algorithms: []string{"schrage"}}
	assert.NoError(t, ok.Validate())

	assert.Error(t, BenchConfig{Runs: 1}.Validate())
	assert.Error(t, BenchConfig{Jobs: []int{0}, Runs: 1}.Validate())
	assert.Error(t, BenchConfig{Jobs: []int{5}, Runs: 0}.Validate())
	assert.Error(t, BenchConfig{Jobs: []int{5}, Runs: 1, Algorithms: []string{"ga"}}.Validate())
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("RPQ_TEST_DOTENV=loaded\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("RPQ_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("RPQ_TEST_DOTENV"))

	// Отсутствующий файл не ошибка.
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))

	t.Run("should report a broken file", func(t *testing.T) {
		broken := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(broken, []byte("BAD-KEY=1\n"), 0o644))
		assert.Error(t, LoadDotEnv(broken))
	})
}

func TestNew_BrokenDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BAD-KEY=1\n"), 0o644))
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, err := New("")
	assert.Error(t, err)
}
