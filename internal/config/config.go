// Package config загружает настройки запуска: значения по умолчанию,
// файл rpq.toml, переменные окружения RPQ_* (и .env), флаги командной строки.
package config

import (
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"rpq/internal/groups"
	"rpq/internal/logger"
	"rpq/internal/rpq"
)

const (
	EnvPrefix      = "RPQ"
	ConfigName     = "rpq"
	DefaultAlgo    = "schrage-heap"
	DefaultMaxJobs = 10
)

// Algorithms — допустимые имена алгоритмов.
var Algorithms = []string{
	"schrage",
	"schrage-heap",
	"exact",
	"exact-parallel",
	"groups",
	"heuristic",
}

type Config struct {
	Input     string      `mapstructure:"input"`
	Algorithm string      `mapstructure:"algorithm"`
	Workers   int         `mapstructure:"workers"`
	MaxJobs   int         `mapstructure:"max_jobs"`
	Group     GroupConfig `mapstructure:"group"`
	Log       LogConfig   `mapstructure:"log"`
	Bench     BenchConfig `mapstructure:"bench"`
}

type GroupConfig struct {
	Key        string `mapstructure:"key"`
	Descending bool   `mapstructure:"descending"`
}

type LogConfig struct {
	JSON  bool   `mapstructure:"json"`
	Level string `mapstructure:"level"`
}

type BenchConfig struct {
	Jobs          []int         `mapstructure:"jobs"`
	Algorithms    []string      `mapstructure:"algorithms"`
	Runs          int           `mapstructure:"runs"`
	InstanceSeed  int64         `mapstructure:"instance_seed"`
	PerRunTimeout time.Duration `mapstructure:"per_run_timeout"`
	Out           string        `mapstructure:"out"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("input", "data/example.dat")
	v.SetDefault("algorithm", DefaultAlgo)
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("max_jobs", DefaultMaxJobs)

	v.SetDefault("group.key", string(groups.KeyRelease))
	v.SetDefault("group.descending", false)

	v.SetDefault("log.json", false)
	v.SetDefault("log.level", "info")

	v.SetDefault("bench.jobs", []int{6, 8, 9})
	v.SetDefault("bench.algorithms", []string{"schrage", "schrage-heap", "exact-parallel", "groups", "heuristic"})
	v.SetDefault("bench.runs", 10)
	v.SetDefault("bench.instance_seed", 777)
	v.SetDefault("bench.per_run_timeout", time.Duration(0))
	v.SetDefault("bench.out", "artifacts/results.csv")
}

// New создаёт viper с источниками в порядке приоритета:
// флаги > окружение > файл > значения по умолчанию.
// configFile может быть пустым: тогда rpq.toml ищется в текущем каталоге.
func New(configFile string) (*viper.Viper, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config")
		}
	}
	return v, nil
}

// LoadDotEnv подгружает переменные из .env, если файл существует.
// Уже заданные переменные окружения не перезаписываются.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.WithHint(
			errors.Wrapf(err, "load env file %s", path),
			"expected KEY=value lines",
		)
	}
	return nil
}

func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if !IsAlgorithm(c.Algorithm) {
		return errors.WithHintf(
			errors.Newf("unknown algorithm %q", c.Algorithm),
			"available: %s", strings.Join(Algorithms, ", "),
		)
	}
	if c.Workers < 0 {
		return errors.Newf("workers must be >= 0 (got %d)", c.Workers)
	}
	if c.MaxJobs <= 0 || c.MaxJobs > rpq.MaxFactorial {
		return errors.Newf("max_jobs must be in [1,%d] (got %d)", rpq.MaxFactorial, c.MaxJobs)
	}
	if err := (groups.Config{Key: groups.Key(c.Group.Key)}).Validate(); err != nil {
		return errors.Wrap(err, "group")
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

func (b BenchConfig) Validate() error {
	if len(b.Jobs) == 0 {
		return errors.New("bench.jobs must not be empty")
	}
	for _, n := range b.Jobs {
		if n <= 0 {
			return errors.Newf("bench.jobs: job count must be > 0 (got %d)", n)
		}
	}
	if b.Runs <= 0 {
		return errors.Newf("bench.runs must be > 0 (got %d)", b.Runs)
	}
	for _, a := range b.Algorithms {
		if !IsAlgorithm(a) {
			return errors.Newf("bench.algorithms: unknown algorithm %q", a)
		}
	}
	return nil
}

func IsAlgorithm(name string) bool {
	for _, a := range Algorithms {
		if a == name {
			return true
		}
	}
	return false
}
