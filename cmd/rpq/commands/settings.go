package commands

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"rpq/internal/config"
	"rpq/internal/logger"
)

// flagKeys связывает имена флагов с ключами конфигурации.
var flagKeys = map[string]string{
	"input":           "input",
	"algo":            "algorithm",
	"workers":         "workers",
	"max-jobs":        "max_jobs",
	"group-key":       "group.key",
	"descending":      "group.descending",
	"log-json":        "log.json",
	"log-level":       "log.level",
	"jobs":            "bench.jobs",
	"algos":           "bench.algorithms",
	"runs":            "bench.runs",
	"instance-seed":   "bench.instance_seed",
	"per-run-timeout": "bench.per_run_timeout",
	"out":             "bench.out",
}

// Settings собирает конфигурацию для выполняемой команды
// и инициализирует логгер.
func Settings(cmd *cobra.Command) (*config.Config, error) {
	cfgFile, _ := cmd.Flags().GetString("config")

	v, err := config.New(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	if err := logger.Initialize(cfg.Log.JSON, cfg.Log.Level); err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}
	return cfg, nil
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || err != nil {
			return
		}
		err = v.BindPFlag(key, f)
	})
	return errors.Wrap(err, "bind flags")
}
