package logger

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger — глобальный логгер. До вызова Initialize — no-op, чтобы пакеты
// могли логировать в тестах без настройки.
var Logger = zap.NewNop().Sugar()

// Initialize настраивает глобальный логгер: JSON для машинной обработки
// или консольный вывод в stderr.
func Initialize(jsonOutput bool, level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	var zl *zap.Logger
	if jsonOutput {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(lvl)
		cfg.OutputPaths = []string{"stderr"}
		zl, err = cfg.Build()
		if err != nil {
			return errors.Wrap(err, "build json logger")
		}
	} else {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		zl = zap.New(zapcore.NewCore(
			zapcore.NewConsoleEncoder(encCfg),
			zapcore.AddSync(os.Stderr),
			lvl,
		))
	}

	Logger = zl.Sugar()
	return nil
}

func ParseLevel(level string) (zapcore.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zapcore.InfoLevel, errors.WithHint(
			errors.Wrapf(err, "log level %q", level),
			"use one of: debug, info, warn, error",
		)
	}
	return lvl, nil
}

// Sync сбрасывает буферы; ошибку sync для stderr/stdout игнорируем.
func Sync() {
	_ = Logger.Sync()
}
