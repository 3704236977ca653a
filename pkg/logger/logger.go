package logger

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fatflowers/texttopay/pkg/config"
)

func build(level zapcore.Level, name string) (*zap.SugaredLogger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.EncoderConfig.TimeKey = "time"
	zcfg.Level = zap.NewAtomicLevelAt(level)
	l, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar().Named(name), nil
}

// New builds the server logger: JSON at info, debug in the dev env.
func New(cfg *config.Config) (*zap.SugaredLogger, error) {
	level := zapcore.InfoLevel
	if cfg != nil && cfg.Env == config.EnvDev {
		level = zapcore.DebugLevel
	}
	return build(level, "texttopay")
}

// NewConsole builds the logger for the merchant console. It stays at warn
// unless verbose so command output is readable.
func NewConsole(verbose bool) (*zap.SugaredLogger, error) {
	if verbose {
		return build(zapcore.DebugLevel, "texttopay-console")
	}
	return build(zapcore.WarnLevel, "texttopay-console")
}

// FxLogger routes fx lifecycle events through the application logger.
func FxLogger(l *zap.SugaredLogger) fxevent.Logger {
	return &fxevent.ZapLogger{Logger: l.Desugar().Named("fx")}
}

var Module = fx.Options(
	fx.Provide(New),
	fx.WithLogger(FxLogger),
)
