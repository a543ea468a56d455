package logger

import (
	"chatline/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a key/value logger backed by zap. The zero value discards everything,
// which keeps tests free of logging setup.
type Logger struct {
	sugar *zap.SugaredLogger
}

func NewLogger(cfg *config.Config) (*Logger, error) {
	var zcfg zap.Config
	if cfg.LoggerMode.Development {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}

	if cfg.LoggerMode.Level != "" {
		level, err := zapcore.ParseLevel(cfg.LoggerMode.Level)
		if err != nil {
			return nil, err
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}

	l, err := zcfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &Logger{sugar: l.Sugar()}, nil
}

// FromZap wraps an existing zap logger, e.g. one built on an observer core in tests.
func FromZap(l *zap.Logger) Logger {
	return Logger{sugar: l.Sugar()}
}

// With returns a child logger carrying the given key/value pairs.
func (l Logger) With(kv ...any) Logger {
	if l.sugar == nil {
		return l
	}
	return Logger{sugar: l.sugar.With(kv...)}
}

func (l Logger) Debug(msg string, kv ...any) {
	if l.sugar != nil {
		l.sugar.Debugw(msg, kv...)
	}
}

func (l Logger) Info(msg string, kv ...any) {
	if l.sugar != nil {
		l.sugar.Infow(msg, kv...)
	}
}

func (l Logger) Warn(msg string, kv ...any) {
	if l.sugar != nil {
		l.sugar.Warnw(msg, kv...)
	}
}

func (l Logger) Error(msg string, kv ...any) {
	if l.sugar != nil {
		l.sugar.Errorw(msg, kv...)
	}
}

func (l Logger) Infof(format string, args ...any) {
	if l.sugar != nil {
		l.sugar.Infof(format, args...)
	}
}

func (l Logger) Errorf(format string, args ...any) {
	if l.sugar != nil {
		l.sugar.Errorf(format, args...)
	}
}

func (l Logger) Sync() error {
	if l.sugar == nil {
		return nil
	}
	return l.sugar.Sync()
}
