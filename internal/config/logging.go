package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogConfig selects the log level and encoding
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json or console
}

func (l LogConfig) level() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(l.Level)))
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return lvl, nil
}

func (l LogConfig) checkFormat() error {
	switch strings.ToLower(l.Format) {
	case "", "json", "console":
		return nil
	}
	return fmt.Errorf("LOG_FORMAT %q must be json or console", l.Format)
}

// NewLogger builds the process logger. JSON uses the production preset and
// console the development one; both honour Level.
func (l LogConfig) NewLogger() (*zap.Logger, error) {
	lvl, err := l.level()
	if err != nil {
		return nil, err
	}

	if err := l.checkFormat(); err != nil {
		return nil, err
	}

	config := zap.NewProductionConfig()
	if strings.EqualFold(l.Format, "console") {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = zap.NewAtomicLevelAt(lvl)

	return config.Build()
}
