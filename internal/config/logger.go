package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger строит production-логгер zap с уровнем из LogLevel (пусто — info).
func (c Config) Logger() (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if s := strings.TrimSpace(c.LogLevel); s != "" {
		l, err := zapcore.ParseLevel(s)
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", s, err)
		}
		level = l
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}
