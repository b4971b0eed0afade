package logger

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logger configuration
type Config struct {
	Level       string
	Environment string
	Service     string
}

var (
	mu   sync.RWMutex
	root = zap.NewNop()
)

// Init builds the process logger. Production environments log JSON,
// everything else logs human friendly console output.
func Init(conf Config) error {
	level, err := zapcore.ParseLevel(strings.ToLower(conf.Level))
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zc zap.Config
	if conf.Environment == "production" {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "timestamp"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	l, err := zc.Build(zap.Fields(
		zap.String("service", conf.Service),
		zap.String("environment", conf.Environment),
	))
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	mu.Lock()
	root = l
	mu.Unlock()
	zap.ReplaceGlobals(l)
	return nil
}

// Root returns the process logger.
func Root() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}

// Named returns a sugared logger for a component.
func Named(name string) (*zap.SugaredLogger, error) {
	if name == "" {
		return nil, fmt.Errorf("logger name is required")
	}
	return Root().Named(name).Sugar(), nil
}

// MustNamed is like Named but panics on error.
func MustNamed(name string) *zap.SugaredLogger {
	l, err := Named(name)
	if err != nil {
		panic(err)
	}
	return l
}

// Sync flushes buffered entries.
func Sync() error {
	return Root().Sync()
}
