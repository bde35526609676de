package logutil

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type ConfigReader interface {
	GetString(string) string
	GetBool(string) bool
}

type LoggerConfig struct {
	Level     string
	Format    string
	AddSource bool
}

func LoggerConfigFromReader(r ConfigReader) LoggerConfig {
	if r == nil {
		return LoggerConfig{}
	}
	return LoggerConfig{
		Level:     r.GetString("logging.level"),
		Format:    r.GetString("logging.format"),
		AddSource: r.GetBool("logging.add_source"),
	}
}

func LoggerConfigFromViper() LoggerConfig {
	return LoggerConfigFromReader(viper.GetViper())
}

func LoggerFromConfig(cfg LoggerConfig) (*slog.Logger, error) {
	return newLoggerFromConfig(cfg)
}

func LoggerFromViper() (*slog.Logger, error) {
	return LoggerFromConfig(LoggerConfigFromViper())
}

func newLoggerFromConfig(cfg LoggerConfig) (*slog.Logger, error) {
	level, err := parseSlogLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
	}

	var h slog.Handler
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "text":
		h = slog.NewTextHandler(os.Stderr, opts)
	case "json":
		h = slog.NewJSONHandler(os.Stderr, opts)
	default:
		return nil, fmt.Errorf("unknown logging.format: %s", cfg.Format)
	}

	return slog.New(h), nil
}

func parseSlogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown logging.level: %s", s)
	}
}
