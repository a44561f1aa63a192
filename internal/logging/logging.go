// Package logging builds the zap logger used by the CLI.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hypotheekplanner/mortgage-planner/internal/calculation"
)

// Config selects the level and encoding of the logger.
type Config struct {
	Level    string // debug, info, warn, error
	Encoding string // console or json
}

// New builds a structured zap.Logger. Output goes to stderr so reports
// written to stdout stay clean.
func New(c Config) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	if c.Encoding != "" {
		cfg.Encoding = c.Encoding
	}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.Sampling = nil

	level := c.Level
	if level == "" {
		level = "warn"
	}
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// Engine adapts logger to the calculation engine's Logger interface.
func Engine(logger *zap.Logger) calculation.Logger {
	if logger == nil {
		return calculation.NopLogger{}
	}
	return logger.Sugar()
}
