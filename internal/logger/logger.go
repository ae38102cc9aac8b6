// Package logger builds the zap logger shared by the server and the CLI.
package logger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	FormatJSON    = "json"
	FormatConsole = "console"

	OutputStdout = "stdout"
	OutputStderr = "stderr"
)

var (
	ErrInvalidLevel  = errors.New("invalid log level")
	ErrInvalidFormat = errors.New("invalid log format")
)

// Config selects the level, encoding and destination of log output. Output
// is stdout, stderr, or a file path; files are rotated.
type Config struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	Output     string `yaml:"output"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// DefaultConfig logs info and above as JSON to stderr.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     FormatJSON,
		Output:     OutputStderr,
		MaxSizeMB:  100,
		MaxBackups: 3,
		MaxAgeDays: 28,
	}
}

// Validate checks the level and format.
func (c Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLevel, c.Level)
	}
	switch c.Format {
	case FormatJSON, FormatConsole:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
	}
}

// New creates a logger from cfg.
func New(cfg Config) (*zap.Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, _ := zapcore.ParseLevel(cfg.Level)

	ws, err := writer(cfg)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(encoder(cfg.Format), ws, zap.NewAtomicLevelAt(level))
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

func encoder(format string) zapcore.Encoder {
	if format == FormatConsole {
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		return zapcore.NewConsoleEncoder(ec)
	}

	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "time"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeDuration = zapcore.StringDurationEncoder
	return zapcore.NewJSONEncoder(ec)
}

func writer(cfg Config) (zapcore.WriteSyncer, error) {
	switch strings.ToLower(cfg.Output) {
	case "", OutputStderr:
		return zapcore.Lock(os.Stderr), nil
	case OutputStdout:
		return zapcore.Lock(os.Stdout), nil
	}

	path, err := filepath.Abs(cfg.Output)
	if err != nil {
		return nil, fmt.Errorf("resolve log path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB, // megabytes
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays, // days
		Compress:   cfg.Compress,
	}), nil
}
