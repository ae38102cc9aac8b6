// Package config loads the btcvanity YAML configuration.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	yaml "gopkg.in/yaml.v2"

	"github.com/Amr-9/btcvanity/internal/logger"
	"github.com/Amr-9/btcvanity/pkg/generator/cpu"
)

// PortEnv overrides Server.Port when set.
const PortEnv = "PORT"

var (
	// ErrInvalidPort is returned for a port outside 1-65535.
	ErrInvalidPort     = errors.New("invalid port")
	// ErrInvalidHost is returned for an empty listen host.
	ErrInvalidHost     = errors.New("invalid host")
	// ErrInvalidSearch is returned for a non-positive batch size or report interval.
	ErrInvalidSearch   = errors.New("invalid search settings")
	// ErrMissingWalletFn is returned when no wallet file is configured.
	ErrMissingWalletFn = errors.New("wallet file is required")
)

// ServerConfig is the listen address of the HTTP service.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr returns host:port for net.Listen.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// SearchConfig tunes the search loop.
type SearchConfig struct {
	// BatchSize is the number of keys tried between cancellation checks.
	BatchSize int `yaml:"batch_size"`
	// ReportInterval is the number of attempts between progress messages.
	ReportInterval int `yaml:"report_interval"`
}

// OutputConfig controls where the search command writes results.
type OutputConfig struct {
	// WalletFile receives found matches from the search command.
	WalletFile string `yaml:"wallet_file"`
}

// Config is the full application configuration.
type Config struct {
	Server ServerConfig  `yaml:"server"`
	Log    logger.Config `yaml:"log"`
	Search SearchConfig  `yaml:"search"`
	Output OutputConfig  `yaml:"output"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Host: "127.0.0.1", Port: 3000},
		Log:    logger.DefaultConfig(),
		Search: SearchConfig{
			BatchSize:      cpu.DefaultBatchSize,
			ReportInterval: cpu.DefaultReportInterval,
		},
		Output: OutputConfig{WalletFile: "wallet.txt"},
	}
}

// Load reads the file at path over the defaults, applies the PORT override
// and validates the result. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(absPath)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.UnmarshalStrict(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", absPath, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	v, ok := lookup(PortEnv)
	if !ok || v == "" {
		return nil
	}
	port, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q", ErrInvalidPort, PortEnv, v)
	}
	c.Server.Port = port
	return nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return ErrInvalidHost
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Server.Port)
	}
	if c.Search.BatchSize <= 0 || c.Search.ReportInterval <= 0 {
		return fmt.Errorf("%w: batch_size and report_interval must be positive", ErrInvalidSearch)
	}
	if c.Output.WalletFile == "" {
		return ErrMissingWalletFn
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}
