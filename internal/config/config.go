// Package config provides unified configuration loading for qemd.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/quantbio/qemd/internal/constants"
	"gopkg.in/yaml.v3"
)

// Config contains all qemd configuration settings.
type Config struct {
	// Server contains settings for the HTTP transport.
	Server ServerConfig `json:"server" yaml:"server"`

	// Store contains settings for run persistence.
	Store StoreConfig `json:"store" yaml:"store"`

	// Engine contains overridable engine defaults.
	Engine EngineConfig `json:"engine" yaml:"engine"`

	// Logging contains settings for operational and trajectory logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// ServerConfig configures the HTTP transport.
type ServerConfig struct {
	// Addr is the listen address, host:port.
	Addr string `json:"addr" yaml:"addr"`
}

// StoreConfig configures run persistence.
type StoreConfig struct {
	// Dir is the directory holding the SQLite database and trace files.
	Dir string `json:"dir" yaml:"dir"`
}

// EngineConfig overrides engine-level defaults.
type EngineConfig struct {
	// TotalTime is the default simulation horizon when a request omits one.
	TotalTime float64 `json:"total_time" yaml:"total_time"`
}

// LoggingConfig configures qemd's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables trajectory logging to <store dir>/trajectory.jsonl.
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: "localhost:8090",
		},
		Store: StoreConfig{
			Dir: ".qemd",
		},
		Engine: EngineConfig{
			TotalTime: constants.DefaultTotalTime,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the default locations and environment
// variables. Order: defaults -> ~/.qemd/config.yaml -> environment.
func Load() (*Config, error) {
	cfg := Default()

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".qemd", "config.yaml")
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileCfg, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			cfg = fileCfg
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server addr must not be empty")
	}

	if c.Engine.TotalTime < constants.DT {
		return fmt.Errorf("engine total_time must be at least one integration step (%g), got %g", constants.DT, c.Engine.TotalTime)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("QEMD_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}

	if v := os.Getenv("QEMD_STORE_DIR"); v != "" {
		cfg.Store.Dir = v
	}

	if v := os.Getenv("QEMD_TOTAL_TIME"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Engine.TotalTime = f
		}
	}

	if v := os.Getenv("QEMD_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
