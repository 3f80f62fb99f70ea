package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Log          LogConfig          `yaml:"log"`
	AlphaVantage AlphaVantageConfig `yaml:"alpha_vantage"`
	MCP          MCPConfig          `yaml:"mcp"`
}

type ServerConfig struct {
	Port      int    `yaml:"port"`
	PublicDir string `yaml:"public_dir"`
	ClientDir string `yaml:"client_dir"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type AlphaVantageConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	// TimeoutMs of 0 leaves the HTTP client's defaults in place.
	TimeoutMs int `yaml:"timeout_ms"`
}

type MCPConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:      3000,
			PublicDir: "public",
			ClientDir: "dist/client",
		},
		Log: LogConfig{Level: "info"},
		AlphaVantage: AlphaVantageConfig{
			BaseURL: "https://www.alphavantage.co",
		},
		MCP: MCPConfig{
			Name:    "top-movers-server",
			Version: "0.1.0",
		},
	}
}

// Load reads .env (if present) into the environment, overlays the YAML file
// at path on the defaults, then applies environment overrides. A missing
// file is not an error; the service runs on defaults plus environment.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			hlog.Warnf("config file %s not found, using defaults", path)
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p <= 0 || p > 65535 {
			return fmt.Errorf("invalid PORT: %q", v)
		}
		cfg.Server.Port = p
	}
	if v := os.Getenv("ALPHA_VANTAGE_API_KEY"); v != "" {
		cfg.AlphaVantage.APIKey = v
	}
	if v := os.Getenv("ALPHA_VANTAGE_BASE_URL"); v != "" {
		cfg.AlphaVantage.BaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

// HlogLevel maps log.level onto hertz's logger levels.
func (c LogConfig) HlogLevel() hlog.Level {
	switch strings.ToLower(c.Level) {
	case "trace":
		return hlog.LevelTrace
	case "debug":
		return hlog.LevelDebug
	case "notice":
		return hlog.LevelNotice
	case "warn", "warning":
		return hlog.LevelWarn
	case "error":
		return hlog.LevelError
	default:
		return hlog.LevelInfo
	}
}
