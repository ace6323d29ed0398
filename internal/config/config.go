package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
	} `yaml:"telegram"`
	DataSource struct {
		Provider      string `yaml:"provider"` // "yahoo" or "polygon"
		PolygonAPIKey string `yaml:"polygon_api_key"`
	} `yaml:"data_source"`
	Schedule struct {
		MarketOpenCron  string `yaml:"market_open_cron"`
		MarketCloseCron string `yaml:"market_close_cron"`
		RefreshDelay    string `yaml:"refresh_delay"`
		RefreshInterval string `yaml:"refresh_interval"`
	} `yaml:"schedule"`
	Scanner struct {
		Symbols      []string `yaml:"symbols"`
		LookbackDays int      `yaml:"lookback_days"`
	} `yaml:"scanner"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Metrics struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"metrics"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("POLYGON_API_KEY"); v != "" {
		cfg.DataSource.PolygonAPIKey = v
	}
	if v := os.Getenv("CRON_MARKET_OPEN"); v != "" {
		cfg.Schedule.MarketOpenCron = v
	}
	if v := os.Getenv("CRON_MARKET_CLOSE"); v != "" {
		cfg.Schedule.MarketCloseCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.Metrics.ListenAddr = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOOKBACK_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scanner.LookbackDays = n
		}
	}

	// Defaults
	if cfg.DataSource.Provider == "" {
		if cfg.DataSource.PolygonAPIKey != "" {
			cfg.DataSource.Provider = "polygon"
		} else {
			cfg.DataSource.Provider = "yahoo"
		}
	}
	if cfg.Schedule.MarketOpenCron == "" {
		cfg.Schedule.MarketOpenCron = "0 30 9 * * 1-5"
	}
	if cfg.Schedule.MarketCloseCron == "" {
		cfg.Schedule.MarketCloseCron = "0 0 16 * * 1-5"
	}
	if cfg.Schedule.RefreshDelay == "" {
		cfg.Schedule.RefreshDelay = "2h"
	}
	if cfg.Schedule.RefreshInterval == "" {
		cfg.Schedule.RefreshInterval = "4h"
	}
	if cfg.Scanner.LookbackDays == 0 {
		cfg.Scanner.LookbackDays = 300
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/opportunityscout.db"
	}
	if cfg.Metrics.ListenAddr == "" {
		cfg.Metrics.ListenAddr = ":9102"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and parseable.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.DataSource.Provider != "yahoo" && c.DataSource.Provider != "polygon" {
		return fmt.Errorf("data_source.provider must be yahoo or polygon, got %q", c.DataSource.Provider)
	}
	if c.DataSource.Provider == "polygon" && c.DataSource.PolygonAPIKey == "" {
		return fmt.Errorf("data_source.polygon_api_key is required for the polygon provider")
	}
	if _, err := c.RefreshDelay(); err != nil {
		return fmt.Errorf("schedule.refresh_delay: %w", err)
	}
	if _, err := c.RefreshInterval(); err != nil {
		return fmt.Errorf("schedule.refresh_interval: %w", err)
	}
	return nil
}

// RefreshDelay parses the initial refresh delay.
func (c *Config) RefreshDelay() (time.Duration, error) {
	return time.ParseDuration(c.Schedule.RefreshDelay)
}

// RefreshInterval parses the refresh interval.
func (c *Config) RefreshInterval() (time.Duration, error) {
	return time.ParseDuration(c.Schedule.RefreshInterval)
}
