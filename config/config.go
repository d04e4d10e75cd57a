package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"festa-mesas-backend/internal/hitmap"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Sheets     SheetsConfig     `yaml:"sheets"`
	Database   DatabaseConfig   `yaml:"database"`
	Map        MapConfig        `yaml:"map"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RequestIPHeader string  `yaml:"request_ip_header"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// SheetsConfig describes how to reach the shared spreadsheet.
type SheetsConfig struct {
	// Mode is "http" for the remote values API or "memory" for a throwaway
	// in-process store used in local development.
	Mode           string         `yaml:"mode"`
	BaseURL        string         `yaml:"base_url"`
	SpreadsheetID  string         `yaml:"spreadsheet_id"`
	TokenEnv       string         `yaml:"token_env"` // env var holding the bearer token
	LayoutSheet    string         `yaml:"layout_sheet"`
	LogSheet       string         `yaml:"log_sheet"`
	SheetGIDs      map[string]int `yaml:"sheet_gids"`
	TimeoutSeconds int            `yaml:"timeout_seconds"`
	Timezone       string         `yaml:"timezone"`
}

// DatabaseConfig holds the local database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"` // sqlite (default) or postgres
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// MapConfig holds the click-to-table hit testing registry. Positions are in
// the normalized 0..1 coordinate space of the reference map image.
type MapConfig struct {
	HitRadius float64                    `yaml:"hit_radius"`
	Positions map[string]hitmap.Position `yaml:"positions"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 10
	}

	if cfg.Sheets.Mode == "" {
		cfg.Sheets.Mode = "http"
	}
	if cfg.Sheets.BaseURL == "" {
		cfg.Sheets.BaseURL = "https://sheets.googleapis.com"
	}
	if cfg.Sheets.Mode == "http" && cfg.Sheets.SpreadsheetID == "" {
		return nil, fmt.Errorf("sheets.spreadsheet_id is required in http mode")
	}
	if cfg.Sheets.LayoutSheet == "" {
		cfg.Sheets.LayoutSheet = "Layout_Mesas"
	}
	if cfg.Sheets.LogSheet == "" {
		cfg.Sheets.LogSheet = "RESERVAS"
	}
	if cfg.Sheets.TimeoutSeconds <= 0 {
		cfg.Sheets.TimeoutSeconds = 30
	}
	if cfg.Sheets.Timezone == "" {
		cfg.Sheets.Timezone = "America/Sao_Paulo"
	}
	if cfg.Sheets.TokenEnv == "" {
		cfg.Sheets.TokenEnv = "SHEETS_TOKEN"
	}

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "festa.db"
	}

	if cfg.Map.HitRadius <= 0 {
		// ~25px on an 800px-wide reference image.
		cfg.Map.HitRadius = 0.03
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	return &cfg, nil
}

// SheetTimeout returns the HTTP timeout for sheet operations.
func (c *SheetsConfig) SheetTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Location resolves the configured timezone, falling back to UTC.
func (c *SheetsConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Warning: invalid timezone %q, using UTC: %v", c.Timezone, err)
		return time.UTC
	}
	return loc
}
