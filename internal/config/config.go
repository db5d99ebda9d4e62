// Package config provides configuration management for the Leaguebook application.
package config

import (
	"fmt"

	"github.com/yourusername/leaguebook/internal/models"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	League     LeagueConfig     `mapstructure:"league" validate:"required"`
	Simulation SimulationConfig `mapstructure:"simulation" validate:"required"`
	Odds       OddsConfig       `mapstructure:"odds" validate:"required"`
	Schedule   ScheduleConfig   `mapstructure:"schedule"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Metrics    MetricsConfig    `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// SlotConfig represents one starting slot in the league's lineup template
type SlotConfig struct {
	Name     string   `mapstructure:"name" validate:"required"`
	Eligible []string `mapstructure:"eligible" validate:"required,min=1,positions"`
	Count    int      `mapstructure:"count" validate:"required,gt=0"`
}

// LeagueConfig represents the league identity and lineup rules
type LeagueConfig struct {
	Season int          `mapstructure:"season" validate:"required,gt=2000"`
	Slots  []SlotConfig `mapstructure:"slots" validate:"required,min=1,dive"`
}

// SimulationConfig represents the trial engine configuration
type SimulationConfig struct {
	Trials    int     `mapstructure:"trials" validate:"required,gt=0"`
	Workers   int     `mapstructure:"workers" validate:"required,gt=0"`
	Seed      int64   `mapstructure:"seed"`
	DefaultCV float64 `mapstructure:"default_cv" validate:"required,gt=0,lte=2"`
	MeanFloor float64 `mapstructure:"mean_floor" validate:"lte=0"`
}

// OddsConfig represents price conversion configuration
type OddsConfig struct {
	Vig             float64 `mapstructure:"vig" validate:"gte=0,lte=0.5"`
	TotalPercentile float64 `mapstructure:"total_percentile" validate:"required,percentile"`
}

// ScheduleConfig represents the weekly rerun schedule
type ScheduleConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	WeeklyRun   string `mapstructure:"weekly_run" validate:"required_if=Enabled true"`
	SeasonStart string `mapstructure:"season_start" validate:"required_if=Enabled true"`
	MaxWeek     int    `mapstructure:"max_week" validate:"gte=0"`
}

// CacheConfig represents the published-run read cache
type CacheConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds" validate:"gte=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlotTemplate converts the configured slots into the engine's template type
func (c *LeagueConfig) SlotTemplate() models.SlotTemplate {
	template := make(models.SlotTemplate, 0, len(c.Slots))
	for _, s := range c.Slots {
		eligible := make([]models.Position, 0, len(s.Eligible))
		for _, pos := range s.Eligible {
			eligible = append(eligible, models.Position(pos))
		}
		template = append(template, models.SlotRule{
			Name:     s.Name,
			Eligible: eligible,
			Count:    s.Count,
		})
	}
	return template
}
