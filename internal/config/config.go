package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Compliance ComplianceConfig `mapstructure:"compliance"`
	Security   SecurityConfig   `mapstructure:"security"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         string `mapstructure:"port"`
	Host         string `mapstructure:"host"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	IdleTimeout  int    `mapstructure:"idle_timeout"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`

	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMinutes int `mapstructure:"conn_max_lifetime_minutes"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CacheConfig holds dashboard caching configuration
type CacheConfig struct {
	Enabled      bool `mapstructure:"enabled"`
	DashboardTTL int  `mapstructure:"dashboard_ttl"`
}

// SecurityConfig holds request limiting configuration
type SecurityConfig struct {
	RateLimitPerMinute int `mapstructure:"rate_limit_per_minute"`
}

// ComplianceConfig holds the obligation policy parameters. Values are
// validated by compliance.LoadPolicies.
type ComplianceConfig struct {
	WarningWindowDays                     int            `mapstructure:"warning_window_days"`
	WarningWindows                        map[string]int `mapstructure:"warning_windows"`
	InspectionMaxGapDays                  int            `mapstructure:"inspection_max_gap_days"`
	HydrostaticIntervalMonths             int            `mapstructure:"hydrostatic_interval_months"`
	ExtinguisherMaintenanceIntervalMonths int            `mapstructure:"extinguisher_maintenance_interval_months"`
}

// LoadConfig loads configuration from environment and config files
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "sst")
	v.SetDefault("database.dbname", "sst")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_minutes", 5)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.dashboard_ttl", 300)
	v.SetDefault("security.rate_limit_per_minute", 600)
	v.SetDefault("compliance.warning_window_days", 30)
	v.SetDefault("compliance.warning_windows", map[string]int{})
	v.SetDefault("compliance.inspection_max_gap_days", 30)
	v.SetDefault("compliance.hydrostatic_interval_months", 60)
	v.SetDefault("compliance.extinguisher_maintenance_interval_months", 12)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("SST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
