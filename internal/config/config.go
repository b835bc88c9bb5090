package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

// Config holds all configuration for the application
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	MenuAPI    MenuAPIConfig    `mapstructure:"menu_api"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Navigation NavigationConfig `mapstructure:"navigation"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// AppConfig holds process-wide settings
type AppConfig struct {
	Environment string `mapstructure:"environment"`
	// UseFallback enables mock/snapshot navigation when the menu API fails
	UseFallback bool `mapstructure:"use_fallback"`
}

// IsDevelopment reports whether the service runs with development fallbacks
func (a AppConfig) IsDevelopment() bool {
	return strings.EqualFold(a.Environment, EnvironmentDevelopment)
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	Host           string   `mapstructure:"host"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Addr returns host:port for the HTTP listener
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MenuAPIConfig holds menu hierarchy API configuration
type MenuAPIConfig struct {
	BaseURLs             []string `mapstructure:"base_urls"`
	HierarchyPath        string   `mapstructure:"hierarchy_path"`
	HealthPath           string   `mapstructure:"health_path"`
	Timeout              int      `mapstructure:"timeout"`
	MaxRetries           int      `mapstructure:"max_retries"`
	RetryWaitMillis      int      `mapstructure:"retry_wait_millis"`
	RetryMaxWaitMillis   int      `mapstructure:"retry_max_wait_millis"`
	MaxRequestsPerSecond int      `mapstructure:"max_requests_per_second"`
	CircuitBreakerDelay  int      `mapstructure:"circuit_breaker_delay"`

	// Static bearer token; empty disables the Authorization header
	Token string `mapstructure:"token"`
}

// RequestTimeout returns the per-request timeout
func (m MenuAPIConfig) RequestTimeout() time.Duration {
	return time.Duration(m.Timeout) * time.Second
}

// CacheConfig holds the menu cache windows, in seconds
type CacheConfig struct {
	StaleTime int `mapstructure:"stale_time"`
	GCTime    int `mapstructure:"gc_time"`
}

func (c CacheConfig) StaleDuration() time.Duration {
	return time.Duration(c.StaleTime) * time.Second
}

func (c CacheConfig) GCDuration() time.Duration {
	return time.Duration(c.GCTime) * time.Second
}

// NavigationConfig drives route table and breadcrumb construction
type NavigationConfig struct {
	MenuTypes       []string `mapstructure:"menu_types"`
	Languages       []string `mapstructure:"languages"`
	DefaultLanguage string   `mapstructure:"default_language"`
	DefaultSection  string   `mapstructure:"default_section"`
	IncludeInactive bool     `mapstructure:"include_inactive"`
	MaxRefreshRetry int      `mapstructure:"max_refresh_retry"`
	Workers         int      `mapstructure:"workers"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// DSN returns the pgx connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	Password      string `mapstructure:"password"`
	Database      int    `mapstructure:"database"`
	ConsumerGroup string `mapstructure:"consumer_group"`
	MinIdleTime   int    `mapstructure:"min_idle_time"`
}

// LoggingConfig selects logrus level and formatter
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from a YAML file with environment variable overrides.
// An empty path searches for config.yaml in the current directory; a missing
// file there is not an error and leaves defaults plus environment in effect.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	if len(c.MenuAPI.BaseURLs) == 0 {
		return fmt.Errorf("menu_api.base_urls must contain at least one URL")
	}
	if len(c.Navigation.MenuTypes) == 0 {
		return fmt.Errorf("navigation.menu_types must not be empty")
	}
	if c.Cache.GCTime < c.Cache.StaleTime {
		return fmt.Errorf("cache.gc_time (%d) must not be shorter than cache.stale_time (%d)",
			c.Cache.GCTime, c.Cache.StaleTime)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.environment", EnvironmentDevelopment)
	v.SetDefault("app.use_fallback", true)

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	v.SetDefault("menu_api.base_urls", []string{"http://localhost:5000"})
	v.SetDefault("menu_api.hierarchy_path", "/api/v1/menus/hierarchy")
	v.SetDefault("menu_api.health_path", "/health")
	v.SetDefault("menu_api.timeout", 30)
	v.SetDefault("menu_api.max_retries", 2)
	v.SetDefault("menu_api.retry_wait_millis", 500)
	v.SetDefault("menu_api.retry_max_wait_millis", 4000)
	v.SetDefault("menu_api.max_requests_per_second", 20)
	v.SetDefault("menu_api.circuit_breaker_delay", 60)
	v.SetDefault("menu_api.token", "")

	v.SetDefault("cache.stale_time", 300)
	v.SetDefault("cache.gc_time", 1800)

	v.SetDefault("navigation.menu_types", []string{"MAIN_MENU", "SECONDARY_MENU", "ADMIN_PROJECTS_MENU", "USER_MENU"})
	v.SetDefault("navigation.languages", []string{"es", "en"})
	v.SetDefault("navigation.default_language", "es")
	v.SetDefault("navigation.default_section", "dashboard")
	v.SetDefault("navigation.include_inactive", false)
	v.SetDefault("navigation.max_refresh_retry", 5)
	v.SetDefault("navigation.workers", 2)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "navigation")
	v.SetDefault("database.user", "navigation_user")
	v.SetDefault("database.password", "navigation_pass")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.consumer_group", "navigation_consumer")
	v.SetDefault("redis.min_idle_time", 120)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}
