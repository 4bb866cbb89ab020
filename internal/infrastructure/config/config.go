package config

import (
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the restaurant search service
type Config struct {
	// HTTP Server - using TABESEARCH_ prefix to avoid collisions
	HTTPPort  string `env:"TABESEARCH_HTTP_PORT" envDefault:"8091"`
	LogLevel  string `env:"TABESEARCH_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"TABESEARCH_LOG_FORMAT" envDefault:"json"` // json or console

	// Upstream Configuration - overridable so tests can point at a local server
	ListingBaseURL string `env:"TABELOG_BASE_URL" envDefault:"https://tabelog.com"`
	SuggestURL     string `env:"TABELOG_SUGGEST_URL" envDefault:"https://tabelog.com/suggest"`
	UserAgent      string `env:"TABELOG_USER_AGENT"`

	// Search Configuration - upstream serves 20 records per listing page
	PageSize     int `env:"TABESEARCH_PAGE_SIZE" envDefault:"20"`
	MaxPages     int `env:"TABESEARCH_MAX_PAGES" envDefault:"3"`
	DefaultLimit int `env:"TABESEARCH_DEFAULT_LIMIT" envDefault:"20"`
	MinLimit     int `env:"TABESEARCH_MIN_LIMIT" envDefault:"1"`
	MaxLimit     int `env:"TABESEARCH_MAX_LIMIT" envDefault:"60"`

	// Circuit Breaker Configuration
	CBEnabled          bool `env:"TABELOG_CB_ENABLED" envDefault:"true"`
	CBFailureThreshold int  `env:"TABELOG_CB_FAILURE_THRESHOLD" envDefault:"10"`
	CBSuccessThreshold int  `env:"TABELOG_CB_SUCCESS_THRESHOLD" envDefault:"3"`
	CBTimeout          int  `env:"TABELOG_CB_TIMEOUT" envDefault:"30"`
	CBMaxHalfOpen      int  `env:"TABELOG_CB_MAX_HALF_OPEN" envDefault:"5"`

	// HTTP Client Performance
	HTTPTimeout     int `env:"TABELOG_HTTP_TIMEOUT" envDefault:"15"`
	MaxConnsPerHost int `env:"TABELOG_MAX_CONNS_PER_HOST" envDefault:"50"`
	MaxIdleConns    int `env:"TABELOG_MAX_IDLE_CONNS" envDefault:"100"`
	IdleConnTimeout int `env:"TABELOG_IDLE_CONN_TIMEOUT" envDefault:"90"`

	// Retry Configuration
	RetryMaxAttempts   int     `env:"TABELOG_RETRY_MAX_ATTEMPTS" envDefault:"3"`
	RetryInitialDelay  int     `env:"TABELOG_RETRY_INITIAL_DELAY" envDefault:"250"`
	RetryMaxDelay      int     `env:"TABELOG_RETRY_MAX_DELAY" envDefault:"5000"`
	RetryBackoffFactor float64 `env:"TABELOG_RETRY_BACKOFF_FACTOR" envDefault:"1.5"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(os.Getenv("TABESEARCH_LOG_LEVEL")) == "" {
		if global := strings.TrimSpace(os.Getenv("LOG_LEVEL")); global != "" {
			cfg.LogLevel = global
		}
	}
	if strings.TrimSpace(os.Getenv("TABESEARCH_LOG_FORMAT")) == "" {
		if global := strings.TrimSpace(os.Getenv("LOG_FORMAT")); global != "" {
			cfg.LogFormat = global
		}
	}
	return cfg, nil
}
