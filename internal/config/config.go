package config

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the overall configuration for the application.
type Config struct {
	Server  ServerConfig               `yaml:"server"`
	Logging LoggingConfig              `yaml:"logging"`
	Query   QueryConfig                `yaml:"query"`
	Pricing PricingConfig              `yaml:"pricing"`
	Surge   SurgeConfig                `yaml:"surge"`
	Gecko   CoinGeckoConfig            `yaml:"coingecko"`
	Mercury MercuryConfig              `yaml:"mercury"`
	Circle  CircleConfig               `yaml:"circle"`
	Chains  map[string]ChainNodeConfig `yaml:"chains"`
}

// ServerConfig holds the dashboard server configuration.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
}

// QueryConfig bounds the balance query fan-out.
type QueryConfig struct {
	AccountTimeoutSeconds int  `yaml:"accountTimeoutSeconds"`
	MaxConcurrentRequests int  `yaml:"maxConcurrentRequests"`
	SkipPricing           bool `yaml:"skipPricing"`
}

// PricingConfig controls the quote cache, the shared rate limiter and the
// price provider fallback order.
type PricingConfig struct {
	CacheTTLSeconds         int      `yaml:"cacheTTLSeconds"`
	ProviderOrder           []string `yaml:"providerOrder"`
	RateLimitTokens         int      `yaml:"rateLimitTokens"`
	RateLimitIntervalMillis int64    `yaml:"rateLimitIntervalMillis"`
	MaxLimiterWaitMillis    int64    `yaml:"maxLimiterWaitMillis"`
	RequestTimeoutMillis    int64    `yaml:"requestTimeoutMillis"`
}

// SurgeConfig holds the primary price oracle endpoint. The API key is read
// from the SURGE_API_KEY environment variable, not from the file.
type SurgeConfig struct {
	BaseURL string `yaml:"baseURL"`
}

// CoinGeckoConfig holds the fallback price oracle configuration.
type CoinGeckoConfig struct {
	BaseURL    string `yaml:"baseURL"`
	VsCurrency string `yaml:"vsCurrency"`
}

// MercuryConfig holds the Mercury banking API endpoint. The API key comes
// from MERCURY_API_KEY.
type MercuryConfig struct {
	BaseURL              string `yaml:"baseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// CircleConfig holds the Circle API endpoint. The API key comes from
// CIRCLE_API_KEY.
type CircleConfig struct {
	BaseURL              string `yaml:"baseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// ChainNodeConfig optionally overrides the built-in RPC endpoint for one
// chain kind.
type ChainNodeConfig struct {
	RPCURL string `yaml:"rpcURL"`
}

// AccountTimeout returns the per-account query timeout.
func (c *Config) AccountTimeout() time.Duration {
	return time.Duration(c.Query.AccountTimeoutSeconds) * time.Second
}

// CacheTTL returns the price quote freshness window.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Pricing.CacheTTLSeconds) * time.Second
}

// MaxLimiterWait returns the bounded wait on the pricing token bucket.
func (c *Config) MaxLimiterWait() time.Duration {
	return time.Duration(c.Pricing.MaxLimiterWaitMillis) * time.Millisecond
}

// RateLimitInterval returns the refill interval of the pricing token bucket.
func (c *Config) RateLimitInterval() time.Duration {
	return time.Duration(c.Pricing.RateLimitIntervalMillis) * time.Millisecond
}

// PriceRequestTimeout returns the per-call timeout against a price oracle.
func (c *Config) PriceRequestTimeout() time.Duration {
	return time.Duration(c.Pricing.RequestTimeoutMillis) * time.Millisecond
}

// ChainRPCURL returns the configured RPC override for a chain kind, or ""
// when the built-in default should be used.
func (c *Config) ChainRPCURL(kind string) string {
	if c.Chains == nil {
		return ""
	}
	return c.Chains[kind].RPCURL
}

// Load reads configuration from a YAML file and applies defaults.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}
	cfg.ApplyDefaults()

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

// Default returns a configuration with every default applied, used when no
// config file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero values with working defaults.
func (c *Config) ApplyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = ":8080"
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = 30
	}
	if c.Server.IdleTimeout <= 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if c.Query.AccountTimeoutSeconds <= 0 {
		c.Query.AccountTimeoutSeconds = 30
		logrus.Infof("Query.AccountTimeoutSeconds not set, defaulting to %d", c.Query.AccountTimeoutSeconds)
	}
	if c.Query.MaxConcurrentRequests <= 0 {
		c.Query.MaxConcurrentRequests = 8
		logrus.Infof("Query.MaxConcurrentRequests not set, defaulting to %d", c.Query.MaxConcurrentRequests)
	}

	if c.Pricing.CacheTTLSeconds <= 0 {
		c.Pricing.CacheTTLSeconds = 30
	}
	if len(c.Pricing.ProviderOrder) == 0 {
		c.Pricing.ProviderOrder = []string{"surge", "coingecko"}
	}
	if c.Pricing.RateLimitTokens <= 0 {
		c.Pricing.RateLimitTokens = 10
	}
	if c.Pricing.RateLimitIntervalMillis <= 0 {
		c.Pricing.RateLimitIntervalMillis = 1000
	}
	if c.Pricing.MaxLimiterWaitMillis <= 0 {
		c.Pricing.MaxLimiterWaitMillis = 2000
	}
	if c.Pricing.RequestTimeoutMillis <= 0 {
		c.Pricing.RequestTimeoutMillis = 10000
	}

	if c.Surge.BaseURL == "" {
		c.Surge.BaseURL = "https://api.switchboard.xyz"
	}
	if c.Gecko.BaseURL == "" {
		c.Gecko.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if c.Gecko.VsCurrency == "" {
		c.Gecko.VsCurrency = "usd"
	}
	if c.Mercury.BaseURL == "" {
		c.Mercury.BaseURL = "https://api.mercury.com/api/v1"
	}
	if c.Mercury.RequestTimeoutMillis <= 0 {
		c.Mercury.RequestTimeoutMillis = 15000
	}
	if c.Circle.BaseURL == "" {
		c.Circle.BaseURL = "https://api.circle.com"
	}
	if c.Circle.RequestTimeoutMillis <= 0 {
		c.Circle.RequestTimeoutMillis = 15000
	}
}
