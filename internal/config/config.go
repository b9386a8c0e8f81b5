// file: internal/config/config.go
// version: 1.0.0
// guid: 6b8d0f2a-4c6e-4d8f-9a1b-3c5e7f9b1d3f

package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	UpstreamBaseURL string
	TenantID        string
	APIToken        string
	RequestTimeout  time.Duration

	DefaultCacheTTL      time.Duration
	CatalogCacheTTL      time.Duration
	CacheCleanupInterval time.Duration

	UpstreamRequestsPerMinute int
	UpstreamBurst             int

	ServerHost           string
	ServerPort           string
	ServerRequestsPerMin int
	ServerRateLimitBurst int
}

var AppConfig Config

// InitConfig initializes the application configuration
func InitConfig() {
	// Set defaults
	viper.SetDefault("upstream_base_url", "https://api.swimschool.example.com")
	viper.SetDefault("request_timeout", "30s")
	viper.SetDefault("cache_default_ttl", "5m")
	viper.SetDefault("cache_catalog_ttl", "10m")
	viper.SetDefault("cache_cleanup_interval", "1m")
	viper.SetDefault("upstream_requests_per_minute", 300)
	viper.SetDefault("upstream_burst", 20)
	viper.SetDefault("server_host", "localhost")
	viper.SetDefault("server_port", "8080")
	viper.SetDefault("server_requests_per_minute", 600)
	viper.SetDefault("server_rate_burst", 30)

	AppConfig = Config{
		UpstreamBaseURL: viper.GetString("upstream_base_url"),
		TenantID:        viper.GetString("tenant_id"),
		APIToken:        viper.GetString("api_token"),
		RequestTimeout:  viper.GetDuration("request_timeout"),

		DefaultCacheTTL:      viper.GetDuration("cache_default_ttl"),
		CatalogCacheTTL:      viper.GetDuration("cache_catalog_ttl"),
		CacheCleanupInterval: viper.GetDuration("cache_cleanup_interval"),

		UpstreamRequestsPerMinute: viper.GetInt("upstream_requests_per_minute"),
		UpstreamBurst:             viper.GetInt("upstream_burst"),

		ServerHost:           viper.GetString("server_host"),
		ServerPort:           viper.GetString("server_port"),
		ServerRequestsPerMin: viper.GetInt("server_requests_per_minute"),
		ServerRateLimitBurst: viper.GetInt("server_rate_burst"),
	}

	// Guard against nonsense values from config files
	if AppConfig.RequestTimeout <= 0 {
		AppConfig.RequestTimeout = 30 * time.Second
	}
	if AppConfig.DefaultCacheTTL <= 0 {
		AppConfig.DefaultCacheTTL = 5 * time.Minute
	}
	if AppConfig.CatalogCacheTTL <= 0 {
		AppConfig.CatalogCacheTTL = 10 * time.Minute
	}
	if AppConfig.CacheCleanupInterval <= 0 {
		AppConfig.CacheCleanupInterval = time.Minute
	}
}
