package config

import (
	"fmt"
	"net/url"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig
	Upstream    UpstreamConfig
	BFF         BFFConfig `mapstructure:"bff"`
	Diagnostics DiagnosticsConfig
}

type ServerConfig struct {
	Port           int     `mapstructure:"port"`
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

type UpstreamConfig struct {
	// BaseURL is the fixed upstream API root, scheme and base path included.
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`

	// Token is sourced from the environment only, never from the config
	// file. When set it overrides any client-supplied credential.
	Token string `mapstructure:"-"`

	// Cache-Control hints for successful proxied GETs. Zero disables.
	CacheMaxAgeSeconds int `mapstructure:"cache_max_age_seconds"`
	CacheStaleSeconds  int `mapstructure:"cache_stale_seconds"`
}

type BFFConfig struct {
	// ClinicCategoryIDs is the product-defined allow-list of categories
	// that count as physical clinic rooms.
	ClinicCategoryIDs []int `mapstructure:"clinic_category_ids"`
	ClinicsPerPage    int   `mapstructure:"clinics_per_page"`
	SchedulesPerPage  int   `mapstructure:"schedules_per_page"`
}

type DiagnosticsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// secrets are environment-only values kept out of config files.
type secrets struct {
	UpstreamToken string `envconfig:"UPSTREAM_API_TOKEN"`
}

// Host returns the upstream hostname the gateway pins the Host header to.
func (u UpstreamConfig) Host() (string, error) {
	parsed, err := url.Parse(u.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid upstream base URL: %w", err)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("upstream base URL %q has no host", u.BaseURL)
	}
	return parsed.Host, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.rate_limit_rps", 50)
	viper.SetDefault("server.rate_limit_burst", 100)

	viper.SetDefault("upstream.base_url", "https://phongkhamdaihocypnt.edu.vn/nhansu/api")
	// Stays under the 10s outer limit of the hosting platform.
	viper.SetDefault("upstream.timeout_seconds", 9)
	viper.SetDefault("upstream.cache_max_age_seconds", 60)
	viper.SetDefault("upstream.cache_stale_seconds", 300)

	viper.SetDefault("bff.clinic_category_ids", []int{2, 3, 5, 6})
	viper.SetDefault("bff.clinics_per_page", 100)
	viper.SetDefault("bff.schedules_per_page", 1000)

	viper.SetDefault("diagnostics.enabled", false)
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Defaults plus environment are a complete configuration; only a
		// malformed file is fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var sec secrets
	if err := envconfig.Process("", &sec); err != nil {
		return nil, fmt.Errorf("failed to read environment secrets: %w", err)
	}
	config.Upstream.Token = sec.UpstreamToken

	if _, err := config.Upstream.Host(); err != nil {
		return nil, err
	}

	return &config, nil
}
