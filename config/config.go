package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	SerpAPI SerpAPIConfig `mapstructure:"serpapi"`
	Search  SearchConfig
	Output  OutputConfig
}

// ServerConfig holds server-related configuration (serve mode only)
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SerpAPIConfig holds visual search provider configuration
type SerpAPIConfig struct {
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`
	Country  string `mapstructure:"country"`
	Language string `mapstructure:"language"`
}

// SearchConfig holds matching-engine configuration
type SearchConfig struct {
	PacingDelay              time.Duration `mapstructure:"pacing_delay"`
	MaxVisualRank            int           `mapstructure:"max_visual_rank"`
	PriceTolerance           float64       `mapstructure:"price_tolerance"`
	MarketplaceSimilarityMin float64       `mapstructure:"marketplace_similarity_min"`
	BrandSiteSimilarityMin   float64       `mapstructure:"brand_site_similarity_min"`
	CoverageTarget           float64       `mapstructure:"coverage_target"`
}

// OutputConfig holds output serialization configuration
type OutputConfig struct {
	KlydoURLTemplate string `mapstructure:"klydo_url_template"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pricelens/")

	// Environment variable settings
	v.SetEnvPrefix("PRICELENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"https://*.klydo.in"})

	// SerpAPI defaults
	// The empty api_key default registers the key so the env override binds.
	v.SetDefault("serpapi.api_key", "")
	v.SetDefault("serpapi.base_url", "https://serpapi.com")
	v.SetDefault("serpapi.country", "in")
	v.SetDefault("serpapi.language", "en")

	// Search defaults
	v.SetDefault("search.pacing_delay", "1s")
	v.SetDefault("search.max_visual_rank", 15)
	v.SetDefault("search.price_tolerance", 0.30)
	v.SetDefault("search.marketplace_similarity_min", 3)
	v.SetDefault("search.brand_site_similarity_min", 10)
	v.SetDefault("search.coverage_target", 0.50)

	// Output defaults
	v.SetDefault("output.klydo_url_template", "https://klydo.in/product/%s")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.SerpAPI.APIKey == "" {
		return fmt.Errorf("SerpAPI key is required (set PRICELENS_SERPAPI_API_KEY)")
	}

	if config.Search.PriceTolerance <= 0 || config.Search.PriceTolerance > 1 {
		return fmt.Errorf("price tolerance must be in (0, 1], got: %v", config.Search.PriceTolerance)
	}

	if config.Search.MaxVisualRank <= 0 {
		return fmt.Errorf("max visual rank must be positive, got: %d", config.Search.MaxVisualRank)
	}

	if config.Search.CoverageTarget < 0 || config.Search.CoverageTarget > 1 {
		return fmt.Errorf("coverage target must be in [0, 1], got: %v", config.Search.CoverageTarget)
	}

	return nil
}
