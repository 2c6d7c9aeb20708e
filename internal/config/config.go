package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// HTTP settings
	Port     string
	CacheTTL time.Duration

	// Feed settings
	RequestTimeout  time.Duration
	MaxItemsPerFeed int
	MaxArticles     int

	// Normalization settings
	DescriptionMaxChars int
	MaxTopicsPerItem    int

	// Registry settings
	SourcesConfigPath string
	TopicsConfigPath  string

	// App settings
	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		Port:                "8080",
		CacheTTL:            5 * time.Minute,
		RequestTimeout:      9 * time.Second,
		MaxItemsPerFeed:     20,
		MaxArticles:         250,
		DescriptionMaxChars: 500,
		MaxTopicsPerItem:    3,
		SourcesConfigPath:   "configs/sources.yaml",
		TopicsConfigPath:    "configs/topics.yaml",
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}
	if v := os.Getenv("CACHE_TTL_MINUTES"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val >= 0 {
			cfg.CacheTTL = time.Duration(val) * time.Minute
		}
	}
	if v := os.Getenv("MAX_ITEMS_PER_FEED"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.MaxItemsPerFeed = val
		}
	}
	if v := os.Getenv("MAX_ARTICLES"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.MaxArticles = val
		}
	}
	if v := os.Getenv("DESCRIPTION_MAX_CHARS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.DescriptionMaxChars = val
		}
	}
	if v := os.Getenv("MAX_TOPICS_PER_ITEM"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.MaxTopicsPerItem = val
		}
	}

	cfg.SourcesConfigPath = getEnvOrDefault("SOURCES_CONFIG_PATH", cfg.SourcesConfigPath)
	cfg.TopicsConfigPath = getEnvOrDefault("TOPICS_CONFIG_PATH", cfg.TopicsConfigPath)

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	return nil
}
