// Package config loads runtime settings from the environment. Editorial
// data (author pools, title fillers, trend feeds) lives in YAML files under
// configs/ and is loaded by the packages that consume it.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Article store
	ArticlesFile string
	LegacyFile   string

	// Editorial / feed data
	EditorialConfigPath string
	TrendsConfigPath    string

	// Gemini settings
	GeminiAPIKey      string
	GeminiModel       string
	MaxGeminiRequests int // maximum drafting requests per run (0 = unlimited)
	UsedKeywordsPath  string
	KeywordTTLHours   int

	// Downstream site build, run after persistence when set
	SiteGenerateCmd string

	// App settings
	Seed           int64 // 0 = time-seeded (nondeterministic backfills)
	Debug          bool
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		ArticlesFile:        "perplexityArticles.json",
		EditorialConfigPath: "configs/editorial.yaml",
		TrendsConfigPath:    "configs/trends.yaml",
		GeminiModel:         "gemini-1.5-flash",
		MaxGeminiRequests:   3, // default budget, change as needed
		UsedKeywordsPath:    "used_keywords.json",
		KeywordTTLHours:     7 * 24,
		RequestTimeout:      30 * time.Second,
		RetryAttempts:       3,
		RetryDelay:          5 * time.Second,
	}

	// Load from environment
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	cfg.ArticlesFile = getEnvOrDefault("ARTICLES_FILE", cfg.ArticlesFile)
	cfg.EditorialConfigPath = getEnvOrDefault("EDITORIAL_CONFIG", cfg.EditorialConfigPath)
	cfg.TrendsConfigPath = getEnvOrDefault("TRENDS_CONFIG", cfg.TrendsConfigPath)
	cfg.GeminiModel = getEnvOrDefault("GEMINI_MODEL", cfg.GeminiModel)
	cfg.UsedKeywordsPath = getEnvOrDefault("USED_KEYWORDS_FILE", cfg.UsedKeywordsPath)
	cfg.KeywordTTLHours = getEnvIntOrDefault("KEYWORD_TTL_HOURS", cfg.KeywordTTLHours)
	cfg.SiteGenerateCmd = os.Getenv("SITE_GENERATE_CMD")

	if v := os.Getenv("MAX_GEMINI_REQUESTS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val >= 0 {
			cfg.MaxGeminiRequests = val
		}
	}

	if v := os.Getenv("RANDOM_SEED"); v != "" {
		val, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("RANDOM_SEED must be an integer: %w", err)
		}
		cfg.Seed = val
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// ValidateForGeneration checks the settings only needed when the run
// drafts new articles.
func (c *Config) ValidateForGeneration() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required for article generation")
	}
	return nil
}
