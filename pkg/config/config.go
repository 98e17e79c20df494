// Package config loads application configuration from environment
// variables and holds the static currency table the analyzer ships with.
package config

import (
	"fmt"
	"os"
	"strconv"

	// Load environment variables from .env files when present.
	_ "github.com/joho/godotenv"

	"github.com/kunnath/pdf-financial-analyzer/internal/domain/currency"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Analyzer AnalyzerConfig
}

type ServerConfig struct {
	Host               string
	Port               int
	RateLimitPerSecond int
	RateLimitBurst     int
}

type AnalyzerConfig struct {
	BaseCurrency       string
	SourceCurrency     string
	DisplayCurrency    string
	DedupeTableAmounts bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:               getEnv("SERVER_HOST", "localhost"),
			Port:               getEnvAsInt("SERVER_PORT", 8080),
			RateLimitPerSecond: getEnvAsInt("SERVER_RATE_LIMIT_PER_SECOND", 50),
			RateLimitBurst:     getEnvAsInt("SERVER_RATE_LIMIT_BURST", 100),
		},
		Analyzer: AnalyzerConfig{
			BaseCurrency:       getEnv("BASE_CURRENCY", "INR"),
			SourceCurrency:     getEnv("SOURCE_CURRENCY", "INR"),
			DisplayCurrency:    getEnv("DISPLAY_CURRENCY", "INR"),
			DedupeTableAmounts: getEnvAsBool("DEDUPE_TABLE_AMOUNTS", true),
		},
	}
	return cfg, nil
}

// Addr returns the listen address for the HTTP server
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DefaultCurrencies is the built-in rate configuration, expressed against
// an INR base: each rate is how many units one rupee buys. Zero-decimal
// currencies set DecimalPlaces to 0.
func DefaultCurrencies() []currency.Definition {
	return []currency.Definition{
		{Code: "INR", Rate: 1.0, Symbol: "₹", DecimalPlaces: 2},
		{Code: "USD", Rate: 0.012, Symbol: "$", DecimalPlaces: 2},
		{Code: "EUR", Rate: 0.011, Symbol: "€", DecimalPlaces: 2},
		{Code: "GBP", Rate: 0.0095, Symbol: "£", DecimalPlaces: 2},
		{Code: "JPY", Rate: 1.8, Symbol: "¥", DecimalPlaces: 0},
		{Code: "CAD", Rate: 0.016, Symbol: "C$", DecimalPlaces: 2},
		{Code: "AUD", Rate: 0.018, Symbol: "A$", DecimalPlaces: 2},
		{Code: "CNY", Rate: 0.086, Symbol: "¥", DecimalPlaces: 2},
	}
}

// CurrencyTable builds the currency table from the configured base and the
// default definitions. Individual rates can be overridden through
// EXCHANGE_RATE_<CODE> environment variables.
func (c *Config) CurrencyTable() (*currency.Table, error) {
	defs := DefaultCurrencies()
	for i, def := range defs {
		if override := os.Getenv("EXCHANGE_RATE_" + def.Code); override != "" {
			rate, err := strconv.ParseFloat(override, 64)
			if err != nil {
				return nil, fmt.Errorf("EXCHANGE_RATE_%s: %w", def.Code, err)
			}
			defs[i].Rate = rate
		}
	}
	return currency.NewTable(c.Analyzer.BaseCurrency, defs)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
