// Package config loads application configuration from environment
// variables. Only addressing is configurable: where the database, the
// external sources and the artifact cache live. No behavioral semantics
// depend on these values.
package config

import (
	"log"
	"os"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	DBUser       string // database username
	DBPass       string // database password (optional)
	DBHost       string // database host address
	DBPort       string // database port number
	DBName       string // database name
	CountriesAPI string // country metadata source endpoint
	ExchangeAPI  string // exchange rate source endpoint
	CacheDir     string // directory holding the summary image
}

// Load reads configuration values from the environment. Database identity
// variables are required and missing values halt startup; everything else
// carries a default.
func Load() Config {
	return Config{
		Env:          getenv("APP_ENV", "dev"),
		Port:         getenv("APP_PORT", "3000"),
		DBUser:       must("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"),
		DBHost:       must("DB_HOST"),
		DBPort:       getenv("DB_PORT", "3306"),
		DBName:       must("DB_NAME"),
		CountriesAPI: os.Getenv("COUNTRIES_API"), // empty selects the built-in default source
		ExchangeAPI:  os.Getenv("EXCHANGE_API"),
		CacheDir:     getenv("CACHE_DIR", "./cache"),
	}
}

// must retrieves a required environment variable; an unset or empty value
// exits with a fatal log message.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
