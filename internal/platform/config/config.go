package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL     string
	Port            string
	IsProduction    bool
	JWTSecret       string
	JWTIssuer       string
	MaxUploadBytes  int64
	ImportRateLimit string // ulule/limiter format, e.g. "20-M"
	CategoryMapFile string // JSON fallback when the DB has no mapping table
	MigrationsDir   string
}

const defaultMaxUploadBytes = 50 * 1024 * 1024

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "orgbooks")
	viper.SetDefault("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)
	viper.SetDefault("IMPORT_RATE_LIMIT", "20-M")
	viper.SetDefault("CATEGORY_MAP_FILE", "data/category_map.json")
	viper.SetDefault("MIGRATIONS_DIR", "migrations")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.MaxUploadBytes = viper.GetInt64("MAX_UPLOAD_BYTES")
	if cfg.MaxUploadBytes <= 0 {
		log.Printf("Warning: Invalid MAX_UPLOAD_BYTES. Defaulting to %d.\n", int64(defaultMaxUploadBytes))
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}

	cfg.ImportRateLimit = viper.GetString("IMPORT_RATE_LIMIT")
	cfg.CategoryMapFile = viper.GetString("CATEGORY_MAP_FILE")
	cfg.MigrationsDir = viper.GetString("MIGRATIONS_DIR")

	return cfg, nil
}
