package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabaseURL   string
	AppEnv        string
	LogLevel      string
	JWTSecret     string
	AdminUsername string
	AdminPassword string

	StorageEndpoint  string
	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string
	StorageUseSSL    bool

	AllowedOrigins []string
}

func Load() *Config {
	_ = godotenv.Load() // Ignore error if .env not found (e.g. prod)

	return &Config{
		Port:          getEnv("PORT", "5000"),
		DatabaseURL:   getEnv("DATABASE_URL", "file:db.sqlite"),
		AppEnv:        getEnv("APP_ENV", "local"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		JWTSecret:     getEnv("JWT_SECRET", "secret"),
		AdminUsername: getEnv("ADMIN_USERNAME", "teacher123"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "secret123"),

		StorageEndpoint:  getEnv("STORAGE_ENDPOINT", "localhost:9000"),
		StorageAccessKey: getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
		StorageSecretKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
		StorageBucket:    getEnv("STORAGE_BUCKET", "teachshare"),
		StorageUseSSL:    getEnv("STORAGE_USE_SSL", "false") == "true",

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
