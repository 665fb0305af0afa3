package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port     string
	LogLevel string

	// Persistence
	DatabasePath string
	LogFile      string

	// S3 (raw document archive, optional)
	S3Enabled         bool
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3BucketName      string
	S3UseSSL          bool

	// Zero-shot classifier (optional; keyword fallback is used without it)
	HFAPIKey string
	HFModel  string

	// Upload limits
	MaxFileSize int64
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DatabasePath:      getEnv("DATABASE_PATH", "outputs/docrouter.db"),
		LogFile:           getEnv("LOG_FILE", "outputs/logs.json"),
		S3Enabled:         getEnv("S3_ENABLED", "false") == "true",
		S3Endpoint:        getEnv("S3_ENDPOINT", "localhost:9000"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", "minioadmin"),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", "minioadmin"),
		S3BucketName:      getEnv("S3_BUCKET_NAME", "documents"),
		S3UseSSL:          getEnv("S3_USE_SSL", "false") == "true",
		HFAPIKey:          getEnv("HF_API_KEY", ""),
		HFModel:           getEnv("HF_MODEL", "facebook/bart-large-mnli"),
		MaxFileSize:       getEnvInt64("MAX_FILE_SIZE", 5*1024*1024),
	}

	// HF_API_KEY is deliberately not required: without it the intent
	// classifier degrades to the keyword fallback.
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
