package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all server settings read from the environment. Mongo
// settings are read by the Mongo client itself (MONGODB_URI,
// MONGODB_DATABASE).
type Config struct {
	Port              string
	JWTSecret         string
	SharesDir         string
	BlobEncryptionKey string
	STTProvider       string
	STTLanguage       string
	STTTimeout        time.Duration
	WordCloudFontFile string
	JobWorkers        int
	JobQueueSize      int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		SharesDir:         getEnv("SHARES_DIR", "shares"),
		BlobEncryptionKey: os.Getenv("BLOB_ENCRYPTION_KEY"),
		STTProvider:       getEnv("STT_PROVIDER", "watson"),
		STTLanguage:       getEnv("STT_LANGUAGE", "en-GB"),
		WordCloudFontFile: os.Getenv("WORDCLOUD_FONT_FILE"),
		STTTimeout:        time.Duration(getEnvInt("STT_TIMEOUT_SECONDS", 120)) * time.Second,
		JobWorkers:        getEnvInt("JOB_WORKERS", 4),
		JobQueueSize:      getEnvInt("JOB_QUEUE_SIZE", 64),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.BlobEncryptionKey == "" {
		return nil, fmt.Errorf("BLOB_ENCRYPTION_KEY is required (hex-encoded 32 bytes)")
	}
	if cfg.WordCloudFontFile == "" {
		return nil, fmt.Errorf("WORDCLOUD_FONT_FILE is required (path to a TTF font)")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
