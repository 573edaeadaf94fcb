package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const defaultMaxBodyBytes = 1 << 20

type Config struct {
	Port         string
	GinMode      string
	LogLevel     string
	MaxBodyBytes int64
}

// LoadConfig reads the process environment, after loading a .env file from
// the working directory when one exists.
func LoadConfig(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	maxBody, err := getEnvInt64("MAX_BODY_BYTES", defaultMaxBodyBytes)
	if err != nil {
		return nil, err
	}
	if maxBody <= 0 {
		return nil, fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", maxBody)
	}

	ginMode := getEnv("GIN_MODE", "release")
	switch ginMode {
	case "debug", "release", "test":
	default:
		return nil, fmt.Errorf("GIN_MODE must be debug, release or test, got %q", ginMode)
	}

	return &Config{
		Port:         getEnv("PORT", "8080"),
		GinMode:      ginMode,
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		MaxBodyBytes: maxBody,
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) (int64, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}
