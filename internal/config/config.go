package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	BackendURL     string
	TaxRate        decimal.Decimal
	RedisAddr      string // empty disables the shared catalog cache
	RedisPassword  string
	TokenPath      string
	RequestTimeout time.Duration
}

func Load() (*Config, error) {
	rate := getEnv("POS_TAX_RATE", "0.05")
	taxRate, err := decimal.NewFromString(rate)
	if err != nil || taxRate.Sign() < 0 {
		return nil, fmt.Errorf("invalid POS_TAX_RATE %q", rate)
	}

	return &Config{
		BackendURL:     getEnv("POS_BACKEND_URL", "https://jicus-pos-mobileapp-be.onrender.com/api/v1"),
		TaxRate:        taxRate,
		RedisAddr:      os.Getenv("POS_REDIS_ADDR"),
		RedisPassword:  os.Getenv("POS_REDIS_PASSWORD"),
		TokenPath:      getEnv("POS_TOKEN_PATH", defaultTokenPath()),
		RequestTimeout: 30 * time.Second,
	}, nil
}

func defaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".jicus-pos-jwt"
	}
	return filepath.Join(dir, "jicus-pos", "jwt")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
