package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// parseEnv overlays cfg with CLINIC_* variables that are set and non-empty.
func parseEnv(cfg *Config) error {
	cfg.APIBaseURL = envOrDefault("CLINIC_API_URL", cfg.APIBaseURL)
	cfg.RosaBaseURL = envOrDefault("CLINIC_ROSA_URL", cfg.RosaBaseURL)
	cfg.PayloadSecret = envOrDefault("CLINIC_PAYLOAD_SECRET", cfg.PayloadSecret)
	cfg.DataDir = envOrDefault("CLINIC_DATA_DIR", cfg.DataDir)
	cfg.LogLevel = envOrDefault("CLINIC_LOG_LEVEL", cfg.LogLevel)
	cfg.LogBackend = envOrDefault("CLINIC_LOG_BACKEND", cfg.LogBackend)

	if v := os.Getenv("CLINIC_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CLINIC_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}

	for key, dst := range map[string]*int{
		"CLINIC_FETCH_LIMIT": &cfg.FetchLimit,
		"CLINIC_PAGE_SIZE":   &cfg.PageSize,
	} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
	}

	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
