package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort             string
	DBHost               string
	DBPort               string
	DBUser               string
	DBPassword           string
	DBName               string
	DBSslMode            string
	RedisAddress         string
	LogLevel             logrus.Level
	PriorityCacheTTL     time.Duration
	RoleCapabilitiesFile string
	ReconcileSchedule    string
	LowStockSchedule     string
	RateLimitPerSecond   float64
	RateLimitBurst       int
}

// DSN is the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

// LoadConfig reads the configuration through getenv. Database settings are required;
// everything else has a default. An empty REDIS_ADDRESS runs without the priority
// cache and without the reconciliation lock.
func LoadConfig(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	config := Config{
		HTTPPort:             get("HTTP_PORT", "8080"),
		DBHost:               get("DB_HOST", ""),
		DBPort:               get("DB_PORT", "5432"),
		DBUser:               get("DB_USER", ""),
		DBPassword:           getenv("DB_PASSWORD"),
		DBName:               get("DB_NAME", ""),
		DBSslMode:            get("DB_SSLMODE", "disable"),
		RedisAddress:         get("REDIS_ADDRESS", ""),
		RoleCapabilitiesFile: get("ROLE_CAPABILITIES_FILE", ""),
		ReconcileSchedule:    get("RECONCILE_CRON", "0 */15 * * * *"),
		LowStockSchedule:     get("LOW_STOCK_CRON", "0 0 7 * * *"),
	}

	var result []error
	for _, required := range []struct{ key, value string }{
		{"DB_HOST", config.DBHost},
		{"DB_USER", config.DBUser},
		{"DB_NAME", config.DBName},
	} {
		if required.value == "" {
			result = append(result, fmt.Errorf("%s is required", required.key))
		}
	}

	var err error
	if config.LogLevel, err = logrus.ParseLevel(get("LOG_LEVEL", "info")); err != nil {
		result = append(result, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	if config.PriorityCacheTTL, err = time.ParseDuration(get("PRIORITY_CACHE_TTL", "24h")); err != nil {
		result = append(result, fmt.Errorf("PRIORITY_CACHE_TTL: %w", err))
	}
	if config.RateLimitPerSecond, err = strconv.ParseFloat(get("RATE_LIMIT_RPS", "20"), 64); err != nil {
		result = append(result, fmt.Errorf("RATE_LIMIT_RPS: %w", err))
	}
	if config.RateLimitBurst, err = strconv.Atoi(get("RATE_LIMIT_BURST", "40")); err != nil {
		result = append(result, fmt.Errorf("RATE_LIMIT_BURST: %w", err))
	}

	if len(result) > 0 {
		return Config{}, errors.Join(result...)
	}
	return config, nil
}
