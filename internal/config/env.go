package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvOrDefault returns the environment variable's value, or fallback when unset.
func EnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ParseBrokers splits a comma-separated broker list, trimming whitespace and
// dropping empty entries.
func ParseBrokers(value string) []string {
	parts := strings.Split(value, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

// envDuration parses a positive duration env var with a default.
func envDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(EnvOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

// envIntInRange parses an integer env var with a default, enforcing bounds.
func envIntInRange(key string, fallback, minValue, maxValue int) (int, error) {
	n, err := strconv.Atoi(EnvOrDefault(key, strconv.Itoa(fallback)))
	if err != nil || n < minValue || n > maxValue {
		return 0, fmt.Errorf("invalid %s: must be an integer in [%d, %d]", key, minValue, maxValue)
	}
	return n, nil
}
