package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	Port            string
	ServiceName     string
	RemoteBaseURL   string
	UpstreamTimeout time.Duration

	// Empty means an in-memory session store.
	RedisAddr  string
	SessionTTL time.Duration

	CORSAllowOrigins []string
}

func Load() Config {
	return Config{
		Port:             getenv("PORT", "8090"),
		ServiceName:      getenv("SERVICE_NAME", "storefront-bff"),
		RemoteBaseURL:    getenv("REMOTE_BASE_URL", "http://localhost:8080"),
		UpstreamTimeout:  parseDuration(getenv("UPSTREAM_TIMEOUT", "10s"), 10*time.Second),
		RedisAddr:        getenv("REDIS_ADDR", ""),
		SessionTTL:       parseDuration(getenv("SESSION_TTL", "24h"), 24*time.Hour),
		CORSAllowOrigins: splitCSV(getenv("CORS_ALLOW_ORIGINS", "*")),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
