package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port            string
	UpstreamTimeout time.Duration

	// Legacy order API (ASMX endpoints)
	OrderAPIURL   string
	OrderAPIToken string

	// Vendor matching
	PollInterval   time.Duration
	WaitTimeout    time.Duration
	AcceptedStatus string

	// Re-send the address/slot update when retrying a submit whose update already succeeded.
	RepeatUpdateOnRetry bool

	// CORS
	CORSAllowOrigins []string

	// Optional infrastructure. Empty disables it.
	DatabaseDSN   string
	RunMigrations bool
	RabbitMQURL   string
}

func Load() Config {
	return Config{
		Port:            getenv("PORT", "8080"),
		UpstreamTimeout: parseDuration(getenv("UPSTREAM_TIMEOUT", "10s"), 10*time.Second),

		OrderAPIURL:   getenv("ORDER_API_URL", "https://api.hukmee.in/APIs/APIs.asmx"),
		OrderAPIToken: getenv("ORDER_API_TOKEN", "SWNCMPMSREMXAMCKALVAALI"),

		PollInterval:   parseDuration(getenv("POLL_INTERVAL", "4s"), 4*time.Second),
		WaitTimeout:    parseDuration(getenv("WAIT_TIMEOUT", "120s"), 120*time.Second),
		AcceptedStatus: getenv("ACCEPTED_STATUS", "Done"),

		RepeatUpdateOnRetry: envBool("REPEAT_UPDATE_ON_RETRY", false),

		CORSAllowOrigins: splitCSV(getenv("CORS_ALLOW_ORIGINS", "*")),

		DatabaseDSN:   os.Getenv("DATABASE_DSN"),
		RunMigrations: envBool("RUN_MIGRATIONS", true),
		RabbitMQURL:   os.Getenv("RABBITMQ_URL"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func envBool(k string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
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
	if err != nil || d <= 0 {
		return def
	}
	return d
}
