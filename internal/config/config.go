package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultUpstreamURL is the JPL tours search endpoint.
const DefaultUpstreamURL = "https://www.jpl.nasa.gov/events/tours/api/tours/search"

type Config struct {
	Addr   string // HTTP bind address
	LogDir string // logs directory

	UpstreamURL    string        // tours search endpoint
	TourCategoryID string        // e.g. "1" = Educational Group Tour
	GroupSize      string        // requested visitor count
	HTTPTimeout    time.Duration // outbound HTTP timeout

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFrom       string // verified sender number
	NotifyTo         string // destination number
	NotifySMS        bool   // also send a text alongside the call
	SlackWebhook     string // optional extra channel

	Cooldown     time.Duration // minimum gap between two notifications
	PollInterval time.Duration // 0 = rely on the external scheduler
	StateDBPath  string        // empty = in-memory state only

	APIKeys   []string // empty = endpoints are open
	RateRPM   int
	RateBurst int
}

func FromEnv() Config {
	return Config{
		Addr:   envOr("ADDR", ":8080"),
		LogDir: envOr("LOG_DIR", "logs"),

		UpstreamURL:    envOr("UPSTREAM_URL", DefaultUpstreamURL),
		TourCategoryID: envOr("TOUR_CATEGORY_ID", "1"),
		GroupSize:      envOr("GROUP_SIZE", "40"),
		HTTPTimeout:    time.Duration(envInt("HTTP_TIMEOUT_MS", 15000)) * time.Millisecond,

		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFrom:       os.Getenv("TWILIO_FROM"),
		NotifyTo:         os.Getenv("NOTIFY_TO"),
		NotifySMS:        envBool("NOTIFY_SMS"),
		SlackWebhook:     os.Getenv("SLACK_WEBHOOK"),

		Cooldown:     time.Duration(envInt("COOLDOWN_SECONDS", 1800)) * time.Second,
		PollInterval: time.Duration(envInt("POLL_INTERVAL_MS", 0)) * time.Millisecond,
		StateDBPath:  os.Getenv("STATE_DB_PATH"),

		APIKeys:   splitList(os.Getenv("API_KEYS")),
		RateRPM:   envInt("RATE_RPM", 0),
		RateBurst: envInt("RATE_BURST", 10),
	}
}

// TwilioConfigured reports whether every credential needed to place a
// call is present.
func (c Config) TwilioConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" &&
		c.TwilioFrom != "" && c.NotifyTo != ""
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func envBool(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
