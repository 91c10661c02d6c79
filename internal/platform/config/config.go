package config

import (
	"os"
	"strings"
)

// Server captures process-level configuration. Optional backends (postgres,
// redis, kafka) stay disabled when their variables are empty; the service then
// runs on in-memory stores, which is the development default.
type Server struct {
	Addr               string
	DatabaseURL        string
	RedisURL           string
	KafkaBrokers       []string
	NotificationsTopic string
	JWTSigningKey      string
	Migrate            bool
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("APPEALBOARD_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	topic := os.Getenv("APPEALBOARD_NOTIFICATIONS_TOPIC")
	if topic == "" {
		topic = "case-notifications"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return Server{
		Addr:               addr,
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisURL:           os.Getenv("REDIS_URL"),
		KafkaBrokers:       brokers,
		NotificationsTopic: topic,
		JWTSigningKey:      jwtSigningKey,
		Migrate:            os.Getenv("APPEALBOARD_MIGRATE") == "true",
	}
}
