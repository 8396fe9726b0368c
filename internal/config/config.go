package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// JWTConfig defines issuer/secret pair for auth verification.
type JWTConfig struct {
	Issuer string
	Secret []byte
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                string
	MongoURI            string
	MongoDatabase       string
	SurveyCollection    string
	ResultCollection    string
	StatisticCollection string
	PingCollection      string
	Timeout             time.Duration
	Timezone            string
	ServerLog           *log.Logger
	JWTConfigs          []JWTConfig
	JWTAudience         string
	AllowedOrigins      []string
}

// Load reads environment variables and returns a fully populated Config.
// A local .env file is applied first when present.
func Load() Config {
	_ = godotenv.Load()

	timeout := 10 * time.Second
	if v := os.Getenv("MONGO_CONNECT_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			timeout = parsed
		}
	}

	allowedOrigins := parseList("API_ALLOWED_ORIGINS", []string{"*"})

	var jwtConfigs []JWTConfig
	if secret := strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: envOrDefault("AUTH_JWT_ISSUER", "chatform-auth"),
			Secret: []byte(secret),
		})
	}
	if secret := strings.TrimSpace(os.Getenv("AUTH_BOT_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: envOrDefault("AUTH_BOT_JWT_ISSUER", "chatform-bot"),
			Secret: []byte(secret),
		})
	}

	if len(jwtConfigs) == 0 {
		log.Fatal("JWT secrets not configured. Set AUTH_JWT_SECRET or AUTH_BOT_JWT_SECRET.")
	}

	jwtAudience := strings.TrimSpace(os.Getenv("AUTH_JWT_AUDIENCE"))

	cfg := Config{
		Addr:                envOrDefault("HTTP_ADDR", ":8080"),
		MongoURI:            envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:       envOrDefault("MONGO_DB", "chatform"),
		SurveyCollection:    envOrDefault("SURVEY_COLLECTION", "surveys"),
		ResultCollection:    envOrDefault("RESULT_COLLECTION", "survey_results"),
		StatisticCollection: envOrDefault("STATISTIC_COLLECTION", "survey_statistics"),
		PingCollection:      envOrDefault("PING_COLLECTION", "pings"),
		Timeout:             timeout,
		Timezone:            envOrDefault("TIMEZONE", "Asia/Shanghai"),
		ServerLog:           log.New(os.Stdout, "[chatform-api] ", log.LstdFlags|log.Lshortfile),
		JWTConfigs:          jwtConfigs,
		JWTAudience:         jwtAudience,
		AllowedOrigins:      allowedOrigins,
	}

	return cfg
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
