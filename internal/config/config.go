package config

import (
	"log"
	"os"
	"strings"
	"time"
)

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr               string
	MongoURI           string
	MongoDatabase      string
	UserCollection     string
	SurveyCollection   string
	ResponseCollection string
	Timeout            time.Duration
	ServerLog          *log.Logger
	JWTIssuer          string
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	AllowedOrigins     []string
}

// Load reads environment variables and returns a fully populated Config.
// The two token secrets are mandatory and must differ; everything else
// has a sensible local default.
func Load() Config {
	timeout := 10 * time.Second
	if v := os.Getenv("MONGO_CONNECT_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			timeout = parsed
		}
	}

	accessSecret := strings.TrimSpace(os.Getenv("ACCESS_TOKEN_SECRET"))
	if accessSecret == "" {
		log.Fatal("ACCESS_TOKEN_SECRET must be configured")
	}
	refreshSecret := strings.TrimSpace(os.Getenv("REFRESH_TOKEN_SECRET"))
	if refreshSecret == "" {
		log.Fatal("REFRESH_TOKEN_SECRET must be configured")
	}
	if accessSecret == refreshSecret {
		log.Fatal("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}

	accessTTL := 15 * time.Minute
	if raw := strings.TrimSpace(os.Getenv("ACCESS_TOKEN_TTL")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			accessTTL = parsed
		}
	}
	refreshTTL := 7 * 24 * time.Hour
	if raw := strings.TrimSpace(os.Getenv("REFRESH_TOKEN_TTL")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			refreshTTL = parsed
		}
	}

	return Config{
		Addr:               envOrDefault("HTTP_ADDR", ":8080"),
		MongoURI:           envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:      envOrDefault("MONGO_DB", "surveyflow"),
		UserCollection:     envOrDefault("USER_COLLECTION", "users"),
		SurveyCollection:   envOrDefault("SURVEY_COLLECTION", "surveys"),
		ResponseCollection: envOrDefault("RESPONSE_COLLECTION", "responses"),
		Timeout:            timeout,
		ServerLog:          log.New(os.Stdout, "[surveyflow-api] ", log.LstdFlags|log.Lshortfile),
		JWTIssuer:          envOrDefault("JWT_ISSUER", "surveyflow-api"),
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
		AllowedOrigins:     parseList("API_ALLOWED_ORIGINS", []string{"*"}),
	}
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
