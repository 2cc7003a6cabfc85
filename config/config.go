package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env       string
	Port      string
	Domain    string
	JWTSecret string
	JWTTTL    time.Duration

	// AdminSignupCode gates admin registration. Empty means any admin signup
	// request is accepted.
	AdminSignupCode string

	MongoURI      string
	MongoDatabase string

	RedisAddr          string
	RedisPassword      string
	IssueLimitPrefix   string
	IssueLimitPerDay   int
	GeocodeCachePrefix string
	GeocodeCacheTTL    time.Duration

	ClassifierURL     string
	ClassifierTimeout time.Duration
	GeocoderURL       string
	GeocoderTimeout   time.Duration

	AssistantReplyDelay time.Duration
	AssistantSessionTTL time.Duration
	CORSOrigins         []string
}

// Load reads .env when present and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found")
	}

	return &Config{
		Env:       getEnv("GO_ENV", "development"),
		Port:      getEnv("PORT", "8080"),
		Domain:    os.Getenv("DOMAIN"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTTTL:    getDuration("JWT_TTL", 72*time.Hour),

		AdminSignupCode: os.Getenv("ADMIN_SIGNUP_CODE"),

		MongoURI:      os.Getenv("MONGODB_URI"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "spotsolve"),

		RedisAddr:          getEnv("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		IssueLimitPrefix:   getEnv("REDIS_QUEUE_FOR_ISSUE_LIMIT", "issue-limit"),
		IssueLimitPerDay:   getInt("ISSUE_LIMIT_PER_DAY", 10),
		GeocodeCachePrefix: getEnv("REDIS_GEOCODE_PREFIX", "geocode"),
		GeocodeCacheTTL:    getDuration("GEOCODE_CACHE_TTL", 7*24*time.Hour),

		ClassifierURL:     getEnv("CLASSIFIER_URL", "http://localhost:8000/predict"),
		ClassifierTimeout: getDuration("CLASSIFIER_TIMEOUT", 20*time.Second),
		GeocoderURL:       getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org/reverse"),
		GeocoderTimeout:   getDuration("GEOCODER_TIMEOUT", 5*time.Second),

		AssistantReplyDelay: getDuration("ASSISTANT_REPLY_DELAY", 250*time.Millisecond),
		AssistantSessionTTL: getDuration("ASSISTANT_SESSION_TTL", 24*time.Hour),
		CORSOrigins:         getList("CORS_ORIGINS", []string{"http://localhost:3000"}),
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("Ignoring invalid integer setting", slog.String("key", key), slog.String("value", v))
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("Ignoring invalid duration setting", slog.String("key", key), slog.String("value", v))
		return fallback
	}
	return d
}

func getList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
