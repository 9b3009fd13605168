package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	PORT        string
	DB_URL      string
	JWT_SECRET  string
	CORS_ORIGIN string

	GITHUB_CLIENT_ID     string
	GITHUB_CLIENT_SECRET string
	GITHUB_REDIRECT_URL  string
	ADMIN_REDIRECT_URL   string
	COOKIE_SECURE        bool

	REDIS_URL string
	CACHE_TTL time.Duration

	S3_ENDPOINT   string
	S3_ACCESS_KEY string
	S3_SECRET_KEY string
	S3_BUCKET     string
	S3_PUBLIC_URL string
	S3_USE_SSL    bool

	OTEL_STDOUT bool
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:3000")

	GITHUB_CLIENT_ID = mustEnv("GITHUB_CLIENT_ID")
	GITHUB_CLIENT_SECRET = mustEnv("GITHUB_CLIENT_SECRET")
	GITHUB_REDIRECT_URL = mustEnv("GITHUB_REDIRECT_URL")
	ADMIN_REDIRECT_URL = getEnv("ADMIN_REDIRECT_URL", "")
	COOKIE_SECURE = getBool("COOKIE_SECURE", false)

	// empty REDIS_URL disables the event cache
	REDIS_URL = getEnv("REDIS_URL", "")
	CACHE_TTL = getDuration("CACHE_TTL", time.Minute)

	S3_ENDPOINT = mustEnv("S3_ENDPOINT")
	S3_ACCESS_KEY = mustEnv("S3_ACCESS_KEY")
	S3_SECRET_KEY = mustEnv("S3_SECRET_KEY")
	S3_BUCKET = mustEnv("S3_BUCKET")
	S3_PUBLIC_URL = getEnv("S3_PUBLIC_URL", "")
	S3_USE_SSL = getBool("S3_USE_SSL", true)

	OTEL_STDOUT = getBool("OTEL_STDOUT", false)
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Invalid boolean for %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Invalid duration for %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
