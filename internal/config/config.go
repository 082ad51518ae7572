package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is populated from the environment, with an optional .env file.
type Config struct {
	Port         string
	ProjectID    string // Firestore project; empty falls back to the in-memory store
	ClientOrigin string

	TokenSecret string
	TokenTTL    time.Duration

	SessionBackend string // "memory" or "redis"
	RedisAddr      string
	RedisDB        int

	Env      string // "dev" or "prod"
	LogLevel string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := Config{
		Port:           getEnv("PORT", "8100"),
		ProjectID:      os.Getenv("GOOGLE_CLOUD_PROJECT"),
		ClientOrigin:   getEnv("CLIENT_ORIGIN", "*"),
		TokenSecret:    os.Getenv("TOKEN_SECRET"),
		TokenTTL:       getDuration("TOKEN_TTL", 72*time.Hour),
		SessionBackend: getEnv("SESSION_BACKEND", "memory"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:        getInt("REDIS_DB", 0),
		Env:            getEnv("APP_ENV", "dev"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid %s value %q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Invalid %s value %q, using default %s", key, v, fallback)
		return fallback
	}
	return d
}
