package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// App holds the runtime configuration loaded from environment variables.
type App struct {
	Env                 string
	HTTPPort            string
	FirebaseProjectID   string
	FirebaseCredentials string
	RedisAddr           string
	JWTIssuer           string
	JWTSigningKey       string
	TokenTTL            time.Duration
	ImgurClientID       string
	RateLimitPerMin     int
	StatsCacheTTL       time.Duration
}

// Load returns application config populated from environment variables with
// sensible defaults. A .env file in the working directory is applied first
// when present.
func Load() App {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: .env not loaded: %v", err)
	}
	return App{
		Env:                 getEnv("APP_ENV", "dev"),
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		FirebaseProjectID:   getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", "serviceAccountKey.json"),
		RedisAddr:           getEnv("REDIS_ADDR", ""),
		JWTIssuer:           getEnv("JWT_ISSUER", "mlvisio-track"),
		JWTSigningKey:       getEnv("JWT_SIGNING_KEY", "dev-signing-secret-change"),
		TokenTTL:            durationEnv("TOKEN_TTL", 24*time.Hour),
		ImgurClientID:       getEnv("IMGUR_CLIENT_ID", ""),
		RateLimitPerMin:     intEnv("RATE_LIMIT_PER_MIN", 120),
		StatsCacheTTL:       durationEnv("STATS_CACHE_TTL", 30*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using fallback %s", key, err, fallback)
			return fallback
		}
		return d
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var parsed int
		if _, err := fmt.Sscanf(val, "%d", &parsed); err == nil {
			return parsed
		}
		log.Printf("invalid int for %s, using fallback %d", key, fallback)
	}
	return fallback
}
