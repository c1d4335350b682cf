package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver                string
	DBHost                  string
	DBPort                  string
	DBUser                  string
	DBPassword              string
	DBName                  string
	RedisHost               string
	RedisPort               string
	SessionSecret           string
	JWTSecret               string
	JWTTTL                  time.Duration
	GinMode                 string
	Port                    string
	CORSOrigins             []string
	LogLevel                string
	LogFile                 string
	ReleaseCapacityOnDelete bool
}

func Load() *Config {
	// A missing .env file is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		DBDriver:                getEnv("DB_DRIVER", "mysql"),
		DBHost:                  getEnv("DB_HOST", "localhost"),
		DBPort:                  getEnv("DB_PORT", "3306"),
		DBUser:                  getEnv("DB_USER", "ermsuser"),
		DBPassword:              getEnv("DB_PASSWORD", "ermspassword"),
		DBName:                  getEnv("DB_NAME", "erms"),
		RedisHost:               getEnv("REDIS_HOST", "localhost"),
		RedisPort:               getEnv("REDIS_PORT", "6379"),
		SessionSecret:           getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		JWTSecret:               getEnv("JWT_SECRET", "default-jwt-secret-change-me"),
		JWTTTL:                  getDuration("JWT_TTL", 24*time.Hour),
		GinMode:                 getEnv("GIN_MODE", "debug"),
		Port:                    getEnv("PORT", "8080"),
		CORSOrigins:             splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		LogFile:                 getEnv("LOG_FILE", ""),
		ReleaseCapacityOnDelete: getBool("RELEASE_CAPACITY_ON_DELETE", false),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
