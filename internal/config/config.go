package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Tokens. Access and refresh use independent secrets so a leaked
	// refresh key cannot forge access tokens, and vice versa.
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	TokenAlgorithm     string

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	// .env is optional; deployments normally set the environment directly
	_ = godotenv.Load(".env")

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "tasklist_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		AccessTokenSecret:  getEnv("ACCESS_TOKEN_SECRET_KEY", ""),
		RefreshTokenSecret: getEnv("REFRESH_TOKEN_SECRET_KEY", ""),
		AccessTokenTTL:     minutesEnv("ACCESS_TOKEN_EXPIRE_MINUTES", 15),
		RefreshTokenTTL:    minutesEnv("REFRESH_TOKEN_EXPIRE_MINUTES", 420),
		TokenAlgorithm:     getEnv("TOKEN_ALGORITHM", "HS256"),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func minutesEnv(key string, fallback int) time.Duration {
	if val := os.Getenv(key); val != "" {
		if m, err := strconv.Atoi(val); err == nil && m >= 0 {
			return time.Duration(m) * time.Minute
		}
	}
	return time.Duration(fallback) * time.Minute
}
