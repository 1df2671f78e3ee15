package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	Port            string
	Env             string
	LogLevel        string
	PostgresConnStr string
	MongoURI        string
	JWTSecret       string
	ClientOrigin    string
}

func Load() *Config {
	// Load environment variables from .env file when present
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		PostgresConnStr: getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:        getEnv("MONGO_URI", ""),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		ClientOrigin:    getEnv("CLIENT_ORIGIN", ""),
	}
}

// NewLogger builds the root logger. Development gets a console writer,
// anything else logs JSON to stdout.
func (c *Config) NewLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}

	if c.Env == "development" {
		writer := zerolog.NewConsoleWriter()
		return zerolog.New(writer).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
