package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything the process reads from its environment. It is
// built once in main and passed down; no other package touches os.Getenv.
type Config struct {
	DBHost     string
	DBName     string
	DBUser     string
	DBPassword string
	DBPort     string

	CrackAPIBaseURL string
	RedisURL        string
	InitSQLPath     string
	FrontendURL     string
}

func Load() Config {
	godotenv.Load()

	return Config{
		DBHost:     getenv("DB_HOST", "localhost"),
		DBName:     getenv("DB_NAME", "crack_db"),
		DBUser:     getenv("DB_USER", "airflow"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBPort:     getenv("DB_PORT", "5432"),

		CrackAPIBaseURL: getenv("CRACK_API_BASE_URL", "https://contents-api.wrtn.ai"),
		RedisURL:        os.Getenv("REDIS_URL"),
		InitSQLPath:     getenv("INIT_SQL_PATH", "sql/init.sql"),
		FrontendURL:     os.Getenv("FRONTEND_URL"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
