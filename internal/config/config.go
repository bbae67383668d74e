package config

import (
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит конфигурацию приложения.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	TokenSecret     string
	TokenExpiration time.Duration
}

// Load загружает конфигурацию из флагов командной строки и переменных окружения.
// Приоритет: переменные окружения > флаги > значения по умолчанию.
func Load() *Config {
	// Локальный .env, если есть; в проде переменные приходят из окружения
	_ = godotenv.Load()

	cfg := &Config{}

	flag.StringVar(&cfg.RunAddress, "a", ":3000", "адрес и порт запуска сервиса")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "строка подключения к PostgreSQL")
	flag.Parse()

	if envRunAddr := os.Getenv("RUN_ADDRESS"); envRunAddr != "" {
		cfg.RunAddress = envRunAddr
	}
	if envDBURI := os.Getenv("DATABASE_URI"); envDBURI != "" {
		cfg.DatabaseURI = envDBURI
	}

	// Секрет подписи токенов
	cfg.TokenSecret = os.Getenv("TOKEN_SECRET")
	if cfg.TokenSecret == "" {
		cfg.TokenSecret = "default-secret-change-in-production"
	}

	// Время жизни токена
	cfg.TokenExpiration = 1 * time.Hour
	if envExp := os.Getenv("TOKEN_EXPIRATION"); envExp != "" {
		if exp, err := time.ParseDuration(envExp); err == nil && exp > 0 {
			cfg.TokenExpiration = exp
		}
	}

	return cfg
}
