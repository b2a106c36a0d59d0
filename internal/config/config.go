package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	APIURL      string
	BusinessID  string
	RedisAddr   string
	Locale      string
	DeviceZone  string
	Environment string
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Читаем напрямую из переменных окружения (после godotenv.Load они там)
	cfg := &Config{
		APIURL:      os.Getenv("API_URL"),
		BusinessID:  os.Getenv("BUSINESS_ID"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		Locale:      os.Getenv("LOCALE"),
		DeviceZone:  os.Getenv("TIMEZONE"),
		Environment: os.Getenv("ENV"),
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Locale == "" {
		cfg.Locale = "en"
	}

	// Проверяем обязательные поля
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("API_URL is required but not set")
	}
	if cfg.BusinessID == "" {
		return nil, fmt.Errorf("BUSINESS_ID is required but not set")
	}

	return cfg, nil
}
