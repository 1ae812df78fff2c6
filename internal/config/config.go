// Package config предоставляет структуры и функцию для загрузки конфига.
// Конфиг читается из yaml-файла по пути CONFIG_PATH, а если путь не задан —
// целиком из переменных окружения.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек.
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING" env-required:"true"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	Generation              `yaml:"generation"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
}

// Generation — настройки генерации тренировок: выбор провайдера, дневной
// лимит, интервал охлаждения и размер приветственного начисления тикетов.
type Generation struct {
	Provider       string        `yaml:"provider" env:"GENERATION_PROVIDER" env-default:"builtin"`
	DailyLimit     int           `yaml:"daily_limit" env:"DAILY_GEN_LIMIT" env-default:"3"`
	Cooldown       time.Duration `yaml:"cooldown" env:"GEN_COOLDOWN" env-default:"60s"`
	WelcomeTickets int           `yaml:"welcome_tickets" env:"WELCOME_TICKETS" env-default:"3"`
	RemoteAPIURL   string        `yaml:"remote_api_url" env:"GENERATION_API_URL"`
	RemoteAPIKey   string        `yaml:"remote_api_key" env:"GENERATION_API_KEY"`
	RemoteTimeout  time.Duration `yaml:"remote_timeout" env:"GENERATION_TIMEOUT" env-default:"30s"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":3000"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env:"HTTP_TIMEOUT" env-default:"30s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS" env-default:"localhost:6379"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user" env:"REDIS_USER"`
	DB           int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	MaxRetries   int           `yaml:"max_retries" env:"REDIS_MAX_RETRIES" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env:"REDIS_TIMEOUT" env-default:"3s"`
}

// MustLoad загружает конфиг и завершает процесс при любой ошибке чтения.
func MustLoad() *Config {
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read config from environment: %s", err)
		}
		return &cfg
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
