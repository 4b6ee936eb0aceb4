package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Transport - шина доставки событий
const (
	TransportMemory = "memory"
	TransportRedis  = "redis"
	TransportMQTT   = "mqtt"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL    string `env:"DATABASE_URL"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"migrations"`
	HTTPPort       string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Event transport
	Transport    string `env:"TRANSPORT" envDefault:"memory"`
	MQTTBroker   string `env:"MQTT_BROKER" envDefault:"tcp://localhost:1883"`
	MQTTClientID string `env:"MQTT_CLIENT_ID" envDefault:"emergency-dispatch"`

	// Fanout Config
	FanoutQueueSize  int           `env:"FANOUT_QUEUE_SIZE" envDefault:"1024"`
	FanoutMaxRetries int           `env:"FANOUT_MAX_RETRIES" envDefault:"5"`
	FanoutRetryBase  time.Duration `env:"FANOUT_RETRY_BASE" envDefault:"100ms"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		MigrationsPath:    getEnv("MIGRATIONS_PATH", "migrations"),
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:           getEnvAsInt("REDIS_DB", 0),
		Transport:         strings.ToLower(getEnv("TRANSPORT", TransportMemory)),
		MQTTBroker:        getEnv("MQTT_BROKER", "tcp://localhost:1883"),
		MQTTClientID:      getEnv("MQTT_CLIENT_ID", "emergency-dispatch"),
		FanoutQueueSize:   getEnvAsInt("FANOUT_QUEUE_SIZE", 1024),
		FanoutMaxRetries:  getEnvAsInt("FANOUT_MAX_RETRIES", 5),
		FanoutRetryBase:   getEnvAsDuration("FANOUT_RETRY_BASE", 100*time.Millisecond),
		WebhookURL:        os.Getenv("WEBHOOK_URL"),
		WebhookSecret:     os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:    getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries: getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:  getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		APIKeys:           splitList(os.Getenv("API_KEYS")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет обязательные и взаимозависимые параметры
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	switch c.Transport {
	case TransportMemory, TransportRedis, TransportMQTT:
	default:
		return fmt.Errorf("unknown TRANSPORT %q: expected memory, redis or mqtt", c.Transport)
	}
	if c.FanoutQueueSize <= 0 {
		return fmt.Errorf("FANOUT_QUEUE_SIZE must be positive")
	}
	if c.FanoutMaxRetries <= 0 || c.WebhookMaxRetries <= 0 {
		return fmt.Errorf("retry counts must be positive")
	}
	return nil
}

// NeedsRedis сообщает, нужен ли клиент Redis при текущей конфигурации
func (c *Config) NeedsRedis() bool {
	return c.Transport == TransportRedis || c.WebhookURL != ""
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
