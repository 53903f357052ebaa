package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

type CacheBackend string

const (
	CacheBackendLRU   CacheBackend = "lru"
	CacheBackendRedis CacheBackend = "redis"
)

type LogFormat string

const (
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
)

type ConfigBasicClient struct {
	Username string
	Password string
}

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"Asia/Dubai"`
		Location *time.Location
	}

	HTTP struct {
		Port               string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host               string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
		RateLimitPerMinute int    `env:"HTTP_RATE_LIMIT_PER_MINUTE" envDefault:"200"`
		RateLimitBurst     int    `env:"HTTP_RATE_LIMIT_BURST" envDefault:"50"`

		// Сколько клиентов помнит limiter и как долго живет bucket клиента
		RateLimitClients   int           `env:"HTTP_RATE_LIMIT_CLIENTS" envDefault:"10000"`
		RateLimitClientTTL time.Duration `env:"HTTP_RATE_LIMIT_CLIENT_TTL" envDefault:"10m"`

		// Origin со схемой (https://app.example.com) или "*"
		CorsAllowOrigins []string `env:"HTTP_CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"*"`
	}

	Backend struct {
		URL     string        `env:"BACKEND_URL" envDefault:"http://appointment.bitprosofttech.com"`
		Token   string        `env:"BACKEND_TOKEN"`
		Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`
	}

	Auth struct {
		BasicClientsString string `env:"AUTH_BASIC_CLIENTS" envDefault:"slot_picker:slot_picker"`
		BasicClients       []ConfigBasicClient
	}

	RabbitMq struct {
		Enabled     bool   `env:"RABBITMQ_ENABLED"`
		AmqpUri     string `env:"RABBITMQ_AMQP_URI"`
		QueueConfig struct {
			CalendarQueueName     string `env:"RABBITMQ_CALENDAR_QUEUE_NAME" envDefault:"slot-picker-svc.calendar"`
			CalendarQueueBind     string `env:"RABBITMQ_CALENDAR_QUEUE_BIND" envDefault:"*.slot-picker-svc.#"`
			CalendarQueueExchange string `env:"RABBITMQ_CALENDAR_QUEUE_EXCHANGE" envDefault:"booking"`
		}
	}

	Cache struct {
		Enabled    bool          `env:"CACHE_ENABLED" envDefault:"true"`
		Backend    CacheBackend  `env:"CACHE_BACKEND" envDefault:"lru"`
		MonthsSize int           `env:"CACHE_MONTHS_SIZE" envDefault:"24"`
		TTL        time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	}

	Redis struct {
		Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
		Password string `env:"REDIS_PASSWORD"`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Picker struct {
		SessionsSize int           `env:"PICKER_SESSIONS_SIZE" envDefault:"10000"`
		SessionTTL   time.Duration `env:"PICKER_SESSION_TTL" envDefault:"30m"`
	}

	Log struct {
		Format LogFormat `env:"LOG_FORMAT" envDefault:"console"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Приведение окружения к нижнему регистру для унификации
	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))
	cfg.Cache.Backend = CacheBackend(strings.ToLower(string(cfg.Cache.Backend)))
	cfg.Log.Format = LogFormat(strings.ToLower(string(cfg.Log.Format)))

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		location = time.UTC
	}
	cfg.App.Location = location

	cfg.Auth.BasicClients = ParseBasicClients(cfg.Auth.BasicClientsString)

	// LRU не создается с нулевым размером
	if cfg.Cache.MonthsSize <= 0 {
		cfg.Cache.MonthsSize = 1
	}

	return cfg, nil
}

// ParseBasicClients разбирает строку вида "user:pass,user2:pass2"
func ParseBasicClients(value string) []ConfigBasicClient {
	clients := []ConfigBasicClient{}
	for _, pair := range strings.Split(value, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), ":", 2)
		if len(parts) == 2 && parts[0] != "" {
			clients = append(clients, ConfigBasicClient{
				Username: parts[0],
				Password: parts[1],
			})
		}
	}
	return clients
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
