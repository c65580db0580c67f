package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

var (
	// ErrInvalidConfig возвращается, если конфигурация не прошла проверку
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"

	BackendMemory = "memory"
	BackendRedis  = "redis"

	EnvDevelopment = "development"
)

type Config struct {
	App       AppConfig       `toml:"app"`
	Server    ServerConfig    `toml:"server"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Storage   StorageConfig   `toml:"storage"`
	Database  DatabaseConfig  `toml:"database"`
	Mongo     MongoConfig     `toml:"mongo"`
	Redis     RedisConfig     `toml:"redis"`
	Auth      AuthConfig      `toml:"auth"`
	Booking   BookingConfig   `toml:"booking"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	CORS      CORSConfig      `toml:"cors"`
}

type AppConfig struct {
	Env string `toml:"env"` // development | production
}

// ServerConfig таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type StorageConfig struct {
	Driver string `toml:"driver"` // postgres | mongo | memory
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	DSNOverride     string `toml:"dsn"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	AutoMigrate     bool   `toml:"auto_migrate"`      // накатить migrations/postgres при старте
}

// DSN строка подключения к PostgreSQL
func (c DatabaseConfig) DSN() string {
	if c.DSNOverride != "" {
		return c.DSNOverride
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type MongoConfig struct {
	URI      string   `toml:"uri"`
	Database string   `toml:"database"`
	LockTTL  Duration `toml:"lock_ttl"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type AuthConfig struct {
	JWTSecret         string   `toml:"jwt_secret"`
	TokenTTL          Duration `toml:"token_ttl"`
	AdminUsername     string   `toml:"admin_username"`
	AdminPasswordHash string   `toml:"admin_password_hash"` // bcrypt
}

type BookingConfig struct {
	Timezone         string   `toml:"timezone"`
	RejectPastDates  bool     `toml:"reject_past_dates"`
	OperationTimeout Duration `toml:"operation_timeout"`
}

// Location часовой пояс, в котором определяется "сегодня"
func (c BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

type RateLimitConfig struct {
	Enabled    bool     `toml:"enabled"`
	Backend    string   `toml:"backend"` // memory | redis
	Prefix     string   `toml:"prefix"`
	APILimit   int      `toml:"api_limit"`
	APIWindow  Duration `toml:"api_window"`
	AuthLimit  int      `toml:"auth_limit"`
	AuthWindow Duration `toml:"auth_window"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Duration time.Duration в TOML задается строкой вида "5s", "24h"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Load читает TOML-файл, подставляет значения по умолчанию
// и переопределения из окружения (.env подхватывается, если есть)
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	_ = godotenv.Load()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		App: AppConfig{Env: "production"},
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "heritage_booking",
		},
		Storage: StorageConfig{Driver: DriverPostgres},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "heritage",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Mongo: MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "heritage",
			LockTTL:  Duration{30 * time.Second},
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Auth: AuthConfig{
			TokenTTL:      Duration{24 * time.Hour},
			AdminUsername: "admin",
		},
		Booking: BookingConfig{
			Timezone:         "UTC",
			RejectPastDates:  true,
			OperationTimeout: Duration{5 * time.Second},
		},
		RateLimit: RateLimitConfig{
			Enabled:    true,
			Backend:    BackendMemory,
			Prefix:     "heritage:ratelimit",
			APILimit:   100,
			APIWindow:  Duration{15 * time.Minute},
			AuthLimit:  5,
			AuthWindow: Duration{time.Hour},
		},
	}
}

// IsDevelopment сообщает, запущен ли сервис в режиме разработки
func (c *Config) IsDevelopment() bool {
	return c.App.Env == EnvDevelopment
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strVars := map[string]*string{
		"APP_ENV":             &c.App.Env,
		"DATABASE_PASSWORD":   &c.Database.Password,
		"DATABASE_DSN":        &c.Database.DSNOverride,
		"MONGODB_URI":         &c.Mongo.URI,
		"REDIS_ADDR":          &c.Redis.Addr,
		"REDIS_PASSWORD":      &c.Redis.Password,
		"JWT_SECRET":          &c.Auth.JWTSecret,
		"ADMIN_USERNAME":      &c.Auth.AdminUsername,
		"ADMIN_PASSWORD_HASH": &c.Auth.AdminPasswordHash,
		"STORAGE_DRIVER":      &c.Storage.Driver,
	}
	for name, dst := range strVars {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("HTTP_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: HTTP_PORT=%q is not a number", ErrInvalidConfig, v)
		}
		c.Server.HTTPPort = port
	}

	return nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverPostgres, DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret (JWT_SECRET) is required", ErrInvalidConfig)
	}
	if c.Auth.TokenTTL.Duration <= 0 {
		return fmt.Errorf("%w: auth.token_ttl must be positive", ErrInvalidConfig)
	}
	if c.Auth.AdminUsername == "" {
		return fmt.Errorf("%w: auth.admin_username is required", ErrInvalidConfig)
	}

	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}
	if c.Booking.OperationTimeout.Duration < 0 {
		return fmt.Errorf("%w: booking.operation_timeout must not be negative", ErrInvalidConfig)
	}

	// Документ-блокировка MongoDB может быть перехвачен после lock_ttl,
	// поэтому допуск обязан завершиться раньше
	if c.Storage.Driver == DriverMongo {
		if c.Mongo.LockTTL.Duration <= 0 {
			return fmt.Errorf("%w: mongo.lock_ttl must be positive", ErrInvalidConfig)
		}
		if c.Booking.OperationTimeout.Duration <= 0 || c.Booking.OperationTimeout.Duration >= c.Mongo.LockTTL.Duration {
			return fmt.Errorf("%w: with mongo storage booking.operation_timeout (%s) must be positive and shorter than mongo.lock_ttl (%s)",
				ErrInvalidConfig, c.Booking.OperationTimeout.Duration, c.Mongo.LockTTL.Duration)
		}
	}

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}

	if c.RateLimit.Enabled {
		switch c.RateLimit.Backend {
		case BackendMemory, BackendRedis:
		default:
			return fmt.Errorf("%w: unknown rate_limit.backend %q", ErrInvalidConfig, c.RateLimit.Backend)
		}
		if c.RateLimit.APILimit <= 0 || c.RateLimit.APIWindow.Duration <= 0 ||
			c.RateLimit.AuthLimit <= 0 || c.RateLimit.AuthWindow.Duration <= 0 {
			return fmt.Errorf("%w: rate_limit limits and windows must be positive", ErrInvalidConfig)
		}
	}

	return nil
}
