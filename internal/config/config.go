package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// Config конфигурация сервиса
// Значения читаются из TOML файла, затем переопределяются переменными окружения
type Config struct {
	Server        ServerConfig        `toml:"server" envPrefix:"SERVER_"`
	Database      DatabaseConfig      `toml:"database" envPrefix:"DATABASE_"`
	Logs          LogsConfig          `toml:"logs" envPrefix:"LOGS_"`
	Metrics       MetricsConfig       `toml:"metrics" envPrefix:"METRICS_"`
	Redis         RedisConfig         `toml:"redis" envPrefix:"REDIS_"`
	BranchService BranchServiceConfig `toml:"branch_service" envPrefix:"BRANCH_SERVICE_"`
	Admission     AdmissionConfig     `toml:"admission" envPrefix:"ADMISSION_"`
	ScheduleCache ScheduleCacheConfig `toml:"schedule_cache" envPrefix:"SCHEDULE_CACHE_"`
	Availability  AvailabilityConfig  `toml:"availability" envPrefix:"AVAILABILITY_"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"HTTP_PORT" validate:"min=1,max=65535"`
	ReadTimeout     int `toml:"read_timeout" env:"READ_TIMEOUT" validate:"min=1"`
	WriteTimeout    int `toml:"write_timeout" env:"WRITE_TIMEOUT" validate:"min=1"`
	IdleTimeout     int `toml:"idle_timeout" env:"IDLE_TIMEOUT" validate:"min=1"`
	ShutdownTimeout int `toml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" validate:"min=1"`
}

type DatabaseConfig struct {
	Host            string `toml:"host" env:"HOST" validate:"required"`
	Port            int    `toml:"port" env:"PORT" validate:"min=1,max=65535"`
	User            string `toml:"user" env:"USER" validate:"required"`
	Password        string `toml:"password" env:"PASSWORD"`
	DBName          string `toml:"dbname" env:"NAME" validate:"required"`
	SSLMode         string `toml:"sslmode" env:"SSLMODE" validate:"oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int    `toml:"max_open_conns" env:"MAX_OPEN_CONNS" validate:"min=1"`
	MaxIdleConns    int    `toml:"max_idle_conns" env:"MAX_IDLE_CONNS" validate:"min=0"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" env:"CONN_MAX_LIFETIME" validate:"min=0"`
}

// DSN строка подключения к PostgreSQL для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level" env:"LEVEL" validate:"oneof=debug info warn error"`
	File  string `toml:"file" env:"FILE"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"ENABLED"`
	Path        string `toml:"path" env:"PATH" validate:"omitempty,startswith=/"`
	ServiceName string `toml:"service_name" env:"SERVICE_NAME"`
}

type RedisConfig struct {
	Addr      string `toml:"addr" env:"ADDR"`
	Password  string `toml:"password" env:"PASSWORD"`
	DB        int    `toml:"db" env:"DB" validate:"min=0"`
	KeyPrefix string `toml:"key_prefix" env:"KEY_PREFIX"`
}

type BranchServiceConfig struct {
	URL     string `toml:"url" env:"URL" validate:"required,url"`
	Timeout int    `toml:"timeout" env:"TIMEOUT" validate:"min=1"`
}

type AdmissionConfig struct {
	VolumeTimeoutMs int    `toml:"volume_timeout_ms" env:"VOLUME_TIMEOUT_MS" validate:"min=1"`
	FailPolicy      string `toml:"fail_policy" env:"FAIL_POLICY" validate:"oneof=closed open"`
	VolumeBackend   string `toml:"volume_backend" env:"VOLUME_BACKEND" validate:"oneof=postgres redis"`
	// RetentionHours сколько хранить записи о заказах в Redis; должно покрывать самое длинное окно
	RetentionHours  int    `toml:"retention_hours" env:"RETENTION_HOURS" validate:"min=1"`
}

type ScheduleCacheConfig struct {
	Enabled    bool `toml:"enabled" env:"ENABLED"`
	TTLSeconds int  `toml:"ttl_seconds" env:"TTL_SECONDS" validate:"min=1"`
}

type AvailabilityConfig struct {
	DefaultTimezone string `toml:"default_timezone" env:"DEFAULT_TIMEZONE" validate:"required,timezone"`
}

// VolumeTimeout таймаут одного запроса к источнику объема заказов
func (c AdmissionConfig) VolumeTimeout() time.Duration {
	return time.Duration(c.VolumeTimeoutMs) * time.Millisecond
}

// Retention время жизни записей о заказах в Redis
func (c AdmissionConfig) Retention() time.Duration {
	return time.Duration(c.RetentionHours) * time.Hour
}

// TTL время жизни снимка расписания в кэше
func (c ScheduleCacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// UsesRedis нужен ли сервису Redis при данной конфигурации
func (c *Config) UsesRedis() bool {
	return c.ScheduleCache.Enabled || c.Admission.VolumeBackend == "redis"
}

// Load читает конфигурацию из TOML файла и переменных окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to apply environment: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("config: invalid configuration: %w", err)
	}
	if cfg.UsesRedis() && cfg.Redis.Addr == "" {
		return fmt.Errorf("config: invalid configuration: redis.addr is required when redis is used")
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "order-availability",
		},
		Redis: RedisConfig{KeyPrefix: "orders"},
		BranchService: BranchServiceConfig{
			Timeout: 2,
		},
		Admission: AdmissionConfig{
			VolumeTimeoutMs: 500,
			FailPolicy:      "closed",
			VolumeBackend:   "postgres",
			RetentionHours:  24,
		},
		ScheduleCache: ScheduleCacheConfig{TTLSeconds: 60},
		Availability:  AvailabilityConfig{DefaultTimezone: "UTC"},
	}
}
