package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"
)

var (
	// ErrReadConfig возвращается, когда файл конфигурации не удалось прочитать
	ErrReadConfig = errors.New("config: failed to read config")

	// ErrInvalidConfig возвращается при недопустимых значениях
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Config конфигурация сервиса бронирования консультантов
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	ProjectService ProjectServiceConfig `toml:"project_service"`
	Scheduling     SchedulingConfig     `toml:"scheduling"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" env:"DB_HOST"`
	Port            int    `toml:"port" env:"DB_PORT"`
	User            string `toml:"user" env:"DB_USER"`
	Password        string `toml:"password" env:"DB_PASSWORD"`
	DBName          string `toml:"dbname" env:"DB_NAME"`
	SSLMode         string `toml:"sslmode" env:"DB_SSLMODE"`
	Schema          string `toml:"schema" env:"DB_SCHEMA"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
// Схема, отличная от public, передается через search_path
func (c DatabaseConfig) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
	if c.Schema != "" && c.Schema != "public" {
		dsn += " search_path=" + c.Schema
	}
	return dsn
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level" env:"LOG_LEVEL"`
	File  string `toml:"file" env:"LOG_FILE"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"METRICS_ENABLED"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ProjectServiceConfig адрес сервиса проектов (строки заказа)
type ProjectServiceConfig struct {
	URL     string `toml:"url" env:"PROJECT_SERVICE_URL"`
	Timeout int    `toml:"timeout"`
}

// SchedulingConfig параметры проверки бронирований
type SchedulingConfig struct {
	AutoMigrate           bool    `toml:"auto_migrate" env:"AUTO_MIGRATE"`
	OverAllocationEpsilon float64 `toml:"over_allocation_epsilon"`
	ConflictListLimit     int     `toml:"conflict_list_limit"`
}

// Default конфигурация по умолчанию, поверх которой читается файл
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			Schema:          "public",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "reservation-service",
		},
		ProjectService: ProjectServiceConfig{
			Timeout: 5,
		},
		Scheduling: SchedulingConfig{
			OverAllocationEpsilon: 1e-9,
			ConflictListLimit:     3,
		},
	}
}

// Load читает TOML файл и применяет переменные окружения
// Отсутствующий файл не ошибка: используются значения по умолчанию и окружение
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %v", ErrReadConfig, path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: stat %s: %v", ErrReadConfig, path, err)
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrReadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	switch {
	case c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535:
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	case c.Database.Host == "":
		return fmt.Errorf("%w: database.host is empty", ErrInvalidConfig)
	case c.Database.DBName == "":
		return fmt.Errorf("%w: database.dbname is empty", ErrInvalidConfig)
	case c.ProjectService.URL == "":
		return fmt.Errorf("%w: project_service.url is empty", ErrInvalidConfig)
	case c.Scheduling.OverAllocationEpsilon < 0:
		return fmt.Errorf("%w: scheduling.over_allocation_epsilon=%g", ErrInvalidConfig, c.Scheduling.OverAllocationEpsilon)
	case c.Scheduling.ConflictListLimit <= 0:
		return fmt.Errorf("%w: scheduling.conflict_list_limit=%d", ErrInvalidConfig, c.Scheduling.ConflictListLimit)
	}
	return nil
}
