// config предоставляет структуру конфигурации сервиса и загрузку
// из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Бэкенды хранения.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env     string        `yaml:"env"     env:"ENV" env-default:"local"`
	HTTP    HTTPConfig    `yaml:"http"`
	Storage StorageConfig `yaml:"storage"`
}

// HTTPConfig — сетевые настройки HTTP-сервера.
type HTTPConfig struct {
	Host         string        `yaml:"host"          env:"HTTP_HOST"     env-default:"0.0.0.0"`
	Port         string        `yaml:"port"          env:"HTTP_PORT"     env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout"  env:"READ_TIMEOUT"  env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"  env:"IDLE_TIMEOUT"  env-default:"120s"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// StorageConfig — выбор бэкенда хранения и настройки PostgreSQL.
// URL обязателен только для backend=postgres.
type StorageConfig struct {
	Backend        string `yaml:"backend"         env:"STORAGE_BACKEND" env-default:"memory"`
	URL            string `yaml:"url"             env:"DATABASE_URL"`
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"file://migrations"`
}

// MustLoad — обертка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load загружает конфигурацию согласно приоритету источников.
func Load(path string) (*Config, error) {
	var cfg Config

	candidate := path
	if candidate == "" {
		candidate = os.Getenv("CONFIG_PATH")
	}
	if candidate == "" {
		if _, err := os.Stat("local.yaml"); err == nil {
			candidate = "local.yaml"
		}
	}

	if candidate != "" {
		if err := cleanenv.ReadConfig(candidate, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %q: %w", candidate, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case StorageMemory:
	case StoragePostgres:
		if c.Storage.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for storage backend %q", StoragePostgres)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}
