package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	LogLevel string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string   `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Storage  string   `yaml:"storage" env:"STORAGE" env-default:"memory"`
	Redis    Redis    `yaml:"redis"`
	Computer Computer `yaml:"computer"`
}

type Redis struct {
	Host       string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port       string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	SessionTTL time.Duration `yaml:"session-ttl" env:"REDIS_SESSION_TTL" env-default:"1h"`
}

// Computer configures the minimax opponent.
type Computer struct {
	Delay time.Duration `yaml:"delay" env:"COMPUTER_DELAY" env-default:"500ms"`
	Mark  string        `yaml:"mark" env:"COMPUTER_MARK" env-default:"O"`
}

// MustLoad - load all configurations in config.yml file, falling back to the environment when the file is missing.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}

	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read env: %w", err)
		}
		return config, config.validate()
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return config, config.validate()
}

// LoadDotEnv loads .env from the working directory when it exists.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	return nil
}

func (that *Config) validate() error {
	switch that.Storage {
	case StorageMemory, StorageRedis:
	default:
		return fmt.Errorf("unknown storage %q", that.Storage)
	}

	if that.Computer.Mark != "X" && that.Computer.Mark != "O" {
		return fmt.Errorf("computer mark must be X or O, got %q", that.Computer.Mark)
	}

	if that.Computer.Delay < 0 {
		return fmt.Errorf("computer delay must not be negative, got %s", that.Computer.Delay)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
