package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

var (
	ErrInvalidBoardSize = errors.New("board size must be between 1 and 9")
	ErrInvalidLogLevel  = errors.New("unknown log level")
)

type Config struct {
	LogLevel          string        `yaml:"log-level" env:"TTT_LOG_LEVEL" env-default:"info"`
	HTTPPort          string        `yaml:"http-port" env:"TTT_HTTP_PORT" env-default:"8080"`
	BoardSize         int           `yaml:"board-size" env:"TTT_BOARD_SIZE" env-default:"3"`
	HeartbeatInterval time.Duration `yaml:"heartbeat-interval" env:"TTT_HEARTBEAT_INTERVAL" env-default:"15s"`
}

// Load reads path when it exists and environment variables otherwise; env
// always overrides the file.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if _, statErr := os.Stat(path); statErr == nil {
		err = cleanenv.ReadConfig(path, config)
	} else {
		err = cleanenv.ReadEnv(config)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err = config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// MustLoad - load configuration or panic.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}
	return config
}

func (that *Config) Validate() error {
	if that.BoardSize < 1 || that.BoardSize > 9 {
		return fmt.Errorf("%w: %d", ErrInvalidBoardSize, that.BoardSize)
	}
	switch that.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, that.LogLevel)
	}
	return nil
}

func (that *Config) Addr() string {
	return ":" + that.HTTPPort
}
