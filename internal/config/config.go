package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config drives every subcommand. Values come from an optional YAML file,
// then TOYBOARD_* env vars, then defaults. Flags override after Load.
type Config struct {
	Env     string        `yaml:"env" env:"TOYBOARD_ENV" env-default:"local"`
	APIURL  string        `yaml:"api_url" env:"TOYBOARD_API_URL" env-default:"http://localhost:3000"`
	Timeout time.Duration `yaml:"timeout" env:"TOYBOARD_TIMEOUT" env-default:"0s"`
	Theme   string        `yaml:"theme" env:"TOYBOARD_THEME" env-default:"classic"`
	LogFile string        `yaml:"log_file" env:"TOYBOARD_LOG_FILE" env-default:"toyboard.log"`

	Server  `yaml:"server"`
	Storage `yaml:"storage"`
}

// Server is the dev /toys server.
type Server struct {
	Addr string `yaml:"address" env:"TOYBOARD_SERVER_ADDR" env-default:"localhost:3000"`
}

// Storage selects the dev server backend.
type Storage struct {
	Driver string `yaml:"driver" env:"TOYBOARD_STORAGE_DRIVER" env-default:"json"`
	Path   string `yaml:"path" env:"TOYBOARD_STORAGE_PATH" env-default:"db.json"`
}

// Load reads .env (if any) into the environment, then fills Config from
// path (optional) and the environment.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read env: %w", err)
		}
		return &cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return &cfg, nil
}
