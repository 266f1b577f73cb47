package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

var ErrMissingSessionSecret = errors.New("SESSION_SECRET must be set")

type Config struct {
	Env           string `yaml:"env" env:"ENV" env-default:"local" validate:"oneof=local dev prod"`
	LogLevel      string `yaml:"log_level" env:"LOG_LEVEL" env-default:"debug" validate:"oneof=trace debug info warn error"`
	SessionSecret string `yaml:"session_secret" env:"SESSION_SECRET" validate:"omitempty,min=16"`
	TemplatesDir  string `yaml:"templates_dir" env:"TEMPLATES_DIR" env-default:"templates" validate:"required"`

	Server Server `yaml:"server"`
	Upload Upload `yaml:"upload"`
	Scan   Scan   `yaml:"scan"`
}

type Server struct {
	Addr            string        `yaml:"addr" env:"HTTP_ADDR" env-default:"5000" validate:"required"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"30s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"120s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type Upload struct {
	Dir      string `yaml:"dir" env:"UPLOAD_DIR" env-default:"/tmp/uploads" validate:"required"`
	MaxBytes int64  `yaml:"max_bytes" env:"UPLOAD_MAX_BYTES" env-default:"16777216" validate:"gt=0"`
}

type Scan struct {
	RenderDPI float64 `yaml:"render_dpi" env:"RENDER_DPI" env-default:"72" validate:"gt=0,lte=600"`
	MinWidth  int     `yaml:"min_width" env:"QR_MIN_WIDTH" env-default:"800" validate:"gte=0"`
	QuietZone int     `yaml:"quiet_zone" env:"QR_QUIET_ZONE" env-default:"16" validate:"gte=0"`
}

// MustLoad reads the config from CONFIG_PATH when set, otherwise from the
// environment alone. Startup must fail when SESSION_SECRET is missing.
func MustLoad() (*Config, error) {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.SessionSecret == "" {
		return ErrMissingSessionSecret
	}

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}
