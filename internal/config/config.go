package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/rpggio/qontract/internal/localization"
)

// Transport modes.
const (
	ModeHTTP  = "http"
	ModeStdio = "stdio"
)

// Config defines server configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Transport  TransportConfig  `yaml:"transport"`
	Auth       AuthConfig       `yaml:"auth"`
	DB         DBConfig         `yaml:"db"`
	Log        LogConfig        `yaml:"log"`
	Generation GenerationConfig `yaml:"generation"`
	I18n       I18nConfig       `yaml:"i18n"`
}

type ServerConfig struct {
	Host string `yaml:"host" env:"QONTRACT_SERVER_HOST"`
	Port int    `yaml:"port" env:"QONTRACT_SERVER_PORT"`
}

type TransportConfig struct {
	Mode string `yaml:"mode" env:"QONTRACT_TRANSPORT"`
}

// AuthConfig enables bearer authentication. Keys maps tokens to tenant IDs
// and is loaded into the api_keys table at startup.
type AuthConfig struct {
	Enabled bool              `yaml:"enabled" env:"QONTRACT_AUTH_ENABLED"`
	Keys    map[string]string `yaml:"keys"    env:"QONTRACT_AUTH_KEYS" envSeparator:"," envKeyValSeparator:":"`
}

type DBConfig struct {
	Path string `yaml:"path" env:"QONTRACT_DB_PATH"`
}

type LogConfig struct {
	Level  string `yaml:"level"  env:"QONTRACT_LOG_LEVEL"`
	Format string `yaml:"format" env:"QONTRACT_LOG_FORMAT"`
	Path   string `yaml:"path"   env:"QONTRACT_LOG_PATH"`
}

type GenerationConfig struct {
	APIKey  string        `yaml:"api_key" env:"QONTRACT_GEMINI_API_KEY"`
	Model   string        `yaml:"model"   env:"QONTRACT_GEMINI_MODEL"`
	Timeout time.Duration `yaml:"timeout" env:"QONTRACT_GENERATION_TIMEOUT"`
}

type I18nConfig struct {
	DefaultLanguage string `yaml:"default_language" env:"QONTRACT_DEFAULT_LANGUAGE"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: ModeHTTP,
		},
		DB: DBConfig{
			Path: "qontract.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Generation: GenerationConfig{
			Model:   "gemini-2.5-flash",
			Timeout: 60 * time.Second,
		},
		I18n: I18nConfig{
			DefaultLanguage: string(localization.Indonesian),
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("QONTRACT_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks option values.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	switch c.Transport.Mode {
	case ModeHTTP, ModeStdio:
	default:
		errs = append(errs, fmt.Errorf("transport.mode must be %q or %q, got %q", ModeHTTP, ModeStdio, c.Transport.Mode))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log.level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	if c.Generation.Timeout < 0 {
		errs = append(errs, fmt.Errorf("generation.timeout must not be negative"))
	}
	if _, err := localization.ParseLanguage(c.I18n.DefaultLanguage); err != nil {
		errs = append(errs, fmt.Errorf("i18n.default_language: %w", err))
	}
	if c.Auth.Enabled && c.Transport.Mode == ModeStdio {
		errs = append(errs, errors.New("auth.enabled is not supported with stdio transport"))
	}
	return errors.Join(errs...)
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
