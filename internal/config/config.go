package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
)

// EnvPrefix is the prefix of environment variables mapped onto config keys.
// WASTE_SERVER_PORT sets server.port.
const EnvPrefix = "WASTE_"

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Mode            string        `koanf:"mode"`
	ReadTimeout     time.Duration `koanf:"readtimeout"`
	WriteTimeout    time.Duration `koanf:"writetimeout"`
	ShutdownTimeout time.Duration `koanf:"shutdowntimeout"`
	MaxUploadBytes  int64         `koanf:"maxuploadbytes"`
}

// ModelConfig describes where the classifier comes from
type ModelConfig struct {
	Name            string        `koanf:"name"`
	Path            string        `koanf:"path"`
	MetadataPath    string        `koanf:"metadatapath"`
	URL             string        `koanf:"url"`
	LibraryPath     string        `koanf:"librarypath"`
	DownloadTimeout time.Duration `koanf:"downloadtimeout"`
}

// CacheConfig sizes the prediction cache. Size 0 disables it.
type CacheConfig struct {
	Size int `koanf:"size"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level      string `koanf:"level"`
	Format     string `koanf:"format"`
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"maxsizemb"`
	MaxBackups int    `koanf:"maxbackups"`
	MaxAgeDays int    `koanf:"maxagedays"`
}

// Config is the application configuration
type Config struct {
	Server ServerConfig `koanf:"server"`
	Model  ModelConfig  `koanf:"model"`
	Cache  CacheConfig  `koanf:"cache"`
	Log    LogConfig    `koanf:"log"`
}

func defaults() map[string]any {
	return map[string]any{
		"server.host":            "0.0.0.0",
		"server.port":            8080,
		"server.mode":            "release",
		"server.readtimeout":     "30s",
		"server.writetimeout":    "60s",
		"server.shutdowntimeout": "30s",
		"server.maxuploadbytes":  10 << 20,

		"model.name":            "prithivMLmods/Augmented-Waste-Classifier-SigLIP2",
		"model.path":            "models/model.onnx",
		"model.metadatapath":    "models/model_metadata.json",
		"model.url":             "",
		"model.librarypath":     "",
		"model.downloadtimeout": "10m",

		"cache.size": 256,

		"log.level":      "info",
		"log.format":     "json",
		"log.file":       "",
		"log.maxsizemb":  100,
		"log.maxbackups": 3,
		"log.maxagedays": 28,
	}
}

// Load builds the configuration from defaults, an optional YAML file,
// WASTE_* environment variables and finally PORT.
func Load(filePath string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if filePath != "" {
		if err := k.Load(file.Provider(filePath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", filePath, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Server.Port = p
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values Load cannot type-check.
func Validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", cfg.Server.Port)
	}
	switch cfg.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unknown server mode %q", cfg.Server.Mode)
	}
	if cfg.Server.MaxUploadBytes <= 0 {
		return errors.New("server max upload bytes must be positive")
	}
	if cfg.Model.Path == "" {
		return errors.New("model path is required")
	}
	if cfg.Cache.Size < 0 {
		return fmt.Errorf("cache size must not be negative: %d", cfg.Cache.Size)
	}
	return nil
}

// Addr is the listen address of the HTTP server.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
