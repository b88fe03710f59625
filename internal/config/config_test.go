package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default configuration", func(t *testing.T) {
		t.Setenv("PORT", "")

		cfg, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "release", cfg.Server.Mode)
		assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, int64(10<<20), cfg.Server.MaxUploadBytes)

		assert.Equal(t, "prithivMLmods/Augmented-Waste-Classifier-SigLIP2", cfg.Model.Name)
		assert.Equal(t, "models/model.onnx", cfg.Model.Path)
		assert.Equal(t, 10*time.Minute, cfg.Model.DownloadTimeout)

		assert.Equal(t, 256, cfg.Cache.Size)

		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Empty(t, cfg.Log.File)
	})

	t.Run("reads prefixed environment variables", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("WASTE_SERVER_PORT", "9090")
		t.Setenv("WASTE_LOG_LEVEL", "debug")
		t.Setenv("WASTE_CACHE_SIZE", "0")

		cfg, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, 0, cfg.Cache.Size)
	})

	t.Run("PORT wins over everything", func(t *testing.T) {
		t.Setenv("WASTE_SERVER_PORT", "9090")
		t.Setenv("PORT", "7070")

		cfg, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, 7070, cfg.Server.Port)
		assert.Equal(t, "0.0.0.0:7070", cfg.Server.Addr())
	})

	t.Run("rejects a non-numeric PORT", func(t *testing.T) {
		t.Setenv("PORT", "http")

		_, err := Load("")

		assert.Error(t, err)
	})

	t.Run("reads yaml file", func(t *testing.T) {
		t.Setenv("PORT", "")
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "model:\n  path: /opt/models/waste.onnx\n  url: https://example.com/waste.onnx\nlog:\n  format: console\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "/opt/models/waste.onnx", cfg.Model.Path)
		assert.Equal(t, "https://example.com/waste.onnx", cfg.Model.URL)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.Equal(t, 8080, cfg.Server.Port)
	})

	t.Run("missing yaml file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: 8080, Mode: "release", MaxUploadBytes: 1024},
			Model:  ModelConfig{Path: "model.onnx"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "port too large", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: true},
		{name: "unknown mode", mutate: func(c *Config) { c.Server.Mode = "verbose" }, wantErr: true},
		{name: "no upload budget", mutate: func(c *Config) { c.Server.MaxUploadBytes = 0 }, wantErr: true},
		{name: "no model path", mutate: func(c *Config) { c.Model.Path = "" }, wantErr: true},
		{name: "negative cache", mutate: func(c *Config) { c.Cache.Size = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := Validate(cfg)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
