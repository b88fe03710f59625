package model

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// EnsureModel makes sure the model file exists at path, downloading it from
// url when it does not. The download lands in a temporary file that is
// renamed into place only on success.
func EnsureModel(ctx context.Context, path, url string, timeout time.Duration, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat model %s: %w", path, err)
	}
	if url == "" {
		return fmt.Errorf("model %s not found and no download url configured", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	tmp := path + ".part"
	log.Info("Downloading model", zap.String("url", url), zap.String("path", path))

	client := resty.New().SetTimeout(timeout)
	resp, err := client.R().SetContext(ctx).SetOutput(tmp).Get(url)
	if err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to download model: %w", err)
	}
	if resp.IsError() {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to download model: %s returned status %d", url, resp.StatusCode())
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to move model into place: %w", err)
	}

	log.Info("Model downloaded", zap.String("path", path), zap.Duration("took", resp.Time()))
	return nil
}
