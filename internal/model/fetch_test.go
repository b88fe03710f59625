package model

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEnsureModel(t *testing.T) {
	ctx := context.Background()

	t.Run("existing file is used as is", func(t *testing.T) {
		path := writeFile(t, "model.onnx", "weights")

		err := EnsureModel(ctx, path, "http://127.0.0.1:1/never", time.Second, zap.NewNop())

		require.NoError(t, err)
	})

	t.Run("missing file without url fails", func(t *testing.T) {
		err := EnsureModel(ctx, filepath.Join(t.TempDir(), "model.onnx"), "", time.Second, nil)

		assert.ErrorContains(t, err, "no download url")
	})

	t.Run("downloads missing file", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/resolve/main/model.onnx", r.URL.Path)
			_, _ = w.Write([]byte("onnx-bytes"))
		}))
		defer server.Close()

		path := filepath.Join(t.TempDir(), "models", "model.onnx")
		err := EnsureModel(ctx, path, server.URL+"/resolve/main/model.onnx", 5*time.Second, zap.NewNop())

		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "onnx-bytes", string(data))
		assert.NoFileExists(t, path+".part")
	})

	t.Run("error status leaves nothing behind", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer server.Close()

		path := filepath.Join(t.TempDir(), "model.onnx")
		err := EnsureModel(ctx, path, server.URL, 5*time.Second, zap.NewNop())

		assert.ErrorContains(t, err, "404")
		assert.NoFileExists(t, path)
		assert.NoFileExists(t, path+".part")
	})
}
