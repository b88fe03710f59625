package model

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func encodePNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solidImage(w, h, c)))
	return buf.Bytes()
}

func TestDecodeImage(t *testing.T) {
	t.Run("decodes png", func(t *testing.T) {
		img, format, err := DecodeImage(encodePNG(t, 12, 7, color.RGBA{B: 255, A: 255}))

		require.NoError(t, err)
		assert.Equal(t, "png", format)
		assert.Equal(t, 12, img.Bounds().Dx())
		assert.Equal(t, 7, img.Bounds().Dy())
	})

	t.Run("decodes bmp", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, bmp.Encode(&buf, solidImage(4, 4, color.White)))

		_, format, err := DecodeImage(buf.Bytes())

		require.NoError(t, err)
		assert.Equal(t, "bmp", format)
	})

	t.Run("rejects text", func(t *testing.T) {
		_, _, err := DecodeImage([]byte("definitely not an image"))

		assert.ErrorIs(t, err, ErrDecodeFailure)
		assert.Contains(t, err.Error(), "text/plain")
	})

	t.Run("rejects empty payload", func(t *testing.T) {
		_, _, err := DecodeImage(nil)

		assert.ErrorIs(t, err, ErrDecodeFailure)
	})

	t.Run("rejects truncated png", func(t *testing.T) {
		data := encodePNG(t, 32, 32, color.White)

		_, _, err := DecodeImage(data[:40])

		assert.ErrorIs(t, err, ErrDecodeFailure)
	})
}
