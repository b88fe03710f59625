package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictionCache(t *testing.T) {
	prediction := &Prediction{
		Label: "Paper",
		Score: 0.9,
		Top2:  &Top2{Labels: []string{"Paper", "Cardboard"}, Scores: []float64{0.9, 0.05}},
	}

	t.Run("zero size disables the cache", func(t *testing.T) {
		cache, err := NewPredictionCache(0)
		require.NoError(t, err)

		cache.Add([]byte("img"), prediction)
		_, ok := cache.Get([]byte("img"))

		assert.False(t, ok)
		assert.Equal(t, 0, cache.Len())
	})

	t.Run("negative size is an error", func(t *testing.T) {
		_, err := NewPredictionCache(-1)

		assert.Error(t, err)
	})

	t.Run("returns stored copies", func(t *testing.T) {
		cache, err := NewPredictionCache(4)
		require.NoError(t, err)

		cache.Add([]byte("img"), prediction)
		got, ok := cache.Get([]byte("img"))
		require.True(t, ok)
		assert.Equal(t, prediction, got)

		got.Top2.Labels[0] = "mutated"
		again, _ := cache.Get([]byte("img"))
		assert.Equal(t, "Paper", again.Top2.Labels[0])
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		cache, err := NewPredictionCache(1)
		require.NoError(t, err)

		cache.Add([]byte("a"), prediction)
		cache.Add([]byte("b"), prediction)

		_, ok := cache.Get([]byte("a"))
		assert.False(t, ok)
		_, ok = cache.Get([]byte("b"))
		assert.True(t, ok)
	})
}
