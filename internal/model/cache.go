package model

import (
	"crypto/sha256"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Brownie44l1/waste-api/internal/metrics"
)

// PredictionCache remembers predictions by the SHA-256 of the uploaded
// bytes. A nil cache is valid and never hits.
type PredictionCache struct {
	entries *lru.Cache[[sha256.Size]byte, *Prediction]
}

// NewPredictionCache returns a cache holding up to size entries, or nil
// when size is zero.
func NewPredictionCache(size int) (*PredictionCache, error) {
	if size == 0 {
		return nil, nil
	}
	entries, err := lru.New[[sha256.Size]byte, *Prediction](size)
	if err != nil {
		return nil, err
	}
	return &PredictionCache{entries: entries}, nil
}

func (c *PredictionCache) Get(data []byte) (*Prediction, bool) {
	if c == nil {
		return nil, false
	}
	p, ok := c.entries.Get(sha256.Sum256(data))
	if !ok {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return p.clone(), true
}

func (c *PredictionCache) Add(data []byte, p *Prediction) {
	if c == nil || p == nil {
		return
	}
	c.entries.Add(sha256.Sum256(data), p.clone())
}

func (c *PredictionCache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}
