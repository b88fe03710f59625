package model

import (
	"context"
	"fmt"
	"image"
	"math"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Brownie44l1/waste-api/internal/metrics"
)

// Classifier wraps a loaded network. It is built once, never reloaded, and
// safe for concurrent Predict calls.
type Classifier struct {
	name    string
	meta    Metadata
	backend Backend
	log     *zap.Logger
	loaded  atomic.Bool
}

// Options locate the model for Open.
type Options struct {
	Name            string
	ModelPath       string
	MetadataPath    string
	URL             string
	LibraryPath     string
	DownloadTimeout time.Duration
}

// NewClassifier validates meta and wraps backend. The returned classifier
// reports IsLoaded.
func NewClassifier(name string, meta Metadata, backend Backend, log *zap.Logger) (*Classifier, error) {
	if backend == nil {
		return nil, fmt.Errorf("classifier %s: nil backend", name)
	}
	if err := meta.Validate(); err != nil {
		return nil, fmt.Errorf("classifier %s: %w", name, err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	c := &Classifier{
		name:    name,
		meta:    meta,
		backend: backend,
		log:     log.Named("classifier"),
	}
	c.loaded.Store(true)
	return c, nil
}

// Open fetches the model if needed, loads its metadata and opens an ONNX
// Runtime session on it.
func Open(ctx context.Context, opts Options, log *zap.Logger) (*Classifier, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("Loading model", zap.String("model", opts.Name), zap.String("path", opts.ModelPath))

	if err := EnsureModel(ctx, opts.ModelPath, opts.URL, opts.DownloadTimeout, log); err != nil {
		return nil, err
	}

	meta, err := LoadMetadata(opts.MetadataPath)
	if err != nil {
		return nil, err
	}

	backend, err := NewONNXBackend(opts.ModelPath, opts.LibraryPath, meta)
	if err != nil {
		return nil, err
	}

	c, err := NewClassifier(opts.Name, meta, backend, log)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}

	log.Info("Model loaded",
		zap.String("model", opts.Name),
		zap.Int("image_size", meta.ImageSize),
		zap.Strings("classes", Labels()))
	return c, nil
}

// IsLoaded reports whether construction finished.
func (c *Classifier) IsLoaded() bool {
	return c != nil && c.loaded.Load()
}

func (c *Classifier) ModelName() string {
	return c.name
}

func (c *Classifier) Labels() []string {
	return Labels()
}

// Predict classifies img and returns the reported label, its score and the
// raw top-2 ranking.
func (c *Classifier) Predict(img image.Image) (*Prediction, error) {
	inputData, err := Preprocess(img, c.meta)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	logits, err := c.backend.Run(inputData)
	metrics.InferenceDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.InferenceErrors.Inc()
		return nil, fmt.Errorf("%w: %v", ErrInferenceFailure, err)
	}
	if len(logits) != NumClasses {
		metrics.InferenceErrors.Inc()
		return nil, fmt.Errorf("%w: got %d logits, want %d", ErrInferenceFailure, len(logits), NumClasses)
	}

	probs := Softmax(logits)
	for i, p := range probs {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			metrics.InferenceErrors.Inc()
			return nil, fmt.Errorf("%w: non-finite probability for class %d", ErrInferenceFailure, i)
		}
	}

	top := TopK(probs, 2)
	chosen, overridden := ApplyGlassPlasticRule(top[0], top[1])
	if overridden {
		metrics.GlassPlasticOverrides.Inc()
		c.log.Info("Glass/Plastic margin override",
			zap.Float64("glass", top[0].Prob),
			zap.Float64("plastic", top[1].Prob))
	}
	metrics.Predictions.WithLabelValues(chosen.Label).Inc()

	return &Prediction{
		Label: chosen.Label,
		Score: chosen.Prob,
		Top2: &Top2{
			Labels: []string{top[0].Label, top[1].Label},
			Scores: []float64{top[0].Prob, top[1].Prob},
		},
	}, nil
}

// Close releases the backend.
func (c *Classifier) Close() error {
	return c.backend.Close()
}
