package model

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
)

// DefaultMetadata matches the SigLIP2 waste classifier export: 224px
// bilinear resize, mean and std of 0.5 per channel.
func DefaultMetadata() Metadata {
	return Metadata{
		InputName:   "pixel_values",
		OutputName:  "logits",
		InputShape:  []int64{1, 3, 224, 224},
		OutputShape: []int64{1, int64(NumClasses)},
		Classes:     Labels(),
		ImageSize:   224,
		Mean:        [3]float32{0.5, 0.5, 0.5},
		Std:         [3]float32{0.5, 0.5, 0.5},
		Resample:    "bilinear",
	}
}

// LoadMetadata reads the metadata file at path over DefaultMetadata. An
// empty path yields the defaults.
func LoadMetadata(path string) (Metadata, error) {
	metadata := DefaultMetadata()
	if path == "" {
		return metadata, nil
	}

	metaFile, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to read metadata: %w", err)
	}

	if err := json.Unmarshal(metaFile, &metadata); err != nil {
		return Metadata{}, fmt.Errorf("failed to parse metadata: %w", err)
	}

	if err := metadata.Validate(); err != nil {
		return Metadata{}, err
	}
	return metadata, nil
}

// Validate checks that the metadata fits the fixed class table.
func (m Metadata) Validate() error {
	if m.InputName == "" || m.OutputName == "" {
		return fmt.Errorf("metadata: input and output names are required")
	}
	if m.ImageSize <= 0 {
		return fmt.Errorf("metadata: image size must be positive, got %d", m.ImageSize)
	}

	size := int64(m.ImageSize)
	if !slices.Equal(m.InputShape, []int64{1, 3, size, size}) {
		return fmt.Errorf("metadata: input shape %v does not match [1 3 %d %d]", m.InputShape, size, size)
	}

	outputs := int64(1)
	for _, dim := range m.OutputShape {
		outputs *= dim
	}
	if len(m.OutputShape) == 0 || outputs != int64(NumClasses) {
		return fmt.Errorf("metadata: output shape %v does not hold %d classes", m.OutputShape, NumClasses)
	}

	if len(m.Classes) > 0 && !slices.Equal(m.Classes, classLabels[:]) {
		return fmt.Errorf("metadata: classes %v do not match label table %v", m.Classes, classLabels)
	}

	for i, s := range m.Std {
		if s == 0 {
			return fmt.Errorf("metadata: std[%d] is zero", i)
		}
	}

	if _, ok := resampleFilter(m.Resample); !ok {
		return fmt.Errorf("metadata: unknown resample filter %q", m.Resample)
	}
	return nil
}
