package model

// Backend runs the network's forward pass: one CHW float32 image in, raw
// logits out. Implementations must be safe for concurrent Run calls.
type Backend interface {
	Run(input []float32) ([]float32, error)
	Close() error
}
