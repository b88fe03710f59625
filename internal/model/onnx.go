package model

import (
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// ONNXBackend runs the exported network through ONNX Runtime. Each Run
// allocates its own tensors, so concurrent requests share only the session.
type ONNXBackend struct {
	session     *ort.DynamicAdvancedSession
	inputShape  ort.Shape
	outputShape ort.Shape
	closeOnce   sync.Once
}

// NewONNXBackend initialises the runtime and opens a session on modelPath.
// libraryPath overrides the onnxruntime shared library location when set.
func NewONNXBackend(modelPath, libraryPath string, meta Metadata) (*ONNXBackend, error) {
	if libraryPath != "" {
		ort.SetSharedLibraryPath(libraryPath)
	}

	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
		}
	}

	session, err := ort.NewDynamicAdvancedSession(modelPath,
		[]string{meta.InputName}, []string{meta.OutputName}, nil)
	if err != nil {
		_ = ort.DestroyEnvironment()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &ONNXBackend{
		session:     session,
		inputShape:  ort.NewShape(meta.InputShape...),
		outputShape: ort.NewShape(meta.OutputShape...),
	}, nil
}

// Run executes one forward pass and returns a copy of the logits.
func (b *ONNXBackend) Run(input []float32) ([]float32, error) {
	inputTensor, err := ort.NewTensor(b.inputShape, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer inputTensor.Destroy()

	outputTensor, err := ort.NewEmptyTensor[float32](b.outputShape)
	if err != nil {
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}
	defer outputTensor.Destroy()

	if err := b.session.Run([]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor}); err != nil {
		return nil, fmt.Errorf("session run: %w", err)
	}

	logits := make([]float32, len(outputTensor.GetData()))
	copy(logits, outputTensor.GetData())
	return logits, nil
}

// Close destroys the session and the runtime environment.
func (b *ONNXBackend) Close() error {
	var err error
	b.closeOnce.Do(func() {
		if b.session != nil {
			err = b.session.Destroy()
		}
		if envErr := ort.DestroyEnvironment(); err == nil {
			err = envErr
		}
	})
	return err
}
