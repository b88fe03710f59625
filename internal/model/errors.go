package model

import "errors"

// Error kinds returned by the classifier. Callers match them with errors.Is.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrDecodeFailure    = errors.New("image decode failed")
	ErrInferenceFailure = errors.New("inference failed")
)
