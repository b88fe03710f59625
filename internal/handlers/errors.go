package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Brownie44l1/waste-api/internal/model"
)

// ErrorResponse is the status, code and client-facing message an error maps to.
type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
}

// MapPredictError maps classifier error kinds to HTTP responses. The
// message is fixed per kind; the wrapped cause is only logged.
func MapPredictError(err error) ErrorResponse {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "INVALID_INPUT",
			Message:    "an image file must be uploaded in the 'file' field",
		}
	case errors.Is(err, model.ErrDecodeFailure):
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       "DECODE_FAILURE",
			Message:    "uploaded file could not be decoded as an image",
		}
	case errors.Is(err, model.ErrInferenceFailure):
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       "INFERENCE_FAILURE",
			Message:    "model inference failed",
		}
	default:
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       "INTERNAL_ERROR",
			Message:    "internal server error",
		}
	}
}

func respondError(c *gin.Context, errResp ErrorResponse) {
	c.AbortWithStatusJSON(errResp.StatusCode, ErrorBody{
		Detail: errResp.Message,
		Code:   errResp.Code,
	})
}
