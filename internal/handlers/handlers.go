package handlers

import (
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Brownie44l1/waste-api/internal/model"
)

const (
	ServiceName    = "Garbage Classification API"
	ServiceVersion = "1.0.0"

	// FileField is the multipart field carrying the upload.
	FileField = "file"
)

// Classifier is what the handlers need from the loaded model.
type Classifier interface {
	IsLoaded() bool
	ModelName() string
	Labels() []string
	Predict(img image.Image) (*model.Prediction, error)
}

type Handler struct {
	classifier     Classifier
	cache          *model.PredictionCache
	maxUploadBytes int64
	log            *zap.Logger
}

// NewHandler wires the handlers to an already loaded classifier. cache may
// be nil.
func NewHandler(classifier Classifier, cache *model.PredictionCache, maxUploadBytes int64, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		classifier:     classifier,
		cache:          cache,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}

// Root handles GET /
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{
		Status:  "healthy",
		Service: ServiceName,
		Version: ServiceVersion,
	})
}

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	loaded := h.classifier != nil && h.classifier.IsLoaded()

	resp := HealthResponse{Status: "loading", ModelLoaded: loaded}
	if loaded {
		resp.Status = "healthy"
		resp.ModelName = h.classifier.ModelName()
	}
	c.JSON(http.StatusOK, resp)
}

// Labels handles GET /labels
func (h *Handler) Labels(c *gin.Context) {
	c.JSON(http.StatusOK, LabelsResponse{Labels: h.classifier.Labels()})
}

// PredictOptions handles OPTIONS /predict
func (h *Handler) PredictOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Predict handles POST /predict with a multipart image in the "file" field.
func (h *Handler) Predict(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	fileHeader, err := c.FormFile(FileField)
	if err != nil {
		h.fail(c, "", fmt.Errorf("%w: %v", model.ErrInvalidInput, err))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		h.fail(c, fileHeader.Filename, fmt.Errorf("%w: content type %q", model.ErrInvalidInput, contentType))
		return
	}

	data, err := readUpload(fileHeader)
	if err != nil {
		h.fail(c, fileHeader.Filename, fmt.Errorf("%w: %v", model.ErrDecodeFailure, err))
		return
	}

	if prediction, ok := h.cache.Get(data); ok {
		h.log.Info("Prediction served from cache",
			zap.String("filename", fileHeader.Filename),
			zap.String("label", prediction.Label))
		h.respond(c, fileHeader.Filename, prediction)
		return
	}

	img, format, err := model.DecodeImage(data)
	if err != nil {
		h.fail(c, fileHeader.Filename, err)
		return
	}

	h.log.Info("Processing image",
		zap.String("filename", fileHeader.Filename),
		zap.String("format", format),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))

	prediction, err := h.classifier.Predict(img)
	if err != nil {
		h.fail(c, fileHeader.Filename, err)
		return
	}
	h.cache.Add(data, prediction)

	h.log.Info("Prediction complete",
		zap.String("filename", fileHeader.Filename),
		zap.String("label", prediction.Label),
		zap.Float64("score", prediction.Score))

	h.respond(c, fileHeader.Filename, prediction)
}

func (h *Handler) respond(c *gin.Context, filename string, prediction *model.Prediction) {
	c.JSON(http.StatusOK, PredictResponse{
		Success:    true,
		Filename:   filename,
		Prediction: prediction,
	})
}

func (h *Handler) fail(c *gin.Context, filename string, err error) {
	errResp := MapPredictError(err)
	log := h.log.Warn
	if errResp.StatusCode >= http.StatusInternalServerError {
		log = h.log.Error
	}
	log("Prediction failed",
		zap.String("filename", filename),
		zap.String("code", errResp.Code),
		zap.Error(err))
	respondError(c, errResp)
}

func readUpload(fileHeader *multipart.FileHeader) ([]byte, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("empty upload")
	}
	return data, nil
}
