package handlers

import "github.com/Brownie44l1/waste-api/internal/model"

type RootResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	ModelName   string `json:"model_name"`
}

type LabelsResponse struct {
	Labels []string `json:"labels"`
}

type PredictResponse struct {
	Success    bool              `json:"success"`
	Filename   string            `json:"filename"`
	Prediction *model.Prediction `json:"prediction"`
}

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}
