package ai

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrMissingAPIKey = errors.New("api key is missing")
	ErrEmptyPrompt   = errors.New("prompt is required")
)

// APIError is a non-2xx answer from the upstream model API.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s api error (%d): %s", e.Provider, e.StatusCode, e.Message)
}

type UseCase string

const (
	UseCaseReview   UseCase = "review"
	UseCaseEmail    UseCase = "email"
	UseCaseAnalysis UseCase = "analysis"
	UseCaseGeneral  UseCase = "general"
)

type GenerateInput struct {
	Prompt    string
	Type      UseCase
	MaxTokens int
}

type GenerateResult struct {
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
