package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultMaxTokens = 500

// OpenAIClient calls an OpenAI-compatible chat completions API (OpenAI, Groq).
type OpenAIClient struct {
	name       string
	apiKey     string
	baseURL    string
	model      string
	maxTokens  int
	httpClient *http.Client
}

type chatRequest struct {
	Model            string    `json:"model"`
	Messages         []Message `json:"messages"`
	Temperature      float64   `json:"temperature,omitempty"`
	MaxTokens        int       `json:"max_tokens,omitempty"`
	PresencePenalty  float64   `json:"presence_penalty,omitempty"`
	FrequencyPenalty float64   `json:"frequency_penalty,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewOpenAIClient создает клиент OpenAI-совместимого API с заданными параметрами.
// name используется в текстах ошибок ("openai", "groq").
func NewOpenAIClient(name, apiKey, baseURL, model string, timeout time.Duration, maxTokens int) *OpenAIClient {
	trimmedURL := strings.TrimRight(baseURL, "/")
	return &OpenAIClient{
		name:      name,
		apiKey:    apiKey,
		baseURL:   trimmedURL,
		model:     model,
		maxTokens: maxTokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Chat отправляет сообщения в API и возвращает текст ответа и сырой ответ API.
func (c *OpenAIClient) Chat(ctx context.Context, messages []Message, opts ChatOptions) (string, []byte, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", nil, fmt.Errorf("%s: %w", c.name, ErrMissingAPIKey)
	}

	reqBody := chatRequest{
		Model:            c.model,
		Messages:         messages,
		Temperature:      0.3,
		MaxTokens:        resolveMaxTokens(opts.MaxTokens, c.maxTokens),
		PresencePenalty:  0.1,
		FrequencyPenalty: 0.1,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", nil, err
	}

	endpoint := fmt.Sprintf("%s/chat/completions", c.baseURL)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", nil, err
	}

	request.Header.Set("Authorization", "Bearer "+c.apiKey)
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", nil, err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return "", nil, err
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		apiErr := &APIError{Provider: c.name, StatusCode: response.StatusCode, Message: strings.TrimSpace(string(body))}
		var parsed chatResponse
		if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != nil {
			apiErr.Message = parsed.Error.Message
		}
		return "", body, apiErr
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", body, err
	}

	if len(parsed.Choices) == 0 {
		return "", body, fmt.Errorf("%s response missing choices", c.name)
	}

	return parsed.Choices[0].Message.Content, body, nil
}
