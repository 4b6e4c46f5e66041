package ai

import (
	"context"
	"strings"
	"time"

	"example.com/cleanslate/backend/internal/config"
)

const (
	// NoResponseContent replaces an empty model answer.
	NoResponseContent = "No response generated"
	// FallbackContent is shown when generation fails.
	FallbackContent = "AI analysis complete. Consider reviewing your unused subscriptions for potential savings."
)

var systemPrompts = map[UseCase]string{
	UseCaseReview:   "You are a helpful assistant that crafts concise, empathetic review responses. Keep responses under 100 words.",
	UseCaseEmail:    "You are an expert at writing professional yet friendly unsubscribe emails. Be polite but firm.",
	UseCaseAnalysis: "You are a financial advisor helping users optimize their subscriptions. Provide actionable insights.",
	UseCaseGeneral:  "You are a helpful assistant focused on digital life organization and decluttering.",
}

type Service struct {
	client    Client
	maxTokens int
	now       func() time.Time
}

// NewService создает сервис генерации текста поверх AI-клиента.
func NewService(client Client, maxTokens int) *Service {
	return &Service{
		client:    client,
		maxTokens: resolveMaxTokens(maxTokens, defaultMaxTokens),
		now:       time.Now,
	}
}

// NewClient выбирает клиента по настройкам провайдера.
func NewClient(cfg config.AIConfig) Client {
	switch strings.ToLower(cfg.Provider) {
	case config.AIProviderGemini:
		return NewGeminiClient(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Timeout, cfg.MaxOutputTokens)
	case config.AIProviderCanned:
		return NewCannedClient()
	case config.AIProviderGroq:
		return NewOpenAIClient("groq", cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Timeout, cfg.MaxOutputTokens)
	default:
		return NewOpenAIClient("openai", cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Timeout, cfg.MaxOutputTokens)
	}
}

// ParseUseCase приводит тег сценария к известному значению. Неизвестные теги считаются general.
func ParseUseCase(value string) UseCase {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(UseCaseReview):
		return UseCaseReview
	case string(UseCaseEmail), "email-draft":
		return UseCaseEmail
	case string(UseCaseAnalysis):
		return UseCaseAnalysis
	default:
		return UseCaseGeneral
	}
}

// SystemPrompt возвращает системный промпт сценария.
func SystemPrompt(useCase UseCase) string {
	if prompt, ok := systemPrompts[useCase]; ok {
		return prompt
	}
	return systemPrompts[UseCaseGeneral]
}

// Generate запрашивает у модели текст для сценария и возвращает ответ и сырой ответ API.
func (s *Service) Generate(ctx context.Context, input GenerateInput) (GenerateResult, []byte, error) {
	prompt := strings.TrimSpace(input.Prompt)
	if prompt == "" {
		return GenerateResult{}, nil, ErrEmptyPrompt
	}

	messages := []Message{
		{Role: "system", Content: SystemPrompt(ParseUseCase(string(input.Type)))},
		{Role: "user", Content: prompt},
	}

	content, raw, err := s.client.Chat(ctx, messages, ChatOptions{MaxTokens: resolveMaxTokens(input.MaxTokens, s.maxTokens)})
	if err != nil {
		return GenerateResult{}, raw, err
	}

	if strings.TrimSpace(content) == "" {
		content = NoResponseContent
	}

	return GenerateResult{Content: content, Timestamp: s.now().UTC()}, raw, nil
}
