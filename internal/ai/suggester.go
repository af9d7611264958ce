package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"inkwell/internal/apperr"
	"inkwell/internal/domain"
	"inkwell/internal/repository"
)

const (
	systemPrompt = "You are a helpful writing assistant. Reply with concise 2-3 line summaries."
	maxTokens    = 120
	temperature  = 0.7

	// fallbackSuggestion is returned when the upstream completes with an
	// empty message.
	fallbackSuggestion = "No suggestion available"
)

// completionClient is the slice of the OpenAI client the suggester needs.
type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Suggester proxies prompts to a chat-completion API and records an audit
// trail of each round-trip.
type Suggester struct {
	client completionClient
	model  string
	logs   repository.CompletionLogRepository
	logger *logrus.Logger
}

// NewSuggester builds a suggester talking to the OpenAI API. baseURL
// overrides the API endpoint when non-empty.
func NewSuggester(apiKey, model, baseURL string, logs repository.CompletionLogRepository, logger *logrus.Logger) *Suggester {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Suggester{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logs:   logs,
		logger: logger,
	}
}

// Suggest sends a single-turn completion request and returns the trimmed
// response text. Upstream failures are never retried.
func (s *Suggester) Suggest(ctx context.Context, actor *domain.User, text string) (string, error) {
	if text == "" {
		return "", apperr.Validation("text is required")
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", mapUpstreamError(err)
	}

	suggestion := ""
	if len(resp.Choices) > 0 {
		suggestion = strings.TrimSpace(resp.Choices[0].Message.Content)
	}
	if suggestion == "" {
		suggestion = fallbackSuggestion
	}

	s.record(ctx, actor, text, suggestion)

	return suggestion, nil
}

// record appends to the completion audit log. Failures are logged and
// swallowed so the caller still gets its suggestion.
func (s *Suggester) record(ctx context.Context, actor *domain.User, prompt, response string) {
	if s.logs == nil {
		return
	}
	entry := &domain.CompletionLog{
		UserID:   actor.ID,
		Prompt:   prompt,
		Response: response,
		Model:    s.model,
	}
	if err := s.logs.Create(ctx, entry); err != nil && s.logger != nil {
		s.logger.Warnf("record completion log: %v", err)
	}
}

func mapUpstreamError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode > 0 {
		return &apperr.UpstreamError{Status: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode > 0 {
		return &apperr.UpstreamError{Status: reqErr.HTTPStatusCode, Message: reqErr.Error()}
	}
	return fmt.Errorf("completion request: %w", err)
}
