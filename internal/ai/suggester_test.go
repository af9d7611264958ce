package ai

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/apperr"
	"inkwell/internal/domain"
)

type fakeClient struct {
	lastRequest openai.ChatCompletionRequest
	response    openai.ChatCompletionResponse
	err         error
}

func (f *fakeClient) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.lastRequest = req
	return f.response, f.err
}

func testActor() *domain.User {
	return &domain.User{ID: "user-1", Role: domain.RoleEditor}
}

func completionWith(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
		},
	}
}

func TestSuggestTrimsResponse(t *testing.T) {
	client := &fakeClient{response: completionWith("  A tight summary.\n")}
	s := &Suggester{client: client, model: "gpt-4o-mini"}

	got, err := s.Suggest(context.Background(), testActor(), "summarize this")
	require.NoError(t, err)
	assert.Equal(t, "A tight summary.", got)

	assert.Equal(t, "gpt-4o-mini", client.lastRequest.Model)
	require.Len(t, client.lastRequest.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, client.lastRequest.Messages[0].Role)
	assert.Equal(t, "summarize this", client.lastRequest.Messages[1].Content)
	assert.Equal(t, maxTokens, client.lastRequest.MaxTokens)
	assert.InDelta(t, temperature, client.lastRequest.Temperature, 0.001)
}

func TestSuggestEmptyCompletionFallsBack(t *testing.T) {
	s := &Suggester{client: &fakeClient{response: completionWith("   ")}, model: "gpt-4o-mini"}

	got, err := s.Suggest(context.Background(), testActor(), "anything")
	require.NoError(t, err)
	assert.Equal(t, fallbackSuggestion, got)

	s = &Suggester{client: &fakeClient{response: openai.ChatCompletionResponse{}}, model: "gpt-4o-mini"}
	got, err = s.Suggest(context.Background(), testActor(), "anything")
	require.NoError(t, err)
	assert.Equal(t, fallbackSuggestion, got)
}

func TestSuggestRequiresText(t *testing.T) {
	client := &fakeClient{}
	s := &Suggester{client: client, model: "gpt-4o-mini"}

	_, err := s.Suggest(context.Background(), testActor(), "")
	var vErr *apperr.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Empty(t, client.lastRequest.Messages, "no upstream call on validation failure")
}

func TestSuggestPassesThroughAPIErrors(t *testing.T) {
	s := &Suggester{
		client: &fakeClient{err: &openai.APIError{HTTPStatusCode: 429, Message: "rate limited"}},
		model:  "gpt-4o-mini",
	}

	_, err := s.Suggest(context.Background(), testActor(), "anything")
	var uErr *apperr.UpstreamError
	require.ErrorAs(t, err, &uErr)
	assert.Equal(t, 429, uErr.Status)
	assert.Equal(t, "rate limited", uErr.Message)
}

func TestSuggestWrapsTransportErrors(t *testing.T) {
	s := &Suggester{
		client: &fakeClient{err: errors.New("connection refused")},
		model:  "gpt-4o-mini",
	}

	_, err := s.Suggest(context.Background(), testActor(), "anything")
	require.Error(t, err)

	var uErr *apperr.UpstreamError
	assert.False(t, errors.As(err, &uErr), "network failures are not upstream API errors")
}
