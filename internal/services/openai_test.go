package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRequest struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newOpenAITestService(t *testing.T, handler http.HandlerFunc) LLMService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenAIService("sk-test", "gpt-4o-mini", option.WithBaseURL(srv.URL+"/"))
}

func TestOpenAIService_SendsPromptAndSettings(t *testing.T) {
	var got chatRequest
	svc := newOpenAITestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"))
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 0,
			"model": "gpt-4o-mini",
			"choices": [{
				"index": 0,
				"finish_reason": "stop",
				"message": {"role": "assistant", "content": "1. What is a goroutine?"}
			}]
		}`))
	})

	text, err := svc.GenerateText(context.Background(), GenerationRequest{
		SystemPrompt: interviewerPersona,
		Prompt:       "Generate questions for Go",
		Temperature:  generationTemperature,
		MaxTokens:    generationMaxTokens,
	})
	require.NoError(t, err)
	assert.Equal(t, "1. What is a goroutine?", text)

	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.InDelta(t, 0.7, got.Temperature, 0.0001)
	assert.Equal(t, 800, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, interviewerPersona, got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "Generate questions for Go", got.Messages[1].Content)
}

func TestOpenAIService_ServerErrorIsNotRetried(t *testing.T) {
	var hits atomic.Int32
	svc := newOpenAITestService(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "boom", "type": "server_error"}}`))
	})

	_, err := svc.GenerateText(context.Background(), GenerationRequest{Prompt: "hi"})
	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestOpenAIService_EmptyChoices(t *testing.T) {
	svc := newOpenAITestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "chatcmpl-1", "object": "chat.completion", "model": "gpt-4o-mini", "choices": []}`))
	})

	_, err := svc.GenerateText(context.Background(), GenerationRequest{Prompt: "hi"})
	assert.Error(t, err)
}

func TestQuestionGenerator_OpenAIFailureFallsBackAfterOneAttempt(t *testing.T) {
	var hits atomic.Int32
	svc := newOpenAITestService(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	gen := NewQuestionGenerator(svc, 30*time.Second, discardLogger())
	questions := gen.GenerateTechnicalQuestions(context.Background(), "Python, Go", 5)

	assert.Equal(t, FallbackTechQuestions("Python, Go"), questions)
	assert.Equal(t, int32(1), hits.Load())
}
