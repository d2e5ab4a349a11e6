package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeLLM struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) GenerateText(_ context.Context, req GenerationRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.prompts = append(f.prompts, req.Prompt)
	return f.response, f.err
}

func (f *fakeLLM) Provider() string {
	return "fake"
}

var errModelDown = errors.New("model unavailable")

type stubGenerator struct {
	questions  []string
	techStacks []string
}

func (s *stubGenerator) GenerateTechnicalQuestions(_ context.Context, techStack string, maxQuestions int) []string {
	s.techStacks = append(s.techStacks, techStack)
	return truncate(s.questions, maxQuestions)
}

type staticCounter int

func (c staticCounter) Count() int {
	return int(c)
}
