package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
)

const (
	generationTemperature = 0.7
	generationMaxTokens   = 800
	minUsableQuestions    = 3
)

var (
	leadingMarker = regexp.MustCompile(`^\d+[.)\-]\s*`)
	anyMarker     = regexp.MustCompile(`\d+[.)\-]`)
	questionHints = []string{"what", "how", "why", "when", "where", "explain", "describe", "discuss"}
)

type QuestionGenerator interface {
	GenerateTechnicalQuestions(ctx context.Context, techStack string, maxQuestions int) []string
}

type questionGenerator struct {
	llm           LLMService
	promptBuilder *PromptBuilder
	timeout       time.Duration
	log           *slog.Logger
}

func NewQuestionGenerator(llm LLMService, timeout time.Duration, log *slog.Logger) QuestionGenerator {
	return &questionGenerator{
		llm:           llm,
		promptBuilder: NewPromptBuilder(),
		timeout:       timeout,
		log:           log,
	}
}

// GenerateTechnicalQuestions never fails: any model error or unusable output
// yields the fallback set. The result has between 1 and maxQuestions items.
func (g *questionGenerator) GenerateTechnicalQuestions(ctx context.Context, techStack string, maxQuestions int) []string {
	if maxQuestions < 1 {
		maxQuestions = 1
	}

	provider := "none"
	if g.llm != nil {
		provider = g.llm.Provider()
	}

	questions, err := g.generate(ctx, techStack, maxQuestions)
	if err != nil {
		g.log.Warn("technical question generation failed, using fallback questions",
			slog.String("provider", provider),
			slog.String("error", err.Error()),
		)
		QuestionGenerationTotal.WithLabelValues(provider, "fallback").Inc()
		return truncate(FallbackTechQuestions(techStack), maxQuestions)
	}

	QuestionGenerationTotal.WithLabelValues(provider, "ai").Inc()
	return questions
}

func (g *questionGenerator) generate(ctx context.Context, techStack string, maxQuestions int) ([]string, error) {
	if g.llm == nil {
		return nil, fmt.Errorf("no model configured")
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := g.llm.GenerateText(ctx, GenerationRequest{
		SystemPrompt: interviewerPersona,
		Prompt:       g.promptBuilder.BuildTechQuestionsPrompt(techStack),
		Temperature:  generationTemperature,
		MaxTokens:    generationMaxTokens,
	})
	QuestionGenerationDuration.WithLabelValues(g.llm.Provider()).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	questions := ParseTechQuestions(text, maxQuestions)
	if len(questions) < minUsableQuestions {
		return nil, fmt.Errorf("model returned %d usable questions, need at least %d", len(questions), minUsableQuestions)
	}

	return questions, nil
}

// ParseTechQuestions extracts questions from free-form model output. Lines
// are kept when they look like questions; if fewer than three do, the raw
// text is split on numbering markers instead.
func ParseTechQuestions(text string, maxQuestions int) []string {
	var questions []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		clean := leadingMarker.ReplaceAllString(line, "")
		if looksLikeQuestion(clean) {
			questions = append(questions, clean)
		}
	}

	if len(questions) < minUsableQuestions {
		questions = questions[:0]
		for _, fragment := range anyMarker.Split(text, -1) {
			if fragment = strings.TrimSpace(fragment); fragment != "" {
				questions = append(questions, fragment)
			}
		}
	}

	return truncate(questions, maxQuestions)
}

func looksLikeQuestion(line string) bool {
	if strings.Contains(line, "?") {
		return true
	}

	lower := strings.ToLower(line)
	for _, hint := range questionHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// FallbackTechQuestions returns five fixed questions built around the first
// technology listed in techStack.
func FallbackTechQuestions(techStack string) []string {
	primary := strings.TrimSpace(strings.SplitN(techStack, ",", 2)[0])
	if primary == "" {
		primary = fallbackPrimaryTech
	}

	return []string{
		fmt.Sprintf("What are the key features and benefits of %s?", primary),
		fmt.Sprintf("Explain a challenging project you worked on using %s.", primary),
		"How do you stay updated with the latest technology trends?",
		"Describe your approach to debugging and troubleshooting.",
		"What's your experience with version control systems like Git?",
	}
}

func truncate(items []string, max int) []string {
	if len(items) > max {
		return items[:max]
	}
	return items
}
