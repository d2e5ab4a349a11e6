package services

import (
	"fmt"

	"alfredoptarigan/talentscout/internal/models"
)

const interviewerPersona = "You are a professional technical interviewer."

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildTechQuestionsPrompt asks for five numbered single-line questions about techStack.
func (pb *PromptBuilder) BuildTechQuestionsPrompt(techStack string) string {
	return fmt.Sprintf(`Generate exactly 5 technical interview questions for a candidate with the following tech stack: %s

Requirements:
- Each question should be on a separate line
- Number each question (1., 2., 3., etc.)
- Focus on practical experience and problem-solving
- Mix of conceptual understanding and real-world application
- Difficulty level: intermediate
- Avoid questions requiring code implementation
- Make questions specific to the mentioned technologies
- Questions should be suitable for a 15-20 minute interview

Format example:
1. Question about technology A
2. Question about technology B
3. Question about problem-solving
4. Question about best practices
5. Question about experience/challenges

Generate the questions now:`, techStack)
}

func (pb *PromptBuilder) BuildGreeting(assistantName string, candidateCount int) string {
	return fmt.Sprintf(
		"👋 Hi! I'm **%s**, your AI Hiring Assistant.\n\n"+
			"I'll collect some quick details and then ask a few technical questions "+
			"based on your skills. Type **'exit'** anytime to end the chat.\n\n"+
			"📊 *We've helped %d candidates so far!*",
		assistantName, candidateCount)
}

func (pb *PromptBuilder) BuildBasicQuestion(step, total int, text string) string {
	return fmt.Sprintf("**Question %d of %d:**\n%s", step+1, total, text)
}

func (pb *PromptBuilder) BuildTechQuestion(step, total int, text string) string {
	return fmt.Sprintf("**Technical Question %d of %d:**\n%s", step+1, total, text)
}

func (pb *PromptBuilder) BuildFarewell(phase models.InterviewPhase, assistantName string) string {
	if phase == models.PhaseTechnical {
		return "👋 Thanks for participating in the technical interview! We'll review your responses and get back to you soon."
	}
	return fmt.Sprintf("👋 Thanks for chatting with %s! We'll review your details and get back to you soon.", assistantName)
}

const (
	msgEmptyInput       = "⚠️ Sorry, I didn't catch that. Could you please rephrase?"
	msgBasicInfoDone    = "✅ Thanks for the basic details! Now let's move to the technical interview section."
	msgInterviewDone    = "🎉 Excellent! You've completed both the basic information and technical interview sections."
	fallbackPrimaryTech = "your technology stack"
)

// User-facing texts shared with the HTTP layer and the terminal client.
const (
	MessageSaveFailed      = "❌ Failed to save data. Please try again."
	MessageSaveSucceeded   = "✅ Interview data saved successfully!"
	MessageUnexpectedError = "An unexpected error occurred. Please refresh the page and try again."
)
