package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/talentscout/internal/models"
)

var validBasicAnswers = []string{
	"Ada Lovelace",
	"ada@example.com",
	"(555) 123-4567",
	"7",
	"Backend Engineer",
	"London",
	"Python, Go",
}

var techQuestions = []string{
	"What is a goroutine?",
	"How do you handle errors in Go?",
	"Explain Python decorators.",
}

func newTestInterviewer(gen QuestionGenerator) Interviewer {
	return NewInterviewer(DefaultQuestionBank(), gen, staticCounter(3), InterviewSettings{
		AssistantName:      "TalentScout",
		MaxTechQuestions:   5,
		MinAnswerLength:    10,
		MaxExperienceYears: 50,
	}, discardLogger())
}

func answerAll(t *testing.T, iv Interviewer, session models.InterviewSession, answers []string) models.InterviewSession {
	t.Helper()
	for _, a := range answers {
		next, outcome, err := iv.Process(context.Background(), session, a)
		require.NoError(t, err)
		require.NotEqual(t, OutcomeRejected, outcome.Kind, "answer %q rejected: %s", a, outcome.Reason)
		session = next
	}
	return session
}

func TestInterviewer_Start(t *testing.T) {
	iv := newTestInterviewer(&stubGenerator{questions: techQuestions})

	session := iv.Start(context.Background())

	assert.Equal(t, models.PhaseBasicInfo, session.Phase)
	assert.Equal(t, 0, session.BasicStep)
	require.Len(t, session.Messages, 2)
	assert.Contains(t, session.Messages[0].Content, "**TalentScout**")
	assert.Contains(t, session.Messages[0].Content, "helped 3 candidates")
	assert.Equal(t, "**Question 1 of 7:**\nWhat is your full name?", session.Messages[1].Content)
	assert.Equal(t, session.Messages[1].Content, iv.CurrentQuestion(session))
}

func TestInterviewer_BasicInfoFlow(t *testing.T) {
	iv := newTestInterviewer(&stubGenerator{questions: techQuestions})
	session := iv.Start(context.Background())

	next, outcome, err := iv.Process(context.Background(), session, "  Ada   Lovelace ")
	require.NoError(t, err)

	assert.Equal(t, OutcomeAccepted, outcome.Kind)
	assert.Equal(t, 1, next.BasicStep)
	assert.Equal(t, "Ada Lovelace", next.Candidate[models.SlotFullName])
	assert.Equal(t, []string{"**Question 2 of 7:**\nWhat is your email address?"}, outcome.Replies)
	assert.Equal(t, 0, session.BasicStep, "input session must not change")

	progress := iv.Progress(next)
	require.NotNil(t, progress)
	assert.Equal(t, models.Progress{Label: "Basic Information", Current: 1, Total: 7}, *progress)
}

func TestInterviewer_TechStackAdvancesPhase(t *testing.T) {
	gen := &stubGenerator{questions: techQuestions}
	iv := newTestInterviewer(gen)
	session := answerAll(t, iv, iv.Start(context.Background()), validBasicAnswers[:6])
	require.Equal(t, 6, session.BasicStep)

	next, outcome, err := iv.Process(context.Background(), session, "Python, Go")
	require.NoError(t, err)

	assert.Equal(t, OutcomePhaseAdvanced, outcome.Kind)
	assert.Equal(t, 7, next.BasicStep)
	assert.Equal(t, models.PhaseTechnical, next.Phase)
	assert.Equal(t, 0, next.TechStep)
	assert.Equal(t, "Python, Go", next.Candidate[models.SlotTechStack])
	assert.Equal(t, []string{"Python, Go"}, gen.techStacks)
	assert.Equal(t, techQuestions, next.TechQuestions)
	require.Len(t, outcome.Replies, 2)
	assert.Equal(t, "**Technical Question 1 of 3:**\nWhat is a goroutine?", outcome.Replies[1])
}

func TestInterviewer_RejectionsLeaveSessionUntouched(t *testing.T) {
	iv := newTestInterviewer(&stubGenerator{questions: techQuestions})
	start := iv.Start(context.Background())
	atExperience := answerAll(t, iv, start, validBasicAnswers[:3])

	tests := []struct {
		name    string
		session models.InterviewSession
		input   string
		reason  string
	}{
		{"experience above max", atExperience, "60", "0-50"},
		{"experience not numeric", atExperience, "many", "valid number of years"},
		{"bad name", start, "A", "full name"},
		{"empty after sanitize", start, `<>;()`, "didn't catch that"},
		{"bad email", answerAll(t, iv, start, validBasicAnswers[:1]), "ada(at)example", "valid email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, outcome, err := iv.Process(context.Background(), tt.session, tt.input)
			require.NoError(t, err)

			assert.Equal(t, OutcomeRejected, outcome.Kind)
			assert.Contains(t, outcome.Reason, tt.reason)
			assert.Equal(t, tt.session.BasicStep, next.BasicStep)
			assert.Equal(t, len(tt.session.Messages), len(next.Messages))
			assert.Equal(t, tt.session.Candidate, next.Candidate)
		})
	}
}

func TestInterviewer_ShortTechnicalAnswerRejected(t *testing.T) {
	iv := newTestInterviewer(&stubGenerator{questions: techQuestions})
	session := answerAll(t, iv, iv.Start(context.Background()), validBasicAnswers)

	next, outcome, err := iv.Process(context.Background(), session, "ok")
	require.NoError(t, err)

	assert.Equal(t, OutcomeRejected, outcome.Kind)
	assert.Contains(t, outcome.Reason, "at least 10 characters")
	assert.Equal(t, 0, next.TechStep)
	assert.Empty(t, next.TechAnswers)
}

func TestInterviewer_CompletesInterview(t *testing.T) {
	iv := newTestInterviewer(&stubGenerator{questions: techQuestions})
	session := answerAll(t, iv, iv.Start(context.Background()), validBasicAnswers)

	session = answerAll(t, iv, session, []string{
		"A lightweight thread managed by the runtime.",
		"I wrap errors with context and check them explicitly.",
	})
	assert.Equal(t, 2, session.TechStep)
	assert.Equal(t, models.Progress{Label: "Technical Interview", Current: 2, Total: 3}, *iv.Progress(session))

	next, outcome, err := iv.Process(context.Background(), session, "Functions wrapping other functions.")
	require.NoError(t, err)

	assert.Equal(t, OutcomeCompleted, outcome.Kind)
	assert.Equal(t, models.PhaseCompleted, next.Phase)
	assert.Equal(t, 3, next.TechStep)
	assert.Equal(t, "Functions wrapping other functions.", next.TechAnswers[3])
	assert.Empty(t, iv.CurrentQuestion(next))
	assert.Nil(t, iv.Progress(next))

	summary := iv.Summary(next)
	require.Len(t, summary.BasicInfo, 7)
	require.Len(t, summary.Technical, 3)
	assert.Equal(t, "What is your full name?", summary.BasicInfo[0].Question)
	assert.Equal(t, "Ada Lovelace", summary.BasicInfo[0].Answer)
	assert.Equal(t, models.QAPair{Question: "What is a goroutine?", Answer: "A lightweight thread managed by the runtime."}, summary.Technical[0])

	_, _, err = iv.Process(context.Background(), next, "one more thing please")
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestInterviewer_ExitToken(t *testing.T) {
	iv := newTestInterviewer(&stubGenerator{questions: techQuestions})
	basic := answerAll(t, iv, iv.Start(context.Background()), validBasicAnswers[:2])
	technical := answerAll(t, iv, iv.Start(context.Background()), validBasicAnswers)

	for _, tt := range []struct {
		name     string
		session  models.InterviewSession
		farewell string
	}{
		{"basic info", basic, "Thanks for chatting with TalentScout"},
		{"technical", technical, "technical interview"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			next, outcome, err := iv.Process(context.Background(), tt.session, "  EXIT  ")
			require.NoError(t, err)

			assert.Equal(t, OutcomeAborted, outcome.Kind)
			require.Len(t, outcome.Replies, 1)
			assert.Contains(t, outcome.Replies[0], tt.farewell)
			assert.True(t, next.Aborted)
			assert.Equal(t, tt.session.Phase, next.Phase)
			assert.Equal(t, tt.session.BasicStep, next.BasicStep)
			assert.Equal(t, tt.session.TechStep, next.TechStep)
			assert.Equal(t, outcome.Replies[0], next.Messages[len(next.Messages)-1].Content)

			after, _, err := iv.Process(context.Background(), next, "Ada Lovelace")
			assert.ErrorIs(t, err, ErrSessionClosed)
			assert.Equal(t, next, after)
		})
	}
}

func TestInterviewer_ExitTokensAreExact(t *testing.T) {
	for _, token := range []string{"exit", "QUIT", " Bye", "end\n"} {
		assert.True(t, isExitToken(token), token)
	}
	for _, text := range []string{"exiting", "the end", "goodbye", ""} {
		assert.False(t, isExitToken(text), text)
	}
}

func TestInterviewer_FallbackQuestionsWhenModelFails(t *testing.T) {
	gen := NewQuestionGenerator(&fakeLLM{err: errModelDown}, 0, discardLogger())
	iv := newTestInterviewer(gen)

	session := answerAll(t, iv, iv.Start(context.Background()), validBasicAnswers)

	assert.Equal(t, models.PhaseTechnical, session.Phase)
	assert.Equal(t, FallbackTechQuestions("Python, Go"), session.TechQuestions)
}

func TestInterviewer_Reset(t *testing.T) {
	iv := newTestInterviewer(&stubGenerator{questions: techQuestions})
	session := answerAll(t, iv, iv.Start(context.Background()), validBasicAnswers[:4])

	fresh := iv.Reset(context.Background(), session)

	assert.Equal(t, session.ID, fresh.ID)
	assert.Equal(t, models.PhaseBasicInfo, fresh.Phase)
	assert.Equal(t, 0, fresh.BasicStep)
	assert.Empty(t, fresh.Candidate)
	assert.Len(t, fresh.Messages, 2)
}

func TestTransition_RejectsInvalidEvent(t *testing.T) {
	session := models.NewInterviewSession(fixedTime)

	err := transition(context.Background(), &session, eventComplete)

	assert.Error(t, err)
	assert.Equal(t, models.PhaseBasicInfo, session.Phase)
}
