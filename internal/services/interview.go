package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/looplab/fsm"

	"alfredoptarigan/talentscout/internal/models"
)

type OutcomeKind string

const (
	OutcomeAccepted      OutcomeKind = "accepted"
	OutcomeRejected      OutcomeKind = "rejected"
	OutcomePhaseAdvanced OutcomeKind = "phase_advanced"
	OutcomeCompleted     OutcomeKind = "completed"
	OutcomeAborted       OutcomeKind = "aborted"
)

const (
	eventBeginTechnical = "begin_technical"
	eventComplete       = "complete"
)

var phaseEvents = fsm.Events{
	{Name: eventBeginTechnical, Src: []string{string(models.PhaseBasicInfo)}, Dst: string(models.PhaseTechnical)},
	{Name: eventComplete, Src: []string{string(models.PhaseTechnical)}, Dst: string(models.PhaseCompleted)},
}

var exitTokens = map[string]struct{}{
	"exit": {},
	"quit": {},
	"bye":  {},
	"end":  {},
}

// Outcome tells the caller what happened to one answer. Replies holds the
// assistant messages produced by the turn, in display order.
type Outcome struct {
	Kind    OutcomeKind
	Reason  string
	Replies []string
}

// RecordCounter reports how many interviews are already stored.
type RecordCounter interface {
	Count() int
}

type InterviewSettings struct {
	AssistantName      string
	MaxTechQuestions   int
	MinAnswerLength    int
	MaxExperienceYears int
}

type Interviewer interface {
	Start(ctx context.Context) models.InterviewSession
	Reset(ctx context.Context, session models.InterviewSession) models.InterviewSession
	Process(ctx context.Context, session models.InterviewSession, input string) (models.InterviewSession, Outcome, error)
	CurrentQuestion(session models.InterviewSession) string
	Progress(session models.InterviewSession) *models.Progress
	Summary(session models.InterviewSession) models.SessionSummary
}

type interviewer struct {
	bank          *QuestionBank
	generator     QuestionGenerator
	counter       RecordCounter
	promptBuilder *PromptBuilder
	validators    map[models.Slot]SlotValidator
	settings      InterviewSettings
	log           *slog.Logger
	now           func() time.Time
}

func NewInterviewer(
	bank *QuestionBank,
	generator QuestionGenerator,
	counter RecordCounter,
	settings InterviewSettings,
	log *slog.Logger,
) Interviewer {
	if settings.MaxExperienceYears <= 0 {
		settings.MaxExperienceYears = DefaultMaxExperienceYears
	}
	if settings.MaxTechQuestions <= 0 {
		settings.MaxTechQuestions = 5
	}

	return &interviewer{
		bank:          bank,
		generator:     generator,
		counter:       counter,
		promptBuilder: NewPromptBuilder(),
		validators:    SlotValidators(settings.MaxExperienceYears),
		settings:      settings,
		log:           log,
		now:           time.Now,
	}
}

func (i *interviewer) Start(ctx context.Context) models.InterviewSession {
	session := models.NewInterviewSession(i.now())
	i.greet(&session)

	InterviewsStartedTotal.Inc()
	i.log.InfoContext(ctx, "interview started", slog.String("session_id", session.ID.String()))

	return session
}

// Reset discards everything but the session ID and starts over.
func (i *interviewer) Reset(ctx context.Context, session models.InterviewSession) models.InterviewSession {
	fresh := i.Start(ctx)
	fresh.ID = session.ID
	return fresh
}

func (i *interviewer) greet(session *models.InterviewSession) {
	count := 0
	if i.counter != nil {
		count = i.counter.Count()
	}

	session.AddMessage(models.RoleAssistant, i.promptBuilder.BuildGreeting(i.settings.AssistantName, count))
	session.AddMessage(models.RoleAssistant, i.CurrentQuestion(*session))
}

// Process applies one candidate message to session and returns the updated
// copy. The input session is never modified.
func (i *interviewer) Process(ctx context.Context, session models.InterviewSession, input string) (models.InterviewSession, Outcome, error) {
	if session.Closed() {
		return session, Outcome{}, ErrSessionClosed
	}

	if isExitToken(input) {
		next, farewell := i.abort(ctx, session)
		return next, Outcome{Kind: OutcomeAborted, Replies: []string{farewell}}, nil
	}

	clean := SanitizeInput(input)

	switch session.Phase {
	case models.PhaseBasicInfo:
		return i.processBasicInfo(ctx, session, clean)
	case models.PhaseTechnical:
		return i.processTechnical(ctx, session, clean)
	default:
		return session, Outcome{}, fmt.Errorf("unknown interview phase %q", session.Phase)
	}
}

func (i *interviewer) abort(ctx context.Context, session models.InterviewSession) (models.InterviewSession, string) {
	next := session.Clone()
	farewell := i.promptBuilder.BuildFarewell(session.Phase, i.settings.AssistantName)
	next.AddMessage(models.RoleAssistant, farewell)
	next.Aborted = true
	next.UpdatedAt = i.now()

	InterviewsFinishedTotal.WithLabelValues("aborted").Inc()
	i.log.InfoContext(ctx, "interview aborted",
		slog.String("session_id", session.ID.String()),
		slog.String("phase", string(session.Phase)),
	)

	return next, farewell
}

func (i *interviewer) processBasicInfo(ctx context.Context, session models.InterviewSession, answer string) (models.InterviewSession, Outcome, error) {
	slot, ok := session.CurrentSlot()
	if !ok {
		return session, Outcome{}, fmt.Errorf("basic info step %d has no slot", session.BasicStep)
	}

	if answer == "" {
		return session, i.reject(ctx, string(slot), msgEmptyInput), nil
	}

	if validate, ok := i.validators[slot]; ok {
		if err := validate(answer); err != nil {
			return session, i.reject(ctx, string(slot), err.Error()), nil
		}
	}

	next := session.Clone()
	next.AddMessage(models.RoleUser, answer)
	next.Candidate[slot] = answer
	next.BasicStep++
	next.UpdatedAt = i.now()

	if next.BasicStep < len(models.Slots) {
		reply := i.CurrentQuestion(next)
		next.AddMessage(models.RoleAssistant, reply)
		return next, Outcome{Kind: OutcomeAccepted, Replies: []string{reply}}, nil
	}

	next.TechQuestions = i.generator.GenerateTechnicalQuestions(ctx, next.Candidate[models.SlotTechStack], i.settings.MaxTechQuestions)
	next.TechStep = 0
	if err := transition(ctx, &next, eventBeginTechnical); err != nil {
		return session, Outcome{}, err
	}

	first := i.CurrentQuestion(next)
	next.AddMessage(models.RoleAssistant, msgBasicInfoDone)
	next.AddMessage(models.RoleAssistant, first)

	i.log.InfoContext(ctx, "basic information collected",
		slog.String("session_id", next.ID.String()),
		slog.Int("technical_questions", len(next.TechQuestions)),
	)

	return next, Outcome{Kind: OutcomePhaseAdvanced, Replies: []string{msgBasicInfoDone, first}}, nil
}

func (i *interviewer) processTechnical(ctx context.Context, session models.InterviewSession, answer string) (models.InterviewSession, Outcome, error) {
	if _, ok := session.CurrentTechQuestion(); !ok {
		return session, Outcome{}, fmt.Errorf("technical step %d has no question", session.TechStep)
	}

	if err := ValidateTechAnswer(answer, i.settings.MinAnswerLength); err != nil {
		return session, i.reject(ctx, "technical_answer", err.Error()), nil
	}

	next := session.Clone()
	next.AddMessage(models.RoleUser, answer)
	next.TechAnswers[next.TechStep+1] = answer
	next.TechStep++
	next.UpdatedAt = i.now()

	if next.TechStep < len(next.TechQuestions) {
		reply := i.CurrentQuestion(next)
		next.AddMessage(models.RoleAssistant, reply)
		return next, Outcome{Kind: OutcomeAccepted, Replies: []string{reply}}, nil
	}

	if err := transition(ctx, &next, eventComplete); err != nil {
		return session, Outcome{}, err
	}
	next.AddMessage(models.RoleAssistant, msgInterviewDone)

	InterviewsFinishedTotal.WithLabelValues("completed").Inc()
	i.log.InfoContext(ctx, "interview completed", slog.String("session_id", next.ID.String()))

	return next, Outcome{Kind: OutcomeCompleted, Replies: []string{msgInterviewDone}}, nil
}

func (i *interviewer) reject(ctx context.Context, field, reason string) Outcome {
	AnswersRejectedTotal.WithLabelValues(field).Inc()
	i.log.DebugContext(ctx, "answer rejected", slog.String("field", field))
	return Outcome{Kind: OutcomeRejected, Reason: reason, Replies: []string{reason}}
}

// transition moves the session along the phase graph, refusing any event
// that is not valid from the current phase.
func transition(ctx context.Context, session *models.InterviewSession, event string) error {
	machine := fsm.NewFSM(string(session.Phase), phaseEvents, fsm.Callbacks{})
	if err := machine.Event(ctx, event); err != nil {
		return fmt.Errorf("failed to %s from %s: %w", event, session.Phase, err)
	}
	session.Phase = models.InterviewPhase(machine.Current())
	return nil
}

func isExitToken(input string) bool {
	_, ok := exitTokens[strings.ToLower(strings.TrimSpace(input))]
	return ok
}

// CurrentQuestion returns the framed question awaiting an answer, or "" when
// the session is closed.
func (i *interviewer) CurrentQuestion(session models.InterviewSession) string {
	if session.Aborted {
		return ""
	}

	if slot, ok := session.CurrentSlot(); ok {
		return i.promptBuilder.BuildBasicQuestion(session.BasicStep, len(models.Slots), i.bank.Text(slot))
	}

	if question, ok := session.CurrentTechQuestion(); ok {
		return i.promptBuilder.BuildTechQuestion(session.TechStep, len(session.TechQuestions), question)
	}

	return ""
}

func (i *interviewer) Progress(session models.InterviewSession) *models.Progress {
	switch session.Phase {
	case models.PhaseBasicInfo:
		return &models.Progress{Label: "Basic Information", Current: session.BasicStep, Total: len(models.Slots)}
	case models.PhaseTechnical:
		return &models.Progress{Label: "Technical Interview", Current: session.TechStep, Total: len(session.TechQuestions)}
	default:
		return nil
	}
}

// Summary lists what the candidate has answered so far.
func (i *interviewer) Summary(session models.InterviewSession) models.SessionSummary {
	summary := models.SessionSummary{
		BasicInfo: make([]models.SlotAnswer, 0, len(models.Slots)),
		Technical: make([]models.QAPair, 0, len(session.TechQuestions)),
	}

	for _, slot := range models.Slots {
		answer, ok := session.Candidate[slot]
		if !ok {
			continue
		}
		summary.BasicInfo = append(summary.BasicInfo, models.SlotAnswer{
			Slot:     slot,
			Question: i.bank.Text(slot),
			Answer:   answer,
		})
	}

	for idx, question := range session.TechQuestions {
		answer, ok := session.TechAnswers[idx+1]
		if !ok {
			continue
		}
		summary.Technical = append(summary.Technical, models.QAPair{Question: question, Answer: answer})
	}

	return summary
}
