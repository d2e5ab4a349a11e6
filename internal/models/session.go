package models

import (
	"time"

	"github.com/google/uuid"
)

type InterviewPhase string

const (
	PhaseBasicInfo InterviewPhase = "basic_info"
	PhaseTechnical InterviewPhase = "technical"
	PhaseCompleted InterviewPhase = "completed"
)

type Slot string

const (
	SlotFullName        Slot = "full_name"
	SlotEmail           Slot = "email"
	SlotPhone           Slot = "phone"
	SlotExperienceYears Slot = "experience_years"
	SlotPosition        Slot = "position"
	SlotLocation        Slot = "location"
	SlotTechStack       Slot = "tech_stack"
)

// Slots lists the basic-info slots in the order they are asked.
var Slots = []Slot{
	SlotFullName,
	SlotEmail,
	SlotPhone,
	SlotExperienceYears,
	SlotPosition,
	SlotLocation,
	SlotTechStack,
}

type MessageRole string

const (
	RoleAssistant MessageRole = "assistant"
	RoleUser      MessageRole = "user"
)

type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// InterviewSession is the whole state of one candidate conversation.
// BasicStep always equals the number of filled Candidate slots and TechStep
// the number of filled TechAnswers.
type InterviewSession struct {
	ID            uuid.UUID       `json:"id"`
	Phase         InterviewPhase  `json:"phase"`
	BasicStep     int             `json:"basic_step"`
	TechStep      int             `json:"tech_step"`
	Candidate     map[Slot]string `json:"candidate"`
	TechQuestions []string        `json:"tech_questions"`
	TechAnswers   map[int]string  `json:"tech_answers"`
	Messages      []Message       `json:"messages"`
	Aborted       bool            `json:"aborted"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func NewInterviewSession(now time.Time) InterviewSession {
	return InterviewSession{
		ID:          uuid.New(),
		Phase:       PhaseBasicInfo,
		Candidate:   make(map[Slot]string, len(Slots)),
		TechAnswers: make(map[int]string),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Clone returns a deep copy so callers can mutate without touching the original.
func (s InterviewSession) Clone() InterviewSession {
	out := s

	out.Candidate = make(map[Slot]string, len(s.Candidate))
	for k, v := range s.Candidate {
		out.Candidate[k] = v
	}

	out.TechAnswers = make(map[int]string, len(s.TechAnswers))
	for k, v := range s.TechAnswers {
		out.TechAnswers[k] = v
	}

	out.TechQuestions = append([]string(nil), s.TechQuestions...)
	out.Messages = append([]Message(nil), s.Messages...)

	return out
}

// Closed reports whether the session accepts no more answers.
func (s InterviewSession) Closed() bool {
	return s.Aborted || s.Phase == PhaseCompleted
}

// CurrentSlot returns the slot awaiting an answer, if any.
func (s InterviewSession) CurrentSlot() (Slot, bool) {
	if s.Phase != PhaseBasicInfo || s.BasicStep >= len(Slots) {
		return "", false
	}
	return Slots[s.BasicStep], true
}

// CurrentTechQuestion returns the technical question awaiting an answer, if any.
func (s InterviewSession) CurrentTechQuestion() (string, bool) {
	if s.Phase != PhaseTechnical || s.TechStep >= len(s.TechQuestions) {
		return "", false
	}
	return s.TechQuestions[s.TechStep], true
}

func (s *InterviewSession) AddMessage(role MessageRole, content string) {
	s.Messages = append(s.Messages, Message{Role: role, Content: content})
}

// SessionRecord is the database row holding a serialized InterviewSession.
type SessionRecord struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Phase     InterviewPhase `gorm:"type:text;not null" json:"phase"`
	State     string         `gorm:"type:text;not null" json:"state"`
	CreatedAt time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `gorm:"default:CURRENT_TIMESTAMP;index" json:"updated_at"`
}

func (SessionRecord) TableName() string {
	return "interview_sessions"
}
