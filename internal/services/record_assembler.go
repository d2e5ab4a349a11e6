package services

import (
	"fmt"
	"strings"
	"time"

	"alfredoptarigan/talentscout/internal/models"
)

const (
	ColumnInterviewDate = "interview_date"
	MinTechnicalPairs   = 5
	interviewDateFormat = "2006-01-02 15:04:05"
)

var tabularUnsafe = strings.NewReplacer(`"`, "", ",", "")

type RecordAssembler interface {
	Columns() []string
	Assemble(session models.InterviewSession, now time.Time) models.CandidateRecord
}

type recordAssembler struct {
	pairs int
	// header is built once and shared read-only.
	header []string
}

// NewRecordAssembler builds rows with max(5, maxTechQuestions) technical
// question/answer column pairs.
func NewRecordAssembler(bank *QuestionBank, maxTechQuestions int) RecordAssembler {
	pairs := maxTechQuestions
	if pairs < MinTechnicalPairs {
		pairs = MinTechnicalPairs
	}

	header := make([]string, 0, 1+bank.Len()+2*pairs)
	header = append(header, ColumnInterviewDate)
	header = append(header, bank.Headers()...)
	for n := 1; n <= pairs; n++ {
		header = append(header, TechQuestionColumn(n), TechAnswerColumn(n))
	}

	return &recordAssembler{pairs: pairs, header: header}
}

func TechQuestionColumn(n int) string {
	return fmt.Sprintf("Technical_Q%d", n)
}

func TechAnswerColumn(n int) string {
	return fmt.Sprintf("Technical_A%d", n)
}

func (a *recordAssembler) Columns() []string {
	return append([]string(nil), a.header...)
}

// Assemble flattens session into one row. Partial sessions produce empty
// cells for anything not yet answered.
func (a *recordAssembler) Assemble(session models.InterviewSession, now time.Time) models.CandidateRecord {
	values := make([]string, 0, len(a.header))
	values = append(values, now.Format(interviewDateFormat))

	for _, slot := range models.Slots {
		values = append(values, session.Candidate[slot])
	}

	for idx := 0; idx < a.pairs; idx++ {
		var question, answer string
		if idx < len(session.TechQuestions) {
			question = tabularUnsafe.Replace(session.TechQuestions[idx])
			answer = tabularUnsafe.Replace(session.TechAnswers[idx+1])
		}
		values = append(values, question, answer)
	}

	return models.CandidateRecord{Header: a.Columns(), Values: values}
}
