package services

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	InterviewsStartedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "interviews_started_total",
			Help: "Total number of interview sessions started",
		},
	)
	InterviewsFinishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interviews_finished_total",
			Help: "Total number of interview sessions that reached a terminal state",
		},
		[]string{"result"},
	)
	AnswersRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "answers_rejected_total",
			Help: "Total number of candidate answers refused by validation",
		},
		[]string{"field"},
	)
	QuestionGenerationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "question_generation_total",
			Help: "Technical question sets produced, by provider and source (ai or fallback)",
		},
		[]string{"provider", "source"},
	)
	QuestionGenerationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "question_generation_duration_seconds",
			Help:    "Latency of the model call used to generate technical questions",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"provider"},
	)
	RecordsSavedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "candidate_records_saved_total",
			Help: "Candidate record save attempts by result",
		},
		[]string{"result"},
	)
	SessionsExpiredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "interview_sessions_expired_total",
			Help: "Idle interview sessions removed by the janitor",
		},
	)
)

var registerOnce sync.Once

// RegisterMetrics adds the collectors to the default prometheus registry.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			InterviewsStartedTotal,
			InterviewsFinishedTotal,
			AnswersRejectedTotal,
			QuestionGenerationTotal,
			QuestionGenerationDuration,
			RecordsSavedTotal,
			SessionsExpiredTotal,
		)
	})
}
