package events

import (
	"time"

	"github.com/google/uuid"
)

type ExamEventType string

const (
	TestGenerated    ExamEventType = "test.generated"
	AttemptStarted   ExamEventType = "attempt.started"
	AttemptCompleted ExamEventType = "attempt.completed"
)

// ExamEvent is the envelope published for exam lifecycle transitions.
type ExamEvent struct {
	ID        string        `json:"id"`
	Type      ExamEventType `json:"type"`
	Source    string        `json:"source"`
	Timestamp time.Time     `json:"timestamp"`

	TestID    string `json:"test_id,omitempty"`
	TestType  string `json:"test_type,omitempty"`
	AttemptID string `json:"attempt_id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	Score     *int   `json:"score,omitempty"`

	// SectionSizes carries the generated per-section question counts so
	// downstream consumers can spot short papers.
	SectionSizes []int `json:"section_sizes,omitempty"`
}

func newExamEvent(eventType ExamEventType) *ExamEvent {
	return &ExamEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    "mocktest-service",
		Timestamp: time.Now().UTC(),
	}
}

// NewTestGeneratedEvent builds the event emitted after a paper is persisted.
func NewTestGeneratedEvent(testID, testType string, sectionSizes []int) *ExamEvent {
	e := newExamEvent(TestGenerated)
	e.TestID = testID
	e.TestType = testType
	e.SectionSizes = sectionSizes
	return e
}

// NewAttemptStartedEvent builds the event emitted when an attempt begins.
func NewAttemptStartedEvent(attemptID, testID, userID string) *ExamEvent {
	e := newExamEvent(AttemptStarted)
	e.AttemptID = attemptID
	e.TestID = testID
	e.UserID = userID
	return e
}

// NewAttemptCompletedEvent builds the event emitted at the terminal attempt
// transition, after scoring.
func NewAttemptCompletedEvent(attemptID, testID, userID string, score int) *ExamEvent {
	e := newExamEvent(AttemptCompleted)
	e.AttemptID = attemptID
	e.TestID = testID
	e.UserID = userID
	e.Score = &score
	return e
}
