package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TestType string

const (
	TestTypePCM TestType = "PCM"
	TestTypePCB TestType = "PCB"
)

// Section is one timed block of a test: a frozen, pre-shuffled question-id
// sequence plus its time limit.
type Section struct {
	QuestionIDs []string `json:"questions"`
	TimeLimit   int      `json:"timeLimit"` // minutes
}

// Test is an immutable exam blueprint. QuestionSet is written once at
// generation time and never updated afterwards, so attempts can never see
// the paper drift mid-run.
type Test struct {
	ID   string   `json:"id" gorm:"type:uuid;primaryKey"`
	Type TestType `json:"type" gorm:"not null" validate:"required,test_type"`

	QuestionSet datatypes.JSONType[[]Section] `json:"question_set" gorm:"type:jsonb;not null"`

	CreatedAt time.Time `json:"created_at"`
}

// Sections returns the frozen section list.
func (t *Test) Sections() []Section {
	return t.QuestionSet.Data()
}

func (t *Test) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

func (Test) TableName() string { return "tests" }
