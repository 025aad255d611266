package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "IN_PROGRESS"
	AttemptCompleted  AttemptStatus = "COMPLETED"
)

// TestAttempt is one user's run through a frozen Test. The attempt owns its
// response map and status; the referenced Test is never mutated.
type TestAttempt struct {
	ID     string `json:"id" gorm:"type:uuid;primaryKey"`
	TestID string `json:"test_id" gorm:"type:uuid;not null;index"`
	UserID string `json:"user_id" gorm:"not null;index"`

	Status AttemptStatus `json:"status" gorm:"not null;index" validate:"omitempty,oneof=IN_PROGRESS COMPLETED"`

	// CurrentSectionIndex is 0-based and only ever moves forward.
	CurrentSectionIndex int       `json:"current_section_index" gorm:"not null;default:0"`
	SectionStartTime    time.Time `json:"section_start_time" gorm:"not null"`

	// Responses maps question id -> selected option position (1..4).
	// Stored as jsonb; per-question writes are merged server-side so
	// concurrent autosaves never clobber each other.
	Responses datatypes.JSONType[map[string]int] `json:"responses" gorm:"type:jsonb;not null;default:'{}'"`

	Score     *int           `json:"score,omitempty"`
	Analytics datatypes.JSON `json:"analytics,omitempty" gorm:"type:jsonb"`

	CreatedAt   time.Time  `json:"created_at"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`

	Test Test `json:"-" gorm:"foreignKey:TestID"`
}

// ResponseMap returns the stored responses, never nil.
func (a *TestAttempt) ResponseMap() map[string]int {
	m := a.Responses.Data()
	if m == nil {
		return map[string]int{}
	}
	return m
}

func (a *TestAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func (TestAttempt) TableName() string { return "test_attempts" }
