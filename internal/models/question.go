package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "EASY"
	DifficultyMedium DifficultyLevel = "MEDIUM"
	DifficultyHard   DifficultyLevel = "HARD"
)

// OptionsPerQuestion is fixed: every question carries exactly four options
// whose positions form the set {1,2,3,4}.
const OptionsPerQuestion = 4

type Question struct {
	ID        string `json:"id" gorm:"type:uuid;primaryKey"`
	ChapterID string `json:"chapter_id" gorm:"type:uuid;not null;index"`

	// Denormalized for fast filtering during sampling.
	SubjectID string        `json:"subject_id" gorm:"type:uuid;not null;index"`
	Standard  StandardLevel `json:"standard" gorm:"not null;index:idx_questions_standard_difficulty"`

	Difficulty   DifficultyLevel `json:"difficulty" gorm:"not null;index:idx_questions_standard_difficulty" validate:"required,difficulty_level"`
	QuestionText string          `json:"question_text" gorm:"type:text;not null" validate:"required"`
	Solution     *string         `json:"solution,omitempty" gorm:"type:text"`

	// 1-based position within this question's options, not an option id.
	CorrectOptionOrder int `json:"correct_option_order" gorm:"not null" validate:"required,min=1,max=4"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Chapter Chapter  `json:"-" gorm:"foreignKey:ChapterID"`
	Subject Subject  `json:"-" gorm:"foreignKey:SubjectID"`
	Options []Option `json:"options" gorm:"foreignKey:QuestionID"`
}

type Option struct {
	ID         string `json:"id" gorm:"type:uuid;primaryKey"`
	QuestionID string `json:"question_id" gorm:"type:uuid;not null;index:idx_options_question_order,unique"`
	Order      int    `json:"order" gorm:"not null;index:idx_options_question_order,unique" validate:"required,min=1,max=4"`
	OptionText string `json:"option_text" gorm:"type:text;not null" validate:"required"`
}

// ValidateShape checks the structural invariant on a fully loaded question:
// exactly four options covering positions 1..4, and a correct position that
// is one of them.
func (q *Question) ValidateShape() error {
	if len(q.Options) != OptionsPerQuestion {
		return fmt.Errorf("question %s has %d options, want %d", q.ID, len(q.Options), OptionsPerQuestion)
	}
	seen := make(map[int]bool, OptionsPerQuestion)
	for _, opt := range q.Options {
		if opt.Order < 1 || opt.Order > OptionsPerQuestion {
			return fmt.Errorf("question %s has option position %d outside 1..%d", q.ID, opt.Order, OptionsPerQuestion)
		}
		if seen[opt.Order] {
			return fmt.Errorf("question %s has duplicate option position %d", q.ID, opt.Order)
		}
		seen[opt.Order] = true
	}
	if q.CorrectOptionOrder < 1 || q.CorrectOptionOrder > OptionsPerQuestion {
		return fmt.Errorf("question %s has correct option position %d outside 1..%d", q.ID, q.CorrectOptionOrder, OptionsPerQuestion)
	}
	return nil
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

func (o *Option) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

func (Question) TableName() string { return "questions" }
func (Option) TableName() string   { return "options" }
