package repositories

import (
	"errors"

	"github.com/cetprep/mocktest-service/internal/models"
	"gorm.io/gorm"
)

// ===== SHARED FILTER STRUCTS =====

// RandomQuestionFilters narrows a random sample draw. Exactly one of
// SubjectID / ChapterIDs is normally set; ExcludeIDs carries the ids already
// chosen so a draw never duplicates earlier picks.
type RandomQuestionFilters struct {
	SubjectID  *string               `json:"subject_id"`
	Standard   *models.StandardLevel `json:"standard"`
	ChapterIDs []string              `json:"chapter_ids"`
	ExcludeIDs []string              `json:"exclude_ids"`
	Count      int                   `json:"count"`
}

// AnswerKey is the scoring projection of a question: the correct option
// position plus the owning subject's code (mark weighting depends on it).
type AnswerKey struct {
	QuestionID         string             `json:"question_id"`
	CorrectOptionOrder int                `json:"correct_option_order"`
	SubjectCode        models.SubjectCode `json:"subject_code"`
}

// ===== ERROR HELPERS =====

// IsNotFoundError reports whether err is the store's record-not-found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
