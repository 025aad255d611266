package repositories

import (
	"context"
	"time"

	"github.com/cetprep/mocktest-service/internal/models"
)

// CatalogRepository serves the immutable reference data: standards, subjects
// and chapters.
type CatalogRepository interface {
	GetStandard(ctx context.Context, level models.StandardLevel) (*models.Standard, error)
	GetSubject(ctx context.Context, standardID string, code models.SubjectCode) (*models.Subject, error)
	ListSubjects(ctx context.Context) ([]*models.Subject, error)
	ListChapters(ctx context.Context, subjectID string) ([]*models.Chapter, error)
	GetChapterByName(ctx context.Context, subjectID, name string) (*models.Chapter, error)
}

// QuestionRepository is the read side of the question bank plus the bulk
// write path used by imports.
type QuestionRepository interface {
	// SampleRandomIDs draws a uniform random sample of question ids without
	// replacement, at most filters.Count, honoring the filter and exclusion
	// set. May return fewer ids than requested when the pool is exhausted.
	SampleRandomIDs(ctx context.Context, filters RandomQuestionFilters) ([]string, error)

	GetByIDs(ctx context.Context, ids []string) ([]*models.Question, error)
	GetAnswerKeys(ctx context.Context, ids []string) ([]AnswerKey, error)
	CreateBatch(ctx context.Context, questions []*models.Question) error
	Count(ctx context.Context, subjectID string) (int64, error)
}

// TestRepository persists frozen exam blueprints. Tests are create-once,
// read-many; there is deliberately no update method.
type TestRepository interface {
	Create(ctx context.Context, test *models.Test) error
	GetByID(ctx context.Context, id string) (*models.Test, error)
}

// AttemptRepository persists attempt state. The two conditional mutations
// return whether the row actually changed so racing callers can detect that
// another writer already performed the transition.
type AttemptRepository interface {
	Create(ctx context.Context, attempt *models.TestAttempt) error
	GetByID(ctx context.Context, id string) (*models.TestAttempt, error)

	// MergeResponse upserts a single question->position entry into the
	// attempt's response map without rewriting the whole map.
	MergeResponse(ctx context.Context, id string, questionID string, position int) error

	// AdvanceSection moves the attempt from fromIndex to fromIndex+1 and
	// resets the section clock, but only if the attempt is still in progress
	// at fromIndex. Returns false when another caller advanced first.
	AdvanceSection(ctx context.Context, id string, fromIndex int, startTime time.Time) (bool, error)

	// Complete performs the terminal transition: score, COMPLETED status and
	// submission timestamp in a single conditional update keyed on fromIndex.
	Complete(ctx context.Context, id string, fromIndex int, score int, submittedAt time.Time) (bool, error)
}

// Repository aggregates the per-entity repositories behind one handle.
type Repository interface {
	Catalog() CatalogRepository
	Question() QuestionRepository
	Test() TestRepository
	Attempt() AttemptRepository
}
