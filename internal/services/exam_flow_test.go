package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cetprep/mocktest-service/internal/cache"
	"github.com/cetprep/mocktest-service/internal/models"
	"github.com/cetprep/mocktest-service/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TestExamFlow_FinalSubmitScoresWeighted runs the runner with the real scorer:
// submitting the last section must write the Maths-weighted total in the same
// transition that completes the attempt.
func TestExamFlow_FinalSubmitScoresWeighted(t *testing.T) {
	repo := newMockRepository()
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	test := &models.Test{
		ID:   "test-1",
		Type: models.TestTypePCM,
		QuestionSet: datatypes.NewJSONType([]models.Section{
			{QuestionIDs: []string{"q-phys", "q-chem"}, TimeLimit: 90},
			{QuestionIDs: []string{"q-maths"}, TimeLimit: 90},
		}),
	}
	attempt := &models.TestAttempt{
		ID:                  "attempt-1",
		TestID:              "test-1",
		UserID:              "user-1",
		Status:              models.AttemptInProgress,
		CurrentSectionIndex: 1,
		SectionStartTime:    now.Add(-5 * time.Minute),
		Responses: datatypes.NewJSONType(map[string]int{
			"q-phys":  1, // correct: 1 mark
			"q-chem":  4, // wrong
			"q-maths": 2, // correct: 2 marks
		}),
	}

	repo.test.On("GetByID", mock.Anything, "test-1").Return(test, nil)
	repo.attempt.On("GetByID", mock.Anything, "attempt-1").Return(attempt, nil)
	repo.question.On("GetAnswerKeys", mock.Anything, mock.MatchedBy(func(ids []string) bool {
		return len(ids) == 3
	})).Return([]repositories.AnswerKey{
		{QuestionID: "q-phys", CorrectOptionOrder: 1, SubjectCode: models.SubjectPhysics},
		{QuestionID: "q-chem", CorrectOptionOrder: 2, SubjectCode: models.SubjectChemistry},
		{QuestionID: "q-maths", CorrectOptionOrder: 2, SubjectCode: models.SubjectMaths2},
	}, nil)
	repo.attempt.On("Complete", mock.Anything, "attempt-1", 1, 3, now).Return(true, nil)

	scorer := NewScorerService(repo, newTestLogger())
	svc := newRunnerForTest(repo, scorer)
	svc.now = func() time.Time { return now }

	require.NoError(t, svc.AdvanceSection(context.Background(), "attempt-1"))
	repo.attempt.AssertExpectations(t)
}

// ===== IN-MEMORY FAKES FOR THE FULL FLOW =====

// The full-flow test wires the real generator, runner and scorer against
// in-memory stores that keep the conditional-update semantics of the
// postgres layer.

type e2eCatalog struct{}

func (e2eCatalog) GetStandard(ctx context.Context, level models.StandardLevel) (*models.Standard, error) {
	if level == models.Standard12 {
		return &models.Standard{ID: "std12", Standard: level}, nil
	}
	return &models.Standard{ID: "std11", Standard: level}, nil
}

func (e2eCatalog) GetSubject(ctx context.Context, standardID string, code models.SubjectCode) (*models.Subject, error) {
	suffix := "11"
	if standardID == "std12" {
		suffix = "12"
	}
	return &models.Subject{ID: string(code) + "-" + suffix, Code: code, StandardID: standardID}, nil
}

func (e2eCatalog) ListSubjects(ctx context.Context) ([]*models.Subject, error) { return nil, nil }
func (e2eCatalog) ListChapters(ctx context.Context, subjectID string) ([]*models.Chapter, error) {
	return nil, nil
}
func (e2eCatalog) GetChapterByName(ctx context.Context, subjectID, name string) (*models.Chapter, error) {
	return nil, gorm.ErrRecordNotFound
}

type bankEntry struct {
	id         string
	subjectRow string
	code       models.SubjectCode
	correct    int
}

type e2eBank struct {
	entries []bankEntry
	byID    map[string]bankEntry
}

func newE2EBank(codes []models.SubjectCode, perTier int) *e2eBank {
	b := &e2eBank{byID: make(map[string]bankEntry)}
	for _, code := range codes {
		for _, suffix := range []string{"12", "11"} {
			row := string(code) + "-" + suffix
			for i := 0; i < perTier; i++ {
				entry := bankEntry{
					id:         fmt.Sprintf("%s-q%d", row, i),
					subjectRow: row,
					code:       code,
					correct:    i%models.OptionsPerQuestion + 1,
				}
				b.entries = append(b.entries, entry)
				b.byID[entry.id] = entry
			}
		}
	}
	return b
}

func (b *e2eBank) SampleRandomIDs(ctx context.Context, filters repositories.RandomQuestionFilters) ([]string, error) {
	excluded := make(map[string]bool, len(filters.ExcludeIDs))
	for _, id := range filters.ExcludeIDs {
		excluded[id] = true
	}
	var ids []string
	for _, entry := range b.entries {
		if len(ids) == filters.Count {
			break
		}
		if filters.SubjectID != nil && entry.subjectRow != *filters.SubjectID {
			continue
		}
		if excluded[entry.id] {
			continue
		}
		ids = append(ids, entry.id)
	}
	return ids, nil
}

func (b *e2eBank) GetByIDs(ctx context.Context, ids []string) ([]*models.Question, error) {
	var questions []*models.Question
	for _, id := range ids {
		if _, ok := b.byID[id]; !ok {
			continue
		}
		q := &models.Question{ID: id, QuestionText: "question " + id}
		for i := 1; i <= models.OptionsPerQuestion; i++ {
			q.Options = append(q.Options, models.Option{ID: fmt.Sprintf("%s-o%d", id, i), Order: i, OptionText: "option"})
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (b *e2eBank) GetAnswerKeys(ctx context.Context, ids []string) ([]repositories.AnswerKey, error) {
	var keys []repositories.AnswerKey
	for _, id := range ids {
		if entry, ok := b.byID[id]; ok {
			keys = append(keys, repositories.AnswerKey{
				QuestionID:         id,
				CorrectOptionOrder: entry.correct,
				SubjectCode:        entry.code,
			})
		}
	}
	return keys, nil
}

func (b *e2eBank) CreateBatch(ctx context.Context, questions []*models.Question) error { return nil }
func (b *e2eBank) Count(ctx context.Context, subjectID string) (int64, error)          { return 0, nil }

type e2eTests struct {
	test *models.Test
}

func (s *e2eTests) Create(ctx context.Context, test *models.Test) error {
	test.ID = "e2e-test"
	s.test = test
	return nil
}

func (s *e2eTests) GetByID(ctx context.Context, id string) (*models.Test, error) {
	if s.test == nil || s.test.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s.test
	return &cp, nil
}

type e2eAttempts struct {
	attempt *models.TestAttempt
}

func (s *e2eAttempts) Create(ctx context.Context, attempt *models.TestAttempt) error {
	attempt.ID = "e2e-attempt"
	cp := *attempt
	s.attempt = &cp
	return nil
}

func (s *e2eAttempts) GetByID(ctx context.Context, id string) (*models.TestAttempt, error) {
	if s.attempt == nil || s.attempt.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s.attempt
	return &cp, nil
}

func (s *e2eAttempts) MergeResponse(ctx context.Context, id string, questionID string, position int) error {
	if s.attempt == nil || s.attempt.ID != id {
		return gorm.ErrRecordNotFound
	}
	merged := map[string]int{}
	for k, v := range s.attempt.ResponseMap() {
		merged[k] = v
	}
	merged[questionID] = position
	s.attempt.Responses = datatypes.NewJSONType(merged)
	return nil
}

func (s *e2eAttempts) AdvanceSection(ctx context.Context, id string, fromIndex int, startTime time.Time) (bool, error) {
	if s.attempt == nil || s.attempt.ID != id ||
		s.attempt.Status != models.AttemptInProgress || s.attempt.CurrentSectionIndex != fromIndex {
		return false, nil
	}
	s.attempt.CurrentSectionIndex = fromIndex + 1
	s.attempt.SectionStartTime = startTime
	return true, nil
}

func (s *e2eAttempts) Complete(ctx context.Context, id string, fromIndex int, score int, submittedAt time.Time) (bool, error) {
	if s.attempt == nil || s.attempt.ID != id ||
		s.attempt.Status != models.AttemptInProgress || s.attempt.CurrentSectionIndex != fromIndex {
		return false, nil
	}
	s.attempt.Status = models.AttemptCompleted
	s.attempt.Score = &score
	s.attempt.SubmittedAt = &submittedAt
	return true, nil
}

type e2eRepository struct {
	bank     *e2eBank
	tests    *e2eTests
	attempts *e2eAttempts
}

func (r *e2eRepository) Catalog() repositories.CatalogRepository   { return e2eCatalog{} }
func (r *e2eRepository) Question() repositories.QuestionRepository { return r.bank }
func (r *e2eRepository) Test() repositories.TestRepository         { return r.tests }
func (r *e2eRepository) Attempt() repositories.AttemptRepository   { return r.attempts }

// TestExamFlow_GenerateToCompletion drives a PCM paper from generation
// through a fully correct attempt: 100 one-mark questions plus 50 two-mark
// Maths questions must land a final score of 200.
func TestExamFlow_GenerateToCompletion(t *testing.T) {
	ctx := context.Background()
	repo := &e2eRepository{
		bank: newE2EBank([]models.SubjectCode{
			models.SubjectPhysics, models.SubjectChemistry,
			models.SubjectMaths1, models.SubjectMaths2,
		}, 60),
		tests:    &e2eTests{},
		attempts: &e2eAttempts{},
	}

	generator := NewGeneratorService(repo, &stubRuleProvider{}, cache.NoopCache{}, newTestPublisher(), newTestLogger())
	scorer := NewScorerService(repo, newTestLogger())
	runner := NewRunnerService(repo, scorer, cache.NoopCache{}, newTestPublisher(), newTestLogger()).(*runnerService)
	now := time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC)
	runner.now = func() time.Time { return now }

	testID, err := generator.Generate(ctx, models.TestTypePCM)
	require.NoError(t, err)

	attemptID, err := runner.Start(ctx, testID, "user-1")
	require.NoError(t, err)

	answerSection := func(expectedIndex, expectedCount int) {
		state, err := runner.GetState(ctx, attemptID)
		require.NoError(t, err)
		require.Equal(t, models.AttemptInProgress, state.Status)
		require.Equal(t, expectedIndex, state.SectionIndex)
		require.Len(t, state.Questions, expectedCount)
		for _, q := range state.Questions {
			require.NoError(t, runner.SubmitResponse(ctx, attemptID, q.ID, repo.bank.byID[q.ID].correct))
		}
		require.NoError(t, runner.AdvanceSection(ctx, attemptID))
	}

	answerSection(0, 100)
	answerSection(1, 50)

	final, err := runner.GetState(ctx, attemptID)
	require.NoError(t, err)
	assert.Equal(t, models.AttemptCompleted, final.Status)
	require.NotNil(t, final.Score)
	assert.Equal(t, 200, *final.Score)
	assert.Empty(t, final.Questions)
}

func TestCatalogService_ListSubjects(t *testing.T) {
	repo := newMockRepository()
	subjects := []*models.Subject{
		{ID: "PHYS-12", Code: models.SubjectPhysics, StandardID: "std12"},
		{ID: "CHEM-12", Code: models.SubjectChemistry, StandardID: "std12"},
	}
	repo.catalog.On("ListSubjects", mock.Anything).Return(subjects, nil)

	svc := NewCatalogService(repo)
	got, err := svc.ListSubjects(context.Background())

	require.NoError(t, err)
	assert.Equal(t, subjects, got)
}

func TestCatalogService_ListChapters(t *testing.T) {
	repo := newMockRepository()
	chapters := []*models.Chapter{{ID: "ch-rot", Name: "Rotational Dynamics", SubjectID: "PHYS-12"}}
	repo.catalog.On("ListChapters", mock.Anything, "PHYS-12").Return(chapters, nil)

	svc := NewCatalogService(repo)
	got, err := svc.ListChapters(context.Background(), "PHYS-12")

	require.NoError(t, err)
	assert.Equal(t, chapters, got)
}
