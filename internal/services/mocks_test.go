package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/cetprep/mocktest-service/internal/events"
	"github.com/cetprep/mocktest-service/internal/models"
	"github.com/cetprep/mocktest-service/internal/repositories"
	"github.com/cetprep/mocktest-service/internal/utils"
	"github.com/stretchr/testify/mock"
)

// MockCatalogRepository is a mock implementation of CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetStandard(ctx context.Context, level models.StandardLevel) (*models.Standard, error) {
	args := m.Called(ctx, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Standard), args.Error(1)
}

func (m *MockCatalogRepository) GetSubject(ctx context.Context, standardID string, code models.SubjectCode) (*models.Subject, error) {
	args := m.Called(ctx, standardID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subject), args.Error(1)
}

func (m *MockCatalogRepository) ListSubjects(ctx context.Context) ([]*models.Subject, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subject), args.Error(1)
}

func (m *MockCatalogRepository) ListChapters(ctx context.Context, subjectID string) ([]*models.Chapter, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Chapter), args.Error(1)
}

func (m *MockCatalogRepository) GetChapterByName(ctx context.Context, subjectID, name string) (*models.Chapter, error) {
	args := m.Called(ctx, subjectID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chapter), args.Error(1)
}

// MockQuestionRepository is a mock implementation of QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) SampleRandomIDs(ctx context.Context, filters repositories.RandomQuestionFilters) ([]string, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockQuestionRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Question, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetAnswerKeys(ctx context.Context, ids []string) ([]repositories.AnswerKey, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.AnswerKey), args.Error(1)
}

func (m *MockQuestionRepository) CreateBatch(ctx context.Context, questions []*models.Question) error {
	args := m.Called(ctx, questions)
	return args.Error(0)
}

func (m *MockQuestionRepository) Count(ctx context.Context, subjectID string) (int64, error) {
	args := m.Called(ctx, subjectID)
	return args.Get(0).(int64), args.Error(1)
}

// MockTestRepository is a mock implementation of TestRepository
type MockTestRepository struct {
	mock.Mock
}

func (m *MockTestRepository) Create(ctx context.Context, test *models.Test) error {
	args := m.Called(ctx, test)
	return args.Error(0)
}

func (m *MockTestRepository) GetByID(ctx context.Context, id string) (*models.Test, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Test), args.Error(1)
}

// MockAttemptRepository is a mock implementation of AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Create(ctx context.Context, attempt *models.TestAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) GetByID(ctx context.Context, id string) (*models.TestAttempt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TestAttempt), args.Error(1)
}

func (m *MockAttemptRepository) MergeResponse(ctx context.Context, id string, questionID string, position int) error {
	args := m.Called(ctx, id, questionID, position)
	return args.Error(0)
}

func (m *MockAttemptRepository) AdvanceSection(ctx context.Context, id string, fromIndex int, startTime time.Time) (bool, error) {
	args := m.Called(ctx, id, fromIndex, startTime)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttemptRepository) Complete(ctx context.Context, id string, fromIndex int, score int, submittedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, fromIndex, score, submittedAt)
	return args.Bool(0), args.Error(1)
}

// MockScorerService is a mock implementation of ScorerService
type MockScorerService struct {
	mock.Mock
}

func (m *MockScorerService) Score(ctx context.Context, attempt *models.TestAttempt) (int, error) {
	args := m.Called(ctx, attempt)
	return args.Int(0), args.Error(1)
}

// mockRepository aggregates the per-entity mocks behind the Repository
// interface. Fields left nil by a test simply must not be reached.
type mockRepository struct {
	catalog  *MockCatalogRepository
	question *MockQuestionRepository
	test     *MockTestRepository
	attempt  *MockAttemptRepository
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		catalog:  &MockCatalogRepository{},
		question: &MockQuestionRepository{},
		test:     &MockTestRepository{},
		attempt:  &MockAttemptRepository{},
	}
}

func (m *mockRepository) Catalog() repositories.CatalogRepository { return m.catalog }
func (m *mockRepository) Question() repositories.QuestionRepository {
	return m.question
}
func (m *mockRepository) Test() repositories.TestRepository       { return m.test }
func (m *mockRepository) Attempt() repositories.AttemptRepository { return m.attempt }

func newTestLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestPublisher() events.EventPublisher {
	return events.NewMockEventPublisher(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
