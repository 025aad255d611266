package services

import (
	"context"
	"testing"

	"github.com/cetprep/mocktest-service/internal/models"
	"github.com/cetprep/mocktest-service/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func TestScore_WeightsMathsDouble(t *testing.T) {
	repo := newMockRepository()

	attempt := &models.TestAttempt{
		ID: "attempt-1",
		Responses: datatypes.NewJSONType(map[string]int{
			"q-maths": 3, // correct, worth 2
			"q-phys":  1, // wrong
			"q-chem":  2, // correct, worth 1
		}),
	}

	repo.question.On("GetAnswerKeys", mock.Anything, mock.MatchedBy(func(ids []string) bool {
		return len(ids) == 3
	})).Return([]repositories.AnswerKey{
		{QuestionID: "q-maths", CorrectOptionOrder: 3, SubjectCode: models.SubjectMaths1},
		{QuestionID: "q-phys", CorrectOptionOrder: 4, SubjectCode: models.SubjectPhysics},
		{QuestionID: "q-chem", CorrectOptionOrder: 2, SubjectCode: models.SubjectChemistry},
	}, nil)

	svc := NewScorerService(repo, newTestLogger())
	score, err := svc.Score(context.Background(), attempt)

	require.NoError(t, err)
	assert.Equal(t, 3, score)
}

func TestScore_EmptyResponsesSkipsBank(t *testing.T) {
	repo := newMockRepository()
	svc := NewScorerService(repo, newTestLogger())

	score, err := svc.Score(context.Background(), &models.TestAttempt{ID: "attempt-1"})

	require.NoError(t, err)
	assert.Zero(t, score)
	repo.question.AssertNotCalled(t, "GetAnswerKeys", mock.Anything, mock.Anything)
}

func TestScore_IgnoresDanglingResponses(t *testing.T) {
	repo := newMockRepository()

	// A response for a question the bank no longer knows contributes nothing.
	attempt := &models.TestAttempt{
		ID:        "attempt-1",
		Responses: datatypes.NewJSONType(map[string]int{"q-gone": 1, "q-bio": 2}),
	}
	repo.question.On("GetAnswerKeys", mock.Anything, mock.Anything).Return([]repositories.AnswerKey{
		{QuestionID: "q-bio", CorrectOptionOrder: 2, SubjectCode: models.SubjectBiology},
	}, nil)

	svc := NewScorerService(repo, newTestLogger())
	score, err := svc.Score(context.Background(), attempt)

	require.NoError(t, err)
	assert.Equal(t, 1, score)
}

func TestScore_BankFailure(t *testing.T) {
	repo := newMockRepository()
	repo.question.On("GetAnswerKeys", mock.Anything, mock.Anything).Return(nil, gorm.ErrInvalidDB)

	svc := NewScorerService(repo, newTestLogger())
	_, err := svc.Score(context.Background(), &models.TestAttempt{
		ID:        "attempt-1",
		Responses: datatypes.NewJSONType(map[string]int{"q1": 1}),
	})

	assert.True(t, IsPersistence(err))
}
