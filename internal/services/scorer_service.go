package services

import (
	"context"

	"github.com/cetprep/mocktest-service/internal/models"
	"github.com/cetprep/mocktest-service/internal/repositories"
	"github.com/cetprep/mocktest-service/internal/utils"
)

// ScorerService computes an attempt's final score from its response map and
// the bank's answer keys.
type ScorerService interface {
	Score(ctx context.Context, attempt *models.TestAttempt) (int, error)
}

type scorerService struct {
	repo   repositories.Repository
	logger utils.Logger
}

func NewScorerService(repo repositories.Repository, logger utils.Logger) ScorerService {
	return &scorerService{repo: repo, logger: logger}
}

// Score awards marks only on exact option-position matches: 2 marks for
// either Maths subject, 1 for everything else. Unanswered questions
// contribute nothing and are not penalized. An empty response map scores 0
// without touching the question bank.
func (s *scorerService) Score(ctx context.Context, attempt *models.TestAttempt) (int, error) {
	responses := attempt.ResponseMap()
	if len(responses) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(responses))
	for id := range responses {
		ids = append(ids, id)
	}

	keys, err := s.repo.Question().GetAnswerKeys(ctx, ids)
	if err != nil {
		return 0, NewPersistenceError("load answer keys", err)
	}

	total := 0
	for _, key := range keys {
		if responses[key.QuestionID] == key.CorrectOptionOrder {
			total += marksFor(key.SubjectCode)
		}
	}

	s.logger.Debug("Attempt scored",
		"attempt_id", attempt.ID,
		"answered", len(responses),
		"score", total)
	return total, nil
}

func marksFor(code models.SubjectCode) int {
	if code == models.SubjectMaths1 || code == models.SubjectMaths2 {
		return 2
	}
	return 1
}
