package services

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/cetprep/mocktest-service/internal/cache"
	"github.com/cetprep/mocktest-service/internal/events"
	"github.com/cetprep/mocktest-service/internal/models"
	"github.com/cetprep/mocktest-service/internal/repositories"
	"github.com/cetprep/mocktest-service/internal/utils"
	"gorm.io/datatypes"
)

// RunnerService drives a user's attempt through the sections of a frozen
// test: start, poll state, autosave responses, advance sections, and trigger
// scoring on the terminal transition.
type RunnerService interface {
	Start(ctx context.Context, testID, userID string) (string, error)
	GetState(ctx context.Context, attemptID string) (*AttemptState, error)
	SubmitResponse(ctx context.Context, attemptID, questionID string, optionPosition int) error
	AdvanceSection(ctx context.Context, attemptID string) error
}

// AttemptState is what a polling client sees. The answer key is never part
// of it.
type AttemptState struct {
	Status          models.AttemptStatus `json:"status"`
	SectionIndex    int                  `json:"section_index"`
	TimeLeftMinutes float64              `json:"time_left_minutes"`
	Questions       []QuestionView       `json:"questions,omitempty"`
	Responses       map[string]int       `json:"responses,omitempty"`
	Score           *int                 `json:"score,omitempty"`
	Analytics       json.RawMessage      `json:"analytics,omitempty"`
}

type QuestionView struct {
	ID      string       `json:"id"`
	Text    string       `json:"text"`
	Options []OptionView `json:"options"`
}

type OptionView struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Order int    `json:"order"`
}

type runnerService struct {
	repo      repositories.Repository
	scorer    ScorerService
	cacheSvc  cache.CacheService
	publisher events.EventPublisher
	logger    utils.Logger

	// now is injectable so section-timeout behavior is testable.
	now func() time.Time
}

func NewRunnerService(
	repo repositories.Repository,
	scorer ScorerService,
	cacheSvc cache.CacheService,
	publisher events.EventPublisher,
	logger utils.Logger,
) RunnerService {
	return &runnerService{
		repo:      repo,
		scorer:    scorer,
		cacheSvc:  cacheSvc,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Start creates a new IN_PROGRESS attempt at section 0.
func (s *runnerService) Start(ctx context.Context, testID, userID string) (string, error) {
	if _, err := s.getTest(ctx, testID); err != nil {
		return "", err
	}

	attempt := &models.TestAttempt{
		TestID:           testID,
		UserID:           userID,
		Status:           models.AttemptInProgress,
		SectionStartTime: s.now(),
		Responses:        datatypes.NewJSONType(map[string]int{}),
	}
	if err := s.repo.Attempt().Create(ctx, attempt); err != nil {
		return "", NewPersistenceError("create attempt", err)
	}

	if err := s.publisher.PublishExamEvent(ctx, events.NewAttemptStartedEvent(attempt.ID, testID, userID)); err != nil {
		s.logger.Warn("Failed to publish attempt started event", "attempt_id", attempt.ID, "error", err)
	}

	s.logger.Info("Attempt started", "attempt_id", attempt.ID, "test_id", testID, "user_id", userID)
	return attempt.ID, nil
}

// GetState reports the attempt's current section. The read path is also the
// timeout enforcer: when the section clock has run out it performs the same
// advance transition an explicit submit-section would, then recomputes state
// for whatever section the attempt landed on. There is no background timer.
func (s *runnerService) GetState(ctx context.Context, attemptID string) (*AttemptState, error) {
	attempt, err := s.getAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	test, err := s.getTest(ctx, attempt.TestID)
	if err != nil {
		return nil, err
	}
	sections := test.Sections()

	// Each expired section costs one iteration, so the loop is bounded by
	// the section count even when every section has timed out unvisited.
	for i := 0; i < len(sections)+1; i++ {
		if attempt.Status == models.AttemptCompleted || attempt.CurrentSectionIndex >= len(sections) {
			return completedState(attempt), nil
		}

		section := sections[attempt.CurrentSectionIndex]
		limit := time.Duration(section.TimeLimit) * time.Minute
		elapsed := s.now().Sub(attempt.SectionStartTime)

		if elapsed <= limit {
			return s.buildSectionState(ctx, attempt, section, limit-elapsed)
		}

		if err := s.tick(ctx, attempt, sections); err != nil {
			return nil, err
		}
		if attempt, err = s.getAttempt(ctx, attemptID); err != nil {
			return nil, err
		}
	}

	return nil, ErrInternalError
}

// SubmitResponse autosaves one answer: an idempotent per-question upsert
// where the last write wins. By contract it does not check that the question
// belongs to the current (or any) section, and it does not enforce the
// section clock; a response landing after expiry but before the next state
// poll is accepted.
func (s *runnerService) SubmitResponse(ctx context.Context, attemptID, questionID string, optionPosition int) error {
	if optionPosition < 1 || optionPosition > models.OptionsPerQuestion {
		return ErrInvalidOptionPosition
	}

	if err := s.repo.Attempt().MergeResponse(ctx, attemptID, questionID, optionPosition); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAttemptNotFound
		}
		return NewPersistenceError("merge response", err)
	}
	return nil
}

// AdvanceSection is the explicit submit-section transition. On a terminal
// attempt it is a no-op.
func (s *runnerService) AdvanceSection(ctx context.Context, attemptID string) error {
	attempt, err := s.getAttempt(ctx, attemptID)
	if err != nil {
		return err
	}
	if attempt.Status == models.AttemptCompleted {
		return nil
	}
	test, err := s.getTest(ctx, attempt.TestID)
	if err != nil {
		return err
	}
	return s.tick(ctx, attempt, test.Sections())
}

// tick performs one section-boundary transition from the state the caller
// observed. The repository-level update is conditional on that observed
// section index, so when the timeout path and an explicit submit race, only
// one of them actually moves the attempt; the loser is a silent no-op.
func (s *runnerService) tick(ctx context.Context, attempt *models.TestAttempt, sections []models.Section) error {
	next := attempt.CurrentSectionIndex + 1
	if next < len(sections) {
		applied, err := s.repo.Attempt().AdvanceSection(ctx, attempt.ID, attempt.CurrentSectionIndex, s.now())
		if err != nil {
			return NewPersistenceError("advance section", err)
		}
		if !applied {
			s.logger.Debug("Section advance already performed by concurrent caller", "attempt_id", attempt.ID)
		}
		return nil
	}

	// Past the last section: score, then complete. The conditional update
	// guarantees the score is written exactly once even under racing
	// finalizers.
	score, err := s.scorer.Score(ctx, attempt)
	if err != nil {
		return err
	}
	applied, err := s.repo.Attempt().Complete(ctx, attempt.ID, attempt.CurrentSectionIndex, score, s.now())
	if err != nil {
		return NewPersistenceError("complete attempt", err)
	}
	if applied {
		s.logger.Info("Attempt completed", "attempt_id", attempt.ID, "score", score)
		if err := s.publisher.PublishExamEvent(ctx, events.NewAttemptCompletedEvent(attempt.ID, attempt.TestID, attempt.UserID, score)); err != nil {
			s.logger.Warn("Failed to publish attempt completed event", "attempt_id", attempt.ID, "error", err)
		}
	}
	return nil
}

func (s *runnerService) buildSectionState(ctx context.Context, attempt *models.TestAttempt, section models.Section, remaining time.Duration) (*AttemptState, error) {
	questions, err := s.repo.Question().GetByIDs(ctx, section.QuestionIDs)
	if err != nil {
		return nil, NewPersistenceError("load section questions", err)
	}

	views := make([]QuestionView, 0, len(questions))
	for _, q := range questions {
		options := make([]OptionView, 0, len(q.Options))
		for _, opt := range q.Options {
			options = append(options, OptionView{ID: opt.ID, Text: opt.OptionText, Order: opt.Order})
		}
		views = append(views, QuestionView{ID: q.ID, Text: q.QuestionText, Options: options})
	}

	// Restore the frozen shuffle order.
	order := make(map[string]int, len(section.QuestionIDs))
	for i, id := range section.QuestionIDs {
		order[id] = i
	}
	sort.Slice(views, func(a, b int) bool {
		return order[views[a].ID] < order[views[b].ID]
	})

	return &AttemptState{
		Status:          models.AttemptInProgress,
		SectionIndex:    attempt.CurrentSectionIndex,
		TimeLeftMinutes: remaining.Minutes(),
		Questions:       views,
		Responses:       attempt.ResponseMap(),
	}, nil
}

func completedState(attempt *models.TestAttempt) *AttemptState {
	return &AttemptState{
		Status:       models.AttemptCompleted,
		SectionIndex: attempt.CurrentSectionIndex,
		Score:        attempt.Score,
		Analytics:    json.RawMessage(attempt.Analytics),
	}
}

func (s *runnerService) getAttempt(ctx context.Context, attemptID string) (*models.TestAttempt, error) {
	attempt, err := s.repo.Attempt().GetByID(ctx, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, NewPersistenceError("get attempt", err)
	}
	return attempt, nil
}

func (s *runnerService) getTest(ctx context.Context, testID string) (*models.Test, error) {
	return fetchTest(ctx, s.repo, s.cacheSvc, s.logger, testID)
}
