package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/cetprep/mocktest-service/internal/cache"
	"github.com/cetprep/mocktest-service/internal/events"
	"github.com/cetprep/mocktest-service/internal/models"
	"github.com/cetprep/mocktest-service/internal/repositories"
	"github.com/cetprep/mocktest-service/internal/utils"
	"gorm.io/datatypes"
)

// GeneratorService assembles randomized, syllabus-weighted papers and
// persists them as frozen Tests.
type GeneratorService interface {
	Generate(ctx context.Context, testType models.TestType) (string, error)
	GetTest(ctx context.Context, testID string) (*TestSummary, error)
}

// TestSummary is the blueprint metadata exposed to clients: section shapes
// only, never the question ids.
type TestSummary struct {
	ID        string           `json:"id"`
	Type      models.TestType  `json:"type"`
	Sections  []SectionSummary `json:"sections"`
	CreatedAt time.Time        `json:"created_at"`
}

type SectionSummary struct {
	QuestionCount    int `json:"question_count"`
	TimeLimitMinutes int `json:"time_limit_minutes"`
}

type generatorService struct {
	repo      repositories.Repository
	rules     RuleProvider
	cacheSvc  cache.CacheService
	publisher events.EventPublisher
	logger    utils.Logger
}

func NewGeneratorService(
	repo repositories.Repository,
	rules RuleProvider,
	cacheSvc cache.CacheService,
	publisher events.EventPublisher,
	logger utils.Logger,
) GeneratorService {
	return &generatorService{
		repo:      repo,
		rules:     rules,
		cacheSvc:  cacheSvc,
		publisher: publisher,
		logger:    logger,
	}
}

// Generate builds one paper for the given exam type. Each section's total is
// floor-split across its subjects; the remainder is absorbed by randomness
// rather than rebalanced. Shortfalls produce a short section and a warning,
// never a partial Test row: the single Create at the end is the only write.
func (g *generatorService) Generate(ctx context.Context, testType models.TestType) (string, error) {
	blueprint, err := BlueprintFor(testType)
	if err != nil {
		return "", err
	}

	g.logger.Info("Generating test paper", "test_type", testType)

	sections := make([]models.Section, 0, len(blueprint))
	sectionSizes := make([]int, 0, len(blueprint))

	for i, tmpl := range blueprint {
		perSubject := tmpl.Count / len(tmpl.Subjects)

		var ids []string
		for _, code := range tmpl.Subjects {
			subjectIDs, err := g.sampleSubject(ctx, code, perSubject)
			if err != nil {
				return "", err
			}
			ids = append(ids, subjectIDs...)
		}

		if len(ids) == 0 {
			return "", fmt.Errorf("%w: section %d of %s has no questions at all", ErrInsufficientQuestionPool, i, testType)
		}
		if len(ids) < tmpl.Count {
			g.logger.Warn("Section below target count, proceeding short",
				"test_type", testType,
				"section", i,
				"target", tmpl.Count,
				"actual", len(ids))
		}

		// The shuffled order becomes the canonical display order.
		rand.Shuffle(len(ids), func(a, b int) { ids[a], ids[b] = ids[b], ids[a] })

		sections = append(sections, models.Section{
			QuestionIDs: ids,
			TimeLimit:   tmpl.TimeMinutes,
		})
		sectionSizes = append(sectionSizes, len(ids))
	}

	test := &models.Test{
		Type:        testType,
		QuestionSet: datatypes.NewJSONType(sections),
	}
	if err := g.repo.Test().Create(ctx, test); err != nil {
		return "", NewPersistenceError("create test", err)
	}

	if err := g.cacheSvc.Set(ctx, testCacheKey(test.ID), test, testCacheTTL); err != nil {
		g.logger.Warn("Failed to cache generated test", "test_id", test.ID, "error", err)
	}
	if err := g.publisher.PublishExamEvent(ctx, events.NewTestGeneratedEvent(test.ID, string(testType), sectionSizes)); err != nil {
		g.logger.Warn("Failed to publish test generated event", "test_id", test.ID, "error", err)
	}

	g.logger.Info("Test paper generated", "test_id", test.ID, "test_type", testType, "section_sizes", sectionSizes)
	return test.ID, nil
}

// GetTest returns the section shapes of a frozen test.
func (g *generatorService) GetTest(ctx context.Context, testID string) (*TestSummary, error) {
	test, err := fetchTest(ctx, g.repo, g.cacheSvc, g.logger, testID)
	if err != nil {
		return nil, err
	}

	summary := &TestSummary{ID: test.ID, Type: test.Type, CreatedAt: test.CreatedAt}
	for _, section := range test.Sections() {
		summary.Sections = append(summary.Sections, SectionSummary{
			QuestionCount:    len(section.QuestionIDs),
			TimeLimitMinutes: section.TimeLimit,
		})
	}
	return summary, nil
}

// tierSample is the outcome of sampling one standard tier of a subject.
type tierSample struct {
	chosen  []string
	touched []string // chapter ids the rules actually matched
	subject *models.Subject
}

// sampleSubject draws a subject's allocation across both standard tiers:
// senior (STD_12) first at round(total*0.8), then junior (STD_11) with the
// remaining slots. Each fallback layer excludes everything chosen so far.
func (g *generatorService) sampleSubject(ctx context.Context, code models.SubjectCode, total int) ([]string, error) {
	std12, err := g.getStandard(ctx, models.Standard12)
	if err != nil {
		return nil, err
	}
	std11, err := g.getStandard(ctx, models.Standard11)
	if err != nil {
		return nil, err
	}

	seniorTarget := SeniorTarget(total)

	senior, err := g.sampleTier(ctx, code, std12, models.Standard12, nil)
	if err != nil {
		return nil, err
	}
	if len(senior.chosen) < seniorTarget && senior.subject != nil {
		filled, err := g.fillFromSubject(ctx, senior.subject.ID, senior.chosen, seniorTarget-len(senior.chosen))
		if err != nil {
			return nil, err
		}
		senior.chosen = append(senior.chosen, filled...)
	}

	juniorTarget := total - len(senior.chosen)

	junior, err := g.sampleTier(ctx, code, std11, models.Standard11, senior.chosen)
	if err != nil {
		return nil, err
	}
	if len(junior.chosen) < juniorTarget && junior.subject != nil {
		// Prefer the chapters the junior rules already touched so the fill
		// stays thematically close, then fall back to the whole subject.
		exclude := append(append([]string{}, senior.chosen...), junior.chosen...)
		if len(junior.touched) > 0 {
			filled, err := g.sampleIDs(ctx, repositories.RandomQuestionFilters{
				ChapterIDs: junior.touched,
				ExcludeIDs: exclude,
				Count:      juniorTarget - len(junior.chosen),
			})
			if err != nil {
				return nil, err
			}
			junior.chosen = append(junior.chosen, filled...)
			exclude = append(exclude, filled...)
		}
		if len(junior.chosen) < juniorTarget {
			filled, err := g.fillFromSubject(ctx, junior.subject.ID, exclude, juniorTarget-len(junior.chosen))
			if err != nil {
				return nil, err
			}
			junior.chosen = append(junior.chosen, filled...)
		}
	}

	combined := append(senior.chosen, junior.chosen...)
	if len(combined) < total {
		g.logger.Warn("Subject allocation below target after all fallbacks",
			"subject_code", code,
			"target", total,
			"actual", len(combined))
	}
	return combined, nil
}

// sampleTier runs the weighting rules of one tier: match chapters by topic
// substring, pool their questions, draw each rule's target count. A tier
// with no rules draws nothing here and is filled entirely by the fallback
// layers; that is flagged loudly since it is indistinguishable from a
// misconfigured rule set.
func (g *generatorService) sampleTier(ctx context.Context, code models.SubjectCode, standard *models.Standard, level models.StandardLevel, exclude []string) (*tierSample, error) {
	sample := &tierSample{}

	subject, err := g.repo.Catalog().GetSubject(ctx, standard.ID, code)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			g.logger.Warn("Subject missing for standard, skipping tier", "subject_code", code, "standard", level)
			return sample, nil
		}
		return nil, NewPersistenceError("get subject", err)
	}
	sample.subject = subject

	rules := g.rules.Rules(code, level)
	if len(rules) == 0 {
		g.logger.Warn("No weighting rules configured for tier, drawing entirely from fallback pool",
			"subject_code", code,
			"standard", level)
		return sample, nil
	}

	chapters, err := g.repo.Catalog().ListChapters(ctx, subject.ID)
	if err != nil {
		return nil, NewPersistenceError("list chapters", err)
	}

	touched := make(map[string]bool)
	for _, rule := range rules {
		var pool []string
		for _, chapter := range chapters {
			if MatchesTopic(chapter.Name, rule.Topics) {
				pool = append(pool, chapter.ID)
				touched[chapter.ID] = true
			}
		}
		if len(pool) == 0 {
			continue
		}

		ids, err := g.sampleIDs(ctx, repositories.RandomQuestionFilters{
			ChapterIDs: pool,
			ExcludeIDs: append(append([]string{}, exclude...), sample.chosen...),
			Count:      rule.Count,
		})
		if err != nil {
			return nil, err
		}
		sample.chosen = append(sample.chosen, ids...)
	}

	for id := range touched {
		sample.touched = append(sample.touched, id)
	}
	return sample, nil
}

func (g *generatorService) fillFromSubject(ctx context.Context, subjectID string, exclude []string, count int) ([]string, error) {
	return g.sampleIDs(ctx, repositories.RandomQuestionFilters{
		SubjectID:  &subjectID,
		ExcludeIDs: exclude,
		Count:      count,
	})
}

func (g *generatorService) sampleIDs(ctx context.Context, filters repositories.RandomQuestionFilters) ([]string, error) {
	ids, err := g.repo.Question().SampleRandomIDs(ctx, filters)
	if err != nil {
		return nil, NewPersistenceError("sample questions", err)
	}
	return ids, nil
}

func (g *generatorService) getStandard(ctx context.Context, level models.StandardLevel) (*models.Standard, error) {
	standard, err := g.repo.Catalog().GetStandard(ctx, level)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrStandardNotFound, level)
		}
		return nil, NewPersistenceError("get standard", err)
	}
	return standard, nil
}

const testCacheTTL = 24 * time.Hour

func testCacheKey(id string) string {
	return "test:" + id
}

// fetchTest reads a frozen test through the blueprint cache. Tests are
// immutable, so a cached copy can never be stale.
func fetchTest(ctx context.Context, repo repositories.Repository, cacheSvc cache.CacheService, logger utils.Logger, testID string) (*models.Test, error) {
	var cached models.Test
	if err := cacheSvc.Get(ctx, testCacheKey(testID), &cached); err == nil {
		return &cached, nil
	}

	test, err := repo.Test().GetByID(ctx, testID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTestNotFound
		}
		return nil, NewPersistenceError("get test", err)
	}

	if err := cacheSvc.Set(ctx, testCacheKey(testID), test, testCacheTTL); err != nil {
		logger.Warn("Failed to cache test", "test_id", testID, "error", err)
	}
	return test, nil
}
