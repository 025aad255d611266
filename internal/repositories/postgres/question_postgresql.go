package postgres

import (
	"context"

	"github.com/cetprep/mocktest-service/internal/models"
	"github.com/cetprep/mocktest-service/internal/repositories"
	"gorm.io/gorm"
)

type QuestionPostgreSQL struct {
	db *gorm.DB
}

func NewQuestionPostgreSQL(db *gorm.DB) repositories.QuestionRepository {
	return &QuestionPostgreSQL{db: db}
}

func (q *QuestionPostgreSQL) SampleRandomIDs(ctx context.Context, filters repositories.RandomQuestionFilters) ([]string, error) {
	if filters.Count <= 0 {
		return nil, nil
	}

	query := q.db.WithContext(ctx).Model(&models.Question{})

	if len(filters.ChapterIDs) > 0 {
		query = query.Where("chapter_id IN ?", filters.ChapterIDs)
	}
	if filters.SubjectID != nil {
		query = query.Where("subject_id = ?", *filters.SubjectID)
	}
	if filters.Standard != nil {
		query = query.Where("standard = ?", *filters.Standard)
	}
	if len(filters.ExcludeIDs) > 0 {
		query = query.Where("id NOT IN ?", filters.ExcludeIDs)
	}

	var ids []string
	if err := query.
		Order("RANDOM()").
		Limit(filters.Count).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (q *QuestionPostgreSQL) GetByIDs(ctx context.Context, ids []string) ([]*models.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var questions []*models.Question
	if err := q.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order(`"order" ASC`)
		}).
		Where("id IN ?", ids).
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (q *QuestionPostgreSQL) GetAnswerKeys(ctx context.Context, ids []string) ([]repositories.AnswerKey, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var keys []repositories.AnswerKey
	if err := q.db.WithContext(ctx).
		Table("questions").
		Select("questions.id AS question_id, questions.correct_option_order, subjects.code AS subject_code").
		Joins("JOIN subjects ON subjects.id = questions.subject_id").
		Where("questions.id IN ?", ids).
		Scan(&keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

func (q *QuestionPostgreSQL) CreateBatch(ctx context.Context, questions []*models.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return q.db.WithContext(ctx).Create(questions).Error
}

func (q *QuestionPostgreSQL) Count(ctx context.Context, subjectID string) (int64, error) {
	var count int64
	err := q.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("subject_id = ?", subjectID).
		Count(&count).Error
	return count, err
}
