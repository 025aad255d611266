package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cetprep/mocktest-service/internal/models"
	"github.com/cetprep/mocktest-service/internal/repositories"
	"gorm.io/gorm"
)

type AttemptPostgreSQL struct {
	db *gorm.DB
}

func NewAttemptPostgreSQL(db *gorm.DB) repositories.AttemptRepository {
	return &AttemptPostgreSQL{db: db}
}

func (a *AttemptPostgreSQL) Create(ctx context.Context, attempt *models.TestAttempt) error {
	return a.db.WithContext(ctx).Create(attempt).Error
}

func (a *AttemptPostgreSQL) GetByID(ctx context.Context, id string) (*models.TestAttempt, error) {
	var attempt models.TestAttempt
	if err := a.db.WithContext(ctx).Where("id = ?", id).First(&attempt).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

// MergeResponse writes a single response entry with a server-side jsonb
// merge. Concurrent merges for different questions on the same attempt
// compose instead of overwriting each other; the last write for the same
// question wins.
func (a *AttemptPostgreSQL) MergeResponse(ctx context.Context, id string, questionID string, position int) error {
	entry, err := json.Marshal(map[string]int{questionID: position})
	if err != nil {
		return fmt.Errorf("failed to encode response entry: %w", err)
	}

	result := a.db.WithContext(ctx).
		Model(&models.TestAttempt{}).
		Where("id = ?", id).
		Update("responses", gorm.Expr("COALESCE(responses, '{}'::jsonb) || ?::jsonb", string(entry)))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AdvanceSection is a conditional update keyed on the section index the
// caller observed. When two callers race on the same boundary only the first
// one matches the WHERE clause; the loser sees applied == false.
func (a *AttemptPostgreSQL) AdvanceSection(ctx context.Context, id string, fromIndex int, startTime time.Time) (bool, error) {
	result := a.db.WithContext(ctx).
		Model(&models.TestAttempt{}).
		Where("id = ? AND status = ? AND current_section_index = ?", id, models.AttemptInProgress, fromIndex).
		Updates(map[string]interface{}{
			"current_section_index": fromIndex + 1,
			"section_start_time":    startTime,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (a *AttemptPostgreSQL) Complete(ctx context.Context, id string, fromIndex int, score int, submittedAt time.Time) (bool, error) {
	result := a.db.WithContext(ctx).
		Model(&models.TestAttempt{}).
		Where("id = ? AND status = ? AND current_section_index = ?", id, models.AttemptInProgress, fromIndex).
		Updates(map[string]interface{}{
			"status":       models.AttemptCompleted,
			"score":        score,
			"submitted_at": submittedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
