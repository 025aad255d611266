package postgres

import (
	"context"

	"github.com/cetprep/mocktest-service/internal/models"
	"github.com/cetprep/mocktest-service/internal/repositories"
	"gorm.io/gorm"
)

type TestPostgreSQL struct {
	db *gorm.DB
}

func NewTestPostgreSQL(db *gorm.DB) repositories.TestRepository {
	return &TestPostgreSQL{db: db}
}

func (t *TestPostgreSQL) Create(ctx context.Context, test *models.Test) error {
	return t.db.WithContext(ctx).Create(test).Error
}

func (t *TestPostgreSQL) GetByID(ctx context.Context, id string) (*models.Test, error) {
	var test models.Test
	if err := t.db.WithContext(ctx).Where("id = ?", id).First(&test).Error; err != nil {
		return nil, err
	}
	return &test, nil
}
