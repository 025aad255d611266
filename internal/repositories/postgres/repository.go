package postgres

import (
	"github.com/cetprep/mocktest-service/internal/models"
	"github.com/cetprep/mocktest-service/internal/repositories"
	"gorm.io/gorm"
)

type postgresRepository struct {
	catalog  repositories.CatalogRepository
	question repositories.QuestionRepository
	test     repositories.TestRepository
	attempt  repositories.AttemptRepository
}

// NewRepository wires the per-entity gorm repositories into one aggregate.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &postgresRepository{
		catalog:  NewCatalogPostgreSQL(db),
		question: NewQuestionPostgreSQL(db),
		test:     NewTestPostgreSQL(db),
		attempt:  NewAttemptPostgreSQL(db),
	}
}

func (r *postgresRepository) Catalog() repositories.CatalogRepository   { return r.catalog }
func (r *postgresRepository) Question() repositories.QuestionRepository { return r.question }
func (r *postgresRepository) Test() repositories.TestRepository         { return r.test }
func (r *postgresRepository) Attempt() repositories.AttemptRepository   { return r.attempt }

// Migrate creates or updates the schema for all persisted models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Standard{},
		&models.Subject{},
		&models.Chapter{},
		&models.Question{},
		&models.Option{},
		&models.Test{},
		&models.TestAttempt{},
	)
}
