package postgres

import (
	"context"

	"github.com/cetprep/mocktest-service/internal/models"
	"github.com/cetprep/mocktest-service/internal/repositories"
	"gorm.io/gorm"
)

type CatalogPostgreSQL struct {
	db *gorm.DB
}

func NewCatalogPostgreSQL(db *gorm.DB) repositories.CatalogRepository {
	return &CatalogPostgreSQL{db: db}
}

func (c *CatalogPostgreSQL) GetStandard(ctx context.Context, level models.StandardLevel) (*models.Standard, error) {
	var standard models.Standard
	if err := c.db.WithContext(ctx).Where("standard = ?", level).First(&standard).Error; err != nil {
		return nil, err
	}
	return &standard, nil
}

func (c *CatalogPostgreSQL) GetSubject(ctx context.Context, standardID string, code models.SubjectCode) (*models.Subject, error) {
	var subject models.Subject
	if err := c.db.WithContext(ctx).
		Where("standard_id = ? AND code = ?", standardID, code).
		First(&subject).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (c *CatalogPostgreSQL) ListSubjects(ctx context.Context) ([]*models.Subject, error) {
	var subjects []*models.Subject
	if err := c.db.WithContext(ctx).
		Order(`"order" ASC`).
		Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

func (c *CatalogPostgreSQL) ListChapters(ctx context.Context, subjectID string) ([]*models.Chapter, error) {
	var chapters []*models.Chapter
	if err := c.db.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order(`"order" ASC`).
		Find(&chapters).Error; err != nil {
		return nil, err
	}
	return chapters, nil
}

func (c *CatalogPostgreSQL) GetChapterByName(ctx context.Context, subjectID, name string) (*models.Chapter, error) {
	var chapter models.Chapter
	if err := c.db.WithContext(ctx).
		Where("subject_id = ? AND name = ?", subjectID, name).
		First(&chapter).Error; err != nil {
		return nil, err
	}
	return &chapter, nil
}
