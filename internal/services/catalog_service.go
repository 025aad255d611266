package services

import (
	"context"

	"github.com/cetprep/mocktest-service/internal/models"
	"github.com/cetprep/mocktest-service/internal/repositories"
)

// CatalogService serves the plain reference-data lookups.
type CatalogService interface {
	ListSubjects(ctx context.Context) ([]*models.Subject, error)
	ListChapters(ctx context.Context, subjectID string) ([]*models.Chapter, error)
}

type catalogService struct {
	repo repositories.Repository
}

func NewCatalogService(repo repositories.Repository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) ListSubjects(ctx context.Context) ([]*models.Subject, error) {
	subjects, err := s.repo.Catalog().ListSubjects(ctx)
	if err != nil {
		return nil, NewPersistenceError("list subjects", err)
	}
	return subjects, nil
}

func (s *catalogService) ListChapters(ctx context.Context, subjectID string) ([]*models.Chapter, error) {
	chapters, err := s.repo.Catalog().ListChapters(ctx, subjectID)
	if err != nil {
		return nil, NewPersistenceError("list chapters", err)
	}
	return chapters, nil
}
