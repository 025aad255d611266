package services

import (
	"github.com/cetprep/mocktest-service/internal/cache"
	"github.com/cetprep/mocktest-service/internal/events"
	"github.com/cetprep/mocktest-service/internal/repositories"
	"github.com/cetprep/mocktest-service/internal/utils"
)

// ServiceManager bundles all services behind one handle for wiring.
type ServiceManager interface {
	Generator() GeneratorService
	Runner() RunnerService
	Scorer() ScorerService
	Catalog() CatalogService
	Import() ImportService
}

type serviceManager struct {
	generator GeneratorService
	runner    RunnerService
	scorer    ScorerService
	catalog   CatalogService
	importSvc ImportService
}

func NewServiceManager(
	repo repositories.Repository,
	cacheSvc cache.CacheService,
	publisher events.EventPublisher,
	validator *utils.Validator,
	logger utils.Logger,
) ServiceManager {
	scorer := NewScorerService(repo, logger)
	return &serviceManager{
		generator: NewGeneratorService(repo, NewStaticRuleProvider(), cacheSvc, publisher, logger),
		runner:    NewRunnerService(repo, scorer, cacheSvc, publisher, logger),
		scorer:    scorer,
		catalog:   NewCatalogService(repo),
		importSvc: NewImportService(repo, validator, logger),
	}
}

func (m *serviceManager) Generator() GeneratorService { return m.generator }
func (m *serviceManager) Runner() RunnerService       { return m.runner }
func (m *serviceManager) Scorer() ScorerService       { return m.scorer }
func (m *serviceManager) Catalog() CatalogService     { return m.catalog }
func (m *serviceManager) Import() ImportService       { return m.importSvc }
