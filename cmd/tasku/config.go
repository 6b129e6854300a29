package main

import (
	"fmt"
	"io"
	"os"

	"tasku/internal/api"
	"tasku/internal/config"
	"tasku/internal/repository/sqlite"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// RepositoryFactory creates repository instances based on environment
type RepositoryFactory struct {
	env Environment
}

// NewRepositoryFactory creates a new repository factory for the given environment
func NewRepositoryFactory(env Environment) *RepositoryFactory {
	return &RepositoryFactory{env: env}
}

// CreateAPI opens the repository for the environment and builds the API on
// top of it. It satisfies cli.APIFactory.
func (rf *RepositoryFactory) CreateAPI(cfg *config.Config, catalog *config.Catalog) (api.API, io.Closer, error) {
	repo, err := rf.CreateRepository(cfg)
	if err != nil {
		return nil, nil, err
	}

	apiInstance, err := api.New(repo, cfg, catalog, nil)
	if err != nil {
		repo.Close()
		return nil, nil, err
	}
	return apiInstance, repo, nil
}

// CreateRepository creates a repository instance based on the current environment
func (rf *RepositoryFactory) CreateRepository(cfg *config.Config) (sqlite.Repository, error) {
	switch rf.env {
	case Development:
		return rf.createDevelopmentRepository()
	case Testing:
		return rf.createTestingRepository()
	default:
		return config.CreateRepository(cfg)
	}
}

// createDevelopmentRepository uses a database file in the working directory
func (rf *RepositoryFactory) createDevelopmentRepository() (sqlite.Repository, error) {
	repo, err := sqlite.New("tasku.db")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize development database: %w", err)
	}
	return repo, nil
}

// createTestingRepository uses an in-memory database that disappears on exit
func (rf *RepositoryFactory) createTestingRepository() (sqlite.Repository, error) {
	return config.CreateTestRepository()
}

// getEnvironment reads TASKU_ENV, defaulting to production
func getEnvironment() Environment {
	switch Environment(os.Getenv("TASKU_ENV")) {
	case Development:
		return Development
	case Testing:
		return Testing
	default:
		return Production
	}
}
