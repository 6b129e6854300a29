package services

import (
	"context"
	"testing"
	"time"

	"tasku/internal/config"
	"tasku/internal/domain"
	"tasku/internal/repository/sqlite"

	"github.com/stretchr/testify/require"
)

// Monday 4 March 2024, 10:00 UTC.
var testNow = time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// movableClock lets a test advance time between calls.
type movableClock struct {
	now time.Time
}

func (c *movableClock) Now() time.Time {
	return c.now
}

func testConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Locale.Language = "en"
	cfg.Locale.Timezone = "UTC"
	return cfg
}

func setupRepository(t *testing.T) sqlite.Repository {
	t.Helper()
	repo, err := config.CreateTestRepository()
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func setupContainer(t *testing.T, clock Clock) (*ServiceContainer, sqlite.Repository) {
	t.Helper()
	repo := setupRepository(t)
	container, err := NewServiceContainer(repo, testConfig(), nil, clock)
	require.NoError(t, err)
	return container, repo
}

func taskInput(title string, due time.Time, priority string) domain.TaskInput {
	return domain.TaskInput{
		Title:    title,
		Subject:  "bd",
		DueAt:    &due,
		Priority: priority,
	}
}

func mustCreateTask(t *testing.T, service TaskService, input domain.TaskInput) *domain.Task {
	t.Helper()
	task, err := service.CreateTask(context.Background(), input)
	require.NoError(t, err)
	return task
}
