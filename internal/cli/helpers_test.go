package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"tasku/internal/api"
	"tasku/internal/config"
	"tasku/internal/repository/sqlite"

	"github.com/stretchr/testify/require"
)

// Wednesday 10 April 2024, 09:00 UTC.
var testNow = time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC)

const (
	testEmail    = "maria.lopez@alumnos.inacap.cl"
	testPassword = "secreto"
)

func fixedClock() time.Time {
	return testNow
}

func testConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Locale.Language = "en"
	cfg.Locale.Timezone = "UTC"
	return cfg
}

func setupTestRepository(t *testing.T) sqlite.Repository {
	t.Helper()
	repo, err := config.CreateTestRepository()
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// setupTestApp returns an App backed by an in-memory store and a clock
// frozen at testNow. Command output is captured in the returned buffer.
func setupTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := testConfig()
	apiInstance, err := api.New(setupTestRepository(t), cfg, nil, fixedClock)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	return NewApp(apiInstance, cfg, out), out
}

func loggedInTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	app, out := setupTestApp(t)
	_, err := app.api.Login(context.Background(), testEmail, testPassword)
	require.NoError(t, err)
	out.Reset()
	return app, out
}
