package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"tasku/internal/domain"
	"tasku/internal/errors"
	"tasku/internal/repository/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingAuthenticator wraps the mock and remembers revoked tokens.
type recordingAuthenticator struct {
	*MockAuthenticator
	calls   int
	revoked []string
}

func (r *recordingAuthenticator) Authenticate(ctx context.Context, email, password string) (*domain.Session, error) {
	r.calls++
	return r.MockAuthenticator.Authenticate(ctx, email, password)
}

func (r *recordingAuthenticator) Revoke(ctx context.Context, token string) error {
	r.revoked = append(r.revoked, token)
	return nil
}

func setupSessionService(t *testing.T) (SessionService, *recordingAuthenticator, sqlite.Repository) {
	t.Helper()
	repo := setupRepository(t)
	auth := &recordingAuthenticator{MockAuthenticator: NewMockAuthenticator(0, fixedClock(testNow))}
	return NewSessionService(repo, testConfig(), auth), auth, repo
}

func TestSessionService_Login_Errors(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		opts     []LoginOption
		expected error
	}{
		{"should require email", "", "secreto", nil, errors.ErrMissingCredentials},
		{"should require password", "ana@inacap.cl", "", nil, errors.ErrMissingCredentials},
		{"should treat blank email as missing", "   ", "secreto", nil, errors.ErrMissingCredentials},
		{"should check credentials before format", "not-an-email", "", nil, errors.ErrMissingCredentials},
		{"should reject malformed email", "ana@inacap", "secreto", nil, errors.ErrInvalidEmailFormat},
		{"should reject email with spaces", "ana maria@inacap.cl", "secreto", nil, errors.ErrInvalidEmailFormat},
		{
			name:     "should reject non-institutional email when disallowed",
			email:    "ana@gmail.com",
			password: "secreto",
			opts:     []LoginOption{WithAllowNonInstitutional(false)},
			expected: errors.ErrNonInstitutionalEmail,
		},
		{
			name:     "should check domain before password strength",
			email:    "ana@gmail.com",
			password: "123",
			opts:     []LoginOption{WithAllowNonInstitutional(false)},
			expected: errors.ErrNonInstitutionalEmail,
		},
		{"should reject short password", "ana@inacap.cl", "12345", nil, errors.ErrWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, auth, _ := setupSessionService(t)
			ctx := context.Background()

			session, err := service.Login(ctx, tt.email, tt.password, tt.opts...)

			require.Error(t, err)
			assert.Nil(t, session)
			assert.ErrorIs(t, err, tt.expected)
			assert.Zero(t, auth.calls, "authenticator must not be reached")

			current, err := service.Current(ctx)
			require.NoError(t, err)
			assert.Nil(t, current)
		})
	}
}

func TestSessionService_Login(t *testing.T) {
	service, auth, repo := setupSessionService(t)
	ctx := context.Background()

	session, err := service.Login(ctx, "  Juan.Perez@INACAP.cl ", "secreto")
	require.NoError(t, err)

	assert.Equal(t, "juan.perez@inacap.cl", session.Email)
	assert.Equal(t, "Juan perez", session.Name)
	assert.Equal(t, "JP", session.Initials)
	assert.Equal(t, domain.RoleStudent, session.Role)
	assert.True(t, session.Institutional)
	assert.Equal(t, 1, auth.calls)

	token, err := repo.GetValue(ctx, TokenKey)
	require.NoError(t, err)
	assert.Equal(t, session.Token, token)

	raw, err := repo.GetValue(ctx, UserKey)
	require.NoError(t, err)
	var record map[string]string
	require.NoError(t, json.Unmarshal([]byte(raw), &record))
	assert.Equal(t, map[string]string{
		"email":    "juan.perez@inacap.cl",
		"name":     "Juan perez",
		"initials": "JP",
		"role":     "student",
	}, record)
}

func TestSessionService_Login_NonInstitutionalAllowed(t *testing.T) {
	service, _, _ := setupSessionService(t)

	session, err := service.Login(context.Background(), "ana@gmail.com", "secreto")

	require.NoError(t, err)
	assert.False(t, session.Institutional)
}

func TestSessionService_Login_PasswordWhitespaceCounts(t *testing.T) {
	service, _, _ := setupSessionService(t)

	_, err := service.Login(context.Background(), "ana@inacap.cl", "      ")

	assert.NoError(t, err)
}

func TestSessionService_Login_ReplacesSession(t *testing.T) {
	service, _, _ := setupSessionService(t)
	ctx := context.Background()

	_, err := service.Login(ctx, "ana@inacap.cl", "secreto")
	require.NoError(t, err)
	second, err := service.Login(ctx, "pedro@alumnos.inacap.cl", "secreto")
	require.NoError(t, err)

	current, err := service.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "pedro@alumnos.inacap.cl", current.Email)
	assert.Equal(t, second.Token, current.Token)
}

func TestSessionService_CurrentSurvivesRestart(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	first := NewSessionService(repo, testConfig(), NewMockAuthenticator(0, fixedClock(testNow)))
	session, err := first.Login(ctx, "ana@profesor.inacap.cl", "secreto")
	require.NoError(t, err)

	restarted := NewSessionService(repo, testConfig(), NewMockAuthenticator(0, fixedClock(testNow.Add(time.Hour))))
	current, err := restarted.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)

	assert.Equal(t, session.User, current.User)
	assert.Equal(t, session.Token, current.Token)
	assert.True(t, current.Institutional)
}

func TestSessionService_Current_CorruptUser(t *testing.T) {
	service, _, repo := setupSessionService(t)
	ctx := context.Background()

	require.NoError(t, repo.SetValue(ctx, TokenKey, "mock.x.1"))
	require.NoError(t, repo.SetValue(ctx, UserKey, "{not json"))

	_, err := service.Current(ctx)
	assert.Error(t, err)
}

// failingUserStore rejects writes of the session user.
type failingUserStore struct {
	sqlite.Repository
}

func (f failingUserStore) SetValue(ctx context.Context, key, value string) error {
	if key == UserKey {
		return errors.NewDatabaseError("set value", assert.AnError)
	}
	return f.Repository.SetValue(ctx, key, value)
}

func TestSessionService_Login_UserWriteFails(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()
	service := NewSessionService(failingUserStore{repo}, testConfig(), NewMockAuthenticator(0, fixedClock(testNow)))

	_, err := service.Login(ctx, "ana@inacap.cl", "secreto")
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDatabase))

	_, err = repo.GetValue(ctx, TokenKey)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound), "token is removed")

	current, err := service.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestSessionService_Logout(t *testing.T) {
	service, auth, repo := setupSessionService(t)
	ctx := context.Background()

	session, err := service.Login(ctx, "ana@inacap.cl", "secreto")
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx))
	assert.Equal(t, []string{session.Token}, auth.revoked)

	current, err := service.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	_, err = repo.GetValue(ctx, UserKey)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	t.Run("should be idempotent", func(t *testing.T) {
		require.NoError(t, service.Logout(ctx))
		assert.Len(t, auth.revoked, 1)
	})
}
