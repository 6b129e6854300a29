package services

import (
	"context"
	"encoding/json"
	"strings"

	"tasku/internal/config"
	"tasku/internal/domain"
	"tasku/internal/errors"
	"tasku/internal/logging"
	"tasku/internal/repository/sqlite"
	"tasku/internal/validation"
)

// Keys of the persisted session in the key-value store.
const (
	TokenKey = "auth.token"
	UserKey  = "auth.user"
)

type loginOptions struct {
	allowNonInstitutional bool
}

// LoginOption adjusts a single Login call.
type LoginOption func(*loginOptions)

// WithAllowNonInstitutional overrides session.allow_non_institutional for one login.
func WithAllowNonInstitutional(allow bool) LoginOption {
	return func(o *loginOptions) {
		o.allowNonInstitutional = allow
	}
}

// sessionServiceImpl implements the SessionService interface
type sessionServiceImpl struct {
	repo                  sqlite.Repository
	auth                  Authenticator
	classifier            *validation.EmailClassifier
	validator             *validation.Validator
	mapper                *domain.Mapper
	allowNonInstitutional bool
}

// NewSessionService creates a new SessionService instance. A nil cfg uses defaults.
func NewSessionService(repo sqlite.Repository, cfg *config.Config, auth Authenticator) SessionService {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &sessionServiceImpl{
		repo:                  repo,
		auth:                  auth,
		classifier:            validation.NewEmailClassifierWithConfig(cfg),
		validator:             validation.NewValidatorWithConfig(cfg),
		mapper:                domain.NewMapper(),
		allowNonInstitutional: cfg.Session.AllowNonInstitutional,
	}
}

// Login checks the credentials in a fixed order, authenticates and persists
// the session, replacing any previous one.
func (s *sessionServiceImpl) Login(ctx context.Context, email, password string, opts ...LoginOption) (*domain.Session, error) {
	options := loginOptions{allowNonInstitutional: s.allowNonInstitutional}
	for _, opt := range opts {
		opt(&options)
	}

	email = strings.ToLower(strings.TrimSpace(email))

	if email == "" || password == "" {
		return nil, errors.NewAuthError(errors.CodeMissingCredentials, "email and password are required")
	}
	if !s.classifier.IsValid(email) {
		return nil, errors.NewAuthError(errors.CodeInvalidEmailFormat, "email address is not valid")
	}
	institutional := s.classifier.IsInstitutional(email)
	if !institutional && !options.allowNonInstitutional {
		return nil, errors.NewAuthError(errors.CodeNonInstitutionalEmail,
			"use your institutional email ("+strings.Join(s.classifier.Domains(), ", ")+")")
	}
	if !s.validator.IsValidPasswordLength(password) {
		return nil, errors.NewAuthError(errors.CodeWeakPassword, "password is too short").
			WithContext("min_length", s.validator.MinPasswordLength())
	}

	session, err := s.auth.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	session.Institutional = institutional

	if err := s.persist(ctx, session); err != nil {
		return nil, err
	}

	logging.Debugf("logged in %s (institutional=%t)\n", session.Email, session.Institutional)
	return session, nil
}

func (s *sessionServiceImpl) persist(ctx context.Context, session *domain.Session) error {
	record, err := json.Marshal(s.mapper.User.ToRecord(session.User))
	if err != nil {
		return errors.WrapError(err, errors.ErrorTypeInvalidInput, "failed to encode session user")
	}
	if err := s.repo.SetValue(ctx, TokenKey, session.Token); err != nil {
		return err
	}
	if err := s.repo.SetValue(ctx, UserKey, string(record)); err != nil {
		// A token without its user must not outlive the failed login.
		if cleanupErr := s.repo.DeleteValue(ctx, TokenKey); cleanupErr != nil {
			logging.Debugf("failed to remove session token: %v\n", cleanupErr)
		}
		return err
	}
	return nil
}

// Logout revokes the current token and forgets the session. Logging out
// without a session succeeds.
func (s *sessionServiceImpl) Logout(ctx context.Context) error {
	token, err := s.repo.GetValue(ctx, TokenKey)
	switch {
	case err == nil:
		if err := s.auth.Revoke(ctx, token); err != nil {
			return err
		}
	case !errors.IsErrorType(err, errors.ErrorTypeNotFound):
		return err
	}

	if err := s.repo.DeleteValue(ctx, TokenKey); err != nil {
		return err
	}
	if err := s.repo.DeleteValue(ctx, UserKey); err != nil {
		return err
	}

	logging.Debugln("logged out")
	return nil
}

// Current restores the persisted session. A missing token or user means no session.
func (s *sessionServiceImpl) Current(ctx context.Context) (*domain.Session, error) {
	token, err := s.repo.GetValue(ctx, TokenKey)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, nil
		}
		return nil, err
	}

	raw, err := s.repo.GetValue(ctx, UserKey)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var record sqlite.UserRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeDatabase, "stored session user is corrupt")
	}

	user := s.mapper.User.FromRecord(record)
	return &domain.Session{
		User:          user,
		Token:         token,
		Institutional: s.classifier.IsInstitutional(user.Email),
	}, nil
}
