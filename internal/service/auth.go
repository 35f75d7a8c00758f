package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskboard/internal/auth"
	"github.com/BuzzLyutic/taskboard/internal/metrics"
	"github.com/BuzzLyutic/taskboard/internal/model"
	"github.com/BuzzLyutic/taskboard/internal/repo"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)

type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type AuthService struct {
	repo    repo.CredentialRepository
	hasher  Hasher
	tokens  *auth.TokenManager
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewAuthService(repo repo.CredentialRepository, hasher Hasher, tokens *auth.TokenManager, logger *zap.Logger, m *metrics.Metrics) *AuthService {
	return &AuthService{
		repo:    repo,
		hasher:  hasher,
		tokens:  tokens,
		logger:  logger,
		metrics: m,
	}
}

// Register creates an account. An existing username is never overwritten.
func (s *AuthService) Register(ctx context.Context, username, password, confirm string) (model.Credential, error) {
	c, err := s.register(ctx, strings.TrimSpace(username), strings.TrimSpace(password), strings.TrimSpace(confirm))
	s.metrics.Registration(err)
	return c, err
}

func (s *AuthService) register(ctx context.Context, username, password, confirm string) (model.Credential, error) {
	if username == "" || password == "" || confirm == "" {
		return model.Credential{}, fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	if password != confirm {
		return model.Credential{}, ErrPasswordMismatch
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return model.Credential{}, fmt.Errorf("hash password: %w", err)
	}

	c, err := s.repo.Create(ctx, username, hash)
	if errors.Is(err, repo.ErrorConflict) {
		return model.Credential{}, ErrUsernameTaken
	}
	if err != nil {
		return model.Credential{}, err
	}

	s.logger.Info("account registered", zap.String("username", username))
	return c, nil
}

// Login verifies the password and issues a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	c, err := s.repo.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, repo.ErrorNotFound) {
		return "", err
	}
	if err != nil || !s.hasher.Verify(password, c.PasswordHash) {
		s.metrics.Login(false)
		s.logger.Warn("failed login", zap.String("username", username))
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(c.Username)
	if err != nil {
		return "", fmt.Errorf("issue session: %w", err)
	}
	s.metrics.Login(true)
	return token, nil
}
