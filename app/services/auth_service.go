package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Rakhulsr/go-storefront/app/helpers"
	"github.com/Rakhulsr/go-storefront/app/repositories"
	"github.com/Rakhulsr/go-storefront/app/utils/apperr"
	"github.com/Rakhulsr/go-storefront/app/utils/metrics"
)

// dummyHash keeps the unknown-user path as slow as a real password check.
const dummyHash = "$2a$10$VM5uOmyinV0qiuZeXLZP..i.M6oXKkvsixulot5NwzGHEmTdyS.pG"

type LoginResult struct {
	Token string           `json:"token"`
	User  helpers.Identity `json:"user"`
}

type AuthService struct {
	users   repositories.UserRepositoryImpl
	tokens  TokenIssuer
	log     *logrus.Logger
	metrics *metrics.Metrics
}

func NewAuthService(users repositories.UserRepositoryImpl, tokens TokenIssuer, log *logrus.Logger, m *metrics.Metrics) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log, metrics: m}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperr.Validation("Username and password are required")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperr.Storage("failed to load user", err)
	}
	if user == nil {
		helpers.PasswordCompare(dummyHash, []byte(password))
		s.metrics.LoginAttempt("failure")
		return nil, apperr.Unauthorized("Invalid credentials")
	}
	if !helpers.PasswordCompare(user.Password, []byte(password)) {
		s.metrics.LoginAttempt("failure")
		s.log.WithField("username", username).Info("AuthService.Login: wrong password")
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	identity := helpers.Identity{ID: user.ID, Username: user.Username, Role: user.Role}
	token, err := s.tokens.Issue(identity)
	if err != nil {
		return nil, apperr.Storage("failed to issue token", err)
	}

	s.metrics.LoginAttempt("success")
	return &LoginResult{Token: token, User: identity}, nil
}

// Authenticate maps every rejected token to the same Unauthorized error.
func (s *AuthService) Authenticate(token string) (*helpers.Identity, error) {
	identity, err := s.tokens.Verify(token)
	if err != nil {
		s.log.WithError(err).Debug("AuthService.Authenticate: token rejected")
		return nil, apperr.Unauthorized("Invalid or expired token")
	}
	return identity, nil
}
