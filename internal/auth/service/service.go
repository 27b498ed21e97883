// Package service implements authentication business logic.
package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"catalogo_backend/internal/auth/password"
	"catalogo_backend/internal/auth/repository"
	"catalogo_backend/internal/auth/transport"
	"catalogo_backend/platform/apperr"
	"catalogo_backend/platform/config"
	"catalogo_backend/platform/logger"
)

const accessTokenType = "access"

// Service issues access tokens for catalog administrators.
type Service struct {
	repo repository.Repository
	cfg  config.AuthServiceConfig
	log  *logger.Logger
}

// New creates a new auth service.
func New(repo repository.Repository, cfg config.AuthServiceConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, log: log}
}

// Login verifies credentials and returns a signed access token.
// Credential failures are reported uniformly so the response does not
// reveal whether the email exists.
func (s *Service) Login(ctx context.Context, req transport.LoginRequest) (transport.LoginResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		s.log.AuthEvent("login_failed", req.Email, false, "unknown email")
		return transport.LoginResponse{}, apperr.Unauthorized("invalid credentials")
	}

	if err := password.Compare(user.PasswordHash, req.Password); err != nil {
		s.log.AuthEvent("login_failed", req.Email, false, "wrong password")
		return transport.LoginResponse{}, apperr.Unauthorized("invalid credentials")
	}

	ttl := s.cfg.GetAccessTokenTTL()
	token, err := s.signAccessToken(user.ID, user.Email, []string{user.Role}, ttl)
	if err != nil {
		return transport.LoginResponse{}, apperr.Wrap(apperr.KindInternal, "could not issue token", err)
	}

	s.log.AuthEvent("login", user.Email, true, "")

	return transport.LoginResponse{
		Token:     token,
		ExpiresIn: int64(ttl.Seconds()),
	}, nil
}

// SeedAdmin creates the initial admin account if the email is not taken.
// Used by the composition root at startup when seed credentials are set.
func (s *Service) SeedAdmin(ctx context.Context, email, plainPassword string) error {
	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return nil
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return err
	}

	user, err := s.repo.CreateUser(ctx, email, hash, "admin")
	if err != nil {
		return err
	}

	s.log.Info("admin account seeded", "user_id", user.ID, "email", user.Email)

	return nil
}

func (s *Service) signAccessToken(userID uuid.UUID, email string, roles []string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"type":  accessTokenType,
		"email": email,
		"roles": roles,
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}
