package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"studio_cms/internal/app/limiter"
	"studio_cms/internal/common"
	"studio_cms/internal/common/security"
	"studio_cms/internal/domain/model"
	"studio_cms/internal/domain/repository"
)

const minPasswordLength = 6

type AuthService struct {
	userRepo     repository.UserRepository
	loginLimiter *limiter.LoginLimiter
}

func NewAuthService(userRepo repository.UserRepository, loginLimiter *limiter.LoginLimiter) *AuthService {
	return &AuthService{userRepo: userRepo, loginLimiter: loginLimiter}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	User  *model.User
	Token string
}

// Login verifies credentials and mints a session token. Unknown email
// and wrong password both come back as ErrInvalidCredentials so the
// response never reveals which check failed.
func (s *AuthService) Login(ctx context.Context, req LoginRequest, clientIP string) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email address: %w", common.ErrValidation)
	}
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters: %w", minPasswordLength, common.ErrValidation)
	}

	if s.loginLimiter.Blocked(ctx, email, clientIP) {
		return nil, common.ErrTooManyAttempts
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.loginLimiter.RecordFailure(ctx, email, clientIP)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.loginLimiter.RecordFailure(ctx, email, clientIP)
		return nil, common.ErrInvalidCredentials
	}

	token, err := security.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.loginLimiter.Clear(ctx, email, clientIP)
	user.PasswordHash = ""
	return &LoginResult{User: user, Token: token}, nil
}

// Status resolves the identity behind a session token, or
// ErrUnauthorized when the token is missing or invalid.
func (s *AuthService) Status(ctx context.Context, token string) (*security.SessionClaims, error) {
	if token == "" {
		return nil, common.ErrUnauthorized
	}
	claims := security.VerifyToken(token)
	if claims == nil {
		return nil, common.ErrUnauthorized
	}
	return claims, nil
}
