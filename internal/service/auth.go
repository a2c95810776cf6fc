package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"ispdesk-backend/internal/logger"
	"ispdesk-backend/internal/security"
)

type authService struct {
	tokens            security.TokenManager
	adminEmail        string
	adminPasswordHash string
}

func NewAuthService(tokens security.TokenManager, adminEmail, adminPasswordHash string) AuthService {
	return &authService{
		tokens:            tokens,
		adminEmail:        adminEmail,
		adminPasswordHash: adminPasswordHash,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	logger.EnterMethod("authService.Login", "email", email)

	if !strings.EqualFold(strings.TrimSpace(email), s.adminEmail) {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(s.adminEmail)
	if err != nil {
		logger.ExitMethodWithError("authService.Login", err, "email", email)
		return "", err
	}

	logger.ExitMethod("authService.Login", "email", email)
	return token, nil
}
