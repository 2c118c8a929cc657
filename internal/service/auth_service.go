package service

import (
	"errors"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/medingen/recon_api/internal/config"
	"github.com/medingen/recon_api/internal/utils"
)

// AuthService authenticates the single operator account configured via
// environment variables and issues JWTs for the API.
type AuthService struct {
	operator  config.OperatorConfig
	jwtSecret string
}

// NewAuthService constructs an AuthService.
func NewAuthService(operator config.OperatorConfig, jwtSecret string) *AuthService {
	return &AuthService{operator: operator, jwtSecret: jwtSecret}
}

// Login verifies the operator credentials and returns a signed token.
func (s *AuthService) Login(email, password string) (string, error) {
	if email != s.operator.Email {
		log.Warn().Str("email", email).Msg("login attempt for unknown account")
		return "", errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.operator.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("email", email).Msg("password verification failed")
		return "", errors.New("invalid credentials")
	}

	token, err := utils.GenerateJWT(email, s.jwtSecret)
	if err != nil {
		return "", err
	}

	log.Info().Str("email", email).Msg("login successful")
	return token, nil
}
