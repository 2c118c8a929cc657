package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/medingen/recon_api/internal/config"
	"github.com/medingen/recon_api/internal/utils"
)

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := NewAuthService(config.OperatorConfig{
		Email:        "ops@medingen.example",
		PasswordHash: string(hash),
	}, "test-signing-key")

	token, err := svc.Login("ops@medingen.example", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := utils.ValidateJWT(token, "test-signing-key")
	require.NoError(t, err)
	assert.Equal(t, "ops@medingen.example", claims.Email)

	_, err = svc.Login("ops@medingen.example", "wrong")
	assert.EqualError(t, err, "invalid credentials")

	_, err = svc.Login("someone@else.example", "s3cret")
	assert.EqualError(t, err, "invalid credentials")
}
