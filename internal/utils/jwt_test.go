package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("ops@medingen.example", "key-a")
	require.NoError(t, err)

	claims, err := ValidateJWT(token, "key-a")
	require.NoError(t, err)
	assert.Equal(t, "ops@medingen.example", claims.Email)

	_, err = ValidateJWT(token, "key-b")
	assert.Error(t, err, "tokens signed with another key are rejected")

	_, err = ValidateJWT("not.a.token", "key-a")
	assert.Error(t, err)
}
