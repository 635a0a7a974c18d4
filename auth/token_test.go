package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrobles-dev/cinevault/apperr"
)

const testSecret = "unit-test-secret"

func TestMintAndParseToken(t *testing.T) {
	token, err := MintToken("u42", "someone@test.com", RoleAdmin, testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "u42", claims.UserID)
	assert.Equal(t, "someone@test.com", claims.Email)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "u42", claims.Subject)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := MintToken("u1", "a@b.co", RoleUser, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "another-secret")
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
	assert.NotEqual(t, apperr.CodeTokenExpired, apperr.CodeOf(err))
}

func TestParseTokenExpired(t *testing.T) {
	token, err := MintToken("u1", "a@b.co", RoleUser, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, testSecret)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeTokenExpired, apperr.CodeOf(err))
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token", testSecret)
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
}
