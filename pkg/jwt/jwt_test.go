package jwt

import (
	"testing"
	"time"

	"clinic-booking-api/config"
	"clinic-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(secret string) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        secret,
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := newTestService("test-secret")
	userID := uuid.New()

	token, tokenID, err := svc.GenerateAccessToken(userID, "doc@clinic.test", entity.RoleIDDoctor)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, tokenID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "doc@clinic.test", claims.Email)
	assert.Equal(t, entity.RoleIDDoctor, claims.RoleID)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestRefreshTokenType(t *testing.T) {
	svc := newTestService("test-secret")

	token, _, err := svc.GenerateRefreshToken(uuid.New(), "patient@clinic.test", entity.RoleIDPatient)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := newTestService("test-secret")
	other := newTestService("other-secret")

	token, _, err := svc.GenerateAccessToken(uuid.New(), "doc@clinic.test", entity.RoleIDDoctor)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := newTestService("test-secret")

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestTokenIDsAreUnique(t *testing.T) {
	svc := newTestService("test-secret")
	userID := uuid.New()

	_, id1, err := svc.GenerateAccessToken(userID, "doc@clinic.test", entity.RoleIDDoctor)
	require.NoError(t, err)
	_, id2, err := svc.GenerateAccessToken(userID, "doc@clinic.test", entity.RoleIDDoctor)
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
}
