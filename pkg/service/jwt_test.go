package service

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "cert-system/pkg/errors"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, 24*time.Hour, zap.NewNop())

	access, refresh, err := svc.GenerateTokens("admin")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Login)
	assert.False(t, claims.IsRefreshToken)

	claims, err = svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.True(t, claims.IsRefreshToken)
}

func TestValidateToken_Errors(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, time.Hour, zap.NewNop())

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	other := NewJWTService("other-secret", time.Hour, time.Hour, zap.NewNop())
	foreign, _, err := other.GenerateTokens("admin")
	require.NoError(t, err)
	_, err = svc.ValidateToken(foreign)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	expired := &jwtService{
		SecretKey:       "secret",
		AccessTokenExp:  time.Minute,
		RefreshTokenExp: time.Minute,
		logger:          zap.NewNop(),
		now:             func() time.Time { return time.Now().Add(-time.Hour) },
	}
	old, _, err := expired.GenerateTokens("admin")
	require.NoError(t, err)
	_, err = svc.ValidateToken(old)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &JwtCustomClaim{Login: "admin"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateToken(unsigned)
	assert.Error(t, err)
}
