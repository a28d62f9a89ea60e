package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/filsox/store-api/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	storeID := int64(7)

	token, expiresAt, err := tm.GenerateToken(42, &storeID, domain.RoleAdmin)
	require.NoError(t, err)
	require.True(t, expiresAt.After(time.Now()))

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)

	userID, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, int64(42), userID)
	require.NotNil(t, claims.StoreID)
	require.Equal(t, int64(7), *claims.StoreID)
	require.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestTokenSuperAdminHasNoStore(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, _, err := tm.GenerateToken(1, nil, domain.RoleSuperAdmin)
	require.NoError(t, err)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.Nil(t, claims.StoreID)
	require.Equal(t, domain.RoleSuperAdmin, claims.Role)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	issuer := NewTokenManager("secret-a", 60)
	verifier := NewTokenManager("secret-b", 60)

	token, _, err := issuer.GenerateToken(1, nil, domain.RoleOperator)
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	require.Error(t, err)
}

func TestTokenGarbageRejected(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	_, err := tm.ParseToken("not-a-token")
	require.Error(t, err)
}

func TestTokenTTLDefaultsWhenNonPositive(t *testing.T) {
	tm := NewTokenManager("test-secret", 0)

	_, expiresAt, err := tm.GenerateToken(1, nil, domain.RoleOperator)
	require.NoError(t, err)
	require.True(t, expiresAt.After(time.Now().Add(59*time.Minute)))
}
