package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokensRoundTrip(t *testing.T) {
	a := NewJWTAuthenticator("access-secret", "refresh-secret", "tastemap", "tastemap", time.Hour, 2*time.Hour)

	access, refresh, err := a.GenerateTokens(42, PrivilegeOwner)
	require.NoError(t, err)

	tok, err := a.ValidateAccessToken(access)
	require.NoError(t, err)
	id, err := SubjectID(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	tok, err = a.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	id, err = SubjectID(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	// tokens are not interchangeable
	_, err = a.ValidateAccessToken(refresh)
	assert.Error(t, err)
	_, err = a.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	a := NewJWTAuthenticator("s", "r", "tastemap", "tastemap", -time.Minute, time.Hour)

	access, _, err := a.GenerateTokens(1, PrivilegeUser)
	require.NoError(t, err)

	_, err = a.ValidateAccessToken(access)
	assert.Error(t, err)
}

func TestPrivilegeFromRoles(t *testing.T) {
	assert.Equal(t, PrivilegeUser, PrivilegeFromRoles(nil))
	assert.Equal(t, PrivilegeUser, PrivilegeFromRoles([]string{"user", "merchant"}))
	assert.Equal(t, PrivilegeOwner, PrivilegeFromRoles([]string{"user", "owner"}))
	assert.Equal(t, PrivilegeAdmin, PrivilegeFromRoles([]string{"owner", "admin"}))
}

func TestCallerOwnership(t *testing.T) {
	owner := int64(7)
	other := int64(8)

	c := Caller{UserID: 7, Privilege: PrivilegeOwner}
	assert.True(t, c.Owns(&owner))
	assert.False(t, c.Owns(&other))
	assert.False(t, c.Owns(nil))
	assert.True(t, c.CanManage(&owner))
	assert.False(t, c.CanManage(&other))

	admin := Caller{UserID: 1, Privilege: PrivilegeAdmin}
	assert.True(t, admin.CanManage(&other))
	assert.True(t, admin.CanManage(nil))
	assert.False(t, admin.Owns(&other))
}
