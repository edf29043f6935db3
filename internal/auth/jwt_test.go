package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-with-enough-length"

func TestManager_GenerateAndValidate(t *testing.T) {
	m := NewManager(testSecret, time.Hour)

	token, err := m.GenerateToken(42, "miner@example.com", "admin")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "miner@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestManager_ValidateToken_WrongSecret(t *testing.T) {
	token, err := NewManager(testSecret, time.Hour).GenerateToken(1, "a@b.c", "user")
	require.NoError(t, err)

	_, err = NewManager("another-secret-entirely", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestManager_ValidateToken_Expired(t *testing.T) {
	m := NewManager(testSecret, time.Hour)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := m.GenerateToken(1, "a@b.c", "user")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}

func TestManager_RefreshToken(t *testing.T) {
	m := NewManager(testSecret, time.Hour)

	// Geçerli token yenilenmez
	fresh, err := m.GenerateToken(7, "a@b.c", "user")
	require.NoError(t, err)
	_, _, err = m.RefreshToken(fresh)
	assert.ErrorIs(t, err, ErrTokenStillValid)

	// Süresi dolmuş token yenilenir
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := m.GenerateToken(7, "a@b.c", "user")
	require.NoError(t, err)
	m.now = time.Now

	newToken, claims, err := m.RefreshToken(expired)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)

	_, err = m.ValidateToken(newToken)
	assert.NoError(t, err)

	// Bozuk token yenilenmez
	_, _, err = m.RefreshToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("S3cret-pass")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "S3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
