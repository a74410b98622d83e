package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_SignAndParse(t *testing.T) {
	m := NewTokenManager("test-secret", 0)

	nonce, hash, err := m.NewNonce()
	require.NoError(t, err)
	assert.Len(t, hash, 64)
	assert.True(t, NonceMatches(nonce, hash))

	raw, err := m.Sign(7, 42, nonce, time.Now(), nil)
	require.NoError(t, err)

	claims, err := m.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, nonce, claims.Nonce)

	tokenID, err := claims.TokenID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), tokenID)
}

func TestTokenManager_RejectsForeignSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", 0)
	verifier := NewTokenManager("secret-b", 0)

	raw, err := issuer.Sign(1, 1, "nonce", time.Now(), nil)
	require.NoError(t, err)

	_, err = verifier.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	m := NewTokenManager("test-secret", time.Minute)
	issued := time.Now().Add(-time.Hour)

	raw, err := m.Sign(1, 1, "nonce", issued, m.ExpiresAt(issued))
	require.NoError(t, err)

	_, err = m.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	m := NewTokenManager("test-secret", 0)

	_, err := m.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiresAt(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, NewTokenManager("s", 0).ExpiresAt(now))

	exp := NewTokenManager("s", 2*time.Hour).ExpiresAt(now)
	require.NotNil(t, exp)
	assert.Equal(t, now.Add(2*time.Hour), *exp)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("secret1", hash))
	assert.False(t, CheckPasswordHash("secret2", hash))
}

func TestPrincipal_Permissions(t *testing.T) {
	worker := &Principal{UserID: 1, Role: "worker"}
	employer := &Principal{UserID: 2, Role: "employer"}

	assert.True(t, worker.IsWorker())
	assert.True(t, worker.Can(PermApplicationsCreate))
	assert.False(t, worker.Can(PermShiftsWrite))

	assert.True(t, employer.IsEmployer())
	assert.True(t, employer.Can(PermShiftsWrite))
	assert.False(t, employer.Can(PermApplicationsCreate))

	var anonymous *Principal
	assert.False(t, anonymous.Can(PermReviewsWrite))
}
