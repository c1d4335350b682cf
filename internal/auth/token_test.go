package auth

import (
	"testing"
	"time"

	"github.com/neemadeshwal/ERMS-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	want := Identity{ID: 42, Email: "lead@example.com", Role: models.RoleManager}

	token, err := m.Generate(want)
	require.NoError(t, err)

	got, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("secret", time.Minute)
	issued := time.Now().Add(-time.Hour)
	m.now = func() time.Time { return issued }

	token, err := m.Generate(Identity{ID: 1, Email: "a@example.com", Role: models.RoleEngineer})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, err := NewTokenManager("one", time.Hour).Generate(Identity{ID: 1, Role: models.RoleEngineer})
	require.NoError(t, err)

	_, err = NewTokenManager("two", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Garbage(t *testing.T) {
	_, err := NewTokenManager("secret", time.Hour).Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
