package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueValidate(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.Issue("alice")
	require.NoError(t, err)

	p, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)
	assert.NotEmpty(t, p.SessionID)

	other, err := m.Issue("alice")
	require.NoError(t, err)
	p2, err := m.Validate(other)
	require.NoError(t, err)
	assert.NotEqual(t, p.SessionID, p2.SessionID, "every login is a separate session")
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("secret", time.Minute)
	issued := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }

	token, err := m.Issue("alice")
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	token, err := m.Issue("alice")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		m     *TokenManager
	}{
		{"garbage", "not-a-token", m},
		{"empty", "", m},
		{"wrong secret", token, NewTokenManager("other", time.Hour)},
		{"tampered", token + "x", m},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.m.Validate(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
