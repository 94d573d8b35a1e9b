package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, now time.Time) *Service {
	t.Helper()
	s, err := NewService("super-secret", 10*time.Minute)
	require.NoError(t, err)
	s.now = func() time.Time { return now }
	return s
}

func TestNewService_RejectsBadConfig(t *testing.T) {
	t.Parallel()

	_, err := NewService("", time.Minute)
	assert.Error(t, err)

	_, err = NewService("k", 0)
	assert.Error(t, err)
}

func TestGenerateAndParse(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestService(t, now)

	tok, err := s.Generate("user-123")
	require.NoError(t, err)

	claims, err := s.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.True(t, claims.IssuedAtTime().Equal(now))
	assert.True(t, claims.ExpiresAt.Time.Equal(now.Add(10*time.Minute)))
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestService(t, issued)

	tok, err := s.Generate("u1")
	require.NoError(t, err)

	s.now = func() time.Time { return issued.Add(11 * time.Minute) }
	_, err = s.Parse(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	now := time.Now()
	s := newTestService(t, now)
	other, err := NewService("another-secret", time.Minute)
	require.NoError(t, err)

	tok, err := other.Generate("u2")
	require.NoError(t, err)

	_, err = s.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	s := newTestService(t, time.Now())
	_, err := s.Parse("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_RejectsNoneAndMissingSubject(t *testing.T) {
	t.Parallel()

	now := time.Now()
	s := newTestService(t, now)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: "u3",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		},
	})
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = s.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	anonymous := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		},
	})
	tok, err = anonymous.SignedString([]byte("super-secret"))
	require.NoError(t, err)
	_, err = s.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRenew_IssuedAtStrictlyIncreases(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestService(t, now)

	tests := []struct {
		name    string
		prevIAT time.Time
		wantIAT time.Time
	}{
		{name: "backdated token", prevIAT: now.Add(-5 * time.Minute), wantIAT: now},
		{name: "same second", prevIAT: now, wantIAT: now.Add(time.Second)},
		{name: "issued ahead of clock", prevIAT: now.Add(3 * time.Second), wantIAT: now.Add(4 * time.Second)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := &Claims{
				UserID: "u1",
				RegisteredClaims: jwt.RegisteredClaims{
					IssuedAt: jwt.NewNumericDate(tt.prevIAT),
				},
			}

			tok, err := s.Renew(prev)
			require.NoError(t, err)

			claims, err := s.Parse(tok)
			require.NoError(t, err)
			assert.Equal(t, "u1", claims.UserID)
			assert.True(t, claims.IssuedAtTime().After(tt.prevIAT))
			assert.True(t, claims.IssuedAtTime().Equal(tt.wantIAT), "got iat %s", claims.IssuedAtTime())
			assert.True(t, claims.ExpiresAt.Time.Equal(tt.wantIAT.Add(10*time.Minute)))
		})
	}
}

func TestRenew_RequiresSubject(t *testing.T) {
	t.Parallel()

	s := newTestService(t, time.Now())
	_, err := s.Renew(nil)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.Renew(&Claims{})
	assert.ErrorIs(t, err, ErrInvalidToken)
}
