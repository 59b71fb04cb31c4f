package tokens

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func newTestSigner(clock *fakeClock) *Signer {
	s := NewSigner([]byte("test-secret-key"))
	s.now = clock.Now
	return s
}

func TestSigner_RoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	signer := newTestSigner(clock)

	for _, purpose := range []string{PurposeConfirm, PurposeReset, PurposeChangeEmail, PurposeAuth} {
		t.Run(purpose, func(t *testing.T) {
			token, err := signer.Generate(purpose, 42, time.Hour)
			require.NoError(t, err)

			claims, err := signer.Verify(token, purpose, 42)
			require.NoError(t, err)

			subject, ok := claims.Subject(purpose)
			require.True(t, ok)
			assert.Equal(t, uint64(42), subject)
		})
	}
}

func TestSigner_Expired(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	signer := newTestSigner(clock)

	token, err := signer.Generate(PurposeConfirm, 1, time.Second)
	require.NoError(t, err)

	clock.t = clock.t.Add(2 * time.Second)

	_, err = signer.Verify(token, PurposeConfirm, 1)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSigner_SubjectMismatch(t *testing.T) {
	signer := NewSigner([]byte("test-secret-key"))

	token, err := signer.Generate(PurposeConfirm, 1, time.Hour)
	require.NoError(t, err)

	_, err = signer.Verify(token, PurposeConfirm, 2)
	assert.ErrorIs(t, err, ErrPurposeMismatch)

	_, err = signer.Verify(token, PurposeReset, 1)
	assert.ErrorIs(t, err, ErrPurposeMismatch)
}

func TestSigner_WrongSecret(t *testing.T) {
	token, err := NewSigner([]byte("one")).Generate(PurposeReset, 7, time.Hour)
	require.NoError(t, err)

	_, err = NewSigner([]byte("two")).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSigner_Malformed(t *testing.T) {
	signer := NewSigner([]byte("test-secret-key"))

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"wrong-segments", "a.b"},
		{"invalid-signature", "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJjb25maXJtIjoxfQ.invalid"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := signer.Parse(tc.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestSigner_RejectsTokenWithoutExpiry(t *testing.T) {
	secret := []byte("test-secret-key")
	id := uint64(3)
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Confirm: &id}).SignedString(secret)
	require.NoError(t, err)

	_, err = NewSigner(secret).Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSigner_EmailChangeCarriesNewEmail(t *testing.T) {
	signer := NewSigner([]byte("test-secret-key"))

	token, err := signer.GenerateEmailChange(5, "new@puppy", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(token, "."))

	claims, err := signer.Verify(token, PurposeChangeEmail, 5)
	require.NoError(t, err)
	assert.Equal(t, "new@puppy", claims.NewEmail)
}
