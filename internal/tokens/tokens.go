// Package tokens issues and verifies the signed, time-limited tokens used for
// account confirmation, password resets, email changes and API access.
package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Purpose tags carried in token payloads.
const (
	PurposeConfirm     = "confirm"
	PurposeReset       = "reset"
	PurposeChangeEmail = "change_email"
	PurposeAuth        = "id"
)

var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrPurposeMismatch = errors.New("token purpose or subject mismatch")
)

// Claims is the token payload. Exactly one purpose field is set per token.
type Claims struct {
	jwt.RegisteredClaims
	Confirm     *uint64 `json:"confirm,omitempty"`
	Reset       *uint64 `json:"reset,omitempty"`
	ChangeEmail *uint64 `json:"change_email,omitempty"`
	NewEmail    string  `json:"new_email,omitempty"`
	AuthID      *uint64 `json:"id,omitempty"`
}

// Subject returns the user ID stored under the given purpose tag.
func (c *Claims) Subject(purpose string) (uint64, bool) {
	var v *uint64
	switch purpose {
	case PurposeConfirm:
		v = c.Confirm
	case PurposeReset:
		v = c.Reset
	case PurposeChangeEmail:
		v = c.ChangeEmail
	case PurposeAuth:
		v = c.AuthID
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// Signer signs payloads with the application secret key.
type Signer struct {
	secret []byte
	now    func() time.Time
}

// NewSigner creates a Signer keyed by secret.
func NewSigner(secret []byte) *Signer {
	return &Signer{
		secret: secret,
		now:    time.Now,
	}
}

// Generate signs a token for userID under purpose, valid for ttl.
func (s *Signer) Generate(purpose string, userID uint64, ttl time.Duration) (string, error) {
	return s.sign(newClaims(purpose, userID), ttl)
}

// GenerateEmailChange signs a change_email token that carries the new address.
func (s *Signer) GenerateEmailChange(userID uint64, newEmail string, ttl time.Duration) (string, error) {
	claims := newClaims(PurposeChangeEmail, userID)
	claims.NewEmail = newEmail
	return s.sign(claims, ttl)
}

// Parse validates the signature and expiry of tokenString and returns its claims.
func (s *Signer) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Verify parses tokenString and checks that it was issued for purpose and
// names userID as its subject.
func (s *Signer) Verify(tokenString, purpose string, userID uint64) (*Claims, error) {
	claims, err := s.Parse(tokenString)
	if err != nil {
		return nil, err
	}
	subject, ok := claims.Subject(purpose)
	if !ok || subject != userID {
		return nil, ErrPurposeMismatch
	}
	return claims, nil
}

func (s *Signer) sign(claims *Claims, ttl time.Duration) (string, error) {
	now := s.now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func newClaims(purpose string, userID uint64) *Claims {
	id := userID
	claims := &Claims{}
	switch purpose {
	case PurposeConfirm:
		claims.Confirm = &id
	case PurposeReset:
		claims.Reset = &id
	case PurposeChangeEmail:
		claims.ChangeEmail = &id
	case PurposeAuth:
		claims.AuthID = &id
	}
	return claims
}
