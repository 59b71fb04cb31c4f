// Package identity models who is making a request: an anonymous visitor or
// an authenticated member.
package identity

import (
	"errors"
	"fmt"

	"github.com/pferate/puppy-website/internal/models"
	"gorm.io/gorm"
)

// Principal is implemented by Anonymous and Authenticated.
type Principal interface {
	IsAuthenticated() bool
	// Member returns the backing user and true for authenticated principals.
	Member() (*models.User, bool)
}

// Anonymous is a visitor without a session. It belongs to no group.
type Anonymous struct{}

func (Anonymous) IsAuthenticated() bool { return false }

func (Anonymous) Member() (*models.User, bool) { return nil, false }

// Authenticated wraps a logged-in user whose Groups are loaded.
type Authenticated struct {
	User *models.User
}

func (a Authenticated) IsAuthenticated() bool { return true }

func (a Authenticated) Member() (*models.User, bool) { return a.User, a.User != nil }

// UserLoader resolves a user ID from a session or API token, with groups loaded.
type UserLoader func(id uint64) (*models.User, error)

// Manager carries the identity configuration chosen at application startup.
type Manager struct {
	anonymous func() Principal
	loadUser  UserLoader
}

// NewManager creates a Manager. A nil anonymous constructor defaults to Anonymous.
func NewManager(loadUser UserLoader, anonymous func() Principal) *Manager {
	if anonymous == nil {
		anonymous = func() Principal { return Anonymous{} }
	}
	return &Manager{
		anonymous: anonymous,
		loadUser:  loadUser,
	}
}

// Anonymous returns the principal used when no user is logged in.
func (m *Manager) Anonymous() Principal {
	return m.anonymous()
}

// Load resolves userID. A user that no longer exists yields the anonymous
// principal rather than an error.
func (m *Manager) Load(userID uint64) (Principal, error) {
	user, err := m.loadUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return m.anonymous(), nil
		}
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}
	if user == nil {
		return m.anonymous(), nil
	}
	return Authenticated{User: user}, nil
}
