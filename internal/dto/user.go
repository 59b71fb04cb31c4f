package dto

import (
	"time"

	"github.com/pferate/puppy-website/internal/models"
)

// UserDTO is the public projection of a user
type UserDTO struct {
	Username     string    `json:"username"`
	RegisteredOn time.Time `json:"registered_on"`
	LastSeen     time.Time `json:"last_seen"`
}

// ProfileDTO is the authenticated user's view of their own account
type ProfileDTO struct {
	ID        uint64   `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Location  string   `json:"location"`
	AboutMe   string   `json:"about_me"`
	Confirmed bool     `json:"confirmed"`
	Approved  bool     `json:"approved"`
	Avatar    string   `json:"avatar"`
	Groups    []string `json:"groups"`
	UserDTO
}

// GroupDTO represents a group with its members
type GroupDTO struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Default     bool      `json:"default"`
	Users       []UserDTO `json:"users"`
	UserCount   int       `json:"user_count"`
}

// TokenResponse carries a freshly issued API token
type TokenResponse struct {
	Token      string `json:"token"`
	Expiration int    `json:"expiration"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		Username:     user.Username,
		RegisteredOn: user.RegisteredOn,
		LastSeen:     user.LastSeen,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}

// ToProfileDTO converts a User model, with groups loaded, to ProfileDTO.
// secure selects the https avatar host.
func ToProfileDTO(user models.User, secure bool) ProfileDTO {
	groups := make([]string, len(user.Groups))
	for i, g := range user.Groups {
		groups[i] = g.Name
	}

	return ProfileDTO{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Location:  user.Location,
		AboutMe:   user.AboutMe,
		Confirmed: user.Confirmed,
		Approved:  user.Approved,
		Avatar:    user.Gravatar(secure, 100, "identicon", "g"),
		Groups:    groups,
		UserDTO:   ToUserDTO(user),
	}
}

// ToGroupDTO converts a Group model, with users loaded, to GroupDTO
func ToGroupDTO(group models.Group) GroupDTO {
	return GroupDTO{
		Name:        group.Name,
		Description: group.Description,
		Default:     group.Default,
		Users:       ToUserDTOs(group.Users),
		UserCount:   len(group.Users),
	}
}
