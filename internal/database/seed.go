package database

import (
	"fmt"
	"log"

	"github.com/pferate/puppy-website/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	SeedAdminEmail = "admin@puppy"
	SeedUserEmail  = "pat@puppy"

	seedPasswordHash = "pbkdf2:sha1:1000$kfiXB8ye$bc6035d7bb15c6005a5b322314751238d1c9e0c5"
)

type seedUser struct {
	email     string
	firstName string
	lastName  string
	hash      string
}

type seedGroup struct {
	name        string
	description string
	isDefault   bool
}

var (
	seedUsers = []seedUser{
		{SeedAdminEmail, "System", "Administrator", seedPasswordHash},
		{SeedUserEmail, "Pat", "Ferate", seedPasswordHash},
	}

	seedGroups = []seedGroup{
		{"User", "Basic user group", true},
		{"Moderator", "Moderator group", true},
		{"Administrator", "System administrator group", true},
	}

	seedMemberships = []struct {
		email string
		group string
	}{
		{SeedAdminEmail, "Administrator"},
		{SeedUserEmail, "User"},
	}
)

// Seed upserts the bootstrap users and groups by natural key and ensures their
// memberships, committing once. Running it repeatedly leaves one row per
// seeded email and group name.
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		users := make(map[string]*models.User, len(seedUsers))
		for _, su := range seedUsers {
			var user models.User
			if err := tx.Where(models.User{Email: su.email}).FirstOrInit(&user).Error; err != nil {
				return fmt.Errorf("failed to look up user %s: %w", su.email, err)
			}
			user.FirstName = su.firstName
			user.LastName = su.lastName
			user.PasswordHash = su.hash
			if err := tx.Omit(clause.Associations).Save(&user).Error; err != nil {
				return fmt.Errorf("failed to save user %s: %w", su.email, err)
			}
			users[su.email] = &user
		}

		groups := make(map[string]*models.Group, len(seedGroups))
		for _, sg := range seedGroups {
			var group models.Group
			if err := tx.Where(models.Group{Name: sg.name}).FirstOrInit(&group).Error; err != nil {
				return fmt.Errorf("failed to look up group %s: %w", sg.name, err)
			}
			group.Description = sg.description
			group.Default = sg.isDefault
			if err := tx.Omit(clause.Associations).Save(&group).Error; err != nil {
				return fmt.Errorf("failed to save group %s: %w", sg.name, err)
			}
			groups[sg.name] = &group
		}

		for _, m := range seedMemberships {
			membership := models.UserGroup{
				UserID:  users[m.email].ID,
				GroupID: groups[m.group].ID,
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&membership).Error; err != nil {
				return fmt.Errorf("failed to add %s to %s: %w", m.email, m.group, err)
			}
		}

		log.Printf("Seeded %d users and %d groups", len(users), len(groups))
		return nil
	})
}
