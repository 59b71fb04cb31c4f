package services

import (
	"testing"
	"time"

	"github.com/pferate/puppy-website/internal/database"
	"github.com/pferate/puppy-website/internal/models"
	"github.com/pferate/puppy-website/internal/repository"
	"github.com/pferate/puppy-website/internal/tokens"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type serviceTestEnv struct {
	db            *gorm.DB
	auth          *AuthService
	groups        *GroupService
	notifications *NotificationService
	catalog       *CatalogService
	ventures      *VentureService
}

func setupServiceTestEnv(t *testing.T) serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.AutoMigrate(db))

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	return serviceTestEnv{
		db:            db,
		auth:          NewAuthService(userRepo, tokens.NewSigner([]byte("test-secret")), time.Hour),
		groups:        NewGroupService(groupRepo, userRepo),
		notifications: NewNotificationService(repository.NewNotificationRepository(db), userRepo),
		catalog:       NewCatalogService(categoryRepo, userRepo),
		ventures:      NewVentureService(repository.NewVentureRepository(db), userRepo, categoryRepo),
	}
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{PasswordHash: "hashed"}
	user.SetEmail(email)
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestGroup(t *testing.T, db *gorm.DB, name string, members ...*models.User) *models.Group {
	t.Helper()

	group := &models.Group{Name: name, Description: name + " group"}
	require.NoError(t, db.Create(group).Error)
	for _, m := range members {
		require.NoError(t, db.Create(&models.UserGroup{UserID: m.ID, GroupID: group.ID}).Error)
	}
	return group
}
