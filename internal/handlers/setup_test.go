package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pferate/puppy-website/internal/constants"
	"github.com/pferate/puppy-website/internal/database"
	"github.com/pferate/puppy-website/internal/identity"
	"github.com/pferate/puppy-website/internal/models"
	"github.com/pferate/puppy-website/internal/repository"
	"github.com/pferate/puppy-website/internal/services"
	"github.com/pferate/puppy-website/internal/tokens"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testServices struct {
	auth          *services.AuthService
	groups        *services.GroupService
	notifications *services.NotificationService
	catalog       *services.CatalogService
	ventures      *services.VentureService
}

func openTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func newTestServices(db *gorm.DB) testServices {
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	return testServices{
		auth:          services.NewAuthService(userRepo, tokens.NewSigner([]byte("test-secret")), time.Hour),
		groups:        services.NewGroupService(repository.NewGroupRepository(db), userRepo),
		notifications: services.NewNotificationService(repository.NewNotificationRepository(db), userRepo),
		catalog:       services.NewCatalogService(categoryRepo, userRepo),
		ventures:      services.NewVentureService(repository.NewVentureRepository(db), userRepo, categoryRepo),
	}
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{}
	user.SetEmail(email)
	require.NoError(t, user.SetPassword("supersecret"))
	require.NoError(t, db.Create(user).Error)
	return user
}

// createAuthContext builds a context as LoadPrincipal would leave it for user.
func createAuthContext(method, url string, body []byte, user *models.User) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if user != nil {
		c.Set(constants.ContextKeyPrincipal, identity.Authenticated{User: user})
		c.Set(constants.ContextKeyUserID, user.ID)
	}
	return c, w
}
