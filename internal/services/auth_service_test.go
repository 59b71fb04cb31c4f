package services

import (
	"testing"
	"time"

	"github.com/pferate/puppy-website/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register(t *testing.T) {
	env := setupServiceTestEnv(t)

	user, err := env.auth.Register(RegisterInput{
		Email:     "john@example.com",
		Password:  "supersecret",
		FirstName: "John",
		LastName:  "Doe",
	})
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "john@example.com", user.Username)
	assert.Equal(t, models.EmailHash("john@example.com"), user.AvatarHash)
	assert.False(t, user.Confirmed)
	assert.True(t, user.VerifyPassword("supersecret"))
}

func TestAuthService_RegisterValidation(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, err := env.auth.Register(RegisterInput{Email: "", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, err = env.auth.Register(RegisterInput{Email: "a@puppy", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = env.auth.Register(RegisterInput{Email: "a@puppy", Password: "supersecret", Username: "a"})
	require.NoError(t, err)

	_, err = env.auth.Register(RegisterInput{Email: "a@puppy", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = env.auth.Register(RegisterInput{Email: "b@puppy", Password: "supersecret", Username: "a"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthService_Login(t *testing.T) {
	env := setupServiceTestEnv(t)

	registered, err := env.auth.Register(RegisterInput{Email: "john@example.com", Password: "supersecret"})
	require.NoError(t, err)
	before := registered.LastSeen

	later := before.Add(time.Hour)
	env.auth.now = func() time.Time { return later }

	user, err := env.auth.Login(LoginInput{Email: "john@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	stored, err := env.auth.GetUser(user.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, later, stored.LastSeen, time.Second)

	_, err = env.auth.Login(LoginInput{Email: "john@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.auth.Login(LoginInput{Email: "nobody@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Confirm(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := createTestUser(t, env.db, "john@example.com")
	other := createTestUser(t, env.db, "susan@example.com")

	token, err := env.auth.GenerateConfirmationToken(user)
	require.NoError(t, err)

	ok, err := env.auth.Confirm(other, token)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, other.Confirmed)

	ok, err = env.auth.Confirm(user, "garbage")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = env.auth.Confirm(user, token)
	require.NoError(t, err)
	assert.True(t, ok)

	stored, err := env.auth.GetUser(user.ID)
	require.NoError(t, err)
	assert.True(t, stored.Confirmed)
}

func TestAuthService_ExpiredConfirmationToken(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := createTestUser(t, env.db, "john@example.com")

	env.auth.tokenTTL = -time.Minute
	token, err := env.auth.GenerateConfirmationToken(user)
	require.NoError(t, err)

	ok, err := env.auth.Confirm(user, token)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, user.Confirmed)
}

func TestAuthService_ResetPassword(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := createTestUser(t, env.db, "john@example.com")
	other := createTestUser(t, env.db, "susan@example.com")

	token, err := env.auth.GenerateResetToken(user)
	require.NoError(t, err)

	ok, err := env.auth.ResetPassword(other, token, "dog-password")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = env.auth.ResetPassword(user, token, "dog-password")
	require.NoError(t, err)
	assert.True(t, ok)

	stored, err := env.auth.GetUser(user.ID)
	require.NoError(t, err)
	assert.True(t, stored.VerifyPassword("dog-password"))
}

func TestAuthService_ConfirmationTokenIsNotAResetToken(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := createTestUser(t, env.db, "john@example.com")

	token, err := env.auth.GenerateConfirmationToken(user)
	require.NoError(t, err)

	ok, err := env.auth.ResetPassword(user, token, "dog-password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthService_ChangeEmail(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := createTestUser(t, env.db, "john@example.com")

	token, err := env.auth.GenerateEmailChangeToken(user, "susan@example.org")
	require.NoError(t, err)

	ok, err := env.auth.ChangeEmail(user, token)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "susan@example.org", user.Email)
	assert.Equal(t, models.EmailHash("susan@example.org"), user.AvatarHash)

	stored, err := env.auth.GetUserByEmail("susan@example.org")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
}

func TestAuthService_ChangeEmailToTakenAddress(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := createTestUser(t, env.db, "john@example.com")
	createTestUser(t, env.db, "susan@example.org")

	token, err := env.auth.GenerateEmailChangeToken(user, "susan@example.org")
	require.NoError(t, err)

	ok, err := env.auth.ChangeEmail(user, token)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "john@example.com", user.Email)

	stored, err := env.auth.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", stored.Email)
}

func TestAuthService_ChangeEmailWithOtherUsersToken(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := createTestUser(t, env.db, "john@example.com")
	other := createTestUser(t, env.db, "susan@example.com")

	token, err := env.auth.GenerateEmailChangeToken(other, "new@example.com")
	require.NoError(t, err)

	ok, err := env.auth.ChangeEmail(user, token)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "john@example.com", user.Email)
}

func TestAuthService_AuthToken(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := createTestUser(t, env.db, "john@example.com")
	createTestGroup(t, env.db, "User", user)

	token, err := env.auth.GenerateAuthToken(user, time.Hour)
	require.NoError(t, err)

	verified := env.auth.VerifyAuthToken(token)
	require.NotNil(t, verified)
	assert.Equal(t, user.ID, verified.ID)
	require.Len(t, verified.Groups, 1)

	expired, err := env.auth.GenerateAuthToken(user, -time.Minute)
	require.NoError(t, err)
	assert.Nil(t, env.auth.VerifyAuthToken(expired))
	assert.Nil(t, env.auth.VerifyAuthToken("garbage"))

	confirm, err := env.auth.GenerateConfirmationToken(user)
	require.NoError(t, err)
	assert.Nil(t, env.auth.VerifyAuthToken(confirm))
}

func TestAuthService_ApproveUser(t *testing.T) {
	env := setupServiceTestEnv(t)
	admin := createTestUser(t, env.db, "admin@puppy")
	user := createTestUser(t, env.db, "john@example.com")

	approved, err := env.auth.ApproveUser(user.ID, admin.ID)
	require.NoError(t, err)
	assert.True(t, approved.Approved)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, admin.ID, *approved.ApprovedBy)
	assert.NotNil(t, approved.ApprovedOn)

	_, err = env.auth.ApproveUser(999, admin.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
