package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/pferate/puppy-website/internal/constants"
	"github.com/pferate/puppy-website/internal/metrics"
	"github.com/pferate/puppy-website/internal/models"
	"github.com/pferate/puppy-website/internal/repository"
	"github.com/pferate/puppy-website/internal/tokens"
	"gorm.io/gorm"
)

var (
	ErrEmailRequired        = errors.New("email is required")
	ErrEmailTaken           = errors.New("email already registered")
	ErrUsernameTaken        = errors.New("username already exists")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
	ErrFailedToIssueToken   = errors.New("failed to issue token")
)

// AuthService handles accounts, credentials and the signed-token flows.
type AuthService struct {
	userRepo repository.UserRepository
	signer   *tokens.Signer
	tokenTTL time.Duration
	now      func() time.Time
}

// NewAuthService creates a new AuthService. tokenTTL is the lifetime of
// confirmation, reset and email change tokens.
func NewAuthService(userRepo repository.UserRepository, signer *tokens.Signer, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = constants.DefaultTokenExpiration * time.Second
	}
	return &AuthService{
		userRepo: userRepo,
		signer:   signer,
		tokenTTL: tokenTTL,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Email     string
	Password  string
	Username  string
	FirstName string
	LastName  string
}

// Register creates a new, unconfirmed user. The username defaults to the email.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		username = email
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	user := &models.User{
		Username:  username,
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		LastSeen:  s.now(),
	}
	user.SetEmail(email)
	if err := user.SetPassword(input.Password); err != nil {
		return nil, ErrFailedToHashPassword
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, ErrFailedToCreateUser
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials, records the visit and returns the user.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.RecordLogin(false)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.VerifyPassword(input.Password) {
		metrics.RecordLogin(false)
		return nil, ErrInvalidCredentials
	}
	metrics.RecordLogin(true)

	if err := s.Ping(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Ping stamps the user's last-seen time.
func (s *AuthService) Ping(user *models.User) error {
	user.Ping(s.now())
	if err := s.userRepo.Save(user); err != nil {
		return fmt.Errorf("failed to update last seen: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email address.
func (s *AuthService) GetUserByEmail(email string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// LoadUser returns the user with their groups loaded. It is the user loader
// handed to identity.Manager.
func (s *AuthService) LoadUser(id uint64) (*models.User, error) {
	return s.userRepo.FindByID(id, "Groups")
}

// ListUsers returns every user.
func (s *AuthService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ApproveUser marks a user approved by approverID.
func (s *AuthService) ApproveUser(userID, approverID uint64) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user.Approved = true
	user.ApprovedOn = &now
	user.ApprovedBy = &approverID

	if err := s.userRepo.Save(user); err != nil {
		return nil, fmt.Errorf("failed to approve user: %w", err)
	}
	return user, nil
}

// GenerateConfirmationToken issues an account confirmation token.
func (s *AuthService) GenerateConfirmationToken(user *models.User) (string, error) {
	return s.issue(tokens.PurposeConfirm, user.ID, s.tokenTTL)
}

// Confirm marks the user confirmed when token is a valid confirmation token
// for them. Token problems yield false with a nil error; the error is only
// set when saving the user fails.
func (s *AuthService) Confirm(user *models.User, token string) (bool, error) {
	if !s.verify(token, tokens.PurposeConfirm, user.ID) {
		return false, nil
	}

	user.Confirmed = true
	if err := s.userRepo.Save(user); err != nil {
		return false, fmt.Errorf("failed to confirm user: %w", err)
	}
	return true, nil
}

// GenerateResetToken issues a password reset token.
func (s *AuthService) GenerateResetToken(user *models.User) (string, error) {
	return s.issue(tokens.PurposeReset, user.ID, s.tokenTTL)
}

// ResetPassword replaces the password when token is a valid reset token for the user.
func (s *AuthService) ResetPassword(user *models.User, token, newPassword string) (bool, error) {
	if !s.verify(token, tokens.PurposeReset, user.ID) {
		return false, nil
	}
	if len(newPassword) < constants.MinPasswordLength {
		return false, ErrPasswordTooShort
	}

	if err := user.SetPassword(newPassword); err != nil {
		return false, ErrFailedToHashPassword
	}
	if err := s.userRepo.Save(user); err != nil {
		return false, fmt.Errorf("failed to reset password: %w", err)
	}
	return true, nil
}

// GenerateEmailChangeToken issues a token authorizing a move to newEmail.
func (s *AuthService) GenerateEmailChangeToken(user *models.User, newEmail string) (string, error) {
	token, err := s.signer.GenerateEmailChange(user.ID, newEmail, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToIssueToken, err)
	}
	return token, nil
}

// ChangeEmail applies the address carried by token. It yields false, leaving
// the user untouched, when the token is invalid, carries no address, or the
// address already belongs to another user.
func (s *AuthService) ChangeEmail(user *models.User, token string) (bool, error) {
	claims, err := s.signer.Verify(token, tokens.PurposeChangeEmail, user.ID)
	if err != nil || claims.NewEmail == "" {
		metrics.RecordTokenVerification(tokens.PurposeChangeEmail, false)
		return false, nil
	}
	metrics.RecordTokenVerification(tokens.PurposeChangeEmail, true)

	taken, err := s.userRepo.EmailTaken(claims.NewEmail, user.ID)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return false, nil
	}

	previous := user.Email
	previousHash := user.AvatarHash
	user.SetEmail(claims.NewEmail)
	if err := s.userRepo.Save(user); err != nil {
		user.Email = previous
		user.AvatarHash = previousHash
		return false, fmt.Errorf("failed to change email: %w", err)
	}
	return true, nil
}

// GenerateAuthToken issues an API token valid for expiration.
func (s *AuthService) GenerateAuthToken(user *models.User, expiration time.Duration) (string, error) {
	return s.issue(tokens.PurposeAuth, user.ID, expiration)
}

// VerifyAuthToken returns the user named by an API token, or nil when the
// token is invalid or the user no longer exists.
func (s *AuthService) VerifyAuthToken(token string) *models.User {
	claims, err := s.signer.Parse(token)
	if err != nil {
		metrics.RecordTokenVerification(tokens.PurposeAuth, false)
		return nil
	}
	id, ok := claims.Subject(tokens.PurposeAuth)
	if !ok {
		metrics.RecordTokenVerification(tokens.PurposeAuth, false)
		return nil
	}

	user, err := s.LoadUser(id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("failed to load user %d for auth token: %v", id, err)
		}
		metrics.RecordTokenVerification(tokens.PurposeAuth, false)
		return nil
	}
	metrics.RecordTokenVerification(tokens.PurposeAuth, true)
	return user
}

func (s *AuthService) issue(purpose string, userID uint64, ttl time.Duration) (string, error) {
	token, err := s.signer.Generate(purpose, userID, ttl)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToIssueToken, err)
	}
	return token, nil
}

func (s *AuthService) verify(token, purpose string, userID uint64) bool {
	_, err := s.signer.Verify(token, purpose, userID)
	metrics.RecordTokenVerification(purpose, err == nil)
	return err == nil
}
