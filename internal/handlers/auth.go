package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/pferate/puppy-website/internal/constants"
	"github.com/pferate/puppy-website/internal/dto"
	apierrors "github.com/pferate/puppy-website/internal/errors"
	"github.com/pferate/puppy-website/internal/middleware"
	"github.com/pferate/puppy-website/internal/models"
	"github.com/pferate/puppy-website/internal/services"
	"github.com/pferate/puppy-website/internal/tokens"
)

// TokenSink receives tokens that must reach the user out of band, such as
// confirmation links.
type TokenSink func(user *models.User, purpose, token string)

// LogTokenSink records that a token was issued without revealing it.
func LogTokenSink(user *models.User, purpose, token string) {
	log.Printf("issued %s token for user %d", purpose, user.ID)
}

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	deliver     TokenSink
}

// NewAuthHandler creates a new AuthHandler. A nil sink defaults to LogTokenSink.
func NewAuthHandler(authService *services.AuthService, deliver TokenSink) *AuthHandler {
	if deliver == nil {
		deliver = LogTokenSink
	}
	return &AuthHandler{
		authService: authService,
		deliver:     deliver,
	}
}

// Register creates a new account and issues its confirmation token.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Email     string `json:"email" binding:"required,email,max=64"`
		Password  string `json:"password" binding:"required"`
		Username  string `json:"username" binding:"max=64"`
		FirstName string `json:"first_name" binding:"max=64"`
		LastName  string `json:"last_name" binding:"max=64"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if err := h.issue(user, tokens.PurposeConfirm); err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProfileDTO(*user, isSecure(c)))
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*user, isSecure(c)))
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user's profile.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.authService.Ping(user); err != nil {
		log.Printf("failed to ping user %d: %v", user.ID, err)
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*user, isSecure(c)))
}

// RequestConfirmation issues a fresh confirmation token for the current user.
func (h *AuthHandler) RequestConfirmation(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	if user.Confirmed {
		apierrors.InvalidOperation(c, "Account already confirmed")
		return
	}

	if err := h.issue(user, tokens.PurposeConfirm); err != nil {
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "A confirmation link has been sent"})
}

// Confirm confirms the current user's account.
func (h *AuthHandler) Confirm(c *gin.Context) {
	type ConfirmRequest struct {
		Token string `json:"token" binding:"required"`
	}

	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	confirmed, err := h.authService.Confirm(user, req.Token)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	if !confirmed {
		apierrors.InvalidToken(c, "The confirmation link is invalid or has expired")
		return
	}

	c.JSON(http.StatusOK, gin.H{"confirmed": true})
}

// RequestPasswordReset issues a reset token for the account behind an email.
// It answers the same way whether or not the account exists.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	type ResetRequest struct {
		Email string `json:"email" binding:"required"`
	}

	var req ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.GetUserByEmail(req.Email)
	switch {
	case err == nil:
		if err := h.issue(user, tokens.PurposeReset); err != nil {
			respondAuthError(c, err)
			return
		}
	case !errors.Is(err, services.ErrUserNotFound):
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "If the account exists, a reset link has been sent"})
}

// ResetPassword sets a new password using a reset token.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	type ResetPasswordRequest struct {
		Email    string `json:"email" binding:"required"`
		Token    string `json:"token" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.InvalidToken(c, "")
			return
		}
		respondAuthError(c, err)
		return
	}

	reset, err := h.authService.ResetPassword(user, req.Token, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	if !reset {
		apierrors.InvalidToken(c, "The reset link is invalid or has expired")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Your password has been updated"})
}

// RequestEmailChange issues a token authorizing a move to a new address. The
// current password is required.
func (h *AuthHandler) RequestEmailChange(c *gin.Context) {
	type ChangeEmailRequest struct {
		Email    string `json:"email" binding:"required,email,max=64"`
		Password string `json:"password" binding:"required"`
	}

	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req ChangeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if !user.VerifyPassword(req.Password) {
		apierrors.InvalidCredentials(c, "Invalid password")
		return
	}
	if _, err := h.authService.GetUserByEmail(req.Email); err == nil {
		apierrors.Conflict(c, services.ErrEmailTaken.Error())
		return
	}

	token, err := h.authService.GenerateEmailChangeToken(user, req.Email)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	h.deliver(user, tokens.PurposeChangeEmail, token)

	c.JSON(http.StatusAccepted, gin.H{"message": "A confirmation link has been sent to the new address"})
}

// ChangeEmail applies an email change token to the current user.
func (h *AuthHandler) ChangeEmail(c *gin.Context) {
	type ApplyChangeRequest struct {
		Token string `json:"token" binding:"required"`
	}

	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req ApplyChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	changed, err := h.authService.ChangeEmail(user, req.Token)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	if !changed {
		apierrors.InvalidToken(c, "Invalid request")
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*user, isSecure(c)))
}

// IssueToken returns an API token for the current user. The body may ask
// for a lifetime in seconds, which is clamped to the allowed range.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	type IssueTokenRequest struct {
		Expiration int `json:"expiration"`
	}

	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	expiration := clampTokenExpiration(req.Expiration)
	token, err := h.authService.GenerateAuthToken(user, time.Duration(expiration)*time.Second)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		Token:      token,
		Expiration: expiration,
	})
}

// clampTokenExpiration maps a requested lifetime in seconds onto the allowed
// range. Zero or less selects the default.
func clampTokenExpiration(seconds int) int {
	switch {
	case seconds <= 0:
		return constants.DefaultTokenExpiration
	case seconds < constants.MinAuthTokenExpiration:
		return constants.MinAuthTokenExpiration
	case seconds > constants.MaxAuthTokenExpiration:
		return constants.MaxAuthTokenExpiration
	}
	return seconds
}

// ListUsers returns the public projection of every user.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers()
	if err != nil {
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": dto.ToUserDTOs(users)})
}

// ApproveUser marks a user approved by the current administrator.
func (h *AuthHandler) ApproveUser(c *gin.Context) {
	approver, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.authService.ApproveUser(userID, approver.ID)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func (h *AuthHandler) issue(user *models.User, purpose string) error {
	var (
		token string
		err   error
	)
	switch purpose {
	case tokens.PurposeConfirm:
		token, err = h.authService.GenerateConfirmationToken(user)
	case tokens.PurposeReset:
		token, err = h.authService.GenerateResetToken(user)
	default:
		return fmt.Errorf("%w: unsupported purpose %q", services.ErrFailedToIssueToken, purpose)
	}
	if err != nil {
		return err
	}
	h.deliver(user, purpose, token)
	return nil
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrEmailRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrFailedToHashPassword),
		errors.Is(err, services.ErrFailedToCreateUser),
		errors.Is(err, services.ErrFailedToIssueToken):
		apierrors.InternalError(c, err.Error())
	default:
		log.Printf("auth handler error: %v", err)
		apierrors.InternalError(c, "Internal server error")
	}
}
