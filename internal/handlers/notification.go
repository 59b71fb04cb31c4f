package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pferate/puppy-website/internal/dto"
	apierrors "github.com/pferate/puppy-website/internal/errors"
	"github.com/pferate/puppy-website/internal/middleware"
	"github.com/pferate/puppy-website/internal/services"
	"github.com/pferate/puppy-website/internal/utils"
)

// NotificationHandler exposes the internal mailbox.
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// ListNotifications returns the current user's inbox, newest first.
// Pass unread=true to only list unread notifications.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)
	unreadOnly := c.Query("unread") == "true"

	notifications, total, err := h.notificationService.Inbox(userID, unreadOnly, params)
	if err != nil {
		respondNotificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": dto.ToNotificationDTOs(notifications),
		"pagination":    params.Response(total),
	})
}

// UnreadCount returns how many notifications the current user has not read.
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	count, err := h.notificationService.UnreadCount(userID)
	if err != nil {
		respondNotificationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}

// GetNotification returns one of the current user's notifications.
func (h *NotificationHandler) GetNotification(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	notification, err := h.notificationService.GetNotification(id, userID)
	if err != nil {
		respondNotificationError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToNotificationDTO(*notification))
}

// MarkRead stamps one of the current user's notifications as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	notification, err := h.notificationService.MarkRead(id, userID)
	if err != nil {
		respondNotificationError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToNotificationDTO(*notification))
}

// SendMessage sends the same notification from the current user to each recipient.
func (h *NotificationHandler) SendMessage(c *gin.Context) {
	type SendRequest struct {
		Title      string   `json:"title" binding:"required,max=128"`
		Message    string   `json:"message" binding:"required"`
		Recipients []uint64 `json:"recipients" binding:"required,min=1"`
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	sent, err := h.notificationService.SendMessage(userID, req.Title, req.Message, req.Recipients...)
	if err != nil {
		respondNotificationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sent": len(sent)})
}

// Broadcast sends a notification from the current user to every user.
func (h *NotificationHandler) Broadcast(c *gin.Context) {
	type BroadcastRequest struct {
		Title   string `json:"title" binding:"required,max=128"`
		Message string `json:"message" binding:"required"`
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.notificationService.BulkNotify(req.Title, req.Message, userID)
	if err != nil {
		respondNotificationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sent": created})
}

func respondNotificationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoRecipients):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotificationNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		log.Printf("notification handler error: %v", err)
		apierrors.InternalError(c, "Internal server error")
	}
}
