package dto

import (
	"time"

	"github.com/pferate/puppy-website/internal/models"
)

// NotificationDTO represents a notification in API responses
type NotificationDTO struct {
	ID        uint64     `json:"id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	CreatedOn time.Time  `json:"created_on"`
	CreatedBy UserDTO    `json:"created_by"`
	SentTo    UserDTO    `json:"sent_to"`
	ReadOn    *time.Time `json:"read_on"`
	Read      bool       `json:"read"`
}

// ToNotificationDTO converts a Notification, with sender and recipient loaded
func ToNotificationDTO(n models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		CreatedOn: n.CreatedOn,
		CreatedBy: ToUserDTO(n.CreatedByUser),
		SentTo:    ToUserDTO(n.SentToUser),
		ReadOn:    n.ReadOn,
		Read:      n.IsRead(),
	}
}

// ToNotificationDTOs converts a slice of notifications
func ToNotificationDTOs(notifications []models.Notification) []NotificationDTO {
	dtos := make([]NotificationDTO, len(notifications))
	for i, n := range notifications {
		dtos[i] = ToNotificationDTO(n)
	}
	return dtos
}
