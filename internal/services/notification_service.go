package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/pferate/puppy-website/internal/metrics"
	"github.com/pferate/puppy-website/internal/models"
	"github.com/pferate/puppy-website/internal/repository"
	"github.com/pferate/puppy-website/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrNoRecipients         = errors.New("at least one recipient is required")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrFailedToNotify       = errors.New("failed to create notifications")
)

// NotificationService dispatches and tracks the internal mailbox.
type NotificationService struct {
	repo     repository.NotificationRepository
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(repo repository.NotificationRepository, userRepo repository.UserRepository) *NotificationService {
	return &NotificationService{
		repo:     repo,
		userRepo: userRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SendMessage creates one notification per recipient, all from senderID with
// the same title and message, in a single transaction.
func (s *NotificationService) SendMessage(senderID uint64, title, message string, recipientIDs ...uint64) ([]models.Notification, error) {
	if len(recipientIDs) == 0 {
		return nil, ErrNoRecipients
	}
	if err := s.ensureRecipients(recipientIDs); err != nil {
		return nil, err
	}

	now := s.now()
	notifications := make([]models.Notification, len(recipientIDs))
	for i, recipientID := range recipientIDs {
		notifications[i] = models.Notification{
			Title:     title,
			Message:   message,
			CreatedOn: now,
			CreatedBy: senderID,
			SentTo:    recipientID,
		}
	}

	if err := s.repo.CreateBatch(notifications); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToNotify, err)
	}

	metrics.NotificationsCreatedTotal.WithLabelValues(metrics.KindDirect).Add(float64(len(notifications)))
	return notifications, nil
}

// BulkNotify sends the same notification from senderID to every user that
// exists when it runs, in a single transaction. It returns how many were created.
func (s *NotificationService) BulkNotify(title, message string, senderID uint64) (int, error) {
	now := s.now()
	created, err := s.repo.CreateForAllUsers(func(user models.User) models.Notification {
		return models.Notification{
			Title:     title,
			Message:   message,
			CreatedOn: now,
			CreatedBy: senderID,
			SentTo:    user.ID,
		}
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrFailedToNotify, err)
	}

	metrics.NotificationsCreatedTotal.WithLabelValues(metrics.KindBroadcast).Add(float64(created))
	return created, nil
}

// GetNotification returns a notification addressed to recipientID. Other
// users' notifications are reported as not found.
func (s *NotificationService) GetNotification(id, recipientID uint64) (*models.Notification, error) {
	notification, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}
	if notification.SentTo != recipientID {
		return nil, ErrNotificationNotFound
	}
	return notification, nil
}

// MarkRead stamps the notification read now. A second call overwrites the
// earlier stamp.
func (s *NotificationService) MarkRead(id, recipientID uint64) (*models.Notification, error) {
	notification, err := s.GetNotification(id, recipientID)
	if err != nil {
		return nil, err
	}

	notification.MarkRead(s.now())
	if err := s.repo.Update(notification); err != nil {
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}
	return notification, nil
}

// Inbox lists a user's notifications, newest first, with the total count.
func (s *NotificationService) Inbox(recipientID uint64, unreadOnly bool, page utils.PaginationParams) ([]models.Notification, int64, error) {
	notifications, total, err := s.repo.ListForRecipient(repository.NotificationFilter{
		RecipientID: recipientID,
		UnreadOnly:  unreadOnly,
		Pagination:  page,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, total, nil
}

// UnreadCount returns how many of a user's notifications are unread.
func (s *NotificationService) UnreadCount(recipientID uint64) (int64, error) {
	count, err := s.repo.CountUnread(recipientID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// ensureRecipients fails with ErrUserNotFound naming the first id no user owns.
func (s *NotificationService) ensureRecipients(ids []uint64) error {
	existing, err := s.userRepo.ExistingIDs(ids)
	if err != nil {
		return fmt.Errorf("failed to look up recipients: %w", err)
	}

	known := make(map[uint64]struct{}, len(existing))
	for _, id := range existing {
		known[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("%w: %d", ErrUserNotFound, id)
		}
	}
	return nil
}
