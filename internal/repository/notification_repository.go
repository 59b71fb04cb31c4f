package repository

import (
	"github.com/pferate/puppy-website/internal/database"
	"github.com/pferate/puppy-website/internal/models"
	"gorm.io/gorm"
)

// GormNotificationRepository is a GORM implementation of NotificationRepository
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &GormNotificationRepository{db: db}
}

// CreateBatch inserts all notifications in a single transaction
func (r *GormNotificationRepository) CreateBatch(notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Omit("CreatedByUser", "SentToUser").Create(&notifications).Error
	})
}

// CreateForAllUsers inserts one notification per existing user in a single transaction
func (r *GormNotificationRepository) CreateForAllUsers(build func(user models.User) models.Notification) (int, error) {
	created := 0
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var users []models.User
		if err := tx.Order("id").Find(&users).Error; err != nil {
			return err
		}
		if len(users) == 0 {
			return nil
		}

		notifications := make([]models.Notification, len(users))
		for i, user := range users {
			notifications[i] = build(user)
		}

		if err := tx.Omit("CreatedByUser", "SentToUser").Create(&notifications).Error; err != nil {
			return err
		}
		created = len(notifications)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// FindByID finds a notification by ID with its sender and recipient
func (r *GormNotificationRepository) FindByID(id uint64) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.
		Preload("CreatedByUser").
		Preload("SentToUser").
		First(&notification, id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// ListForRecipient lists a user's notifications, newest first
func (r *GormNotificationRepository) ListForRecipient(filter NotificationFilter) ([]models.Notification, int64, error) {
	query := r.db.Model(&models.Notification{}).Scopes(database.SentTo(filter.RecipientID))
	if filter.UnreadOnly {
		query = query.Scopes(database.Unread)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Scopes(database.NewestFirst, database.Paginate(filter.Pagination))

	var notifications []models.Notification
	if err := listQuery.
		Preload("CreatedByUser").
		Preload("SentToUser").
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

// CountUnread counts unread notifications of a user
func (r *GormNotificationRepository) CountUnread(recipientID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Scopes(database.SentTo(recipientID), database.Unread).
		Count(&count).Error
	return count, err
}

// Update updates a notification
func (r *GormNotificationRepository) Update(notification *models.Notification) error {
	return r.db.Omit("CreatedByUser", "SentToUser").Save(notification).Error
}
