package database

import (
	"gorm.io/gorm"

	"github.com/pferate/puppy-website/internal/utils"
)

// Paginate restricts a query to one page. A zero limit leaves it unbounded.
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params.Limit <= 0 {
			return db
		}
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// SentTo selects notifications addressed to recipientID.
func SentTo(recipientID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("sent_to = ?", recipientID)
	}
}

// Unread selects notifications without a read timestamp.
func Unread(db *gorm.DB) *gorm.DB {
	return db.Where("read_on IS NULL")
}

// NewestFirst orders notifications by creation, id breaking ties.
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_on DESC").Order("id DESC")
}
