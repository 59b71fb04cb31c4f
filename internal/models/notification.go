package models

import "time"

type Notification struct {
	ID        uint64     `gorm:"primarykey" json:"id"`
	Title     string     `gorm:"type:text" json:"title"`
	Message   string     `gorm:"type:text" json:"message"`
	ReadOn    *time.Time `json:"read_on"`
	CreatedOn time.Time  `gorm:"autoCreateTime" json:"created_on"`
	CreatedBy uint64     `gorm:"index" json:"created_by"`
	SentTo    uint64     `gorm:"index" json:"sent_to"`

	// Relations
	CreatedByUser User `gorm:"foreignKey:CreatedBy" json:"-"`
	SentToUser    User `gorm:"foreignKey:SentTo" json:"-"`
}

// MarkRead stamps the read time. Calling it again overwrites the stamp.
func (n *Notification) MarkRead(now time.Time) *Notification {
	n.ReadOn = &now
	return n
}

// IsRead reports whether the notification has been read.
func (n *Notification) IsRead() bool {
	return n.ReadOn != nil
}

func (n Notification) String() string {
	return n.Message
}
