package models

import "time"

// Notification types, one per engagement event.
const (
	NotificationLike     = "Like"
	NotificationComment  = "Comment"
	NotificationBookmark = "Bookmark"
)

// Notification is an append-only record of an engagement event directed at a
// post's owner. Rows are never deleted; only Seen is mutated after creation.
type Notification struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	UserID uint      `gorm:"index;not null" json:"user_id"`
	PostID uint      `gorm:"index;not null" json:"post_id"`
	Type   string    `gorm:"size:20;not null" json:"type"`
	Seen   bool      `gorm:"not null;default:false" json:"seen"`
	Date   time.Time `gorm:"autoCreateTime" json:"date"`
	Post   Post      `gorm:"constraint:OnDelete:CASCADE;" json:"post,omitempty"`
}
