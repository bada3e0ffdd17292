package models

import "time"

// Bookmark is a user's saved post. The (user, post) pair is unique at the
// storage level so concurrent double-submission cannot create duplicates.
type Bookmark struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	UserID uint      `gorm:"not null;uniqueIndex:idx_bookmark_user_post" json:"user_id"`
	PostID uint      `gorm:"not null;uniqueIndex:idx_bookmark_user_post" json:"post_id"`
	Date   time.Time `gorm:"autoCreateTime" json:"date"`
	Post   Post      `gorm:"constraint:OnDelete:CASCADE;" json:"post,omitempty"`
}
