package models

import "time"

// Comment is reader feedback on a post. Name and email are free text, not
// account-linked. ParentID nests replies exactly one level deep; the write
// path rejects replies to replies. Reply holds the author's public response,
// independent of the nesting mechanism.
type Comment struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	PostID   uint      `gorm:"index;not null" json:"post_id"`
	ParentID *uint     `gorm:"index" json:"parent_id,omitempty"`
	Name     string    `gorm:"size:100;not null" json:"name"`
	Email    string    `gorm:"size:100" json:"email"`
	Comment  string    `gorm:"type:text" json:"comment"`
	Reply    string    `gorm:"type:text" json:"reply"`
	Date     time.Time `gorm:"autoCreateTime" json:"date"`
	Replies  []Comment `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE;" json:"replies,omitempty"`
}

// TopLevel reports whether the comment can accept replies.
func (c *Comment) TopLevel() bool {
	return c.ParentID == nil
}
