package models

import "time"

// Post statuses. Only Active posts appear on the public listing surfaces.
const (
	PostStatusActive   = "Active"
	PostStatusDraft    = "Draft"
	PostStatusDisabled = "Disabled"
)

// PostStatuses is the closed set of valid post statuses.
var PostStatuses = []string{PostStatusActive, PostStatusDraft, PostStatusDisabled}

// ValidPostStatus reports whether s is one of the known post statuses.
func ValidPostStatus(s string) bool {
	for _, v := range PostStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Post is a blog entry. The slug is computed once at creation (title plus a
// random suffix, so identical titles never collide) and never recomputed.
// Deleting the category nulls the reference instead of cascading.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	ProfileID   *uint     `gorm:"index" json:"profile_id,omitempty"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Image       string    `gorm:"size:512" json:"image"`
	Description string    `gorm:"type:text" json:"description"`
	CategoryID  *uint     `gorm:"index" json:"category_id,omitempty"`
	Status      string    `gorm:"size:20;not null;default:'Active'" json:"status"`
	View        int       `gorm:"not null;default:0" json:"view"`
	Slug        string    `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Date        time.Time `gorm:"autoCreateTime" json:"date"`
	User        User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Profile     *Profile  `json:"profile,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Tags        []Tag     `gorm:"many2many:post_tags;" json:"tags"`
	Likes       []User    `gorm:"many2many:post_likes;" json:"likes"`
	Comments    []Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments,omitempty"`
}
