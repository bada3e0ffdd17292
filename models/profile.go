package models

import "time"

// Profile carries the public-facing author metadata attached 1:1 to a User.
// It is created inside the same transaction as its owner, never by a hook.
type Profile struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Image       string    `gorm:"size:512;default:'/static/default/default-user.jpg'" json:"image"`
	FullName    string    `gorm:"size:100" json:"full_name"`
	Bio         string    `gorm:"size:100" json:"bio"`
	About       string    `gorm:"size:100" json:"about"`
	Author      bool      `gorm:"default:false" json:"author"`
	Country     string    `gorm:"size:100" json:"country"`
	GithubID    string    `gorm:"size:100" json:"github_id"`
	Portfolio   string    `gorm:"size:100" json:"portfolio"`
	TelegramID  string    `gorm:"size:100" json:"telegram_id"`
	LinkedinID  string    `gorm:"size:100" json:"linkedin_id"`
	DiscordID   string    `gorm:"size:100" json:"discord_id"`
	InstagramID string    `gorm:"size:100" json:"instagram_id"`
	Date        time.Time `gorm:"autoCreateTime" json:"date"`
}
