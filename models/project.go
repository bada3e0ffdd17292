package models

import "time"

// Project is a portfolio showcase entry. The slug is derived once at creation
// and immutable afterwards. Tags share their namespace with blog posts.
type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AuthorID    uint      `gorm:"index;not null" json:"author_id"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Slug        string    `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Desc        string    `gorm:"type:text" json:"desc"`
	LiveLink    string    `gorm:"size:512" json:"live_link"`
	GithubLink  string    `gorm:"size:512" json:"github_link"`
	Image       string    `gorm:"size:512" json:"image"`
	IsPublished bool      `gorm:"default:false" json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Author      User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;" json:"author"`
	Tags        []Tag     `gorm:"many2many:project_tags;" json:"tags"`
}
