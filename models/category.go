package models

// Category classifies posts. Slugs are derived from the title once at creation.
type Category struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Title string `gorm:"size:100;not null" json:"title"`
	Image string `gorm:"size:512" json:"image"`
	Slug  string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Posts []Post `gorm:"constraint:OnDelete:SET NULL;" json:"-"`
}
