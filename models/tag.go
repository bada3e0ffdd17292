package models

import (
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Tag is a shared label namespace used by both posts and portfolio projects.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

// SplitTagCSV turns a comma separated tag string into individual names,
// dropping blanks.
func SplitTagCSV(csv string) []string {
	return lo.FilterMap(strings.Split(csv, ","), func(s string, _ int) (string, bool) {
		s = strings.TrimSpace(s)
		return s, s != ""
	})
}

// ResolveTags get-or-creates a Tag per name. Duplicate and blank names are
// collapsed first. Both post and project tagging go through here.
func ResolveTags(db *gorm.DB, names []string) ([]Tag, error) {
	cleaned := lo.Uniq(lo.FilterMap(names, func(s string, _ int) (string, bool) {
		s = strings.TrimSpace(s)
		return s, s != ""
	}))

	tags := make([]Tag, 0, len(cleaned))
	for _, name := range cleaned {
		var tag Tag
		if err := db.Where("name = ?", name).FirstOrCreate(&tag, Tag{Name: name}).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
