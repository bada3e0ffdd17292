package models

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory database and migrates the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&User{}, &Profile{}, &Category{}, &Tag{}, &Post{}, &Comment{},
		&Bookmark{}, &Notification{}, &Project{}, &ContactMessage{}, &Visitor{},
	))
	return db
}

func seedUserAndPost(t *testing.T, db *gorm.DB) (User, Post) {
	t.Helper()

	owner := User{Email: "owner@example.com", Username: "owner"}
	require.NoError(t, db.Create(&owner).Error)

	post := Post{
		UserID: owner.ID,
		Title:  "Seeded Post",
		Status: PostStatusActive,
		Slug:   "seeded-post-00001",
	}
	require.NoError(t, db.Create(&post).Error)
	return owner, post
}
