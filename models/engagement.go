package models

import (
	"errors"

	"gorm.io/gorm"
)

// ToggleResult tags the transition a toggle endpoint performed, so callers
// assert on the state change rather than inferring it from an HTTP status.
type ToggleResult int

const (
	ToggleAdded ToggleResult = iota
	ToggleRemoved
)

// Added reports whether the toggle turned the state on.
func (r ToggleResult) Added() bool { return r == ToggleAdded }

// ToggleLike flips the user's membership in the post's like set. Turning the
// like on emits exactly one Notification to the post owner; turning it off
// emits nothing. The membership check, mutation and notification run in one
// transaction so concurrent toggles cannot lose updates.
func ToggleLike(db *gorm.DB, userID, postID uint) (ToggleResult, error) {
	var post Post
	if err := db.First(&post, postID).Error; err != nil {
		return 0, err
	}
	var user User
	if err := db.First(&user, userID).Error; err != nil {
		return 0, err
	}

	result := ToggleRemoved
	err := db.Transaction(func(tx *gorm.DB) error {
		var liked int64
		if err := tx.Table("post_likes").
			Where("post_id = ? AND user_id = ?", post.ID, user.ID).
			Count(&liked).Error; err != nil {
			return err
		}

		if liked > 0 {
			return tx.Model(&post).Association("Likes").Delete(&user)
		}

		if err := tx.Model(&post).Association("Likes").Append(&user); err != nil {
			return err
		}
		result = ToggleAdded
		return tx.Create(&Notification{
			UserID: post.UserID,
			PostID: post.ID,
			Type:   NotificationLike,
		}).Error
	})
	if err != nil {
		return 0, err
	}
	return result, nil
}

// ToggleBookmark flips the (user, post) bookmark. The first call creates one
// Bookmark row and one Notification; the second deletes the Bookmark and
// creates nothing. The unique index on (user_id, post_id) backs the toggle
// under concurrency.
func ToggleBookmark(db *gorm.DB, userID, postID uint) (ToggleResult, error) {
	var post Post
	if err := db.First(&post, postID).Error; err != nil {
		return 0, err
	}
	var user User
	if err := db.First(&user, userID).Error; err != nil {
		return 0, err
	}

	result := ToggleRemoved
	err := db.Transaction(func(tx *gorm.DB) error {
		var bookmark Bookmark
		err := tx.Where("user_id = ? AND post_id = ?", user.ID, post.ID).First(&bookmark).Error
		if err == nil {
			return tx.Delete(&bookmark).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&Bookmark{UserID: user.ID, PostID: post.ID}).Error; err != nil {
			return err
		}
		result = ToggleAdded
		return tx.Create(&Notification{
			UserID: post.UserID,
			PostID: post.ID,
			Type:   NotificationBookmark,
		}).Error
	})
	if err != nil {
		return 0, err
	}
	return result, nil
}
