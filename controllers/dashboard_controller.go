package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/blogfolio/blogfolio/models"
	"github.com/blogfolio/blogfolio/utils"
)

// DashboardController serves the author dashboard: stats, the author's own
// posts and their lifecycle, notifications and comment moderation.
type DashboardController struct {
	db *gorm.DB
}

// NewDashboardController creates a new DashboardController instance.
func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{db: db}
}

// Stats returns the dashboard counters for one author. Views, posts and
// likes are scoped to the author; the remaining counters are site-wide.
// The response is a one-element array.
func (d *DashboardController) Stats(ctx *gin.Context) {
	userID := ctx.Param("user_id")

	var user models.User
	if err := d.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Message(ctx, http.StatusNotFound, "user not found")
			return
		}
		utils.Message(ctx, http.StatusInternalServerError, "failed to load user")
		return
	}

	var views int64
	if err := d.db.Model(&models.Post{}).
		Where("user_id = ?", user.ID).
		Select("COALESCE(SUM(view), 0)").
		Scan(&views).Error; err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	var posts, likes int64
	d.db.Model(&models.Post{}).Where("user_id = ?", user.ID).Count(&posts)
	d.db.Table("post_likes").
		Joins("JOIN posts ON posts.id = post_likes.post_id").
		Where("posts.user_id = ?", user.ID).
		Count(&likes)

	var bookmarks, categories, tags, projects, users, comments int64
	d.db.Model(&models.Bookmark{}).Count(&bookmarks)
	d.db.Model(&models.Category{}).Count(&categories)
	d.db.Model(&models.Tag{}).Count(&tags)
	d.db.Model(&models.Project{}).Count(&projects)
	d.db.Model(&models.User{}).Count(&users)
	d.db.Model(&models.Comment{}).Count(&comments)

	ctx.JSON(http.StatusOK, []gin.H{{
		"views":      views,
		"posts":      posts,
		"likes":      likes,
		"bookmarks":  bookmarks,
		"categories": categories,
		"tags":       tags,
		"projects":   projects,
		"users":      users,
		"comments":   comments,
	}})
}

// PostList returns all of the author's posts regardless of status,
// newest id first.
func (d *DashboardController) PostList(ctx *gin.Context) {
	var posts []models.Post
	err := d.db.
		Preload("Category").
		Preload("Tags").
		Where("user_id = ?", ctx.Param("user_id")).
		Order("id DESC").
		Find(&posts).Error
	if err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to list posts")
		return
	}
	ctx.JSON(http.StatusOK, posts)
}

// CommentList returns every comment left on the author's posts.
func (d *DashboardController) CommentList(ctx *gin.Context) {
	var comments []models.Comment
	err := d.db.
		Joins("JOIN posts ON posts.id = comments.post_id").
		Where("posts.user_id = ?", ctx.Param("user_id")).
		Order("comments.date DESC").
		Preload("Post").
		Find(&comments).Error
	if err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to list comments")
		return
	}
	ctx.JSON(http.StatusOK, comments)
}

// ReplyComment records the author's reply text on an existing comment.
func (d *DashboardController) ReplyComment(ctx *gin.Context) {
	var req struct {
		CommentID uint   `json:"comment_id" binding:"required"`
		Reply     string `json:"reply" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Message(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	var comment models.Comment
	if err := d.db.First(&comment, req.CommentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Message(ctx, http.StatusNotFound, "comment not found")
			return
		}
		utils.Message(ctx, http.StatusInternalServerError, "failed to load comment")
		return
	}

	comment.Reply = utils.Sanitize(req.Reply)
	if err := d.db.Save(&comment).Error; err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to save reply")
		return
	}
	utils.Message(ctx, http.StatusCreated, "Comment response sent")
}

// NotificationList returns the author's unseen notifications, newest first.
func (d *DashboardController) NotificationList(ctx *gin.Context) {
	var notifications []models.Notification
	err := d.db.
		Preload("Post").
		Where("user_id = ? AND seen = ?", ctx.Param("user_id"), false).
		Order("date DESC").
		Find(&notifications).Error
	if err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to list notifications")
		return
	}
	ctx.JSON(http.StatusOK, notifications)
}

// MarkNotificationSeen marks a single notification as seen.
func (d *DashboardController) MarkNotificationSeen(ctx *gin.Context) {
	var req struct {
		NotificationID uint `json:"notification_id" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Message(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	var notification models.Notification
	if err := d.db.First(&notification, req.NotificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Message(ctx, http.StatusNotFound, "notification not found")
			return
		}
		utils.Message(ctx, http.StatusInternalServerError, "failed to load notification")
		return
	}

	if err := d.db.Model(&notification).Update("seen", true).Error; err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to update notification")
		return
	}
	utils.Message(ctx, http.StatusOK, "Notification marked as seen")
}

// ClearNotifications marks every notification of the user as seen.
func (d *DashboardController) ClearNotifications(ctx *gin.Context) {
	var req struct {
		UserID uint `json:"user_id" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Message(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	err := d.db.Model(&models.Notification{}).
		Where("user_id = ?", req.UserID).
		Update("seen", true).Error
	if err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to clear notifications")
		return
	}
	utils.Message(ctx, http.StatusOK, "All notifications cleared")
}

// CreatePost creates a post for the author from a multipart form. The slug
// is derived from the title with a random suffix unless one is supplied.
func (d *DashboardController) CreatePost(ctx *gin.Context) {
	userID := ctx.PostForm("user_id")
	title := ctx.PostForm("title")
	if userID == "" || title == "" {
		utils.Message(ctx, http.StatusBadRequest, "user_id and title are required")
		return
	}

	var user models.User
	if err := d.db.First(&user, userID).Error; err != nil {
		utils.Message(ctx, http.StatusNotFound, "User or Category not found.")
		return
	}

	var categoryID *uint
	if v := ctx.PostForm("category"); v != "" {
		category, err := d.resolveCategory(v)
		if err != nil {
			utils.Message(ctx, http.StatusNotFound, "User or Category not found.")
			return
		}
		categoryID = &category.ID
	}

	status := ctx.PostForm("status")
	if status == "" {
		status = models.PostStatusActive
	}
	if !models.ValidPostStatus(status) {
		utils.Message(ctx, http.StatusBadRequest, "invalid status")
		return
	}

	slug := ctx.PostForm("slug")
	if slug == "" {
		slug = utils.SlugWithSuffix(title)
	}

	image, err := utils.SaveImage(ctx, "image")
	if err != nil {
		if errors.Is(err, utils.ErrFileTooLarge) {
			utils.Message(ctx, http.StatusBadRequest, "image too large")
			return
		}
		utils.Message(ctx, http.StatusInternalServerError, "failed to store image")
		return
	}

	tags, err := models.ResolveTags(d.db, models.SplitTagCSV(ctx.PostForm("tags")))
	if err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to resolve tags")
		return
	}

	post := models.Post{
		UserID:      user.ID,
		Title:       title,
		Image:       image,
		Description: utils.Sanitize(ctx.PostForm("description")),
		CategoryID:  categoryID,
		Status:      status,
		Slug:        slug,
		Tags:        tags,
	}

	var profile models.Profile
	if err := d.db.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
		post.ProfileID = &profile.ID
	}

	if err := d.db.Create(&post).Error; err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to create post")
		return
	}
	utils.Message(ctx, http.StatusCreated, "Post Created Successfully")
}

// GetOwnedPost returns one post scoped to its owner.
func (d *DashboardController) GetOwnedPost(ctx *gin.Context) {
	post, ok := d.ownedPost(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, post)
}

// UpdateOwnedPost applies a partial multipart update to the author's post.
// The slug never changes; an absent or "undefined" image field keeps the
// stored image.
func (d *DashboardController) UpdateOwnedPost(ctx *gin.Context) {
	post, ok := d.ownedPost(ctx)
	if !ok {
		return
	}

	if v := ctx.PostForm("title"); v != "" {
		post.Title = v
	}
	if v := ctx.PostForm("description"); v != "" {
		post.Description = utils.Sanitize(v)
	}
	if v := ctx.PostForm("status"); v != "" {
		if !models.ValidPostStatus(v) {
			utils.Message(ctx, http.StatusBadRequest, "invalid status")
			return
		}
		post.Status = v
	}
	if v := ctx.PostForm("category"); v != "" {
		category, err := d.resolveCategory(v)
		if err != nil {
			utils.Message(ctx, http.StatusNotFound, "User or Category not found.")
			return
		}
		post.CategoryID = &category.ID
	}

	// a text value of "undefined" means the client kept the stored image
	if v, _ := ctx.GetPostForm("image"); v != "undefined" {
		image, err := utils.SaveImage(ctx, "image")
		if err != nil {
			utils.Message(ctx, http.StatusInternalServerError, "failed to store image")
			return
		}
		if image != "" {
			post.Image = image
		}
	}

	if csv, set := ctx.GetPostForm("tags"); set {
		tags, err := models.ResolveTags(d.db, models.SplitTagCSV(csv))
		if err != nil {
			utils.Message(ctx, http.StatusInternalServerError, "failed to resolve tags")
			return
		}
		if err := d.db.Model(post).Association("Tags").Replace(tags); err != nil {
			utils.Message(ctx, http.StatusInternalServerError, "failed to update tags")
			return
		}
	}

	if err := d.db.Save(post).Error; err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to update post")
		return
	}
	utils.Message(ctx, http.StatusOK, "Post updated successfully")
}

// DeleteOwnedPost deletes the author's post.
func (d *DashboardController) DeleteOwnedPost(ctx *gin.Context) {
	post, ok := d.ownedPost(ctx)
	if !ok {
		return
	}
	if err := d.db.Delete(post).Error; err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to delete post")
		return
	}
	utils.Message(ctx, http.StatusOK, "Post deleted successfully")
}

// resolveCategory accepts either a numeric id or a title.
func (d *DashboardController) resolveCategory(v string) (*models.Category, error) {
	var category models.Category
	if id, err := strconv.Atoi(v); err == nil {
		if err := d.db.First(&category, id).Error; err == nil {
			return &category, nil
		}
	}
	if err := d.db.Where("title = ?", v).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (d *DashboardController) ownedPost(ctx *gin.Context) (*models.Post, bool) {
	var post models.Post
	err := d.db.
		Preload("Category").
		Preload("Tags").
		Where("id = ? AND user_id = ?", ctx.Param("post_id"), ctx.Param("user_id")).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Message(ctx, http.StatusNotFound, "post not found")
			return nil, false
		}
		utils.Message(ctx, http.StatusInternalServerError, "failed to load post")
		return nil, false
	}
	return &post, true
}
