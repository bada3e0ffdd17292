package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/blogfolio/blogfolio/models"
	"github.com/blogfolio/blogfolio/utils"
)

// PostController serves the public content surface: listings, detail reads,
// like/bookmark toggles and reader comments.
type PostController struct {
	db *gorm.DB
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{db: db}
}

// ListCategories returns all categories with their post counts.
func (p *PostController) ListCategories(ctx *gin.Context) {
	var categories []models.Category
	if err := p.db.Find(&categories).Error; err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to list categories")
		return
	}

	type catCount struct {
		CategoryID uint
		N          int64
	}
	var counts []catCount
	if err := p.db.Model(&models.Post{}).
		Select("category_id, COUNT(*) AS n").
		Where("category_id IS NOT NULL").
		Group("category_id").
		Scan(&counts).Error; err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to count posts")
		return
	}
	byCat := make(map[uint]int64, len(counts))
	for _, c := range counts {
		byCat[c.CategoryID] = c.N
	}

	out := make([]gin.H, 0, len(categories))
	for _, c := range categories {
		out = append(out, gin.H{
			"id":         c.ID,
			"title":      c.Title,
			"image":      c.Image,
			"slug":       c.Slug,
			"post_count": byCat[c.ID],
		})
	}
	ctx.JSON(http.StatusOK, out)
}

// ListCategoryPosts returns Active posts in the category named by slug.
func (p *PostController) ListCategoryPosts(ctx *gin.Context) {
	var category models.Category
	if err := p.db.Where("slug = ?", ctx.Param("category_slug")).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Message(ctx, http.StatusNotFound, "category not found")
			return
		}
		utils.Message(ctx, http.StatusInternalServerError, "failed to load category")
		return
	}

	var posts []models.Post
	if err := p.publicPosts().
		Where("category_id = ?", category.ID).
		Find(&posts).Error; err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to list posts")
		return
	}
	ctx.JSON(http.StatusOK, posts)
}

// ListPosts returns all Active posts, newest first.
func (p *PostController) ListPosts(ctx *gin.Context) {
	var posts []models.Post
	if err := p.publicPosts().Find(&posts).Error; err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to list posts")
		return
	}
	ctx.JSON(http.StatusOK, posts)
}

// GetPostDetail returns one Active post by slug. Every read increments the
// view counter by one; the bump is a single atomic update so concurrent
// reads cannot lose counts.
func (p *PostController) GetPostDetail(ctx *gin.Context) {
	var post models.Post
	err := p.db.
		Preload("User").
		Preload("Profile").
		Preload("Category").
		Preload("Tags").
		Preload("Likes").
		Where("slug = ? AND status = ?", ctx.Param("slug"), models.PostStatusActive).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Message(ctx, http.StatusNotFound, "post not found")
			return
		}
		utils.Message(ctx, http.StatusInternalServerError, "failed to load post")
		return
	}

	if err := p.db.Model(&post).UpdateColumn("view", gorm.Expr("view + 1")).Error; err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to record view")
		return
	}
	post.View++

	ctx.JSON(http.StatusOK, post)
}

// LikePost toggles the caller's like on a post. Toggle-on answers 201 and
// notifies the post owner; toggle-off answers 200.
func (p *PostController) LikePost(ctx *gin.Context) {
	var req struct {
		UserID uint `json:"user_id" binding:"required"`
		PostID uint `json:"post_id" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Message(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := models.ToggleLike(p.db, req.UserID, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Message(ctx, http.StatusNotFound, "user or post not found")
			return
		}
		utils.Message(ctx, http.StatusInternalServerError, "failed to toggle like")
		return
	}

	if result.Added() {
		utils.Message(ctx, http.StatusCreated, "Post Liked")
		return
	}
	utils.Message(ctx, http.StatusOK, "Post Disliked")
}

// BookmarkPost toggles the caller's bookmark on a post. Toggle-on answers
// 201 and notifies the post owner; toggle-off answers 200.
func (p *PostController) BookmarkPost(ctx *gin.Context) {
	var req struct {
		UserID uint `json:"user_id" binding:"required"`
		PostID uint `json:"post_id" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Message(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := models.ToggleBookmark(p.db, req.UserID, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Message(ctx, http.StatusNotFound, "user or post not found")
			return
		}
		utils.Message(ctx, http.StatusInternalServerError, "failed to toggle bookmark")
		return
	}

	if result.Added() {
		utils.Message(ctx, http.StatusCreated, "Post Bookmarked")
		return
	}
	utils.Message(ctx, http.StatusOK, "Post Un-Bookmarked")
}

// CommentPost stores a reader comment. A reply must point at a top-level
// comment; replies to replies are rejected. The post owner is always notified.
func (p *PostController) CommentPost(ctx *gin.Context) {
	var req struct {
		PostID   uint   `json:"post_id" binding:"required"`
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Comment  string `json:"comment" binding:"required"`
		ParentID *uint  `json:"parent"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Message(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	var post models.Post
	if err := p.db.First(&post, req.PostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Message(ctx, http.StatusNotFound, "Post not found.")
			return
		}
		utils.Message(ctx, http.StatusInternalServerError, "failed to load post")
		return
	}

	if req.ParentID != nil {
		var parent models.Comment
		if err := p.db.First(&parent, *req.ParentID).Error; err != nil {
			utils.Message(ctx, http.StatusBadRequest, "Parent comment not found.")
			return
		}
		if !parent.TopLevel() {
			utils.Message(ctx, http.StatusBadRequest, "Replies to replies are not allowed.")
			return
		}
	}

	comment := models.Comment{
		PostID:   post.ID,
		ParentID: req.ParentID,
		Name:     utils.SanitizePlain(req.Name),
		Email:    req.Email,
		Comment:  utils.Sanitize(req.Comment),
	}

	err := p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return tx.Create(&models.Notification{
			UserID: post.UserID,
			PostID: post.ID,
			Type:   models.NotificationComment,
		}).Error
	})
	if err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to create comment")
		return
	}

	// flat "create" view, distinct from the nested detail view of ListComments
	utils.MessageWith(ctx, http.StatusCreated, "Comment Sent", gin.H{
		"comment": gin.H{
			"id":      comment.ID,
			"post":    comment.PostID,
			"parent":  comment.ParentID,
			"name":    comment.Name,
			"email":   comment.Email,
			"comment": comment.Comment,
			"date":    comment.Date,
		},
	})
}

type commentDetail struct {
	ID      uint            `json:"id"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Comment string          `json:"comment"`
	Date    time.Time       `json:"date"`
	Replies []commentDetail `json:"replies,omitempty"`
}

// ListComments returns a post's top-level comments newest-first, each with
// its replies newest-first. No pagination.
func (p *PostController) ListComments(ctx *gin.Context) {
	postID := ctx.Query("post_id")
	if postID == "" {
		utils.Message(ctx, http.StatusBadRequest, "post_id is required")
		return
	}

	var post models.Post
	if err := p.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Message(ctx, http.StatusNotFound, "Post not found")
			return
		}
		utils.Message(ctx, http.StatusInternalServerError, "failed to load post")
		return
	}

	var comments []models.Comment
	err := p.db.
		Preload("Replies", func(db *gorm.DB) *gorm.DB { return db.Order("date DESC") }).
		Where("post_id = ? AND parent_id IS NULL", post.ID).
		Order("date DESC").
		Find(&comments).Error
	if err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to list comments")
		return
	}

	out := make([]commentDetail, 0, len(comments))
	for _, c := range comments {
		detail := commentDetail{
			ID:      c.ID,
			Name:    c.Name,
			Email:   c.Email,
			Comment: c.Comment,
			Date:    c.Date,
		}
		for _, r := range c.Replies {
			detail.Replies = append(detail.Replies, commentDetail{
				ID:      r.ID,
				Name:    r.Name,
				Email:   r.Email,
				Comment: r.Comment,
				Date:    r.Date,
			})
		}
		out = append(out, detail)
	}
	ctx.JSON(http.StatusOK, out)
}

func (p *PostController) publicPosts() *gorm.DB {
	return p.db.
		Preload("User").
		Preload("Category").
		Preload("Tags").
		Where("status = ?", models.PostStatusActive).
		Order("date DESC")
}
