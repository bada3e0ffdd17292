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

// PortfolioController serves projects and the contact form.
type PortfolioController struct {
	db *gorm.DB
}

// NewPortfolioController creates a new PortfolioController instance.
func NewPortfolioController(db *gorm.DB) *PortfolioController {
	return &PortfolioController{db: db}
}

// ListProjects returns published projects, newest first.
func (p *PortfolioController) ListProjects(ctx *gin.Context) {
	var projects []models.Project
	err := p.db.
		Preload("Author").
		Preload("Tags").
		Where("is_published = ?", true).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to list projects")
		return
	}
	ctx.JSON(http.StatusOK, projects)
}

// GetProject returns one project by slug.
func (p *PortfolioController) GetProject(ctx *gin.Context) {
	var project models.Project
	err := p.db.
		Preload("Author").
		Preload("Tags").
		Where("slug = ?", ctx.Param("slug")).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Message(ctx, http.StatusNotFound, "project not found")
			return
		}
		utils.Message(ctx, http.StatusInternalServerError, "failed to load project")
		return
	}
	ctx.JSON(http.StatusOK, project)
}

// CreateProject creates a project for an author from a multipart form.
// The slug is derived from the title at creation and never changes.
func (p *PortfolioController) CreateProject(ctx *gin.Context) {
	authorID := ctx.PostForm("author_id")
	title := ctx.PostForm("title")
	if authorID == "" || title == "" {
		utils.Message(ctx, http.StatusBadRequest, "author_id and title are required")
		return
	}

	var author models.User
	if err := p.db.First(&author, authorID).Error; err != nil {
		utils.Message(ctx, http.StatusNotFound, "author not found")
		return
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

	tags, err := models.ResolveTags(p.db, models.SplitTagCSV(ctx.PostForm("tags")))
	if err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to resolve tags")
		return
	}

	published := true
	if v := ctx.PostForm("is_published"); v != "" {
		published, _ = strconv.ParseBool(v)
	}

	project := models.Project{
		AuthorID:    author.ID,
		Title:       title,
		Slug:        utils.SlugWithSuffix(title),
		Desc:        utils.Sanitize(ctx.PostForm("desc")),
		LiveLink:    ctx.PostForm("live_link"),
		GithubLink:  ctx.PostForm("github_link"),
		Image:       image,
		IsPublished: published,
		Tags:        tags,
	}
	if err := p.db.Create(&project).Error; err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to create project")
		return
	}
	ctx.JSON(http.StatusCreated, project)
}

// UpdateProject applies a partial multipart update. The slug is immutable.
func (p *PortfolioController) UpdateProject(ctx *gin.Context) {
	var project models.Project
	if err := p.db.Where("slug = ?", ctx.Param("slug")).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Message(ctx, http.StatusNotFound, "project not found")
			return
		}
		utils.Message(ctx, http.StatusInternalServerError, "failed to load project")
		return
	}

	if v := ctx.PostForm("title"); v != "" {
		project.Title = v
	}
	if v, set := ctx.GetPostForm("desc"); set {
		project.Desc = utils.Sanitize(v)
	}
	if v, set := ctx.GetPostForm("live_link"); set {
		project.LiveLink = v
	}
	if v, set := ctx.GetPostForm("github_link"); set {
		project.GithubLink = v
	}
	if v := ctx.PostForm("is_published"); v != "" {
		published, err := strconv.ParseBool(v)
		if err != nil {
			utils.Message(ctx, http.StatusBadRequest, "invalid is_published value")
			return
		}
		project.IsPublished = published
	}

	image, err := utils.SaveImage(ctx, "image")
	if err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to store image")
		return
	}
	if image != "" {
		project.Image = image
	}

	if csv, set := ctx.GetPostForm("tags"); set {
		tags, err := models.ResolveTags(p.db, models.SplitTagCSV(csv))
		if err != nil {
			utils.Message(ctx, http.StatusInternalServerError, "failed to resolve tags")
			return
		}
		if err := p.db.Model(&project).Association("Tags").Replace(tags); err != nil {
			utils.Message(ctx, http.StatusInternalServerError, "failed to update tags")
			return
		}
	}

	if err := p.db.Save(&project).Error; err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to update project")
		return
	}
	ctx.JSON(http.StatusOK, project)
}

// DeleteProject removes a project by slug.
func (p *PortfolioController) DeleteProject(ctx *gin.Context) {
	var project models.Project
	if err := p.db.Where("slug = ?", ctx.Param("slug")).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Message(ctx, http.StatusNotFound, "project not found")
			return
		}
		utils.Message(ctx, http.StatusInternalServerError, "failed to load project")
		return
	}
	if err := p.db.Delete(&project).Error; err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to delete project")
		return
	}
	utils.Message(ctx, http.StatusOK, "Project deleted successfully")
}

// SubmitContact stores a contact-form message. Role and status values come
// from closed sets; anything else is rejected.
func (p *PortfolioController) SubmitContact(ctx *gin.Context) {
	var req struct {
		FirstName   string `json:"first_name" binding:"required"`
		LastName    string `json:"last_name"`
		Email       string `json:"email" binding:"required,email"`
		PhoneNumber string `json:"phone_number"`
		Role        string `json:"role" binding:"required"`
		Message     string `json:"message" binding:"required"`
		Status      string `json:"status"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Message(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	if !models.ValidContactRole(req.Role) {
		utils.FieldErrors(ctx, gin.H{"role": "Invalid role. Please select a valid option."})
		return
	}
	if req.Status == "" {
		req.Status = models.ContactStatusNew
	}
	if !models.ValidContactStatus(req.Status) {
		utils.FieldErrors(ctx, gin.H{"status": "Invalid status. Please select a valid option."})
		return
	}

	msg := models.ContactMessage{
		FirstName:   utils.SanitizePlain(req.FirstName),
		LastName:    utils.SanitizePlain(req.LastName),
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
		Message:     utils.Sanitize(req.Message),
		Status:      req.Status,
	}
	if err := p.db.Create(&msg).Error; err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to store message")
		return
	}
	ctx.JSON(http.StatusCreated, msg)
}
