package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/blogfolio/blogfolio/models"
	"github.com/blogfolio/blogfolio/utils"
)

// TaxonomyController manages categories and tags.
type TaxonomyController struct {
	db *gorm.DB
}

// NewTaxonomyController creates a new TaxonomyController instance.
func NewTaxonomyController(db *gorm.DB) *TaxonomyController {
	return &TaxonomyController{db: db}
}

// CreateCategory creates a category from a multipart form. The slug is
// derived from the title and never changes afterwards.
func (t *TaxonomyController) CreateCategory(ctx *gin.Context) {
	title := ctx.PostForm("title")
	if title == "" {
		utils.FieldErrors(ctx, gin.H{"title": "This field is required."})
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

	category := models.Category{
		Title: title,
		Image: image,
		Slug:  utils.Slugify(title),
	}
	if err := t.db.Create(&category).Error; err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to create category")
		return
	}
	ctx.JSON(http.StatusCreated, category)
}

// ListTags returns every tag.
func (t *TaxonomyController) ListTags(ctx *gin.Context) {
	var tags []models.Tag
	if err := t.db.Order("id").Find(&tags).Error; err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to list tags")
		return
	}
	ctx.JSON(http.StatusOK, tags)
}

// CreateTag creates a single tag.
func (t *TaxonomyController) CreateTag(ctx *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.FieldErrors(ctx, gin.H{"name": "This field is required."})
		return
	}

	tag := models.Tag{Name: req.Name}
	if err := t.db.Create(&tag).Error; err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to create tag")
		return
	}
	ctx.JSON(http.StatusCreated, tag)
}

// UpdateTag renames a tag.
func (t *TaxonomyController) UpdateTag(ctx *gin.Context) {
	tag, ok := t.tagByParam(ctx)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.FieldErrors(ctx, gin.H{"name": "This field is required."})
		return
	}

	tag.Name = req.Name
	if err := t.db.Save(tag).Error; err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to update tag")
		return
	}
	ctx.JSON(http.StatusOK, tag)
}

// DeleteTag removes a tag.
func (t *TaxonomyController) DeleteTag(ctx *gin.Context) {
	tag, ok := t.tagByParam(ctx)
	if !ok {
		return
	}
	if err := t.db.Delete(tag).Error; err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to delete tag")
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (t *TaxonomyController) tagByParam(ctx *gin.Context) (*models.Tag, bool) {
	var tag models.Tag
	if err := t.db.First(&tag, ctx.Param("tag_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Message(ctx, http.StatusNotFound, "tag not found")
			return nil, false
		}
		utils.Message(ctx, http.StatusInternalServerError, "failed to load tag")
		return nil, false
	}
	return &tag, true
}
