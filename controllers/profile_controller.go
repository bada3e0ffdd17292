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

// ProfileController serves the public author profile attached to a user.
type ProfileController struct {
	db *gorm.DB
}

// NewProfileController creates a ProfileController.
func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{db: db}
}

// GetProfile returns the profile owned by the given user id.
func (p *ProfileController) GetProfile(ctx *gin.Context) {
	profile, ok := p.profileByUserParam(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, profile)
}

// UpdateProfile applies a partial multipart update. Only fields present in
// the form are touched; the image field is a file upload, not a URL.
func (p *ProfileController) UpdateProfile(ctx *gin.Context) {
	profile, ok := p.profileByUserParam(ctx)
	if !ok {
		return
	}

	setIfPresent := func(field string, dst *string, sanitize bool) {
		if v, present := ctx.GetPostForm(field); present {
			if sanitize {
				v = utils.Sanitize(v)
			}
			*dst = v
		}
	}

	setIfPresent("full_name", &profile.FullName, false)
	setIfPresent("bio", &profile.Bio, true)
	setIfPresent("about", &profile.About, true)
	setIfPresent("country", &profile.Country, false)
	setIfPresent("github_id", &profile.GithubID, false)
	setIfPresent("portfolio", &profile.Portfolio, false)
	setIfPresent("telegram_id", &profile.TelegramID, false)
	setIfPresent("linkedin_id", &profile.LinkedinID, false)
	setIfPresent("discord_id", &profile.DiscordID, false)
	setIfPresent("instagram_id", &profile.InstagramID, false)

	if v, present := ctx.GetPostForm("author"); present {
		if b, err := strconv.ParseBool(v); err == nil {
			profile.Author = b
		}
	}

	if url, err := utils.SaveImage(ctx, "image"); err != nil {
		utils.Message(ctx, http.StatusBadRequest, "failed to store image")
		return
	} else if url != "" {
		profile.Image = url
	}

	// full_name falls back to the owner's when cleared
	if profile.FullName == "" {
		var owner models.User
		if err := p.db.First(&owner, profile.UserID).Error; err == nil {
			profile.FullName = owner.FullName
		}
	}

	if err := p.db.Save(profile).Error; err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to update profile")
		return
	}
	ctx.JSON(http.StatusOK, profile)
}

func (p *ProfileController) profileByUserParam(ctx *gin.Context) (*models.Profile, bool) {
	userID, err := strconv.Atoi(ctx.Param("user_id"))
	if err != nil {
		utils.Message(ctx, http.StatusBadRequest, "invalid user id")
		return nil, false
	}

	var profile models.Profile
	if err := p.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Message(ctx, http.StatusNotFound, "profile not found")
			return nil, false
		}
		utils.Message(ctx, http.StatusInternalServerError, "failed to load profile")
		return nil, false
	}
	return &profile, true
}
