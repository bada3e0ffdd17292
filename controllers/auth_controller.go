package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"gorm.io/gorm"

	"github.com/blogfolio/blogfolio/config"
	"github.com/blogfolio/blogfolio/models"
	"github.com/blogfolio/blogfolio/utils"
)

// AuthController handles registration, token issuance and OAuth sign-in.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

// Register creates a User and its Profile in one transaction. The username
// is derived from the email local-part; the password must match its
// confirmation and pass the platform strength rules.
func (a *AuthController) Register(ctx *gin.Context) {
	var req struct {
		FullName  string `json:"full_name"`
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required"`
		Password2 string `json:"password2" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Message(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	if req.Password != req.Password2 {
		utils.FieldErrors(ctx, gin.H{"password": "Password fields didn't match."})
		return
	}
	if err := utils.ValidatePasswordStrength(req.Password); err != nil {
		utils.FieldErrors(ctx, gin.H{"password": err.Error()})
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	var existing models.User
	if err := a.db.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.FieldErrors(ctx, gin.H{"email": "user with this email already exists."})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to hash password")
		return
	}

	localPart := strings.SplitN(email, "@", 2)[0]
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		fullName = localPart
	}

	user := models.User{
		Email:        email,
		Username:     a.ensureUniqueUsername(localPart),
		FullName:     fullName,
		PasswordHash: hash,
	}

	// Profile creation is an explicit step in the same transaction, not a
	// persistence hook.
	err = a.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Profile{UserID: user.ID, FullName: user.FullName}).Error
	})
	if err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to create user")
		return
	}

	ctx.JSON(http.StatusCreated, user)
}

// Token authenticates by email and password and issues an access/refresh pair.
func (a *AuthController) Token(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Message(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	var user models.User
	if err := a.db.Where("email = ?", strings.TrimSpace(strings.ToLower(req.Email))).First(&user).Error; err != nil {
		utils.Message(ctx, http.StatusUnauthorized, "No active account found with the given credentials")
		return
	}
	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Message(ctx, http.StatusUnauthorized, "No active account found with the given credentials")
		return
	}

	pair, err := utils.GenerateTokenPair(user.ID, user.Username, user.Email, user.FullName)
	if err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to generate token")
		return
	}
	ctx.JSON(http.StatusOK, pair)
}

// RefreshToken exchanges a valid refresh token for a fresh pair.
func (a *AuthController) RefreshToken(ctx *gin.Context) {
	var req struct {
		Refresh string `json:"refresh" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Message(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	claims, err := utils.ParseRefreshToken(req.Refresh)
	if err != nil {
		utils.Message(ctx, http.StatusUnauthorized, "Token is invalid or expired")
		return
	}
	if utils.IsTokenBlacklisted(req.Refresh) {
		utils.Message(ctx, http.StatusUnauthorized, "Token is invalid or expired")
		return
	}

	var user models.User
	if err := a.db.First(&user, claims.UserID).Error; err != nil {
		utils.Message(ctx, http.StatusUnauthorized, "No active account found with the given credentials")
		return
	}

	pair, err := utils.GenerateTokenPair(user.ID, user.Username, user.Email, user.FullName)
	if err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to generate token")
		return
	}
	ctx.JSON(http.StatusOK, pair)
}

// Logout invalidates the presented access token by blacklisting it until expiration.
func (a *AuthController) Logout(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		utils.Message(ctx, http.StatusUnauthorized, "invalid authorization header")
		return
	}

	token := strings.TrimSpace(parts[1])
	claims, err := utils.ParseToken(token)
	if err != nil {
		utils.Message(ctx, http.StatusUnauthorized, "invalid token")
		return
	}

	expiresAt := time.Now().Add(24 * time.Hour)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	utils.BlacklistToken(token, expiresAt)
	utils.Message(ctx, http.StatusOK, "logged out")
}

// OAuthRedirect generates the GitHub authorization URL.
func (a *AuthController) OAuthRedirect(ctx *gin.Context) {
	cfg, err := a.oauthConfig()
	if err != nil {
		utils.Message(ctx, http.StatusBadRequest, err.Error())
		return
	}

	state := uuid.NewString()
	utils.SaveState(state, 10*time.Minute)

	url := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
	ctx.JSON(http.StatusOK, gin.H{"authorization_url": url, "state": state})
}

// OAuthCallback exchanges the authorization code for a GitHub identity,
// creating the User and Profile on first sign-in, and issues a token pair.
func (a *AuthController) OAuthCallback(ctx *gin.Context) {
	code := ctx.Query("code")
	state := ctx.Query("state")
	if code == "" || state == "" {
		utils.Message(ctx, http.StatusBadRequest, "missing code or state")
		return
	}
	if !utils.ConsumeState(state) {
		utils.Message(ctx, http.StatusBadRequest, "invalid or expired state")
		return
	}

	cfg, err := a.oauthConfig()
	if err != nil {
		utils.Message(ctx, http.StatusBadRequest, err.Error())
		return
	}

	token, err := cfg.Exchange(context.Background(), code)
	if err != nil {
		utils.Message(ctx, http.StatusBadRequest, "failed to exchange code")
		return
	}

	identity, err := fetchGitHubUser(token)
	if err != nil {
		utils.Message(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	user, err := a.findOrCreateOAuthUser(identity)
	if err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to persist user")
		return
	}

	pair, err := utils.GenerateTokenPair(user.ID, user.Username, user.Email, user.FullName)
	if err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "failed to generate token")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"access": pair.Access, "refresh": pair.Refresh, "user": user})
}

func (a *AuthController) oauthConfig() (*oauth2.Config, error) {
	cfg := config.Get()
	if cfg.GitHubClientID == "" || cfg.GitHubClientSecret == "" {
		return nil, errors.New("github oauth not configured")
	}
	return &oauth2.Config{
		ClientID:     cfg.GitHubClientID,
		ClientSecret: cfg.GitHubClientSecret,
		RedirectURL:  fmt.Sprintf("%s/api/v1/user/oauth/github/callback", cfg.OAuthRedirectBase),
		Scopes:       []string{"read:user", "user:email"},
		Endpoint:     github.Endpoint,
	}, nil
}

type oauthUser struct {
	ID       string
	Login    string
	Name     string
	Email    string
	ImageURL string
}

func (a *AuthController) findOrCreateOAuthUser(data *oauthUser) (*models.User, error) {
	var user models.User
	err := a.db.Where("provider = ? AND provider_id = ?", "github", data.ID).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fullName := strings.TrimSpace(data.Name)
	if fullName == "" {
		fullName = data.Login
	}
	user = models.User{
		Email:      strings.TrimSpace(strings.ToLower(data.Email)),
		Username:   a.ensureUniqueUsername(data.Login),
		FullName:   fullName,
		Provider:   "github",
		ProviderID: data.ID,
	}

	err = a.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := models.Profile{UserID: user.ID, FullName: user.FullName, GithubID: data.Login}
		if data.ImageURL != "" {
			profile.Image = data.ImageURL
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func fetchGitHubUser(token *oauth2.Token) (*oauthUser, error) {
	req, _ := http.NewRequest("GET", "https://api.github.com/user", nil)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token.AccessToken))
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github user info request failed: %s", resp.Status)
	}

	var payload struct {
		ID        int64  `json:"id"`
		Login     string `json:"login"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	return &oauthUser{
		ID:       fmt.Sprintf("%d", payload.ID),
		Login:    payload.Login,
		Name:     payload.Name,
		Email:    payload.Email,
		ImageURL: payload.AvatarURL,
	}, nil
}

// ensureUniqueUsername appends a numeric suffix until the candidate is free.
func (a *AuthController) ensureUniqueUsername(base string) string {
	base = strings.TrimSpace(strings.ToLower(base))
	if base == "" {
		base = "user"
	}

	candidate := base
	suffix := 1
	for {
		var count int64
		if err := a.db.Model(&models.User{}).Where("username = ?", candidate).Count(&count).Error; err != nil {
			return candidate
		}
		if count == 0 {
			return candidate
		}
		candidate = fmt.Sprintf("%s%d", base, suffix)
		suffix++
	}
}
