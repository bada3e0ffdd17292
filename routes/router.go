package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/blogfolio/blogfolio/config"
	"github.com/blogfolio/blogfolio/controllers"
	"github.com/blogfolio/blogfolio/middleware"
	"github.com/blogfolio/blogfolio/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(utils.GinLogger())
	r.Use(utils.GinRecovery())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.Static("/static", "./static")

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	profileController := controllers.NewProfileController(db)
	postController := controllers.NewPostController(db)
	dashboardController := controllers.NewDashboardController(db)
	taxonomyController := controllers.NewTaxonomyController(db)
	portfolioController := controllers.NewPortfolioController(db)
	visitorController := controllers.NewVisitorController(db)

	// visitor tracking lives outside the versioned API
	r.POST("/add-visitor/", visitorController.TrackVisit)
	r.GET("/visitor-stats/", visitorController.Stats)

	api := r.Group("/api/v1")

	userGroup := api.Group("/user")
	userGroup.Use(middleware.RateLimitMiddleware())
	userGroup.POST("/register/", authController.Register)
	userGroup.POST("/token/", authController.Token)
	userGroup.POST("/token/refresh/", authController.RefreshToken)
	userGroup.POST("/logout/", middleware.AuthRequired(), authController.Logout)
	userGroup.GET("/oauth/github/login", authController.OAuthRedirect)
	userGroup.GET("/oauth/github/callback", authController.OAuthCallback)
	userGroup.GET("/profile/:user_id/", profileController.GetProfile)
	userGroup.PUT("/profile/:user_id/", profileController.UpdateProfile)

	postGroup := api.Group("/post")
	postGroup.GET("/category/list/", postController.ListCategories)
	postGroup.GET("/category/posts/:category_slug/", postController.ListCategoryPosts)
	postGroup.GET("/lists/", postController.ListPosts)
	postGroup.GET("/detail/:slug/", postController.GetPostDetail)
	postGroup.POST("/like-post/", postController.LikePost)
	postGroup.POST("/bookmark-post/", postController.BookmarkPost)
	postGroup.POST("/comment-post/", postController.CommentPost)
	postGroup.GET("/comment-post/", postController.ListComments)

	authorGroup := api.Group("/author")
	dashboard := authorGroup.Group("/dashboard")
	dashboard.GET("/stats/:user_id/", dashboardController.Stats)
	dashboard.GET("/post-list/:user_id/", dashboardController.PostList)
	dashboard.GET("/comment-list/:user_id/", dashboardController.CommentList)
	dashboard.GET("/notification-list/:user_id/", dashboardController.NotificationList)
	dashboard.POST("/notification-mark-seen/", dashboardController.MarkNotificationSeen)
	dashboard.POST("/reply-comment/", dashboardController.ReplyComment)
	dashboard.POST("/post-create/", dashboardController.CreatePost)
	dashboard.GET("/post-detail/:user_id/:post_id/", dashboardController.GetOwnedPost)
	dashboard.PUT("/post-detail/:user_id/:post_id/", dashboardController.UpdateOwnedPost)
	dashboard.DELETE("/post-detail/:user_id/:post_id/", dashboardController.DeleteOwnedPost)
	authorGroup.POST("/clear-notifications/", dashboardController.ClearNotifications)

	api.POST("/blog/categories/create/", taxonomyController.CreateCategory)

	tagGroup := api.Group("/tags")
	tagGroup.GET("/", taxonomyController.ListTags)
	tagGroup.POST("/", taxonomyController.CreateTag)
	tagGroup.PUT("/:tag_id/", taxonomyController.UpdateTag)
	tagGroup.DELETE("/:tag_id/", taxonomyController.DeleteTag)

	portfolioGroup := api.Group("/portfolio")
	portfolioGroup.GET("/projects/", portfolioController.ListProjects)
	portfolioGroup.POST("/projects/", portfolioController.CreateProject)
	portfolioGroup.GET("/projects/:slug/", portfolioController.GetProject)
	portfolioGroup.PUT("/projects/:slug/", portfolioController.UpdateProject)
	portfolioGroup.DELETE("/projects/:slug/", portfolioController.DeleteProject)
	portfolioGroup.POST("/contact/", portfolioController.SubmitContact)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Message(ctx, http.StatusNotFound, "route not found")
	})

	return r
}
