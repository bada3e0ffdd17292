package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/blogfolio/blogfolio/models"
	"github.com/blogfolio/blogfolio/utils"
)

// VisitorController tracks anonymous site visits keyed by IP.
type VisitorController struct {
	db *gorm.DB
}

// NewVisitorController creates a new VisitorController instance.
func NewVisitorController(db *gorm.DB) *VisitorController {
	return &VisitorController{db: db}
}

// TrackVisit records one visit. The first sighting of an IP stores its
// location and user agent; every later sighting only bumps the counter
// and the last-visited time. The whole operation is a single upsert.
func (v *VisitorController) TrackVisit(ctx *gin.Context) {
	var req struct {
		IP        string          `json:"ip" binding:"required"`
		Location  json.RawMessage `json:"location"`
		UserAgent string          `json:"userAgent"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Message(ctx, http.StatusBadRequest, "ip is required")
		return
	}

	visitor := models.Visitor{
		IP:        req.IP,
		Location:  []byte(req.Location),
		UserAgent: req.UserAgent,
		ViewCount: 1,
	}
	err := v.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "ip"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"view_count":   gorm.Expr("view_count + 1"),
			"last_visited": time.Now(),
		}),
	}).Create(&visitor).Error
	if err != nil {
		utils.Logger.Error("visitor upsert failed", zap.String("ip", req.IP), zap.Error(err))
		utils.Message(ctx, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if err := v.db.Where("ip = ?", req.IP).First(&visitor).Error; err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	utils.MessageWith(ctx, http.StatusOK, "Visitor tracked successfully", gin.H{"visitor": visitor})
}

// Stats returns all visitors plus aggregate counters and the top visitor
// by view count.
func (v *VisitorController) Stats(ctx *gin.Context) {
	var visitors []models.Visitor
	if err := v.db.Order("view_count DESC").Find(&visitors).Error; err != nil {
		utils.Logger.Error("visitor stats failed", zap.Error(err))
		utils.Message(ctx, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	var totalVisits int64
	if err := v.db.Model(&models.Visitor{}).
		Select("COALESCE(SUM(view_count), 0)").
		Scan(&totalVisits).Error; err != nil {
		utils.Message(ctx, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	out := gin.H{
		"visitors":      visitors,
		"totalVisitors": len(visitors),
		"totalVisits":   totalVisits,
	}
	if len(visitors) > 0 {
		out["topVisitor"] = visitors[0]
	} else {
		out["topVisitor"] = nil
	}
	ctx.JSON(http.StatusOK, out)
}
