package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/blogfolio/blogfolio/models"
)

func visitorRouter(db *gorm.DB) *gin.Engine {
	c := NewVisitorController(db)
	r := gin.New()
	r.POST("/add-visitor/", c.TrackVisit)
	r.GET("/visitor-stats/", c.Stats)
	return r
}

func TestTrackVisitFirstSightSnapshots(t *testing.T) {
	db := newTestDB(t)
	r := visitorRouter(db)

	w := postJSON(t, r, "/add-visitor/", gin.H{
		"ip":        "203.0.113.7",
		"location":  gin.H{"country": "DE", "city": "Berlin"},
		"userAgent": "Mozilla/5.0",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Message string         `json:"message"`
		Visitor models.Visitor `json:"visitor"`
	}
	decodeBody(t, w, &body)
	assert.Equal(t, "Visitor tracked successfully", body.Message)
	assert.EqualValues(t, 1, body.Visitor.ViewCount)
	assert.Equal(t, "Mozilla/5.0", body.Visitor.UserAgent)
}

func TestTrackVisitRepeatOnlyIncrements(t *testing.T) {
	db := newTestDB(t)
	r := visitorRouter(db)

	w := postJSON(t, r, "/add-visitor/", gin.H{
		"ip":        "203.0.113.7",
		"location":  gin.H{"country": "DE"},
		"userAgent": "Mozilla/5.0",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// the second sighting carries different metadata that must be ignored
	w = postJSON(t, r, "/add-visitor/", gin.H{
		"ip":        "203.0.113.7",
		"location":  gin.H{"country": "FR"},
		"userAgent": "curl/8.0",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var visitor models.Visitor
	require.NoError(t, db.Where("ip = ?", "203.0.113.7").First(&visitor).Error)
	assert.EqualValues(t, 2, visitor.ViewCount)
	assert.Equal(t, "Mozilla/5.0", visitor.UserAgent)
	assert.Contains(t, string(visitor.Location), "DE")

	var count int64
	db.Model(&models.Visitor{}).Count(&count)
	assert.EqualValues(t, 1, count, "one row per IP")
}

func TestTrackVisitRequiresIP(t *testing.T) {
	db := newTestDB(t)
	r := visitorRouter(db)

	w := postJSON(t, r, "/add-visitor/", gin.H{"userAgent": "curl/8.0"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVisitorStats(t *testing.T) {
	db := newTestDB(t)
	r := visitorRouter(db)

	for _, visit := range []struct {
		ip string
		n  int
	}{{"203.0.113.1", 1}, {"203.0.113.2", 3}} {
		for i := 0; i < visit.n; i++ {
			w := postJSON(t, r, "/add-visitor/", gin.H{"ip": visit.ip})
			require.Equal(t, http.StatusOK, w.Code)
		}
	}

	w := getJSON(t, r, "/visitor-stats/")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Visitors      []models.Visitor `json:"visitors"`
		TotalVisitors int              `json:"totalVisitors"`
		TotalVisits   int              `json:"totalVisits"`
		TopVisitor    *models.Visitor  `json:"topVisitor"`
	}
	decodeBody(t, w, &body)
	assert.Equal(t, 2, body.TotalVisitors)
	assert.Equal(t, 4, body.TotalVisits)
	require.NotNil(t, body.TopVisitor)
	assert.Equal(t, "203.0.113.2", body.TopVisitor.IP)
}

func TestVisitorStatsEmpty(t *testing.T) {
	db := newTestDB(t)
	r := visitorRouter(db)

	w := getJSON(t, r, "/visitor-stats/")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		TotalVisitors int             `json:"totalVisitors"`
		TopVisitor    *models.Visitor `json:"topVisitor"`
	}
	decodeBody(t, w, &body)
	assert.Zero(t, body.TotalVisitors)
	assert.Nil(t, body.TopVisitor)
}
