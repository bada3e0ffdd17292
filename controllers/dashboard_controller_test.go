package controllers

import (
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/blogfolio/blogfolio/models"
)

func dashboardRouter(db *gorm.DB) *gin.Engine {
	c := NewDashboardController(db)
	r := gin.New()
	r.GET("/stats/:user_id/", c.Stats)
	r.GET("/post-list/:user_id/", c.PostList)
	r.GET("/comment-list/:user_id/", c.CommentList)
	r.GET("/notification-list/:user_id/", c.NotificationList)
	r.POST("/notification-mark-seen/", c.MarkNotificationSeen)
	r.POST("/clear-notifications/", c.ClearNotifications)
	r.POST("/reply-comment/", c.ReplyComment)
	r.POST("/post-create/", c.CreatePost)
	r.GET("/post-detail/:user_id/:post_id/", c.GetOwnedPost)
	r.PUT("/post-detail/:user_id/:post_id/", c.UpdateOwnedPost)
	r.DELETE("/post-detail/:user_id/:post_id/", c.DeleteOwnedPost)
	return r
}

func sendForm(t *testing.T, r *gin.Engine, method, path string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf strings.Builder
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, strings.NewReader(buf.String()))
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDashboardStatsScoping(t *testing.T) {
	db := newTestDB(t)
	r := dashboardRouter(db)

	author := seedUser(t, db, "author@example.com", "author")
	other := seedUser(t, db, "other@example.com", "other")

	a1 := seedPost(t, db, author, "A1", "a1-00001", models.PostStatusActive)
	a2 := seedPost(t, db, author, "A2", "a2-00001", models.PostStatusDraft)
	require.NoError(t, db.Model(&a1).Update("view", 3).Error)
	require.NoError(t, db.Model(&a2).Update("view", 5).Error)

	// another author's traffic must not leak into the scoped counters
	o1 := seedPost(t, db, other, "O1", "o1-00001", models.PostStatusActive)
	require.NoError(t, db.Model(&o1).Update("view", 100).Error)

	_, err := models.ToggleLike(db, other.ID, a1.ID)
	require.NoError(t, err)
	_, err = models.ToggleBookmark(db, author.ID, o1.ID)
	require.NoError(t, err)

	w := getJSON(t, r, "/stats/"+itoa(author.ID)+"/")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out []map[string]float64
	decodeBody(t, w, &out)
	require.Len(t, out, 1, "stats arrive as a one-element array")

	stats := out[0]
	assert.EqualValues(t, 8, stats["views"])
	assert.EqualValues(t, 2, stats["posts"])
	assert.EqualValues(t, 1, stats["likes"])

	// the remaining counters are site-wide
	assert.EqualValues(t, 1, stats["bookmarks"])
	assert.EqualValues(t, 2, stats["users"])
}

func TestDashboardStatsUnknownUser(t *testing.T) {
	db := newTestDB(t)
	r := dashboardRouter(db)

	w := getJSON(t, r, "/stats/9999/")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboardPostListIncludesDrafts(t *testing.T) {
	db := newTestDB(t)
	r := dashboardRouter(db)
	author := seedUser(t, db, "author@example.com", "author")

	seedPost(t, db, author, "Live", "live-00001", models.PostStatusActive)
	seedPost(t, db, author, "Draft", "draft-00001", models.PostStatusDraft)

	w := getJSON(t, r, "/post-list/"+itoa(author.ID)+"/")
	require.Equal(t, http.StatusOK, w.Code)

	var posts []models.Post
	decodeBody(t, w, &posts)
	require.Len(t, posts, 2)
	assert.Equal(t, "Draft", posts[0].Title, "newest id first")
}

func TestCreatePostResolvesCategoryAndTags(t *testing.T) {
	db := newTestDB(t)
	r := dashboardRouter(db)
	author := seedUser(t, db, "author@example.com", "author")

	require.NoError(t, db.Create(&models.Category{Title: "Tech", Slug: "tech"}).Error)

	w := sendForm(t, r, http.MethodPost, "/post-create/", map[string]string{
		"user_id":     itoa(author.ID),
		"title":       "Fresh Post",
		"description": "body text",
		"category":    "Tech",
		"status":      models.PostStatusActive,
		"tags":        "go, gin",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var post models.Post
	require.NoError(t, db.Preload("Tags").Preload("Category").Where("title = ?", "Fresh Post").First(&post).Error)
	assert.True(t, strings.HasPrefix(post.Slug, "fresh-post-"))
	require.NotNil(t, post.Category)
	assert.Equal(t, "Tech", post.Category.Title)
	assert.Len(t, post.Tags, 2)
}

func TestCreatePostUnknownCategory(t *testing.T) {
	db := newTestDB(t)
	r := dashboardRouter(db)
	author := seedUser(t, db, "author@example.com", "author")

	w := sendForm(t, r, http.MethodPost, "/post-create/", map[string]string{
		"user_id":  itoa(author.ID),
		"title":    "Orphan",
		"category": "Nope",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]string
	decodeBody(t, w, &body)
	assert.Equal(t, "User or Category not found.", body["message"])
}

func TestOwnedPostScoping(t *testing.T) {
	db := newTestDB(t)
	r := dashboardRouter(db)
	author := seedUser(t, db, "author@example.com", "author")
	other := seedUser(t, db, "other@example.com", "other")
	post := seedPost(t, db, author, "Mine", "mine-00001", models.PostStatusActive)

	w := getJSON(t, r, "/post-detail/"+itoa(author.ID)+"/"+itoa(post.ID)+"/")
	assert.Equal(t, http.StatusOK, w.Code)

	// the same post under another user's scope is invisible
	w = getJSON(t, r, "/post-detail/"+itoa(other.ID)+"/"+itoa(post.ID)+"/")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateOwnedPostKeepsSlugAndImage(t *testing.T) {
	db := newTestDB(t)
	r := dashboardRouter(db)
	author := seedUser(t, db, "author@example.com", "author")
	post := seedPost(t, db, author, "Before", "before-00001", models.PostStatusActive)
	require.NoError(t, db.Model(&post).Update("image", "/static/uploads/x.png").Error)

	w := sendForm(t, r, http.MethodPut, "/post-detail/"+itoa(author.ID)+"/"+itoa(post.ID)+"/", map[string]string{
		"title":  "After",
		"status": models.PostStatusDraft,
		"image":  "undefined",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Equal(t, "After", stored.Title)
	assert.Equal(t, models.PostStatusDraft, stored.Status)
	assert.Equal(t, "before-00001", stored.Slug, "slug never changes on update")
	assert.Equal(t, "/static/uploads/x.png", stored.Image)
}

func TestDeleteOwnedPost(t *testing.T) {
	db := newTestDB(t)
	r := dashboardRouter(db)
	author := seedUser(t, db, "author@example.com", "author")
	post := seedPost(t, db, author, "Doomed", "doomed-00001", models.PostStatusActive)

	req := httptest.NewRequest(http.MethodDelete, "/post-detail/"+itoa(author.ID)+"/"+itoa(post.ID)+"/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Post{}).Where("id = ?", post.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestNotificationLifecycle(t *testing.T) {
	db := newTestDB(t)
	r := dashboardRouter(db)
	author := seedUser(t, db, "author@example.com", "author")
	reader := seedUser(t, db, "reader@example.com", "reader")
	post := seedPost(t, db, author, "Noted", "noted-00001", models.PostStatusActive)

	_, err := models.ToggleLike(db, reader.ID, post.ID)
	require.NoError(t, err)
	_, err = models.ToggleBookmark(db, reader.ID, post.ID)
	require.NoError(t, err)

	w := getJSON(t, r, "/notification-list/"+itoa(author.ID)+"/")
	require.Equal(t, http.StatusOK, w.Code)

	var notifications []models.Notification
	decodeBody(t, w, &notifications)
	require.Len(t, notifications, 2)

	w = postJSON(t, r, "/notification-mark-seen/", gin.H{"notification_id": notifications[0].ID})
	require.Equal(t, http.StatusOK, w.Code)

	w = getJSON(t, r, "/notification-list/"+itoa(author.ID)+"/")
	decodeBody(t, w, &notifications)
	require.Len(t, notifications, 1)

	w = postJSON(t, r, "/clear-notifications/", gin.H{"user_id": author.ID})
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	decodeBody(t, w, &body)
	assert.Equal(t, "All notifications cleared", body["message"])

	w = getJSON(t, r, "/notification-list/"+itoa(author.ID)+"/")
	decodeBody(t, w, &notifications)
	assert.Empty(t, notifications)
}

func TestReplyComment(t *testing.T) {
	db := newTestDB(t)
	r := dashboardRouter(db)
	author := seedUser(t, db, "author@example.com", "author")
	post := seedPost(t, db, author, "Replied", "replied-00001", models.PostStatusActive)

	comment := models.Comment{PostID: post.ID, Name: "V", Email: "v@example.com", Comment: "question"}
	require.NoError(t, db.Create(&comment).Error)

	w := postJSON(t, r, "/reply-comment/", gin.H{"comment_id": comment.ID, "reply": "answer"})
	require.Equal(t, http.StatusCreated, w.Code)
	var body map[string]string
	decodeBody(t, w, &body)
	assert.Equal(t, "Comment response sent", body["message"])

	var stored models.Comment
	require.NoError(t, db.First(&stored, comment.ID).Error)
	assert.Equal(t, "answer", stored.Reply)
}
