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

func postRouter(db *gorm.DB) *gin.Engine {
	c := NewPostController(db)
	r := gin.New()
	r.GET("/category/list/", c.ListCategories)
	r.GET("/category/posts/:category_slug/", c.ListCategoryPosts)
	r.GET("/lists/", c.ListPosts)
	r.GET("/detail/:slug/", c.GetPostDetail)
	r.POST("/like-post/", c.LikePost)
	r.POST("/bookmark-post/", c.BookmarkPost)
	r.POST("/comment-post/", c.CommentPost)
	r.GET("/comment-post/", c.ListComments)
	return r
}

func TestListPostsOnlyActive(t *testing.T) {
	db := newTestDB(t)
	r := postRouter(db)
	owner := seedUser(t, db, "owner@example.com", "owner")

	seedPost(t, db, owner, "Visible", "visible-00001", models.PostStatusActive)
	seedPost(t, db, owner, "Hidden Draft", "hidden-00001", models.PostStatusDraft)
	seedPost(t, db, owner, "Hidden Disabled", "hidden-00002", models.PostStatusDisabled)

	w := getJSON(t, r, "/lists/")
	require.Equal(t, http.StatusOK, w.Code)

	var posts []models.Post
	decodeBody(t, w, &posts)
	require.Len(t, posts, 1)
	assert.Equal(t, "Visible", posts[0].Title)
}

func TestListCategoriesWithPostCount(t *testing.T) {
	db := newTestDB(t)
	r := postRouter(db)
	owner := seedUser(t, db, "owner@example.com", "owner")

	tech := models.Category{Title: "Tech", Slug: "tech"}
	life := models.Category{Title: "Life", Slug: "life"}
	require.NoError(t, db.Create(&tech).Error)
	require.NoError(t, db.Create(&life).Error)

	for _, slug := range []string{"a-1", "a-2"} {
		post := seedPost(t, db, owner, "P", slug, models.PostStatusActive)
		require.NoError(t, db.Model(&post).Update("category_id", tech.ID).Error)
	}

	w := getJSON(t, r, "/category/list/")
	require.Equal(t, http.StatusOK, w.Code)

	var cats []map[string]interface{}
	decodeBody(t, w, &cats)
	require.Len(t, cats, 2)

	counts := map[string]float64{}
	for _, c := range cats {
		counts[c["slug"].(string)] = c["post_count"].(float64)
	}
	assert.EqualValues(t, 2, counts["tech"])
	assert.EqualValues(t, 0, counts["life"])
}

func TestListCategoryPostsUnknownSlug(t *testing.T) {
	db := newTestDB(t)
	r := postRouter(db)

	w := getJSON(t, r, "/category/posts/nope/")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostDetailIncrementsView(t *testing.T) {
	db := newTestDB(t)
	r := postRouter(db)
	owner := seedUser(t, db, "owner@example.com", "owner")
	post := seedPost(t, db, owner, "Counted", "counted-00001", models.PostStatusActive)

	for i := 1; i <= 3; i++ {
		w := getJSON(t, r, "/detail/counted-00001/")
		require.Equal(t, http.StatusOK, w.Code)

		var body models.Post
		decodeBody(t, w, &body)
		assert.Equal(t, i, body.View, "read %d", i)
	}

	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Equal(t, 3, stored.View)
}

func TestPostDetailHidesNonActive(t *testing.T) {
	db := newTestDB(t)
	r := postRouter(db)
	owner := seedUser(t, db, "owner@example.com", "owner")
	seedPost(t, db, owner, "Draft", "draft-00001", models.PostStatusDraft)

	w := getJSON(t, r, "/detail/draft-00001/")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLikePostToggle(t *testing.T) {
	db := newTestDB(t)
	r := postRouter(db)
	owner := seedUser(t, db, "owner@example.com", "owner")
	reader := seedUser(t, db, "reader@example.com", "reader")
	post := seedPost(t, db, owner, "Likable", "likable-00001", models.PostStatusActive)

	w := postJSON(t, r, "/like-post/", gin.H{"user_id": reader.ID, "post_id": post.ID})
	require.Equal(t, http.StatusCreated, w.Code)
	var body map[string]string
	decodeBody(t, w, &body)
	assert.Equal(t, "Post Liked", body["message"])

	w = postJSON(t, r, "/like-post/", gin.H{"user_id": reader.ID, "post_id": post.ID})
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &body)
	assert.Equal(t, "Post Disliked", body["message"])
}

func TestBookmarkPostToggle(t *testing.T) {
	db := newTestDB(t)
	r := postRouter(db)
	owner := seedUser(t, db, "owner@example.com", "owner")
	reader := seedUser(t, db, "reader@example.com", "reader")
	post := seedPost(t, db, owner, "Saveable", "saveable-00001", models.PostStatusActive)

	w := postJSON(t, r, "/bookmark-post/", gin.H{"user_id": reader.ID, "post_id": post.ID})
	require.Equal(t, http.StatusCreated, w.Code)
	var body map[string]string
	decodeBody(t, w, &body)
	assert.Equal(t, "Post Bookmarked", body["message"])

	w = postJSON(t, r, "/bookmark-post/", gin.H{"user_id": reader.ID, "post_id": post.ID})
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &body)
	assert.Equal(t, "Post Un-Bookmarked", body["message"])
}

func TestLikePostUnknownTarget(t *testing.T) {
	db := newTestDB(t)
	r := postRouter(db)
	reader := seedUser(t, db, "reader@example.com", "reader")

	w := postJSON(t, r, "/like-post/", gin.H{"user_id": reader.ID, "post_id": 9999})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentPostAndReplies(t *testing.T) {
	db := newTestDB(t)
	r := postRouter(db)
	owner := seedUser(t, db, "owner@example.com", "owner")
	post := seedPost(t, db, owner, "Discussed", "discussed-00001", models.PostStatusActive)

	w := postJSON(t, r, "/comment-post/", gin.H{
		"post_id": post.ID,
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"comment": "Nice write-up",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Message string `json:"message"`
		Comment struct {
			ID     uint  `json:"id"`
			Post   uint  `json:"post"`
			Parent *uint `json:"parent"`
		} `json:"comment"`
	}
	decodeBody(t, w, &created)
	assert.Equal(t, "Comment Sent", created.Message)
	assert.Equal(t, post.ID, created.Comment.Post)
	assert.Nil(t, created.Comment.Parent)

	// reply to the top-level comment is allowed
	w = postJSON(t, r, "/comment-post/", gin.H{
		"post_id": post.ID,
		"name":    "Another",
		"email":   "another@example.com",
		"comment": "Agreed",
		"parent":  created.Comment.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var reply struct {
		Comment struct {
			ID uint `json:"id"`
		} `json:"comment"`
	}
	decodeBody(t, w, &reply)

	// a reply to the reply is rejected
	w = postJSON(t, r, "/comment-post/", gin.H{
		"post_id": post.ID,
		"name":    "Third",
		"email":   "third@example.com",
		"comment": "Too deep",
		"parent":  reply.Comment.ID,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]string
	decodeBody(t, w, &body)
	assert.Equal(t, "Replies to replies are not allowed.", body["message"])
}

func TestCommentPostUnknownPost(t *testing.T) {
	db := newTestDB(t)
	r := postRouter(db)

	w := postJSON(t, r, "/comment-post/", gin.H{
		"post_id": 9999,
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"comment": "Hello",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]string
	decodeBody(t, w, &body)
	assert.Equal(t, "Post not found.", body["message"])
}

func TestListCommentsNestsReplies(t *testing.T) {
	db := newTestDB(t)
	r := postRouter(db)
	owner := seedUser(t, db, "owner@example.com", "owner")
	post := seedPost(t, db, owner, "Threaded", "threaded-00001", models.PostStatusActive)

	top := models.Comment{PostID: post.ID, Name: "A", Email: "a@example.com", Comment: "top"}
	require.NoError(t, db.Create(&top).Error)
	reply := models.Comment{PostID: post.ID, ParentID: &top.ID, Name: "B", Email: "b@example.com", Comment: "reply"}
	require.NoError(t, db.Create(&reply).Error)

	w := getJSON(t, r, "/comment-post/?post_id="+itoa(post.ID))
	require.Equal(t, http.StatusOK, w.Code)

	var out []struct {
		ID      uint   `json:"id"`
		Comment string `json:"comment"`
		Replies []struct {
			Comment string `json:"comment"`
		} `json:"replies"`
	}
	decodeBody(t, w, &out)
	require.Len(t, out, 1, "only top-level comments appear at the root")
	assert.Equal(t, "top", out[0].Comment)
	require.Len(t, out[0].Replies, 1)
	assert.Equal(t, "reply", out[0].Replies[0].Comment)
}

func TestListCommentsRequiresPostID(t *testing.T) {
	db := newTestDB(t)
	r := postRouter(db)

	w := getJSON(t, r, "/comment-post/")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
