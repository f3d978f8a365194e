package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/unlinked-app/unlinked/model"
	"github.com/unlinked-app/unlinked/utils"
)

// createPost posts through the real route and returns the new post id.
func createPost(t *testing.T, ts *testServer, cookies []*http.Cookie, content, image string) string {
	t.Helper()

	resp := doJSON(t, ts.Router, http.MethodPost, "/posts", map[string]string{
		"content": content,
		"image":   image,
	}, cookies)
	require.Equal(t, http.StatusCreated, resp.Code)

	var post model.Post
	decodeBody(t, resp, &post)
	require.NotEmpty(t, post.Id)
	return post.Id
}

func TestCreatePost(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	ts := prepareTestServer(t, db)

	annId, annCookies := signupUser(t, db, ts.Router, "Ann", "ann1")

	t.Run("text only", func(t *testing.T) {
		postId := createPost(t, ts, annCookies, "hello world", "")

		var post model.Post
		result := db.Where("id = ?", postId).First(&post)
		require.Equal(t, int64(1), result.RowsAffected)
		require.Equal(t, annId, post.AuthorID)
		require.Equal(t, "hello world", post.Content)
		require.Empty(t, post.Image)
		require.Empty(t, ts.Images.Stored)
	})

	t.Run("with image", func(t *testing.T) {
		postId := createPost(t, ts, annCookies, "look at this", tinyPngDataUri)
		require.Len(t, ts.Images.Stored, 1)

		var post model.Post
		db.Where("id = ?", postId).First(&post)
		require.Equal(t, "https://images.test/fake-key-0", post.Image)
	})
}

func TestGetFeedPosts(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	ts := prepareTestServer(t, db)

	annId, annCookies := signupUser(t, db, ts.Router, "Ann", "ann1")
	bobId, bobCookies := signupUser(t, db, ts.Router, "Bob", "bob1")
	_, carlCookies := signupUser(t, db, ts.Router, "Carl", "carl1")
	connectUsers(t, db, ts.Router, annId, annCookies, bobId, bobCookies)

	bobPosts := []string{}
	for i := 0; i < 3; i++ {
		bobPosts = append(bobPosts, createPost(t, ts, bobCookies, fmt.Sprintf("bob %d", i), ""))
		// Distinct created_at timestamps for a stable order.
		time.Sleep(5 * time.Millisecond)
	}
	createPost(t, ts, carlCookies, "carl shouting into the void", "")

	t.Run("scoped to connections, newest first", func(t *testing.T) {
		resp := doJSON(t, ts.Router, http.MethodGet, "/posts", nil, annCookies)
		require.Equal(t, http.StatusOK, resp.Code)

		var feed []model.Post
		decodeBody(t, resp, &feed)
		require.Len(t, feed, 3)
		for i, post := range feed {
			require.Equal(t, bobPosts[len(bobPosts)-1-i], post.Id)
			require.Equal(t, "Bob", post.Author.Name)
			require.False(t, post.Read)
		}
	})

	t.Run("empty without connections", func(t *testing.T) {
		resp := doJSON(t, ts.Router, http.MethodGet, "/posts", nil, carlCookies)
		require.Equal(t, http.StatusOK, resp.Code)

		var feed []model.Post
		decodeBody(t, resp, &feed)
		require.Empty(t, feed)
	})

	t.Run("read flags are per user", func(t *testing.T) {
		resp := doJSON(t, ts.Router, http.MethodPost, "/posts/read", map[string]interface{}{
			"postIds": bobPosts[:2],
		}, annCookies)
		require.Equal(t, http.StatusOK, resp.Code)

		var feed []model.Post
		resp = doJSON(t, ts.Router, http.MethodGet, "/posts", nil, annCookies)
		decodeBody(t, resp, &feed)
		readById := map[string]bool{}
		for _, post := range feed {
			readById[post.Id] = post.Read
		}
		require.True(t, readById[bobPosts[0]])
		require.True(t, readById[bobPosts[1]])
		require.False(t, readById[bobPosts[2]])

		// Bob's own view of his posts is unaffected by Ann's reads. Bob has
		// Ann as his only connection so his feed is Ann's (empty) output;
		// check through the store instead.
		status, err := ts.ReadStatus.GetPostsReadStatus(bobPosts, bobId)
		require.NoError(t, err)
		require.Equal(t, []bool{false, false, false}, status)
	})

	t.Run("re-marking an overlapping batch still sets the new posts", func(t *testing.T) {
		resp := doJSON(t, ts.Router, http.MethodPost, "/posts/read", map[string]interface{}{
			"postIds": bobPosts[1:],
		}, annCookies)
		require.Equal(t, http.StatusOK, resp.Code)

		status, err := ts.ReadStatus.GetPostsReadStatus(bobPosts, annId)
		require.NoError(t, err)
		require.Equal(t, []bool{true, true, true}, status)
	})
}

func TestGetPostById(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	ts := prepareTestServer(t, db)

	_, annCookies := signupUser(t, db, ts.Router, "Ann", "ann1")
	postId := createPost(t, ts, annCookies, "hello", "")

	resp := doJSON(t, ts.Router, http.MethodGet, "/posts/"+postId, nil, annCookies)
	require.Equal(t, http.StatusOK, resp.Code)

	var post model.Post
	decodeBody(t, resp, &post)
	require.Equal(t, postId, post.Id)
	require.Equal(t, "Ann", post.Author.Name)

	resp = doJSON(t, ts.Router, http.MethodGet, "/posts/no-such-post", nil, annCookies)
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeletePost(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	ts := prepareTestServer(t, db)

	_, annCookies := signupUser(t, db, ts.Router, "Ann", "ann1")
	_, bobCookies := signupUser(t, db, ts.Router, "Bob", "bob1")

	postId := createPost(t, ts, annCookies, "short lived", tinyPngDataUri)
	resp := doJSON(t, ts.Router, http.MethodPost, "/posts/"+postId+"/comment", map[string]string{
		"content": "nice",
	}, bobCookies)
	require.Equal(t, http.StatusCreated, resp.Code)

	t.Run("only the author may delete", func(t *testing.T) {
		resp := doJSON(t, ts.Router, http.MethodDelete, "/posts/"+postId, nil, bobCookies)
		require.Equal(t, http.StatusForbidden, resp.Code)
	})

	t.Run("unknown post", func(t *testing.T) {
		resp := doJSON(t, ts.Router, http.MethodDelete, "/posts/no-such-post", nil, annCookies)
		require.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("delete removes post, comments and stored image", func(t *testing.T) {
		resp := doJSON(t, ts.Router, http.MethodDelete, "/posts/"+postId, nil, annCookies)
		require.Equal(t, http.StatusOK, resp.Code)

		var count int64
		db.Model(&model.Post{}).Where("id = ?", postId).Count(&count)
		require.Zero(t, count)
		db.Model(&model.Comment{}).Where("post_id = ?", postId).Count(&count)
		require.Zero(t, count)
		require.Equal(t, []string{"fake-key-0"}, ts.Images.Deleted)
	})
}

func TestCreateComment(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	ts := prepareTestServer(t, db)

	annId, annCookies := signupUser(t, db, ts.Router, "Ann", "ann1")
	bobId, bobCookies := signupUser(t, db, ts.Router, "Bob", "bob1")
	postId := createPost(t, ts, annCookies, "discuss", "")

	t.Run("comment on another user's post notifies the author", func(t *testing.T) {
		resp := doJSON(t, ts.Router, http.MethodPost, "/posts/"+postId+"/comment", map[string]string{
			"content": "well said",
		}, bobCookies)
		require.Equal(t, http.StatusCreated, resp.Code)

		var post model.Post
		decodeBody(t, resp, &post)
		require.Len(t, post.Comments, 1)
		require.Equal(t, "well said", post.Comments[0].Content)
		require.Equal(t, "Bob", post.Comments[0].User.Name)

		var notification model.Notification
		result := db.Where("recipient_id = ? AND type = ?", annId, model.NotificationTypeComment).First(&notification)
		require.Equal(t, int64(1), result.RowsAffected)
		require.Equal(t, bobId, notification.RelatedUserID)
		require.NotNil(t, notification.RelatedPostID)
		require.Equal(t, postId, *notification.RelatedPostID)

		require.Eventually(t, func() bool {
			emails := ts.Emails.SentTo(testEmail("ann1"))
			return len(emails) > 0 && emails[len(emails)-1] == "comment"
		}, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("commenting on your own post stays quiet", func(t *testing.T) {
		resp := doJSON(t, ts.Router, http.MethodPost, "/posts/"+postId+"/comment", map[string]string{
			"content": "adding to my own thread",
		}, annCookies)
		require.Equal(t, http.StatusCreated, resp.Code)

		var count int64
		db.Model(&model.Notification{}).Where("recipient_id = ?", annId).Count(&count)
		require.Equal(t, int64(1), count)
	})

	t.Run("unknown post", func(t *testing.T) {
		resp := doJSON(t, ts.Router, http.MethodPost, "/posts/no-such-post/comment", map[string]string{
			"content": "hello?",
		}, annCookies)
		require.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("comments are ordered oldest first", func(t *testing.T) {
		resp := doJSON(t, ts.Router, http.MethodGet, "/posts/"+postId, nil, annCookies)
		require.Equal(t, http.StatusOK, resp.Code)

		var post model.Post
		decodeBody(t, resp, &post)
		require.Len(t, post.Comments, 2)
		require.Equal(t, "well said", post.Comments[0].Content)
		require.Equal(t, "adding to my own thread", post.Comments[1].Content)
	})
}
