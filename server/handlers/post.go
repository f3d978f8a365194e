package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/unlinked-app/unlinked/events"
	"github.com/unlinked-app/unlinked/filestore"
	"github.com/unlinked-app/unlinked/model"
	Logger "github.com/unlinked-app/unlinked/utils/log"
	"gorm.io/gorm"
)

type createPostInput struct {
	Content string `json:"content"`
	Image   string `json:"image"`
}

type createCommentInput struct {
	Content string `json:"content"`
}

type markPostsReadInput struct {
	PostIds []string `json:"postIds"`
}

// GetFeedPosts serves the posts authored by the caller's connections,
// newest first, annotated with the caller's read status.
func (h *Handler) GetFeedPosts(c *gin.Context, user *model.User) {
	authorIds := []string{}
	for _, conn := range user.Connections {
		authorIds = append(authorIds, conn.Id)
	}

	posts := []*model.Post{}
	if len(authorIds) > 0 {
		if err := h.DB.
			Preload("Author").
			Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("comments.created_at") }).
			Preload("Comments.User").
			Where("author_id IN ?", authorIds).
			Order("created_at desc").
			Find(&posts).Error; err != nil {
			internalError(c, "GetFeedPosts", err)
			return
		}
	}

	// Read flags are decoration, losing them must not fail the feed.
	postIds := []string{}
	for _, post := range posts {
		postIds = append(postIds, post.Id)
	}
	if len(postIds) > 0 {
		read, err := h.ReadStatus.GetPostsReadStatus(postIds, user.Id)
		if err != nil {
			Logger.Log.Errorf("fail to load post read status: %v", err)
		} else {
			for i := range posts {
				posts[i].Read = read[i]
			}
		}
	}

	c.JSON(http.StatusOK, posts)
}

// CreatePost persists a new post. An attached image is uploaded first; an
// upload failure aborts the creation.
func (h *Handler) CreatePost(c *gin.Context, user *model.User) {
	var input createPostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	post := model.Post{
		Id:       uuid.New().String(),
		AuthorID: user.Id,
		Content:  input.Content,
		Comments: []*model.Comment{},
	}

	if input.Image != "" {
		key, err := h.Images.StoreEncoded(input.Image)
		if err != nil {
			internalError(c, "CreatePost", err)
			return
		}
		post.Image = h.Images.GetUrlFromKey(key)
	}

	if err := h.DB.Create(&post).Error; err != nil {
		internalError(c, "CreatePost", err)
		return
	}
	post.Author = *user

	c.JSON(http.StatusCreated, &post)
}

// GetPostById serves a single post with its author and comments.
func (h *Handler) GetPostById(c *gin.Context, user *model.User) {
	var post model.Post
	result := h.DB.
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("comments.created_at") }).
		Preload("Comments.User").
		Where("id = ?", c.Param("id")).
		First(&post)
	if result.RowsAffected != 1 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, &post)
}

// DeletePost removes a post and its comments. Only the author may delete.
// The stored image is removed best-effort before the record goes away.
func (h *Handler) DeletePost(c *gin.Context, user *model.User) {
	var post model.Post
	result := h.DB.Where("id = ?", c.Param("id")).First(&post)
	if result.RowsAffected != 1 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	if post.AuthorID != user.Id {
		c.JSON(http.StatusForbidden, gin.H{"message": "You are not authorized to delete this post"})
		return
	}

	if post.Image != "" {
		if err := h.Images.Delete(filestore.KeyFromUrl(post.Image)); err != nil {
			Logger.Log.Errorf("fail to delete stored image for post %s: %v", post.Id, err)
		}
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.Id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		internalError(c, "DeletePost", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// CreateComment appends a comment to a post. Commenting on somebody else's
// post notifies the author; notification failures never block the response.
func (h *Handler) CreateComment(c *gin.Context, user *model.User) {
	postId := c.Param("id")

	var input createCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	var post model.Post
	result := h.DB.Preload("Author").Where("id = ?", postId).First(&post)
	if result.RowsAffected != 1 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	comment := model.Comment{
		Id:      uuid.New().String(),
		PostID:  post.Id,
		UserID:  user.Id,
		Content: input.Content,
	}
	if err := h.DB.Create(&comment).Error; err != nil {
		internalError(c, "CreateComment", err)
		return
	}

	if post.AuthorID != user.Id {
		notification := model.Notification{
			Id:            uuid.New().String(),
			RecipientID:   post.AuthorID,
			Type:          model.NotificationTypeComment,
			RelatedUserID: user.Id,
			RelatedPostID: &post.Id,
		}
		if err := h.DB.Create(&notification).Error; err != nil {
			Logger.Log.Errorf("fail to create comment notification: %v", err)
		}
	}

	var updated model.Post
	if err := h.DB.
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("comments.created_at") }).
		Preload("Comments.User").
		Where("id = ?", post.Id).
		First(&updated).Error; err != nil {
		internalError(c, "CreateComment", err)
		return
	}

	c.JSON(http.StatusCreated, &updated)

	if post.AuthorID != user.Id {
		if err := events.Publish(h.EventBus, events.TopicCommentEmail, events.CommentEmailEvent{
			Email:          post.Author.Email,
			RecipientName:  post.Author.Name,
			CommenterName:  user.Name,
			CommentContent: input.Content,
			PostId:         post.Id,
		}); err != nil {
			Logger.Log.Errorf("fail to publish comment email event: %v", err)
		}
	}
}

// MarkPostsAsRead records that the caller has seen the given posts.
func (h *Handler) MarkPostsAsRead(c *gin.Context, user *model.User) {
	var input markPostsReadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if len(input.PostIds) > 0 {
		if err := h.ReadStatus.MarkPostsAsRead(input.PostIds, user.Id); err != nil {
			internalError(c, "MarkPostsAsRead", err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Posts marked as read"})
}
