// Package handlers holds the per-route HTTP handlers. Handlers are thin:
// translate HTTP input into store operations, write the JSON response, and
// publish best-effort side effects onto the event bus after responding.
package handlers

import (
	"net/http"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gin-gonic/gin"
	"github.com/unlinked-app/unlinked/filestore"
	"github.com/unlinked-app/unlinked/utils"
	Logger "github.com/unlinked-app/unlinked/utils/log"
	"gorm.io/gorm"
)

// Handler carries the shared dependencies of all routes. It holds no
// per-request state, every request is served independently.
type Handler struct {
	DB         *gorm.DB
	Images     filestore.ImageStore
	EventBus   *gochannel.GoChannel
	ReadStatus utils.ReadStatusStore
}

func New(db *gorm.DB, images filestore.ImageStore, bus *gochannel.GoChannel, readStatus utils.ReadStatusStore) *Handler {
	return &Handler{
		DB:         db,
		Images:     images,
		EventBus:   bus,
		ReadStatus: readStatus,
	}
}

// internalError logs the failure server-side and answers with a generic 500
// body. No internal detail is leaked to the client.
func internalError(c *gin.Context, where string, err error) {
	Logger.Log.Errorf("error in %s: %v", where, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}
