package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/unlinked-app/unlinked/events"
	"github.com/unlinked-app/unlinked/model"
	Logger "github.com/unlinked-app/unlinked/utils/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pendingRequestBetween finds the pending request between the unordered
// (a, b) pair, regardless of direction.
func pendingRequestBetween(db *gorm.DB, a, b string) (*model.ConnectionRequest, error) {
	var request model.ConnectionRequest
	result := db.
		Where("status = ?", model.ConnectionRequestPending).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)", a, b, b, a).
		First(&request)
	if result.RowsAffected != 1 {
		return nil, result.Error
	}
	return &request, nil
}

// SendConnectionRequest creates a pending request from the caller to the
// user named in the path. The duplicate-pending guard is a point-in-time
// query, two concurrent sends can both pass it.
func (h *Handler) SendConnectionRequest(c *gin.Context, user *model.User) {
	recipientId := c.Param("userId")

	if recipientId == user.Id {
		c.JSON(http.StatusBadRequest, gin.H{"message": "You cannot send a connection request to yourself"})
		return
	}

	if user.IsConnectedTo(recipientId) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "You already have a connection with this user"})
		return
	}

	existing, err := pendingRequestBetween(h.DB, user.Id, recipientId)
	if err != nil && err != gorm.ErrRecordNotFound {
		internalError(c, "SendConnectionRequest", err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "You already have a pending connection request"})
		return
	}

	request := model.ConnectionRequest{
		Id:          uuid.New().String(),
		SenderID:    user.Id,
		RecipientID: recipientId,
		Status:      model.ConnectionRequestPending,
	}
	if err := h.DB.Create(&request).Error; err != nil {
		internalError(c, "SendConnectionRequest", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Connection request sent successfully"})
}

// AcceptConnectionRequest moves a pending request to accepted and creates
// the symmetric connection edge. The status flip and both join rows are
// written in one transaction so the symmetry invariant holds atomically.
func (h *Handler) AcceptConnectionRequest(c *gin.Context, user *model.User) {
	requestId := c.Param("requestId")

	var request model.ConnectionRequest
	result := h.DB.Preload("Sender").Preload("Recipient").Where("id = ?", requestId).First(&request)
	if result.Error != nil && result.Error != gorm.ErrRecordNotFound {
		// A store failure is not "absent", it must not read as a 404.
		internalError(c, "AcceptConnectionRequest", result.Error)
		return
	}
	if result.RowsAffected != 1 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Connection request not found"})
		return
	}

	if request.RecipientID != user.Id {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized to accept this request"})
		return
	}

	if request.Status != model.ConnectionRequestPending {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Request already accepted or rejected"})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ConnectionRequest{}).
			Where("id = ?", request.Id).
			Update("status", model.ConnectionRequestAccepted).Error; err != nil {
			return err
		}

		// Both directions of the edge. OnConflict keeps the insert
		// idempotent when one row already exists.
		edges := []model.UserConnection{
			{UserID: request.SenderID, ConnectionID: user.Id},
			{UserID: user.Id, ConnectionID: request.SenderID},
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&edges).Error
	})
	if err != nil {
		internalError(c, "AcceptConnectionRequest", err)
		return
	}

	notification := model.Notification{
		Id:            uuid.New().String(),
		RecipientID:   request.SenderID,
		Type:          model.NotificationTypeConnectionAccepted,
		RelatedUserID: user.Id,
	}
	if err := h.DB.Create(&notification).Error; err != nil {
		Logger.Log.Errorf("fail to create connectionAccepted notification: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Connection request accepted successfully"})

	if err := events.Publish(h.EventBus, events.TopicConnectionAcceptedEmail, events.ConnectionAcceptedEmailEvent{
		Email:             request.Sender.Email,
		SenderName:        request.Sender.Name,
		RecipientName:     request.Recipient.Name,
		RecipientUsername: request.Recipient.Username,
	}); err != nil {
		Logger.Log.Errorf("fail to publish connection accepted email event: %v", err)
	}
}

// RejectConnectionRequest moves a pending request to rejected. No side
// effects beyond the status flip.
func (h *Handler) RejectConnectionRequest(c *gin.Context, user *model.User) {
	requestId := c.Param("requestId")

	var request model.ConnectionRequest
	result := h.DB.Where("id = ?", requestId).First(&request)
	if result.Error != nil && result.Error != gorm.ErrRecordNotFound {
		internalError(c, "RejectConnectionRequest", result.Error)
		return
	}
	if result.RowsAffected != 1 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Connection request not found"})
		return
	}

	if request.RecipientID != user.Id {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized to reject this request"})
		return
	}

	if request.Status != model.ConnectionRequestPending {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Request already accepted or rejected"})
		return
	}

	if err := h.DB.Model(&model.ConnectionRequest{}).
		Where("id = ?", request.Id).
		Update("status", model.ConnectionRequestRejected).Error; err != nil {
		internalError(c, "RejectConnectionRequest", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Connection request rejected successfully"})
}

// GetConnectionRequests lists pending requests addressed to the caller.
func (h *Handler) GetConnectionRequests(c *gin.Context, user *model.User) {
	var requests []*model.ConnectionRequest
	if err := h.DB.Preload("Sender").
		Where("recipient_id = ? AND status = ?", user.Id, model.ConnectionRequestPending).
		Find(&requests).Error; err != nil {
		internalError(c, "GetConnectionRequests", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// GetConnections lists the caller's connections.
func (h *Handler) GetConnections(c *gin.Context, user *model.User) {
	if user.Connections == nil {
		user.Connections = []*model.User{}
	}
	c.JSON(http.StatusOK, user.Connections)
}

// GetUserConnections lists a given user's connections.
func (h *Handler) GetUserConnections(c *gin.Context, user *model.User) {
	var other model.User
	result := h.DB.Preload("Connections").Where("id = ?", c.Param("userId")).First(&other)
	if result.RowsAffected != 1 {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	if other.Connections == nil {
		other.Connections = []*model.User{}
	}
	c.JSON(http.StatusOK, other.Connections)
}

// RemoveConnection deletes both directions of the edge in one transaction.
// Removing a non-existing connection is a no-op, not an error.
func (h *Handler) RemoveConnection(c *gin.Context, user *model.User) {
	otherId := c.Param("userId")

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		return tx.
			Where("(user_id = ? AND connection_id = ?) OR (user_id = ? AND connection_id = ?)",
				user.Id, otherId, otherId, user.Id).
			Delete(&model.UserConnection{}).Error
	})
	if err != nil {
		internalError(c, "RemoveConnection", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Connection removed successfully"})
}

// GetConnectionStatus reports the relationship between the caller and the
// user named in the path. An existing connection short-circuits the
// pending-request lookup.
func (h *Handler) GetConnectionStatus(c *gin.Context, user *model.User) {
	targetId := c.Param("userId")

	if user.IsConnectedTo(targetId) {
		c.JSON(http.StatusOK, gin.H{"status": "connected"})
		return
	}

	pending, err := pendingRequestBetween(h.DB, user.Id, targetId)
	if err != nil && err != gorm.ErrRecordNotFound {
		internalError(c, "GetConnectionStatus", err)
		return
	}
	if pending != nil {
		if pending.SenderID == user.Id {
			c.JSON(http.StatusOK, gin.H{"status": "pending"})
		} else {
			c.JSON(http.StatusOK, gin.H{"status": "received", "requestId": pending.Id})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "not_connected"})
}
