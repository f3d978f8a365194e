package model

import "time"

// Lifecycle of a connection request. A request starts pending and moves to
// accepted or rejected exactly once; terminal states are never reopened.
const (
	ConnectionRequestPending  = "pending"
	ConnectionRequestAccepted = "accepted"
	ConnectionRequestRejected = "rejected"
)

/*

ConnectionRequest is a unidirectional connection proposal

Id: primary key
CreatedAt: time when entity is created

SenderID:
Sender: the user who initiated the request, "belongs-to" relation
RecipientID:
Recipient: the user being invited, "belongs-to" relation
Status: pending | accepted | rejected

At most one pending request should exist per unordered (sender, recipient)
pair. This is checked with a point-in-time query on send, not enforced by a
uniqueness constraint, so two concurrent sends can race past the check.
*/

type ConnectionRequest struct {
	Id          string    `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	SenderID    string    `gorm:"index" json:"senderId"`
	Sender      User      `json:"sender"`
	RecipientID string    `gorm:"index" json:"recipientId"`
	Recipient   User      `json:"recipient"`
	Status      string    `json:"status"`
}
