package model

import "time"

const (
	NotificationTypeConnectionAccepted = "connectionAccepted"
	NotificationTypeComment            = "comment"
)

/*

Notification is an in-app notification shown to a single user

Id: primary key
CreatedAt: time when entity is created

RecipientID: the user this notification is for
Type: connectionAccepted | comment
RelatedUserID:
RelatedUser: the user whose action triggered the notification
RelatedPostID:
RelatedPost: set for comment notifications, nil otherwise
Read: false until the recipient marks it read
*/

type Notification struct {
	Id            string    `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	RecipientID   string    `gorm:"index" json:"recipientId"`
	Type          string    `json:"type"`
	RelatedUserID string    `json:"relatedUserId"`
	RelatedUser   *User     `json:"relatedUser,omitempty"`
	RelatedPostID *string   `json:"relatedPostId,omitempty"`
	RelatedPost   *Post     `json:"relatedPost,omitempty"`
	Read          bool      `json:"read"`
}
