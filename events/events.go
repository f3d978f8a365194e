package events

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Topics carried on the in-process event bus. Each topic maps to one email
// kind; handlers publish after writing the HTTP response and the dispatcher
// delivers independently of the request.
const (
	TopicWelcomeEmail            = "email.welcome"
	TopicConnectionAcceptedEmail = "email.connection_accepted"
	TopicCommentEmail            = "email.comment"
)

type WelcomeEmailEvent struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

type ConnectionAcceptedEmailEvent struct {
	Email             string `json:"email"`
	SenderName        string `json:"senderName"`
	RecipientName     string `json:"recipientName"`
	RecipientUsername string `json:"recipientUsername"`
}

type CommentEmailEvent struct {
	Email          string `json:"email"`
	RecipientName  string `json:"recipientName"`
	CommenterName  string `json:"commenterName"`
	CommentContent string `json:"commentContent"`
	PostId         string `json:"postId"`
}

// Publish marshals the event and pushes it onto the bus. A publish failure
// is returned for logging but must never fail the originating request.
func Publish(bus message.Publisher, topic string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	return bus.Publish(topic, msg)
}
