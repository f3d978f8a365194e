package events

import (
	"context"
	"encoding/json"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/unlinked-app/unlinked/emails"
	Logger "github.com/unlinked-app/unlinked/utils/log"
)

const deliveryCounter = "unlinked.email.delivery"

// Dispatcher consumes email events from the bus and delivers them through
// the email sender. Delivery failures are logged and counted, never
// propagated back to the request that published the event.
type Dispatcher struct {
	EventBus    *gochannel.GoChannel
	Emails      emails.Sender
	Statsd      *statsd.Client
	FrontendUrl string
}

func NewDispatcher(bus *gochannel.GoChannel, sender emails.Sender, statsd *statsd.Client, frontendUrl string) *Dispatcher {
	return &Dispatcher{
		EventBus:    bus,
		Emails:      sender,
		Statsd:      statsd,
		FrontendUrl: frontendUrl,
	}
}

// Start subscribes to every email topic before returning, then consumes on
// background goroutines until the context is cancelled. Subscriptions must
// be in place before the first request is served: the gochannel bus drops
// messages published to a topic nobody subscribed to yet.
func (d *Dispatcher) Start(ctx context.Context) error {
	for topic, handle := range map[string]func(*message.Message) error{
		TopicWelcomeEmail:            d.handleWelcome,
		TopicConnectionAcceptedEmail: d.handleConnectionAccepted,
		TopicCommentEmail:            d.handleComment,
	} {
		messages, err := d.EventBus.Subscribe(ctx, topic)
		if err != nil {
			return err
		}

		go func(topic string, messages <-chan *message.Message, handle func(*message.Message) error) {
			for msg := range messages {
				msg.Ack()
				d.report(topic, handle(msg))
			}
		}(topic, messages, handle)
	}

	return nil
}

func (d *Dispatcher) report(topic string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
		Logger.Log.Errorf("fail to deliver %s: %v", topic, err)
	}
	if d.Statsd == nil {
		return
	}
	if err := d.Statsd.Incr(deliveryCounter, []string{topic, outcome}, 1); err != nil {
		Logger.Log.Infoln("cannot report delivery outcome")
	}
}

func (d *Dispatcher) profileUrl(username string) string {
	return d.FrontendUrl + "/profile/" + username
}

func (d *Dispatcher) handleWelcome(msg *message.Message) error {
	var event WelcomeEmailEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return err
	}
	return d.Emails.SendWelcomeEmail(event.Email, event.Name, d.profileUrl(event.Username))
}

func (d *Dispatcher) handleConnectionAccepted(msg *message.Message) error {
	var event ConnectionAcceptedEmailEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return err
	}
	return d.Emails.SendConnectionAcceptedEmail(
		event.Email, event.SenderName, event.RecipientName, d.profileUrl(event.RecipientUsername))
}

func (d *Dispatcher) handleComment(msg *message.Message) error {
	var event CommentEmailEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return err
	}
	return d.Emails.SendCommentNotificationEmail(
		event.Email, event.RecipientName, event.CommenterName, event.CommentContent,
		d.FrontendUrl+"/post/"+event.PostId)
}
