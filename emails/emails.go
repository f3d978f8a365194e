package emails

import (
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/pkg/errors"
)

// Sender delivers transactional email. All sends are best-effort: callers
// log failures and never surface them to the originating request.
type Sender interface {
	SendWelcomeEmail(email, name, profileUrl string) error
	SendConnectionAcceptedEmail(email, senderName, recipientName, profileUrl string) error
	SendCommentNotificationEmail(email, recipientName, commenterName, commentContent, postUrl string) error
}

type SESSender struct {
	svc  *ses.SES
	from string
}

func NewSESSender() (*SESSender, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String("us-west-1"),
	})
	if err != nil {
		return nil, err
	}

	return &SESSender{
		svc:  ses.New(sess),
		from: os.Getenv("EMAIL_FROM"),
	}, nil
}

func (s *SESSender) send(to, subject, html string) error {
	_, err := s.svc.SendEmail(&ses.SendEmailInput{
		Source:      aws.String(s.from),
		Destination: &ses.Destination{ToAddresses: []*string{aws.String(to)}},
		Message: &ses.Message{
			Subject: &ses.Content{Charset: aws.String("UTF-8"), Data: aws.String(subject)},
			Body: &ses.Body{
				Html: &ses.Content{Charset: aws.String("UTF-8"), Data: aws.String(html)},
			},
		},
	})
	return errors.Wrapf(err, "send email %q to %s", subject, to)
}

func (s *SESSender) SendWelcomeEmail(email, name, profileUrl string) error {
	return s.send(email, "Welcome to UnLinked!", welcomeEmailTemplate(name, profileUrl))
}

func (s *SESSender) SendConnectionAcceptedEmail(email, senderName, recipientName, profileUrl string) error {
	return s.send(email, recipientName+" accepted your connection request", connectionAcceptedEmailTemplate(senderName, recipientName, profileUrl))
}

func (s *SESSender) SendCommentNotificationEmail(email, recipientName, commenterName, commentContent, postUrl string) error {
	return s.send(email, "New comment on your post", commentNotificationEmailTemplate(recipientName, commenterName, commentContent, postUrl))
}
