package emails

import "sync"

// SentEmail records one delivery made through the FakeSender.
type SentEmail struct {
	Kind string
	To   string
}

// FakeSender records sends for tests instead of talking to SES.
type FakeSender struct {
	mu   sync.Mutex
	Sent []SentEmail
}

func (f *FakeSender) record(kind, to string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sent = append(f.Sent, SentEmail{Kind: kind, To: to})
}

func (f *FakeSender) SendWelcomeEmail(email, name, profileUrl string) error {
	f.record("welcome", email)
	return nil
}

func (f *FakeSender) SendConnectionAcceptedEmail(email, senderName, recipientName, profileUrl string) error {
	f.record("connectionAccepted", email)
	return nil
}

func (f *FakeSender) SendCommentNotificationEmail(email, recipientName, commenterName, commentContent, postUrl string) error {
	f.record("comment", email)
	return nil
}

// SentTo returns the kinds of email delivered to the given address.
func (f *FakeSender) SentTo(email string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	kinds := []string{}
	for _, s := range f.Sent {
		if s.To == email {
			kinds = append(kinds, s.Kind)
		}
	}
	return kinds
}
