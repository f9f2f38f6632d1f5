// Package notify sends the post-ingestion email: a short acknowledgement with
// a screening-call link. Notification is best-effort and never affects the
// ingestion outcome; failures are logged by the caller.
package notify

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/google/uuid"

	"talent-intake/internal/storage"
)

type Notifier interface {
	CandidateCreated(ctx context.Context, c *storage.Candidate) error
}

// EmailNotifier emails newly created candidates a meeting link generated
// under MeetingBaseURL.
type EmailNotifier struct {
	Host           string
	Port           string
	From           string
	MeetingBaseURL string
}

func (n *EmailNotifier) CandidateCreated(_ context.Context, c *storage.Candidate) error {
	if c.Email == "" {
		return nil
	}

	meetingLink := fmt.Sprintf("%s/%s", n.MeetingBaseURL, uuid.NewString())
	name := c.Name
	if name == "" {
		name = "there"
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: We received your resume\r\n\r\n"+
		"Hi %s,\r\n\r\n"+
		"Thanks for applying. Your resume is in our system.\r\n"+
		"You can book a screening call here: %s\r\n",
		n.From, c.Email, name, meetingLink)

	addr := n.Host + ":" + n.Port
	if err := smtp.SendMail(addr, nil, n.From, []string{c.Email}, []byte(msg)); err != nil {
		return fmt.Errorf("send candidate email: %w", err)
	}
	return nil
}

// NopNotifier is used when SMTP is not configured.
type NopNotifier struct{}

func (NopNotifier) CandidateCreated(context.Context, *storage.Candidate) error { return nil }
