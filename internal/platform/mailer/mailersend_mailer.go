package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/mailersend/mailersend-go"
)

type MailerSendClient struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	enabled bool
}

func NewMailerSend(apiKey, fromEmail string) *MailerSendClient {
	m := &MailerSendClient{
		enabled: apiKey != "" && fromEmail != "",
		from: mailersend.From{
			Name:  "Rent Loft",
			Email: fromEmail,
		},
	}

	if m.enabled {
		m.client = mailersend.NewMailersend(apiKey)
	}

	return m
}

func (m *MailerSendClient) SendDecisionEmail(toEmail, apartmentID string, accepted bool) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	decision := "rejected"
	if accepted {
		decision = "accepted"
	}

	subject := fmt.Sprintf("Your Rent Loft application was %s", decision)
	html := fmt.Sprintf(`
		<h2>Rent Loft application update</h2>
		<p>Your rental application for apartment <strong>%s</strong> has been %s.</p>
		<p>Log in to your account for the details.</p>
	`, apartmentID, decision)
	text := fmt.Sprintf("Your rental application for apartment %s has been %s.", apartmentID, decision)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Email: toEmail}})
	msg.SetSubject(subject)
	msg.SetText(text)
	msg.SetHTML(html)

	_, err := m.client.Email.Send(ctx, msg)
	return err
}
