// Package notifier delivers exchange notifications by email through
// MailerSend. It implements queue.Mailer, so the notification consumer
// can run without it when no API key is configured.
package notifier

import (
    "context"
    "fmt"
    "log"
    "time"

    "github.com/mailersend/mailersend-go"

    "github.com/campuskit/hall-booking/internal/queue"
)

// Mailer sends notification emails via MailerSend.
type Mailer struct {
    client    *mailersend.Mailersend
    fromEmail string
    fromName  string
}

// New builds a Mailer. Returns nil when apiKey is empty; the consumer
// treats a nil mailer as "audit log only".
func New(apiKey, fromName, fromEmail string) *Mailer {
    if apiKey == "" {
        return nil
    }
    return &Mailer{
        client:    mailersend.NewMailersend(apiKey),
        fromEmail: fromEmail,
        fromName:  fromName,
    }
}

// Send emails a single notification to its recipient.
func (m *Mailer) Send(n queue.Notification) error {
    if n.RecipientEmail == "" {
        return fmt.Errorf("notification %s for user %d has no recipient email", n.Kind, n.RecipientID)
    }

    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    message := m.client.Email.NewMessage()
    message.SetFrom(mailersend.From{Name: m.fromName, Email: m.fromEmail})
    message.SetRecipients([]mailersend.Recipient{
        {Name: n.RecipientName, Email: n.RecipientEmail},
    })
    message.SetSubject(n.Subject)
    message.SetText(n.Body)

    res, err := m.client.Email.Send(ctx, message)
    if err != nil {
        return fmt.Errorf("send email: %w", err)
    }
    log.Printf("notification email sent kind=%s message_id=%s", n.Kind, res.Header.Get("X-Message-Id"))
    return nil
}
