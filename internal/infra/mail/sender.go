package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"text/template"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/escriturashoy/escrituras-api/internal/entity"
)

//go:embed templates/lead_notification.txt
var templateFS embed.FS

var leadTemplate = template.Must(template.ParseFS(templateFS, "templates/lead_notification.txt"))

const notProvided = "-"

type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailSender mails the intake team whenever a lead is stored.
type EmailSender struct {
	Dialer Dialer
	From   string
	To     string
}

func NewEmailSender(host string, port int, user, password, from, to string) *EmailSender {
	return &EmailSender{
		Dialer: gomail.NewDialer(host, port, user, password),
		From:   from,
		To:     to,
	}
}

func (s *EmailSender) NotifyLeadCreated(ctx context.Context, lead *entity.Lead) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := leadTemplate.Execute(&body, newLeadEmailData(lead)); err != nil {
		return fmt.Errorf("mail: render lead template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To)
	m.SetHeader("Subject", LeadSubject(lead))
	m.SetBody("text/plain", body.String())

	// gomail has no deadline once connected; give up on ctx and leave the
	// dial to finish on its own.
	sent := make(chan error, 1)
	go func() { sent <- s.Dialer.DialAndSend(m) }()

	select {
	case err := <-sent:
		if err != nil {
			return fmt.Errorf("mail: send lead %s: %w", lead.ID, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("mail: send lead %s: %w", lead.ID, ctx.Err())
	}
}

func LeadSubject(lead *entity.Lead) string {
	return fmt.Sprintf("Nuevo lead: %s (%s)", lead.Name, lead.PropertyType)
}

func newLeadEmailData(l *entity.Lead) LeadEmailData {
	return LeadEmailData{
		ID:               l.ID,
		Name:             l.Name,
		Email:            l.Email,
		Phone:            orDash(l.Phone),
		PropertyLocation: l.PropertyLocation,
		PropertyType:     l.PropertyType,
		Urgency:          orDash(l.Urgency),
		CreatedAt:        time.Unix(l.CreatedAt, 0).UTC().Format(time.RFC3339),
	}
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return notProvided
	}
	return *s
}
