package mail

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGrid dispatches through the SendGrid v3 API. The API key is injected
// at construction instead of living in ambient package state.
type SendGrid struct {
	client *sendgrid.Client
}

func NewSendGrid(apiKey string) *SendGrid {
	return &SendGrid{client: sendgrid.NewSendClient(apiKey)}
}

func (s *SendGrid) Send(ctx context.Context, env Envelope, attachments []Attachment) error {
	msg := sgmail.NewV3Mail()
	msg.SetFrom(sgmail.NewEmail(env.From.Name, env.From.Email))
	msg.Subject = env.Subject
	msg.AddContent(sgmail.NewContent("text/plain", env.Text))

	p := sgmail.NewPersonalization()
	for _, to := range env.To {
		p.AddTos(sgmail.NewEmail("", to))
	}
	for _, cc := range env.CC {
		p.AddCCs(sgmail.NewEmail("", cc))
	}
	for _, bcc := range env.BCC {
		p.AddBCCs(sgmail.NewEmail("", bcc))
	}
	msg.AddPersonalizations(p)

	for _, a := range attachments {
		att := sgmail.NewAttachment()
		att.SetFilename(a.Filename)
		att.SetContent(a.Content)
		att.SetType(a.Type)
		att.SetDisposition(a.Disposition)
		msg.AddAttachment(att)
	}

	resp, err := s.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: provider returned status %d: %s", ErrDelivery, resp.StatusCode, resp.Body)
	}
	return nil
}
