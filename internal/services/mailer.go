package services

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/duozero/intake-service/internal/utils"
)

// Mailer sends a single transactional message. Implementations must not
// block the request path for long; callers treat failures as bookkeeping,
// not as request errors.
type Mailer interface {
	Send(toName, toEmail, subject, plainText, htmlContent string) error
}

type SendGridMailer struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
}

func NewSendGridMailer(apiKey, fromName, fromEmail string) *SendGridMailer {
	return &SendGridMailer{
		client:    sendgrid.NewSendClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (m *SendGridMailer) Send(toName, toEmail, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)

	response, err := m.client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}
	utils.Logger.Debugf("Sent email %q to %s (status %d)", subject, toEmail, response.StatusCode)
	return nil
}
