package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"tent-ledger-backend/internal/logger"
)

var ErrEmailNotConfigured = errors.New("email delivery is not configured")

// mailSender is the part of the SendGrid client the service uses.
type mailSender interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

type emailService struct {
	client    mailSender
	fromEmail string
	fromName  string
}

// NewEmailService sends through SendGrid. With an empty API key every send
// fails with ErrEmailNotConfigured.
func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	s := &emailService{fromEmail: fromEmail, fromName: fromName}
	if apiKey != "" {
		s.client = sendgrid.NewSendClient(apiKey)
	}
	return s
}

func (s *emailService) SendInvoice(ctx context.Context, to, toName, subject, body string) error {
	if s.client == nil {
		return ErrEmailNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	logger.ExternalServiceCall("sendgrid", "send_invoice", "to", to)
	response, err := s.client.Send(message)
	if err == nil && response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.ExternalServiceResult("sendgrid", "send_invoice", err)
	if err != nil {
		return fmt.Errorf("failed to send invoice email: %w", err)
	}
	return nil
}
