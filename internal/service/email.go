package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client    *resend.Client
	fromEmail string
	isDev     bool
	appURL    string
	appName   string
}

func NewEmailService(apiKey, fromEmail, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		isDev:     isDev,
		appURL:    appURL,
		appName:   appName,
	}
}

func (s *EmailService) send(ctx context.Context, kind, to, subject, body string) error {
	if s.isDev {
		slog.Info("email sent (dev mode)", "type", kind, "to", to, "subject", subject)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send %s email: %w", kind, err)
	}

	slog.Info("email sent", "type", kind, "to", to)
	return nil
}

func (s *EmailService) SendWelcomeEmail(ctx context.Context, email, name string) error {
	subject, body := welcomeEmailTemplate(name, s.appURL+"/app/dashboard", s.appName)
	return s.send(ctx, "welcome", email, subject, body)
}

func (s *EmailService) SendRegistrationReceived(ctx context.Context, email, name string) error {
	subject, body := registrationReceivedTemplate(name, s.appName)
	return s.send(ctx, "registration_received", email, subject, body)
}

func (s *EmailService) SendProfessionalApproved(ctx context.Context, email, name string) error {
	subject, body := professionalApprovedTemplate(name, s.appURL+"/pro/login", s.appName)
	return s.send(ctx, "professional_approved", email, subject, body)
}

func (s *EmailService) SendProfessionalRejected(ctx context.Context, email, name string) error {
	subject, body := professionalRejectedTemplate(name, s.appName)
	return s.send(ctx, "professional_rejected", email, subject, body)
}
