// Package mail delivers account-lifecycle emails: confirmation links,
// password reset links and account state change links. Messages are plain
// text; the recipient follows an absolute URL back into the application with
// the one-time token attached.
package mail

import (
	"context"
	"fmt"
	"log"
	"net/url"

	gomail "github.com/wneessen/go-mail"
)

// Sender delivers account-lifecycle email to a single recipient.
type Sender interface {
	SendEmailConfirmation(ctx context.Context, to, token string) error
	SendPasswordReset(ctx context.Context, to, token string) error
	SendAccountStateChange(ctx context.Context, to, token string) error
}

// SMTPSender delivers mail over SMTP.
type SMTPSender struct {
	client *gomail.Client
	from   string
	appURL string
}

// NewSMTPSender builds a sender for the given SMTP endpoint. Authentication
// is enabled only when a username is configured so local relays without auth
// keep working in development.
func NewSMTPSender(host string, port int, username, password, from, appURL string) (*SMTPSender, error) {
	opts := []gomail.Option{gomail.WithPort(port), gomail.WithTLSPolicy(gomail.TLSOpportunistic)}
	if username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(username),
			gomail.WithPassword(password),
		)
	}
	client, err := gomail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &SMTPSender{client: client, from: from, appURL: appURL}, nil
}

func (s *SMTPSender) SendEmailConfirmation(ctx context.Context, to, token string) error {
	link := s.link("/confirm-email", token)
	body := "Welcome to EstateHub!\n\n" +
		"Please confirm your email address by following the link below:\n\n" +
		link + "\n\n" +
		"If you did not create this account, ignore this message.\n"
	return s.send(ctx, to, "Confirm your EstateHub account", body)
}

func (s *SMTPSender) SendPasswordReset(ctx context.Context, to, token string) error {
	link := s.link("/reset-password", token)
	body := "A password reset was requested for your EstateHub account.\n\n" +
		"Follow the link below to choose a new password:\n\n" +
		link + "\n\n" +
		"The link expires in one hour. If you did not request a reset, ignore this message.\n"
	return s.send(ctx, to, "Reset your EstateHub password", body)
}

func (s *SMTPSender) SendAccountStateChange(ctx context.Context, to, token string) error {
	link := s.link("/confirm-account-action", token)
	body := "A change to your EstateHub account state was requested.\n\n" +
		"Follow the link below to confirm it:\n\n" +
		link + "\n\n" +
		"The link expires in one hour. If you did not request this, ignore this message.\n"
	return s.send(ctx, to, "Confirm your EstateHub account change", body)
}

func (s *SMTPSender) link(path, token string) string {
	return s.appURL + path + "?token=" + url.QueryEscape(token)
}

func (s *SMTPSender) send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// LogSender writes the links it would have mailed to the log. It stands in
// for SMTPSender when no SMTP host is configured.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) SendEmailConfirmation(_ context.Context, to, token string) error {
	log.Printf("mail disabled: email confirmation for %s token=%s", to, token)
	return nil
}

func (s *LogSender) SendPasswordReset(_ context.Context, to, token string) error {
	log.Printf("mail disabled: password reset for %s token=%s", to, token)
	return nil
}

func (s *LogSender) SendAccountStateChange(_ context.Context, to, token string) error {
	log.Printf("mail disabled: account state change for %s token=%s", to, token)
	return nil
}
