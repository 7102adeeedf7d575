package mailer

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"time"

	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

const (
	FromName      = "TasteMap"
	maxRetries    = 3
	retryInterval = time.Second

	UserWelcomeTemplate   = "user_invitation.tmpl"
	ResetPasswordTemplate = "reset_password.tmpl"
	AccountStatusTemplate = "account_status.tmpl"
	IssueUpdateTemplate   = "issue_update.tmpl"
	ReviewUpdateTemplate  = "review_update.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, username, email string, data any) error
}

type message struct {
	subject string
	plain   string
	html    string
}

// render executes the subject, plainBody and htmlBody blocks of templateFile.
func render(templateFile string, data any) (*message, error) {
	tmpl, err := template.ParseFS(FS, "templates/"+templateFile)
	if err != nil {
		return nil, err
	}

	var subject, plain, html bytes.Buffer
	if err := tmpl.ExecuteTemplate(&subject, "subject", data); err != nil {
		return nil, err
	}
	if err := tmpl.ExecuteTemplate(&plain, "plainBody", data); err != nil {
		return nil, err
	}
	if err := tmpl.ExecuteTemplate(&html, "htmlBody", data); err != nil {
		return nil, err
	}
	return &message{subject: subject.String(), plain: plain.String(), html: html.String()}, nil
}

type SMTPMailer struct {
	dialer    *mail.Dialer
	fromEmail string
}

func NewSMTP(host string, port int, username, password, fromEmail string) *SMTPMailer {
	d := mail.NewDialer(host, port, username, password)
	d.Timeout = 10 * time.Second
	return &SMTPMailer{dialer: d, fromEmail: fromEmail}
}

func (m *SMTPMailer) Send(templateFile, username, email string, data any) error {
	msg, err := render(templateFile, data)
	if err != nil {
		return fmt.Errorf("render %s: %w", templateFile, err)
	}

	out := mail.NewMessage()
	out.SetAddressHeader("From", m.fromEmail, FromName)
	out.SetAddressHeader("To", email, username)
	out.SetHeader("Subject", msg.subject)
	out.SetBody("text/plain", msg.plain)
	out.AddAlternative("text/html", msg.html)

	var errs []error
	for i := 0; i < maxRetries; i++ {
		err := m.dialer.DialAndSend(out)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
		time.Sleep(retryInterval * time.Duration(i+1))
	}
	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, errors.Join(errs...))
}

// LogMailer renders mail and logs it instead of sending, for local runs
// without SMTP settings.
type LogMailer struct {
	Logger *zap.SugaredLogger
}

func (m LogMailer) Send(templateFile, username, email string, data any) error {
	msg, err := render(templateFile, data)
	if err != nil {
		return fmt.Errorf("render %s: %w", templateFile, err)
	}
	m.Logger.Infow("mail not sent, no SMTP configured",
		"to", email, "name", username, "subject", msg.subject, "body", msg.plain)
	return nil
}
