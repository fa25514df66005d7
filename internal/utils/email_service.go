package utils

import (
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
	"sync"
	"time"

	"FINTRACK_BACK-END/internal/config"
)

// Mailer delivers account emails.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, name, link string) error
	SendPasswordResetEmail(ctx context.Context, to, name, link string) error
}

// SMTPMailer sends email through an SMTP relay
type SMTPMailer struct {
	config          *config.EmailConfig
	verificationTTL time.Duration
	resetTTL        time.Duration
	send            func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer creates a new SMTP mailer. Link lifetimes quoted in the
// emails come from the app and JWT settings.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		config:          &cfg.Email,
		verificationTTL: cfg.App.VerificationTokenTTL,
		resetTTL:        cfg.JWT.ResetTTL,
		send:            smtp.SendMail,
	}
}

type emailData struct {
	Name    string
	AppName string
	Link    string
	Expires string
}

var verificationHTML = template.Must(template.New("verification").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h2>Welcome, {{.Name}}!</h2>
		<p>Please confirm your email address to start using {{.AppName}}.</p>
		<p><a href="{{.Link}}" style="background-color: #2563eb; color: #fff; padding: 12px 24px; border-radius: 5px; text-decoration: none;">Verify email</a></p>
		<p style="color: #666; font-size: 14px;">The link expires in {{.Expires}}.</p>
	</div>
</body>
</html>`))

var resetHTML = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h2>Password reset</h2>
		<p>Hello {{.Name}}, you requested to reset your password.</p>
		<p><a href="{{.Link}}">Choose a new password</a></p>
		<p style="color: #d32f2f; font-weight: bold;">This link will expire in {{.Expires}}.</p>
	</div>
</body>
</html>`))

func renderHTML(t *template.Template, data emailData) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", t.Name(), err)
	}
	return b.String(), nil
}

// formatTTL renders d the way it reads in an email: "24 hours", "1 hour",
// "30 minutes".
func formatTTL(d time.Duration) string {
	plural := func(n int64, unit string) string {
		if n == 1 {
			return "1 " + unit
		}
		return fmt.Sprintf("%d %ss", n, unit)
	}
	if d >= time.Hour && d%time.Hour == 0 {
		return plural(int64(d/time.Hour), "hour")
	}
	return plural(int64(d.Round(time.Minute)/time.Minute), "minute")
}

// SendVerificationEmail sends the account verification link
func (m *SMTPMailer) SendVerificationEmail(ctx context.Context, to, name, link string) error {
	data := emailData{Name: name, AppName: m.config.FromName, Link: link, Expires: formatTTL(m.verificationTTL)}
	subject := "Verify your email address"
	text := fmt.Sprintf(`Hello %s,

Thanks for signing up for %s. Please confirm your email address by opening the link below:

%s

The link expires in %s. If you did not create an account, you can ignore this email.
`, data.Name, data.AppName, data.Link, data.Expires)

	html, err := renderHTML(verificationHTML, data)
	if err != nil {
		return err
	}
	return m.sendEmail(ctx, to, subject, text, html)
}

// SendPasswordResetEmail sends the password reset link
func (m *SMTPMailer) SendPasswordResetEmail(ctx context.Context, to, name, link string) error {
	data := emailData{Name: name, AppName: m.config.FromName, Link: link, Expires: formatTTL(m.resetTTL)}
	subject := "Reset your password"
	text := fmt.Sprintf(`Hello %s,

You requested to reset your password. Open the link below to choose a new one:

%s

The link expires in %s. If you didn't request this, please ignore this email.
`, data.Name, data.Link, data.Expires)

	html, err := renderHTML(resetHTML, data)
	if err != nil {
		return err
	}
	return m.sendEmail(ctx, to, subject, text, html)
}

// sendEmail sends a multipart/alternative email using SMTP
func (m *SMTPMailer) sendEmail(ctx context.Context, to, subject, text, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Check if credentials are set
	if m.config.SMTPUsername == "" || m.config.SMTPPassword == "" {
		return fmt.Errorf("email credentials not configured")
	}

	auth := smtp.PlainAuth("", m.config.SMTPUsername, m.config.SMTPPassword, m.config.SMTPHost)

	fromEmail := m.config.FromEmail
	if fromEmail == "" {
		fromEmail = m.config.SMTPUsername
	}

	addr := m.config.SMTPHost + ":" + m.config.SMTPPort
	msg := buildMessage(fmt.Sprintf("%s <%s>", m.config.FromName, fromEmail), to, subject, text, html)
	if err := m.send(addr, auth, fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

const mimeBoundary = "fintrack-alt-boundary"

func buildMessage(from, to, subject, text, html string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: multipart/alternative; boundary=" + mimeBoundary + "\r\n\r\n")
	b.WriteString("--" + mimeBoundary + "\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(text + "\r\n")
	b.WriteString("--" + mimeBoundary + "\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	b.WriteString(html + "\r\n")
	b.WriteString("--" + mimeBoundary + "--\r\n")
	return []byte(b.String())
}

// OutboxMessage is an email captured by OutboxMailer.
type OutboxMessage struct {
	Kind   string // "verification" or "password_reset"
	To     string
	Name   string
	Link   string
	SentAt time.Time
}

// OutboxMailer keeps emails in memory instead of sending them. Used in demo
// mode, where the verification link is handed back to the client.
type OutboxMailer struct {
	mu   sync.RWMutex
	last map[string]OutboxMessage // key: kind + ":" + lowercased recipient
}

func NewOutboxMailer() *OutboxMailer {
	return &OutboxMailer{last: make(map[string]OutboxMessage)}
}

func (o *OutboxMailer) SendVerificationEmail(_ context.Context, to, name, link string) error {
	o.record("verification", to, name, link)
	return nil
}

func (o *OutboxMailer) SendPasswordResetEmail(_ context.Context, to, name, link string) error {
	o.record("password_reset", to, name, link)
	return nil
}

func (o *OutboxMailer) record(kind, to, name, link string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.last[kind+":"+strings.ToLower(to)] = OutboxMessage{Kind: kind, To: to, Name: name, Link: link, SentAt: time.Now()}
}

// LastLink returns the most recent verification link sent to email.
func (o *OutboxMailer) LastLink(email string) (string, bool) {
	msg, ok := o.Last("verification", email)
	return msg.Link, ok
}

// Last returns the most recent message of kind sent to email.
func (o *OutboxMailer) Last(kind, email string) (OutboxMessage, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	msg, ok := o.last[kind+":"+strings.ToLower(email)]
	return msg, ok
}
