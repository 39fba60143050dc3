package mailer

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/engrainai/siteapi/internal/config"
	"github.com/engrainai/siteapi/internal/forms"
)

// Sender delivers a contact-form notification. Implemented by Mailer;
// handlers depend on the interface so tests can substitute a fake.
type Sender interface {
	SendContactNotification(ctx context.Context, rec forms.ContactRequest) error
}

// Mailer sends contact-form notifications through an SMTP relay over
// implicit TLS. The send is synchronous: the contact endpoint's response
// depends on its outcome.
type Mailer struct {
	cfg    config.SMTPConfig
	logger *slog.Logger
}

func New(cfg config.SMTPConfig, logger *slog.Logger) *Mailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mailer{cfg: cfg, logger: logger}
}

// SendContactNotification formats rec into an HTML+plaintext message and
// hands it to the relay. Reply-To is set to the submitter so the recipient
// can answer directly.
func (m *Mailer) SendContactNotification(ctx context.Context, rec forms.ContactRequest) error {
	if m.cfg.Username == "" || m.cfg.Password == "" {
		return fmt.Errorf("SMTP_USERNAME and SMTP_PASSWORD are required to send contact email")
	}
	recipient := m.cfg.Recipient
	if recipient == "" {
		recipient = m.cfg.Username
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.Username); err != nil {
		return fmt.Errorf("setting from address: %w", err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("setting recipient: %w", err)
	}
	if err := msg.ReplyTo(rec.Email); err != nil {
		return fmt.Errorf("setting reply-to: %w", err)
	}
	msg.Subject(fmt.Sprintf("New Contact Form Submission from %s", rec.Name))

	text, htmlBody := buildBodies(rec)
	msg.SetBodyString(mail.TypeTextPlain, text)
	msg.AddAlternativeString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending contact email: %w", err)
	}
	m.logger.Info("contact email sent", "recipient", recipient)
	return nil
}

// buildBodies renders the plaintext and HTML variants of the notification.
func buildBodies(rec forms.ContactRequest) (text, htmlBody string) {
	phone := "Not provided"
	if rec.Phone != nil {
		phone = *rec.Phone
	}

	text = fmt.Sprintf(`New Contact Form Submission

Name: %s
Email: %s
Phone: %s

Message:
%s

---
Sent from Engrain AI website contact form
`, rec.Name, rec.Email, phone, rec.Message)

	htmlBody = fmt.Sprintf(`<h2>New Contact Form Submission</h2>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>
<hr />
<h3>Message:</h3>
<p>%s</p>
<hr />
<p style="color: #666; font-size: 12px;">Sent from Engrain AI website contact form</p>
`,
		html.EscapeString(rec.Name),
		html.EscapeString(rec.Email),
		html.EscapeString(phone),
		strings.ReplaceAll(html.EscapeString(rec.Message), "\n", "<br />"),
	)
	return text, htmlBody
}
