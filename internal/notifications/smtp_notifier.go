package notifications

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/prestigebuild/siteapi/internal/observability"
)

const companyName = "Prestige Build Construction"

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// Operator is the mailbox contact leads are delivered to.
	Operator string
}

// SMTPNotifier sends both contact emails through one SMTP relay, one
// synchronous dial per message. No queue, no retry.
type SMTPNotifier struct {
	client   *mail.Client
	from     string
	operator string
	prom     *observability.Prom
}

func NewSMTPNotifier(cfg SMTPConfig, prom *observability.Prom) (*SMTPNotifier, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	)

	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	operator := cfg.Operator

	if operator == "" {
		operator = cfg.Username
	}

	return &SMTPNotifier{
		client:   client,
		from:     cfg.Username,
		operator: operator,
		prom:     prom,
	}, nil
}

func (n *SMTPNotifier) SendContactNotification(ctx context.Context, msg ContactMessage) error {
	m := mail.NewMsg()

	if err := m.FromFormat(msg.Name, n.from); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}

	if err := m.To(n.operator); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}

	// replies go straight to the submitter
	if err := m.ReplyTo(msg.Email); err != nil {
		return fmt.Errorf("set reply-to: %w", err)
	}

	m.Subject("New Contact Form: " + msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, leadText(msg))
	m.AddAlternativeString(mail.TypeTextHTML, leadHTML(msg))

	err := n.client.DialAndSendWithContext(ctx, m)
	n.count("lead", err)

	if err != nil {
		return fmt.Errorf("send lead notification: %w", err)
	}

	return nil
}

func (n *SMTPNotifier) SendContactAcknowledgement(ctx context.Context, email, name string) error {
	m := mail.NewMsg()

	if err := m.FromFormat(companyName, n.from); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}

	if err := m.To(email); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}

	m.Subject("Thank you for contacting Prestige Build")
	m.SetBodyString(mail.TypeTextPlain, ackText(name))
	m.AddAlternativeString(mail.TypeTextHTML, ackHTML(name))

	err := n.client.DialAndSendWithContext(ctx, m)
	n.count("ack", err)

	if err != nil {
		return fmt.Errorf("send acknowledgement: %w", err)
	}

	return nil
}

func (n *SMTPNotifier) count(kind string, err error) {
	if n.prom == nil {
		return
	}

	result := "ok"

	if err != nil {
		result = "error"
	}

	n.prom.MailSendsTotal.WithLabelValues(kind, result).Inc()
}

func leadText(msg ContactMessage) string {
	phone := msg.Phone

	if phone == "" {
		phone = "Not provided"
	}

	return fmt.Sprintf(`New Contact Form Submission

Name: %s
Email: %s
Phone: %s
Subject: %s

Message:
%s

---
This email was sent from the %s website contact form.
`, msg.Name, msg.Email, phone, msg.Subject, msg.Message, companyName)
}

func leadHTML(msg ContactMessage) string {
	phone := msg.Phone

	if phone == "" {
		phone = "Not provided"
	}

	var b strings.Builder

	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	b.WriteString(`<h2 style="color: #2c4f6f;">New Contact Form Submission</h2>`)
	b.WriteString(`<div style="background-color: #f5f5f5; padding: 20px; border-left: 4px solid #ffaa00;">`)
	fmt.Fprintf(&b, `<p><strong>Name:</strong> %s</p>`, htmlEscape(msg.Name))
	fmt.Fprintf(&b, `<p><strong>Email:</strong> <a href="mailto:%s">%s</a></p>`, htmlEscape(msg.Email), htmlEscape(msg.Email))
	fmt.Fprintf(&b, `<p><strong>Phone:</strong> %s</p>`, htmlEscape(phone))
	fmt.Fprintf(&b, `<p><strong>Subject:</strong> %s</p>`, htmlEscape(msg.Subject))
	b.WriteString(`</div><div style="padding: 20px; border: 1px solid #ddd;"><h3 style="color: #2c4f6f;">Message:</h3>`)
	fmt.Fprintf(&b, `<p style="line-height: 1.6;">%s</p>`, strings.ReplaceAll(htmlEscape(msg.Message), "\n", "<br>"))
	b.WriteString(`</div></div>`)

	return b.String()
}

func ackText(name string) string {
	return fmt.Sprintf(`Thank You, %s!

We've received your message and appreciate you reaching out to us.
Our team will review your inquiry and get back to you within 24-48 hours.

Best regards,
The Prestige Build Team
`, name)
}

func ackHTML(name string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<div style="background-color: #2c4f6f; color: white; padding: 30px; text-align: center;"><h1 style="margin: 0;">%s</h1></div>
<div style="padding: 30px;">
<h2 style="color: #2c4f6f;">Thank You, %s!</h2>
<p style="line-height: 1.6;">We've received your message and appreciate you reaching out to us.
Our team will review your inquiry and get back to you within 24-48 hours.</p>
<p style="color: #2c4f6f; font-weight: bold;">The Prestige Build Team</p>
</div></div>`, companyName, htmlEscape(name))
}

func htmlEscape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}
