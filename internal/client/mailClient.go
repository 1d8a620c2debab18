package client

import (
	"context"
	"fmt"
	"net/http"
	"net/mail"
	"sync"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"lab-portal/internal/config"
	"lab-portal/internal/logging"
)

var (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

type EmailMessage struct {
	To          mail.Address
	Subject     string
	TextContent string
	HTMLContent string
}

// MailClient delivers a single message synchronously so callers can react
// to delivery failures.
type MailClient interface {
	Send(ctx context.Context, msg *EmailMessage) error
}

// NewMailClient returns a SendGrid client when an API key is configured and
// a console client otherwise.
func NewMailClient(cfg *config.Mail, logger logging.Logger) MailClient {
	from := mail.Address{Name: cfg.FromName, Address: cfg.FromAddress}
	if cfg.SendgridAPIKey == "" {
		return NewConsoleMailClient(from, logger)
	}
	return NewSendgridMailClient(cfg.SendgridAPIKey, from)
}

type sendgridMailClient struct {
	key  string
	host string
	from *sgmail.Email
}

func NewSendgridMailClient(key string, from mail.Address) MailClient {
	return &sendgridMailClient{
		key:  key,
		host: sendgridHost,
		from: sgmail.NewEmail(from.Name, from.Address),
	}
}

func (c *sendgridMailClient) prepare(msg *EmailMessage) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail(msg.To.Name, msg.To.Address))

	m := sgmail.NewV3Mail()
	m.SetFrom(c.from)
	m.AddPersonalizations(p)
	m.AddContent(
		sgmail.NewContent("text/plain", msg.TextContent),
		sgmail.NewContent("text/html", msg.HTMLContent),
	)
	return m
}

func (c *sendgridMailClient) Send(ctx context.Context, msg *EmailMessage) error {
	req := sendgrid.GetRequest(c.key, sendgridEndpoint, c.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(c.prepare(msg))

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid request: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid error %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

// ConsoleMailClient logs messages instead of sending them and keeps a copy
// of everything it "sent".
type ConsoleMailClient struct {
	from   mail.Address
	logger logging.Logger

	mu   sync.Mutex
	sent []EmailMessage
}

func NewConsoleMailClient(from mail.Address, logger logging.Logger) *ConsoleMailClient {
	return &ConsoleMailClient{
		from:   from,
		logger: logger,
	}
}

func (c *ConsoleMailClient) Send(ctx context.Context, msg *EmailMessage) error {
	c.logger.Info(ctx, "email",
		"from", c.from.String(),
		"to", msg.To.String(),
		"subject", msg.Subject,
		"body", msg.TextContent,
	)

	c.mu.Lock()
	c.sent = append(c.sent, *msg)
	c.mu.Unlock()
	return nil
}

func (c *ConsoleMailClient) Sent() []EmailMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]EmailMessage(nil), c.sent...)
}
