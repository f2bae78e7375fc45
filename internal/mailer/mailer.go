package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"time"

	"github.com/Nithish259/password-reset-backend/config"
)

// Client sends plain-text mail over SMTP. It is constructed once and
// injected where delivery is needed; there is no package-level
// transporter.
type Client struct {
	cfg     config.SMTP
	timeout time.Duration
}

func NewClient(cfg config.SMTP) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{cfg: cfg, timeout: timeout}
}

// Verify probes the SMTP server so a misconfigured transport fails at
// startup instead of on the first reset request.
func (c *Client) Verify(ctx context.Context) error {
	client, err := c.dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Noop(); err != nil {
		return fmt.Errorf("smtp noop failed: %w", err)
	}

	return client.Quit()
}

// Send delivers a plain-text message to a single recipient.
func (c *Client) Send(ctx context.Context, to, subject, body string) error {
	from := c.from()
	if from == "" {
		return fmt.Errorf("smtp from address is not configured")
	}

	client, err := c.dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if c.cfg.Username != "" || c.cfg.Password != "" {
		auth := smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	if err := client.Mail(from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	wc, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := wc.Write([]byte(buildTextMessage(from, to, subject, body))); err != nil {
		return err
	}
	if err := wc.Close(); err != nil {
		return err
	}

	return client.Quit()
}

func (c *Client) dial(ctx context.Context) (*smtp.Client, error) {
	if c.cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is not configured")
	}

	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)
	dialer := &net.Dialer{Timeout: c.timeout}

	// Port 465 is implicit TLS; everything else starts in cleartext.
	if c.cfg.Port == 465 {
		conn, err := tls.DialWithDialer(dialer, "tcp", addr, &tls.Config{ServerName: c.cfg.Host})
		if err != nil {
			return nil, err
		}
		return smtp.NewClient(conn, c.cfg.Host)
	}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	return smtp.NewClient(conn, c.cfg.Host)
}

func (c *Client) from() string {
	if c.cfg.From != "" {
		return c.cfg.From
	}
	return c.cfg.Username
}

func buildTextMessage(from, to, subject, body string) string {
	return fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s", from, to, subject, body)
}
