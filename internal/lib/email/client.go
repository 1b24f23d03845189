// Package email sends notification emails through Resend.
//
// Templates are HTML files embedded in the binary and rendered with
// html/template before sending.
package email

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/deppfellow/colleague-finance-api/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Client wraps the Resend client and a logger.
type Client struct {
	client *resend.Client
	from   string
	logger *zerolog.Logger
}

// NewClient creates an email Client using the Resend API key from config.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		client: resend.NewClient(cfg.Integration.ResendAPIKey),
		from:   cfg.Integration.EmailFrom,
		logger: logger,
	}
}

// Render executes the named template with data.
func Render(name Template, data map[string]string) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, string(name)+".html", data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", name)
	}
	return body.String(), nil
}

// SendEmail renders templateName with data and sends it to every recipient.
func (c *Client) SendEmail(to []string, subject string, templateName Template, data map[string]string) error {
	if len(to) == 0 {
		return errors.New("email has no recipients")
	}

	html, err := Render(templateName, data)
	if err != nil {
		return err
	}

	sent, err := c.client.Emails.Send(&resend.SendEmailRequest{
		From:    c.from,
		To:      to,
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return errors.Wrap(err, "failed to send email")
	}

	c.logger.Debug().
		Str("template", string(templateName)).
		Str("email_id", sent.Id).
		Int("recipients", len(to)).
		Msg("email sent")

	return nil
}
