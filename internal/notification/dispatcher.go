package notification

import (
	"fmt"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

// EmailConfig holds SMTP delivery settings. An empty host disables
// delivery without disabling dispatch.
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// DispatchResult reports what the dispatcher did. Body is always the
// rendered content, whether or not delivery was attempted.
type DispatchResult struct {
	Delivered bool   `json:"delivered"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// sender is the delivery seam; tests swap it for a recorder.
type sender interface {
	send(cfg EmailConfig, to, subject, htmlBody string) error
}

// Dispatcher renders notification templates and attempts best-effort
// delivery. Absence of provider configuration means "notifications
// disabled", not an error, and delivery failures are logged and swallowed:
// notification is never on the critical path of payment correctness.
type Dispatcher struct {
	config EmailConfig
	sender sender
	logger *zap.Logger
}

// NewDispatcher creates a new notification dispatcher
func NewDispatcher(config EmailConfig, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		config: config,
		sender: smtpSender{},
		logger: logger,
	}
}

// Enabled reports whether a delivery provider is configured.
func (d *Dispatcher) Enabled() bool {
	return d.config.Host != "" && d.config.From != ""
}

// Dispatch renders the template and attempts delivery. The returned error
// is only ever a rendering problem (unknown template); delivery failures
// never propagate.
func (d *Dispatcher) Dispatch(recipient string, template TemplateType, data TemplateData) (*DispatchResult, error) {
	subject, body, err := Render(template, data)
	if err != nil {
		return nil, err
	}

	result := &DispatchResult{Subject: subject, Body: body}

	if !d.Enabled() {
		d.logger.Debug("Notifications disabled, skipping delivery",
			zap.String("recipient", recipient),
			zap.String("template", string(template)))
		return result, nil
	}

	if err := d.sender.send(d.config, recipient, subject, body); err != nil {
		d.logger.Warn("Notification delivery failed",
			zap.String("recipient", recipient),
			zap.String("template", string(template)),
			zap.Error(err))
		return result, nil
	}

	result.Delivered = true
	d.logger.Info("Notification delivered",
		zap.String("recipient", recipient),
		zap.String("template", string(template)))

	return result, nil
}

// smtpSender delivers through SMTP via gomail
type smtpSender struct{}

func (smtpSender) send(cfg EmailConfig, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	from := cfg.From
	if cfg.FromName != "" {
		from = m.FormatAddress(cfg.From, cfg.FromName)
	}
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp delivery failed: %w", err)
	}

	return nil
}
