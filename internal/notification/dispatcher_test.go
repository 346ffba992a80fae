package notification

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSender struct {
	sent []string
	err  error
}

func (r *recordingSender) send(cfg EmailConfig, to, subject, htmlBody string) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, to)
	return nil
}

func enabledConfig() EmailConfig {
	return EmailConfig{Host: "smtp.example.com", Port: 587, From: "no-reply@cipmabuja.org.ng"}
}

func TestDispatch(t *testing.T) {
	data := TemplateData{
		Name:        "Ada Obi",
		Reference:   "HRH-1756400000000-a1b2",
		Amount:      "45000.00",
		Currency:    "NGN",
		Description: "Annual membership dues",
	}

	t.Run("delivers when configured", func(t *testing.T) {
		sender := &recordingSender{}
		d := &Dispatcher{config: enabledConfig(), sender: sender, logger: zap.NewNop()}

		result, err := d.Dispatch("ada@example.com", TemplatePaymentReceipt, data)

		require.NoError(t, err)
		assert.True(t, result.Delivered)
		assert.Contains(t, result.Subject, "Payment Received")
		assert.Contains(t, result.Body, "Ada Obi")
		assert.Contains(t, result.Body, "HRH-1756400000000-a1b2")
		assert.Equal(t, []string{"ada@example.com"}, sender.sent)
	})

	t.Run("disabled provider still renders without error", func(t *testing.T) {
		sender := &recordingSender{}
		d := &Dispatcher{config: EmailConfig{}, sender: sender, logger: zap.NewNop()}

		result, err := d.Dispatch("ada@example.com", TemplatePaymentReceipt, data)

		require.NoError(t, err)
		assert.False(t, result.Delivered)
		assert.NotEmpty(t, result.Body)
		assert.Empty(t, sender.sent)
	})

	t.Run("delivery failure is swallowed", func(t *testing.T) {
		sender := &recordingSender{err: errors.New("connection refused")}
		d := &Dispatcher{config: enabledConfig(), sender: sender, logger: zap.NewNop()}

		result, err := d.Dispatch("ada@example.com", TemplatePaymentReceipt, data)

		require.NoError(t, err)
		assert.False(t, result.Delivered)
	})

	t.Run("unknown template is the only error", func(t *testing.T) {
		d := &Dispatcher{config: enabledConfig(), sender: &recordingSender{}, logger: zap.NewNop()}

		_, err := d.Dispatch("ada@example.com", TemplateType("password_reset"), data)

		assert.Error(t, err)
	})
}

func TestRenderTemplates(t *testing.T) {
	for _, template := range []TemplateType{
		TemplatePaymentReceipt,
		TemplateMembershipActivated,
		TemplateApplicationReceived,
		TemplateApplicationApproved,
		TemplateApplicationRejected,
		TemplateEventRegistration,
	} {
		t.Run(string(template), func(t *testing.T) {
			subject, body, err := Render(template, TemplateData{Name: "Ada Obi"})
			require.NoError(t, err)
			assert.NotEmpty(t, subject)
			assert.Contains(t, body, "Ada Obi")
			assert.Contains(t, body, "CIPMA Abuja")
		})
	}
}
