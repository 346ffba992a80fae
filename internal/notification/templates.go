package notification

import (
	"fmt"
)

// TemplateType identifies a notification template.
type TemplateType string

const (
	TemplatePaymentReceipt       TemplateType = "payment_receipt"
	TemplateMembershipActivated  TemplateType = "membership_activated"
	TemplateApplicationReceived  TemplateType = "application_received"
	TemplateApplicationApproved  TemplateType = "application_approved"
	TemplateApplicationRejected  TemplateType = "application_rejected"
	TemplateEventRegistration    TemplateType = "event_registration"
)

// TemplateData carries the fields templates interpolate. Unused fields are
// ignored by templates that do not need them.
type TemplateData struct {
	Name        string
	Reference   string
	Amount      string
	Currency    string
	Description string
	ExpiresAt   string
	Category    string
	EventTitle  string
	ReviewNote  string
}

// Render produces the subject and HTML body for a template.
func Render(template TemplateType, data TemplateData) (subject, body string, err error) {
	switch template {
	case TemplatePaymentReceipt:
		subject = "Payment Received - CIPMA Abuja"
		body = wrap(fmt.Sprintf(`<h2>Payment Received</h2>
		<p>Dear %s,</p>
		<p>We have received your payment of <strong>%s %s</strong> for <em>%s</em>.</p>
		<p>Reference: <strong>%s</strong></p>
		<p>Thank you.</p>`, data.Name, data.Currency, data.Amount, data.Description, data.Reference))
	case TemplateMembershipActivated:
		subject = "Membership Activated - CIPMA Abuja"
		body = wrap(fmt.Sprintf(`<h2>Membership Activated</h2>
		<p>Dear %s,</p>
		<p>Your membership is now active and valid until <strong>%s</strong>.</p>
		<p>Welcome to the CIPMA Abuja branch.</p>`, data.Name, data.ExpiresAt))
	case TemplateApplicationReceived:
		subject = "Application Received - CIPMA Abuja"
		body = wrap(fmt.Sprintf(`<h2>Application Received</h2>
		<p>Dear %s,</p>
		<p>Your application for the <strong>%s</strong> grade has been received and is awaiting review.</p>
		<p>We will notify you once a decision is made.</p>`, data.Name, data.Category))
	case TemplateApplicationApproved:
		subject = "Application Approved - CIPMA Abuja"
		body = wrap(fmt.Sprintf(`<h2>Application Approved</h2>
		<p>Dear %s,</p>
		<p>Congratulations, your application for the <strong>%s</strong> grade has been approved.</p>
		<p>Complete your membership payment to activate your standing.</p>`, data.Name, data.Category))
	case TemplateApplicationRejected:
		subject = "Application Update - CIPMA Abuja"
		body = wrap(fmt.Sprintf(`<h2>Application Update</h2>
		<p>Dear %s,</p>
		<p>We regret to inform you that your application for the <strong>%s</strong> grade was not approved.</p>
		<p>%s</p>`, data.Name, data.Category, data.ReviewNote))
	case TemplateEventRegistration:
		subject = "Event Registration Confirmed - CIPMA Abuja"
		body = wrap(fmt.Sprintf(`<h2>Registration Confirmed</h2>
		<p>Dear %s,</p>
		<p>Your registration for <strong>%s</strong> is confirmed.</p>
		<p>We look forward to seeing you there.</p>`, data.Name, data.EventTitle))
	default:
		return "", "", fmt.Errorf("unknown notification template: %s", template)
	}

	return subject, body, nil
}

func wrap(content string) string {
	return fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif; color: #333;">
	%s
	<hr/>
	<p style="font-size: 12px; color: #888;">CIPMA Abuja Branch &middot; This is an automated message, please do not reply.</p>
	</body></html>`, content)
}
