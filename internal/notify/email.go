// Package notify delivers pre-invoice notifications over SMTP. The billing
// core only knows the usecase.PreinvoiceSender contract; everything
// mail-specific lives here.
package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"

	"unirenta/internal/billing"
	"unirenta/internal/entity"
)

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	// AppName labels the mail subject and footer
	AppName string
}

// EmailSender sends rendered pre-invoices through a gomail dialer.
type EmailSender struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
}

func NewEmailSender(cfg SMTPConfig) *EmailSender {
	if cfg.AppName == "" {
		cfg.AppName = "UniRenta"
	}
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	return &EmailSender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

// Send renders and mails the pre-invoice. The send itself is synchronous;
// ctx only aborts before dialing.
func (s *EmailSender) Send(ctx context.Context, to entity.TenantContact, inv billing.Preinvoice) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to.Email)
	m.SetHeader("Subject", fmt.Sprintf("Pre-invoice for your %s services", s.cfg.AppName))
	m.SetBody("text/plain", s.renderText(to, inv))
	m.AddAlternative("text/html", s.renderHTML(to, inv))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send preinvoice to %s: %w", to.Email, err)
	}
	return nil
}

func (s *EmailSender) renderText(to entity.TenantContact, inv billing.Preinvoice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", to.Name)
	fmt.Fprintf(&b, "This is the pre-invoice for your unit and the extra services that will be active on your next cut date: %s.\n\n", inv.CutDate.Format("02/01/2006"))
	fmt.Fprintf(&b, "Unit: %s - $%s / month\n", inv.UnitName, inv.Base.StringFixed(2))
	if len(inv.Services) == 0 {
		b.WriteString("(No extra services)\n")
	}
	for _, svc := range inv.Services {
		fmt.Fprintf(&b, "- %s: $%s / month\n", svc.Name, svc.Price.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nEstimated TOTAL: $%s / month\n\n", inv.Total.StringFixed(2))
	b.WriteString("NOTE:\n")
	b.WriteString("- This is an informational pre-invoice.\n")
	b.WriteString("- If you recently added or removed services, this pre-invoice replaces\n")
	b.WriteString("  any earlier one; please disregard older versions.\n\n")
	b.WriteString(s.cfg.AppName + "\n")
	return b.String()
}

func (s *EmailSender) renderHTML(to entity.TenantContact, inv billing.Preinvoice) string {
	var rows strings.Builder
	fmt.Fprintf(&rows, `<tr><td style="padding:4px 8px;">Unit: <strong>%s</strong></td><td style="padding:4px 8px; text-align:right;">$%s / month</td></tr>`,
		html.EscapeString(inv.UnitName), inv.Base.StringFixed(2))
	for _, svc := range inv.Services {
		fmt.Fprintf(&rows, `<tr><td style="padding:4px 8px;">%s</td><td style="padding:4px 8px; text-align:right;">$%s / month</td></tr>`,
			html.EscapeString(svc.Name), svc.Price.StringFixed(2))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="margin:0; padding:0; font-family: Arial, Helvetica, sans-serif; background-color:#f6f6f6;">
  <div style="max-width:600px; margin:0 auto; padding:16px;">
    <div style="background:#ffffff; padding:20px; border-radius:8px;">
      <h1 style="margin:0 0 4px 0; font-size:28px; color:#333;">%[1]s</h1>
      <h2 style="margin:8px 0 12px 0; font-size:20px; color:#333;">Pre-invoice for your extra services</h2>
      <p style="margin:0 0 8px 0; font-size:14px; color:#333;">Hi <strong>%[2]s</strong>,</p>
      <p style="margin:0 0 12px 0; font-size:14px; color:#333;">
        This is the pre-invoice for your unit and the extra services that will be active on your next cut date:
        <strong>%[3]s</strong>.
      </p>
      <table width="100%%" cellpadding="0" cellspacing="0" style="border-collapse:collapse; margin-bottom:12px;">
        <tbody>
          %[4]s
          <tr>
            <td style="padding:8px; border-top:1px solid #ddd; font-weight:bold;">Estimated TOTAL</td>
            <td style="padding:8px; border-top:1px solid #ddd; text-align:right; font-weight:bold;">$%[5]s / month</td>
          </tr>
        </tbody>
      </table>
      <p style="margin:8px 0 0 0; font-size:12px; color:#999;">
        <strong>Note:</strong> this is an informational pre-invoice; the actual charge happens on the cut date
        according to the services active at that moment. If you recently changed your services, this message
        replaces any earlier pre-invoice.
      </p>
    </div>
    <p style="margin:12px 0 0 0; font-size:11px; color:#aaa; text-align:center;">Sent automatically by %[1]s.</p>
  </div>
</body>
</html>`,
		html.EscapeString(s.cfg.AppName),
		html.EscapeString(to.Name),
		inv.CutDate.Format("02/01/2006"),
		rows.String(),
		inv.Total.StringFixed(2))
}
