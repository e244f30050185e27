package services

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/brikvest/backend/internal/config"
	"github.com/brikvest/backend/internal/models"
	"github.com/brikvest/backend/pkg/logger"
)

// EmailService sends confirmation notices. Delivery is fire and forget:
// failures are logged, never retried, and never surfaced to API callers.
type EmailService struct {
	cfg *config.SMTPConfig
}

func NewEmailService(cfg *config.SMTPConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// Send delivers an HTML email to the recipients. A disabled or unconfigured
// SMTP section makes this a no-op.
func (s *EmailService) Send(to []string, subject, body string) error {
	if !s.cfg.Enabled || s.cfg.Host == "" {
		return nil
	}
	if len(to) == 0 {
		return nil
	}

	from := s.cfg.From
	if from == "" {
		from = s.cfg.Username
	}

	headers := map[string]string{
		"From":         from,
		"To":           strings.Join(to, ","),
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}

	var message strings.Builder
	for k, v := range headers {
		message.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	message.WriteString("\r\n")
	message.WriteString(body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.Username != "" && s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	var err error
	if s.cfg.UseTLS {
		err = s.sendTLS(addr, auth, from, to, message.String())
	} else {
		err = smtp.SendMail(addr, auth, from, to, []byte(message.String()))
	}

	if err != nil {
		logger.Warnf("[Email] Failed to send to %v: %v", to, err)
		return err
	}

	logger.Infof("[Email] Sent %q to %v", subject, to)
	return nil
}

func (s *EmailService) sendTLS(addr string, auth smtp.Auth, from string, to []string, message string) error {
	tlsConfig := &tls.Config{
		ServerName: s.cfg.Host,
	}

	conn, err := tls.Dial("tcp", addr, tlsConfig)
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	if err := client.Mail(from); err != nil {
		return err
	}

	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}

	w, err := client.Data()
	if err != nil {
		return err
	}

	if _, err := w.Write([]byte(message)); err != nil {
		return err
	}

	return w.Close()
}

// BuildReservationConfirmation renders the confirmation notice for a new
// slot reservation.
func BuildReservationConfirmation(r *models.InvestmentReservation, p *models.Property) (subject, body string) {
	subject = fmt.Sprintf("[Brikvest] Reservation confirmed: %s", p.Name)

	amount := int64(r.Units) * p.MinInvestment

	var sb strings.Builder
	sb.WriteString("<html><body style=\"font-family: Arial, sans-serif;\">")
	sb.WriteString(fmt.Sprintf("<h2>Thank you, %s!</h2>", r.FullName))
	sb.WriteString("<p>Your investment reservation has been recorded.</p>")
	sb.WriteString("<table style=\"border-collapse: collapse; margin-bottom: 20px;\">")

	rows := []struct{ label, value string }{
		{"Property", p.Name},
		{"Location", p.Location},
		{"Slots reserved", fmt.Sprintf("%d", r.Units)},
		{"Amount", fmt.Sprintf("₦%d", amount)},
		{"Projected return", fmt.Sprintf("%.2f%%", p.ProjectedReturn)},
		{"Status", r.Status},
	}
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("<tr><td style=\"padding: 8px; border: 1px solid #ddd; font-weight: bold;\">%s</td><td style=\"padding: 8px; border: 1px solid #ddd;\">%s</td></tr>", row.label, row.value))
	}
	sb.WriteString("</table>")

	sb.WriteString("<p>Our team will reach out with payment instructions.</p>")
	sb.WriteString("<hr><p style=\"color: #888; font-size: 12px;\">Brikvest · fractional real-estate investing</p>")
	sb.WriteString("</body></html>")

	return subject, sb.String()
}

// BuildGroupWelcome renders the welcome notice for a member who joined an
// investment group.
func BuildGroupWelcome(g *models.InvestmentGroup, m *models.GroupMember) (subject, body string) {
	subject = fmt.Sprintf("[Brikvest] Welcome to %s", g.Name)

	var sb strings.Builder
	sb.WriteString("<html><body style=\"font-family: Arial, sans-serif;\">")
	sb.WriteString(fmt.Sprintf("<h2>Welcome aboard, %s!</h2>", m.FullName))
	sb.WriteString(fmt.Sprintf("<p>You have joined the investment group <strong>%s</strong>.</p>", g.Name))
	sb.WriteString("<table style=\"border-collapse: collapse; margin-bottom: 20px;\">")

	rows := []struct{ label, value string }{
		{"Target amount", fmt.Sprintf("₦%d", g.TargetAmount)},
		{"Your pledge", fmt.Sprintf("₦%d", m.PledgedAmount)},
		{"Invite code", g.InviteCode},
		{"Recruiting until", g.ExpiresAt.Format("02 Jan 2006")},
	}
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("<tr><td style=\"padding: 8px; border: 1px solid #ddd; font-weight: bold;\">%s</td><td style=\"padding: 8px; border: 1px solid #ddd;\">%s</td></tr>", row.label, row.value))
	}
	sb.WriteString("</table>")

	sb.WriteString("<p>Share the invite code to bring in more members.</p>")
	sb.WriteString("<hr><p style=\"color: #888; font-size: 12px;\">Brikvest · fractional real-estate investing</p>")
	sb.WriteString("</body></html>")

	return subject, sb.String()
}
