package service

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"go.uber.org/zap"

	"github.com/priya-tenac/Ai-Study-Buddy/internal/config"
	"github.com/priya-tenac/Ai-Study-Buddy/pkg/logger"
)

const otpMailTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Your verification code</title>
</head>
<body style="margin:0;padding:0;background:#f1f5f9;font-family:-apple-system,'Segoe UI',Roboto,Helvetica,Arial,sans-serif;">
  <div style="max-width:560px;margin:40px auto;background:#ffffff;border-radius:12px;overflow:hidden;box-shadow:0 8px 24px rgba(15,23,42,0.08);">
    <div style="padding:28px 32px;background:#1d4ed8;color:#ffffff;font-size:20px;font-weight:700;">AI Study Buddy</div>
    <div style="padding:32px;">
      <h1 style="margin:0 0 12px;font-size:22px;color:#0f172a;">Verify your email</h1>
      <p style="margin:0 0 24px;color:#475569;line-height:1.6;">
        Use this code to finish signing in. It expires in {{.TTLMinutes}} minutes.
      </p>
      <div style="font-size:32px;letter-spacing:10px;font-weight:700;color:#1d4ed8;text-align:center;padding:18px;background:#eff6ff;border-radius:8px;">{{.Code}}</div>
      <p style="margin:24px 0 0;color:#94a3b8;font-size:13px;">
        If you didn't request this code you can safely ignore this email.
      </p>
    </div>
    <div style="padding:20px 32px;color:#94a3b8;font-size:12px;text-align:center;border-top:1px solid #e2e8f0;">
      © {{.Year}} AI Study Buddy
    </div>
  </div>
</body>
</html>`

// MailService delivers transactional email over SMTP. It is synchronous;
// callers that don't want to block run it in a goroutine.
type MailService struct {
	cfg    config.SMTPConfig
	otpTpl *template.Template
}

func NewMailService(cfg config.SMTPConfig) *MailService {
	return &MailService{
		cfg:    cfg,
		otpTpl: template.Must(template.New("otp").Parse(otpMailTemplate)),
	}
}

type otpMailData struct {
	Code       string
	TTLMinutes int
	Year       int
}

// SendOTP emails a login verification code.
func (s *MailService) SendOTP(to, code string, ttl time.Duration) error {
	var body bytes.Buffer
	err := s.otpTpl.Execute(&body, otpMailData{
		Code:       code,
		TTLMinutes: int(ttl.Minutes()),
		Year:       time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(to, "Your AI Study Buddy verification code", "text/html", body.String())
}

// ForwardContactMessage relays a contact-form submission to the team inbox.
func (s *MailService) ForwardContactMessage(name, from, message string) error {
	if s.cfg.ContactInbox == "" {
		return fmt.Errorf("contact inbox is not configured")
	}
	body := fmt.Sprintf("From: %s <%s>\n\n%s", name, from, message)
	return s.send(s.cfg.ContactInbox, "New contact message", "text/plain", body)
}

func (s *MailService) send(to, subject, contentType, body string) error {
	if s.cfg.Host == "" || s.cfg.From == "" {
		logger.Log.Warn("smtp is not configured, skipping send",
			zap.String("to", to),
			zap.String("subject", subject))
		return nil
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: %s; charset=UTF-8\r\n", contentType)
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, msg.Bytes()); err != nil {
		logger.Log.Error("smtp send failed",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err))
		return err
	}
	return nil
}
