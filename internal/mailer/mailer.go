package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/devfolio/internal/config"
)

// Notifier 向站点主人投递联系表单通知。
// 通知失败不应阻断留言落库，调用方只记录错误。
type Notifier interface {
	NotifyContact(name, email, subject, body string) error
}

// SMTPNotifier 通过 SMTP 发送通知邮件。
type SMTPNotifier struct {
	cfg config.SMTPConfig
}

// NewSMTPNotifier 构造 SMTPNotifier。
func NewSMTPNotifier(cfg config.SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg}
}

// NotifyContact 发送一封新留言通知。Host 未配置时直接跳过。
func (n *SMTPNotifier) NotifyContact(name, email, subject, body string) error {
	if strings.TrimSpace(n.cfg.Host) == "" {
		return nil
	}

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	headline := subject
	if strings.TrimSpace(headline) == "" {
		headline = "新的联系表单留言"
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", n.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", n.cfg.To)
	fmt.Fprintf(&msg, "Subject: %s\r\n", headline)
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&msg, "来自：%s <%s>\r\n\r\n%s\r\n", name, email, body)

	if err := smtp.SendMail(addr, auth, n.cfg.From, []string{n.cfg.To}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send contact notification: %w", err)
	}
	return nil
}
