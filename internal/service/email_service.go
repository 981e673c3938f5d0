package service

import (
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/caneca-next/internal/config"
	"github.com/caneca-next/internal/constants"
)

// EmailService 邮件发送服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// OrderStatusEmailInput 订单状态邮件输入
type OrderStatusEmailInput struct {
	OrderNo      string
	Status       string
	CustomerName string
	TotalCents   int64
}

// SendOrderStatusEmail 发送订单状态通知
func (s *EmailService) SendOrderStatusEmail(toEmail string, input OrderStatusEmailInput) error {
	subject, body := buildOrderStatusContent(input)
	return s.sendTextEmail(toEmail, subject, body)
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	return smtp.SendMail(addr, auth, s.cfg.From, []string{toEmail}, []byte(msg))
}

func buildOrderStatusContent(input OrderStatusEmailInput) (string, string) {
	statusText := orderStatusText(input.Status)
	subject := fmt.Sprintf("订单 %s %s", input.OrderNo, statusText)

	name := strings.TrimSpace(input.CustomerName)
	if name == "" {
		name = "顾客"
	}
	body := fmt.Sprintf(
		"%s您好：\n\n您的订单 %s 当前状态为：%s。\n订单金额：%.2f 元。\n\n感谢您的惠顾。",
		name, input.OrderNo, statusText, float64(input.TotalCents)/100,
	)
	return subject, body
}

func orderStatusText(status string) string {
	switch status {
	case constants.OrderStatusPending:
		return "待处理"
	case constants.OrderStatusProcessing:
		return "制作中"
	case constants.OrderStatusReady:
		return "已完成待取"
	case constants.OrderStatusShipped:
		return "已发货"
	case constants.OrderStatusDelivered:
		return "已送达"
	case constants.OrderStatusCancelled:
		return "已取消"
	default:
		return status
	}
}

func buildFromAddress(from, fromName string) string {
	fromName = strings.TrimSpace(fromName)
	if fromName == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("utf-8", fromName)
	return fmt.Sprintf("%s <%s>", encoded, from)
}

func buildEmailMessage(from, to, subject, body string) string {
	encodedSubject := mime.QEncoding.Encode("utf-8", subject)
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", encodedSubject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return b.String()
}
