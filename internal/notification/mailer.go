package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

type ConfirmationLine struct {
	Title    string
	Quantity int64
	Price    int64
}

// 注文確認メールの中身。テンプレートエンジンは外部の責務なのでプレーンテキスト。
type OrderConfirmation struct {
	To          string
	Name        string
	OrderNumber string
	TotalAmount int64
	Currency    string
	Lines       []ConfirmationLine
}

type Mailer interface {
	SendOrderConfirmation(ctx context.Context, m OrderConfirmation) error
}

type SMTPMailer struct {
	host string
	port string
	user string
	pass string
	from string
}

func NewSMTPMailer(host, port, user, pass, from string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, user: user, pass: pass, from: from}
}

func (s *SMTPMailer) SendOrderConfirmation(ctx context.Context, m OrderConfirmation) error {
	if s.host == "" {
		return fmt.Errorf("smtp host is not configured")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.from)
	fmt.Fprintf(&b, "To: %s\r\n", m.To)
	fmt.Fprintf(&b, "Subject: Order confirmation %s\r\n", m.OrderNumber)
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Hi %s,\r\n\r\n", m.Name)
	fmt.Fprintf(&b, "Thank you for your order %s.\r\n\r\n", m.OrderNumber)
	for _, line := range m.Lines {
		fmt.Fprintf(&b, "  %s x%d - %s %s\r\n", line.Title, line.Quantity, m.Currency, formatMinor(line.Price*line.Quantity))
	}
	fmt.Fprintf(&b, "\r\nTotal: %s %s\r\n", m.Currency, formatMinor(m.TotalAmount))

	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	return smtp.SendMail(s.host+":"+s.port, auth, s.from, []string{m.To}, []byte(b.String()))
}

func formatMinor(minor int64) string {
	return fmt.Sprintf("%d.%02d", minor/100, minor%100)
}
