package notify

import (
	"context"
	"fmt"
	"net/smtp"
)

// Email sends self-addressed alerts through an SMTP submission endpoint.
type Email struct {
	address  string
	password string
	host     string
	port     int
}

func NewEmail(address, password, host string, port int) *Email {
	return &Email{address: address, password: password, host: host, port: port}
}

func (e *Email) SendAlert(ctx context.Context, a AlertPayload) error {
	subject, body := Render(a)
	return e.send(subject, body)
}

func (e *Email) SendText(ctx context.Context, text string) error {
	return e.send("Flight monitor", text)
}

func (e *Email) send(subject, body string) error {
	auth := smtp.PlainAuth("", e.address, e.password, e.host)
	msg := fmt.Sprintf("Subject: %s\r\n\r\n%s", subject, body)
	addr := fmt.Sprintf("%s:%d", e.host, e.port)
	return smtp.SendMail(addr, auth, e.address, []string{e.address}, []byte(msg))
}
