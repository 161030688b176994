package service

import (
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// Mailer is the outbound mail collaborator. Both sends are best-effort
// from the core's point of view: callers log failures and move on.
type Mailer interface {
	SendWelcome(to, username string) error
	SendPasswordReset(to, token string) error
}

// SMTPMailer dispatches mail over SMTP using the mail.* config block.
type SMTPMailer struct {
	host   string
	port   int
	from   string
	passwd string
	domain string
	ssl    bool
}

func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{
		host:   viper.GetString("mail.host"),
		port:   viper.GetInt("mail.port"),
		from:   viper.GetString("mail.sender_address"),
		passwd: viper.GetString("mail.password"),
		domain: viper.GetString("host.domain"),
		ssl:    viper.GetBool("host.ssl.enabled"),
	}
}

func (s *SMTPMailer) send(to, subject, body string) error {
	m := gomail.NewMessage()

	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.host, s.port, s.from, s.passwd)

	if err := d.DialAndSend(m); err != nil {
		return err
	}

	return nil
}

func (s *SMTPMailer) SendWelcome(to, username string) error {
	return s.send(to, "Welcome to Snapgram",
		fmt.Sprintf("Hey %v, your account is ready. Log in and share your first post!", username))
}

func (s *SMTPMailer) SendPasswordReset(to, token string) error {
	var scheme string
	if s.ssl {
		scheme = "https"
	} else {
		scheme = "http"
	}

	resetLink := fmt.Sprintf("%v://%v/reset-password?token=%v", scheme, s.domain, token)

	return s.send(to, "Reset your Snapgram password",
		fmt.Sprintf("Click <a href='%v'>here</a> to set a new password.<br><br>This link works once and expires in 1 hour.", resetLink))
}
