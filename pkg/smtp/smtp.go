package smtp

import (
	"fmt"
	smtpPkg "net/smtp"
	"strings"
)

type ItfSmtp interface {
	SendTripInvitation(to string, inviterName string, tripName string, token string) error
}

type Config struct {
	Host        string
	Port        string
	Mail        string
	Password    string
	FrontendURL string
}

type smtp struct {
	auth        smtpPkg.Auth
	addr        string
	mail        string
	frontendURL string
}

func New(cfg Config) ItfSmtp {
	return &smtp{
		auth:        smtpPkg.PlainAuth("", cfg.Mail, cfg.Password, cfg.Host),
		addr:        fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		mail:        cfg.Mail,
		frontendURL: strings.TrimRight(cfg.FrontendURL, "/"),
	}
}

func (s *smtp) SendTripInvitation(to string, inviterName string, tripName string, token string) error {
	link := fmt.Sprintf("%s/invitations/%s", s.frontendURL, token)

	message := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s invited you to %s\r\n\r\n"+
			"Hi,\r\n\r\n%s invited you to join the trip \"%s\".\r\n"+
			"Open the link below to accept the invitation.\r\n\r\n%s\r\n",
		s.mail, to, inviterName, tripName, inviterName, tripName, link,
	))

	return smtpPkg.SendMail(s.addr, s.auth, s.mail, []string{to}, message)
}
