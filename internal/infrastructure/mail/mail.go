package mail

import (
	"github.com/alimikegami/perfume-store/config"
	"gopkg.in/gomail.v2"
)

// CreateDialer returns an SMTP dialer that opens one connection per send.
func CreateDialer(cfg config.SMTPConfig) *gomail.Dialer {
	return gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
}
