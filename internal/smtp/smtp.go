package smtp

import (
	"fmt"

	"github.com/vidora/backend/internal/config"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type EmailServer struct {
	server string
	port   int
	user   string
	pass   string
}

func New(conf config.Config) *EmailServer {
	return &EmailServer{
		server: conf.Email.Server,
		port:   conf.Email.Port,
		user:   conf.Email.User,
		pass:   conf.Email.Pass,
	}
}

// SendWelcome greets a freshly registered user. Callers treat failures as
// non-fatal.
func (s *EmailServer) SendWelcome(email, name string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.user)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome to Vidora")
	m.SetBody(
		"text/plain",
		fmt.Sprintf("Hi %s,\n\nYour account is ready. Happy watching!", name),
	)

	d := gomail.NewDialer(s.server, s.port, s.user, s.pass)
	if err := d.DialAndSend(m); err != nil {
		zap.L().Error(
			"Failed to send an email",
			zap.Error(err),
		)
		return err
	}
	return nil
}
