package mailer

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	UseTLS   bool
}

// Message is a plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Mailer struct {
	cfg       Config
	send      sendFunc
	dial      func(network, addr string, config *tls.Config) (net.Conn, error)
	newClient func(conn net.Conn, host string) (*smtp.Client, error)
	now       func() time.Time
}

func New(cfg Config) *Mailer {
	return &Mailer{
		cfg:  cfg,
		send: smtp.SendMail,
		dial: func(network, addr string, config *tls.Config) (net.Conn, error) {
			return tls.Dial(network, addr, config)
		},
		newClient: smtp.NewClient,
		now:       time.Now,
	}
}

func (m *Mailer) from() string {
	if strings.TrimSpace(m.cfg.From) != "" {
		return m.cfg.From
	}
	return m.cfg.Username
}

func (m *Mailer) Send(msg Message) error {
	to := strings.TrimSpace(msg.To)
	if to == "" {
		return fmt.Errorf("mailer: empty recipient")
	}
	from := m.from()
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	raw := []byte(buildMessage(from, to, msg.Subject, msg.Body, m.now()))

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if m.cfg.UseTLS {
		return m.sendTLS(addr, auth, from, to, raw)
	}
	return m.send(addr, auth, from, []string{to}, raw)
}

func (m *Mailer) sendTLS(addr string, auth smtp.Auth, from, to string, raw []byte) error {
	conn, err := m.dial("tcp", addr, &tls.Config{
		ServerName: m.cfg.Host,
		MinVersion: tls.VersionTLS12,
	})
	if err != nil {
		return err
	}
	c, err := m.newClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer c.Quit()
	if auth != nil {
		if err := c.Auth(auth); err != nil {
			return err
		}
	}
	if err := c.Mail(from); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(raw); err != nil {
		return err
	}
	return w.Close()
}

// headerSafe drops line breaks so a value cannot start a new header.
func headerSafe(v string) string {
	return strings.NewReplacer("\r", "", "\n", " ").Replace(v)
}

func buildMessage(from, to, subject, body string, at time.Time) string {
	headers := []string{
		fmt.Sprintf("From: %s", headerSafe(from)),
		fmt.Sprintf("To: %s", headerSafe(to)),
		fmt.Sprintf("Subject: %s", headerSafe(subject)),
		fmt.Sprintf("Date: %s", at.UTC().Format(time.RFC1123Z)),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
	}
	return strings.Join(headers, "\r\n") + "\r\n\r\n" + body
}
