package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/erp-expedientes/internal/application/notificacion"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
	"github.com/jhoicas/erp-expedientes/pkg/config"
)

var _ notificacion.Sender = (*Sender)(nil)

// Sender entrega correos por SMTP con gomail.
type Sender struct {
	dialer *gomail.Dialer
}

// NewSender construye el sender con MAIL_*/SMTP_* de la configuración.
func NewSender(cfg config.MailConfig) *Sender {
	return &Sender{dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)}
}

// Send abre una conexión por correo; el despachador envía lotes pequeños.
func (s *Sender) Send(ctx context.Context, c *entity.Correo) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(message(c)); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	return nil
}

func message(c *entity.Correo) *gomail.Message {
	m := gomail.NewMessage(gomail.SetCharset("UTF-8"))
	m.SetHeader("From", c.Remitente)
	m.SetHeader("To", c.Destinatarios...)
	m.SetHeader("Subject", c.Asunto)
	m.SetBody("text/html", c.HTML)
	return m
}
