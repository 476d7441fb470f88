package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/reelgate-inc/reelgate/internal/application/notification/dto"
	"github.com/reelgate-inc/reelgate/internal/shared/config"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
	"github.com/reelgate-inc/reelgate/internal/shared/utils"
)

type mailer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender delivers notification emails over SMTP.
type SMTPSender struct {
	dialer      mailer
	fromAddress string
	fromName    string
	renderer    *Renderer
	logger      logger.Interface
}

func NewSMTPSender(cfg config.EmailConfig, renderer *Renderer, logger logger.Interface) *SMTPSender {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)

	return &SMTPSender{
		dialer:      dialer,
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		renderer:    renderer,
		logger:      logger,
	}
}

func (s *SMTPSender) SendNotification(ctx context.Context, address string, kind dto.MessageKind, data dto.MessageData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if address == "" {
		return fmt.Errorf("recipient address is empty")
	}

	rendered, err := s.renderer.Render(kind, data)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	if s.fromName != "" {
		m.SetAddressHeader("From", s.fromAddress, s.fromName)
	} else {
		m.SetHeader("From", s.fromAddress)
	}
	m.SetHeader("To", address)
	m.SetHeader("Subject", rendered.Subject)
	m.SetBody("text/plain", rendered.Plain)
	m.AddAlternative("text/html", rendered.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Warnw("smtp delivery failed",
			"kind", kind,
			"to", utils.MaskEmail(address),
			"error", err,
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Debugw("email sent", "kind", kind, "to", utils.MaskEmail(address))
	return nil
}
