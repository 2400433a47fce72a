package service

import (
	"context"
	"fmt"

	"github.com/alimikegami/perfume-store/config"
	"github.com/alimikegami/perfume-store/internal/dto"
	"github.com/alimikegami/perfume-store/internal/infrastructure/metrics"
	"github.com/alimikegami/perfume-store/pkg/errs"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

type MailService interface {
	SendContactMessage(ctx context.Context, req dto.ContactRequest) (err error)
}

// MailSender is satisfied by *gomail.Dialer.
type MailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type MailServiceImpl struct {
	sender   MailSender
	config   config.SMTPConfig
	validate *validator.Validate
}

func CreateMailService(sender MailSender, config config.SMTPConfig, validate *validator.Validate) MailService {
	return &MailServiceImpl{sender: sender, config: config, validate: validate}
}

// SendContactMessage makes exactly one delivery attempt.
func (s *MailServiceImpl) SendContactMessage(ctx context.Context, req dto.ContactRequest) (err error) {
	if err = s.validate.Struct(req); err != nil {
		metrics.MailMessagesTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		return fmt.Errorf("%w: %w", errs.ErrValidation, err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.From)
	m.SetHeader("To", s.config.To)
	m.SetAddressHeader("Reply-To", req.Email, req.Name)
	m.SetHeader("Subject", req.Subject)
	m.SetBody("text/plain", fmt.Sprintf("From: %s <%s>\n\n%s", req.Name, req.Email, req.Message))

	if err = s.sender.DialAndSend(m); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "MailService.SendContactMessage").Msg("")
		metrics.MailMessagesTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return fmt.Errorf("%w: %v", errs.ErrMailDelivery, err)
	}

	metrics.MailMessagesTotal.WithLabelValues(metrics.ResultSuccess).Inc()

	return nil
}
