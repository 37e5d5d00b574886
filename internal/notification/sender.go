package notification

import (
	"context"
	"fmt"

	"github.com/revollution/storefront/pkg/circuitbreaker"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
	"gopkg.in/gomail.v2"
)

type Sender interface {
	Send(ctx context.Context, email *Email) error
}

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, user, password, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

func (s *SMTPSender) Send(ctx context.Context, email *Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email.To)
	m.SetHeader("Subject", email.Subject)
	m.SetBody("text/html", email.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", email.To, err)
	}
	return nil
}

// LogSender only logs outgoing mail. Used when no SMTP relay is configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, email *Email) error {
	log.Info().Str("to", email.To).Str("subject", email.Subject).Msg("email delivery disabled, dropping message")
	return nil
}

// BreakerSender stops dialing the relay after consecutive failures and
// fails fast until the breaker half-opens again.
type BreakerSender struct {
	next Sender
	cb   *gobreaker.CircuitBreaker[struct{}]
}

func NewBreakerSender(next Sender) *BreakerSender {
	return &BreakerSender{
		next: next,
		cb:   circuitbreaker.New[struct{}](circuitbreaker.DefaultConfig("smtp")),
	}
}

func (b *BreakerSender) Send(ctx context.Context, email *Email) error {
	_, err := b.cb.Execute(func() (struct{}, error) {
		return struct{}{}, b.next.Send(ctx, email)
	})
	return err
}

func (b *BreakerSender) State() gobreaker.State {
	return b.cb.State()
}
