package waitlist

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/mymessage/storefront-gateway/pkg/config"
	pkgerrors "github.com/mymessage/storefront-gateway/pkg/errors"
	"github.com/mymessage/storefront-gateway/pkg/logger"
)

const notifySubject = "New Collection Subscriber"

// Sender delivers one email. Satisfied by the SendGrid-backed notifier and
// by test stubs.
type Sender interface {
	Send(ctx context.Context, to, subject, html string) error
}

// Service records collection-launch waitlist signups by notifying the shop
// owner.
type Service interface {
	Subscribe(ctx context.Context, email string) error
}

type service struct {
	sender      Sender
	notifyEmail string
	logg        *logger.Logger
	now         func() time.Time
}

// NewService builds the waitlist service.
func NewService(sender Sender, notifyEmail string, logg *logger.Logger) (Service, error) {
	if sender == nil {
		return nil, fmt.Errorf("email sender required")
	}
	if notifyEmail == "" {
		return nil, fmt.Errorf("notify email required")
	}
	return &service{
		sender:      sender,
		notifyEmail: notifyEmail,
		logg:        logg,
		now:         time.Now,
	}, nil
}

// Subscribe sends the owner a notification about the new subscriber.
func (s *service) Subscribe(ctx context.Context, email string) error {
	if email == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	html := fmt.Sprintf(
		`<h2>New Collection Subscription</h2>`+
			`<p><strong>Subscriber Email:</strong> %s</p>`+
			`<p><strong>Subscription Date:</strong> %s</p>`,
		email, s.now().Format(time.RFC1123),
	)

	if err := s.sender.Send(ctx, s.notifyEmail, notifySubject, html); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send waitlist notification")
	}

	if s.logg != nil {
		s.logg.Info(ctx, "waitlist.subscribed")
	}
	return nil
}

// SendgridSender delivers emails through the SendGrid API.
type SendgridSender struct {
	apiKey string
	from   string
}

// NewSendgridSender validates the SendGrid credentials up front.
func NewSendgridSender(cfg config.SendgridConfig) (*SendgridSender, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("sendgrid api key required")
	}
	if cfg.DefaultFrom == "" {
		return nil, fmt.Errorf("sendgrid from address required")
	}
	return &SendgridSender{apiKey: cfg.APIKey, from: cfg.DefaultFrom}, nil
}

// Send delivers one HTML email.
func (s *SendgridSender) Send(_ context.Context, to, subject, html string) error {
	message := mail.NewSingleEmail(
		mail.NewEmail("MyMessage Clothing", s.from),
		subject,
		mail.NewEmail("", to),
		subject,
		html,
	)

	resp, err := sendgrid.NewSendClient(s.apiKey).Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d body=%s", resp.StatusCode, resp.Body)
	}
	return nil
}
