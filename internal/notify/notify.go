// Package notify emails the team after a form submission has been persisted.
//
// Delivery is best effort: a Notifier never returns an error to its caller.
// Every attempt ends in one of three outcomes that the caller may surface as an
// advisory warning.
package notify

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"inquirydesk/internal/config"
	"inquirydesk/internal/domain"
	"inquirydesk/internal/logger"
	"inquirydesk/internal/metrics"
	apperrors "inquirydesk/pkg/errors"
)

const defaultTimeout = 10 * time.Second

// Outcome is the terminal state of one notification
type Outcome string

const (
	OutcomeSkipped Outcome = "skipped"
	OutcomeSent    Outcome = "sent"
	OutcomeFailed  Outcome = "failed"
)

// Result reports what happened to one notification
type Result struct {
	Outcome Outcome
	Err     error
}

// Warning is the advisory text for a submission whose notification failed
func (r Result) Warning() string {
	if r.Outcome != OutcomeFailed {
		return ""
	}
	return "Your submission was received, but we could not notify our team by email. We will still review it."
}

// Notifier renders and delivers submission notifications
type Notifier struct {
	sender  Sender
	from    Address
	to      Address
	timeout time.Duration
	log     *zap.Logger
}

// Option configures a Notifier
type Option func(*Notifier)

// WithSender replaces the sender chosen from configuration
func WithSender(s Sender) Option {
	return func(n *Notifier) { n.sender = s }
}

// New builds a Notifier from cfg. Without an API key no sender is configured
// and every notification is skipped.
func New(cfg config.EmailConfig, log *zap.Logger, opts ...Option) *Notifier {
	n := &Notifier{
		from:    Address{Name: cfg.FromName, Email: cfg.FromEmail},
		to:      Address{Email: cfg.NotifyTo},
		timeout: cfg.Timeout,
		log:     logger.OrNop(log).Named("notify"),
	}
	if cfg.Enabled() {
		n.sender = NewSendGridSender(cfg.APIKey, cfg.BaseURL)
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.timeout <= 0 {
		n.timeout = defaultTimeout
	}
	return n
}

// Enabled reports whether delivery will be attempted
func (n *Notifier) Enabled() bool {
	return n.sender != nil
}

// NotifyGeneral announces a persisted contact inquiry
func (n *Notifier) NotifyGeneral(ctx context.Context, in *domain.GeneralInquiry) Result {
	c, err := renderGeneral(in)
	return n.deliver(ctx, domain.KindGeneral, &in.Inquiry, c, err)
}

// NotifyInvestor announces a persisted investor inquiry
func (n *Notifier) NotifyInvestor(ctx context.Context, in *domain.InvestorInquiry) Result {
	c, err := renderInvestor(in)
	return n.deliver(ctx, domain.KindInvestor, &in.Inquiry, c, err)
}

func (n *Notifier) deliver(ctx context.Context, kind domain.InquiryKind, in *domain.Inquiry, c content, renderErr error) Result {
	log := n.log.With(zap.String("kind", string(kind)), zap.String("inquiry_id", in.ID))

	if n.sender == nil {
		log.Info("email notification skipped: SENDGRID_API_KEY not set")
		return n.finish(kind, Result{Outcome: OutcomeSkipped})
	}
	if renderErr != nil {
		log.Error("failed to render notification", zap.Error(renderErr))
		return n.finish(kind, Result{
			Outcome: OutcomeFailed,
			Err:     apperrors.Wrap(apperrors.ErrCodeNotification, "render notification", renderErr),
		})
	}

	// The submission is already stored; a client hanging up must not cancel its notification.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	log.Debug("sending notification email", zap.String("to", n.to.Email))
	err := n.sender.Send(ctx, Message{
		From:    n.from,
		To:      n.to,
		ReplyTo: Address{Name: in.Name, Email: in.Email},
		Subject: c.Subject,
		Text:    c.Text,
		HTML:    c.HTML,
	})
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		var de *DeliveryError
		if errors.As(err, &de) {
			fields = append(fields,
				zap.Int("status_code", de.StatusCode),
				zap.String("category", de.Category),
				zap.String("field", de.Field()),
			)
			if len(de.Errors) > 0 {
				fields = append(fields, zap.String("message", de.Errors[0].Message))
			}
		}
		log.Error("email notification failed", fields...)
		return n.finish(kind, Result{
			Outcome: OutcomeFailed,
			Err:     apperrors.Wrap(apperrors.ErrCodeNotification, "deliver notification", err),
		})
	}

	log.Info("email notification sent")
	return n.finish(kind, Result{Outcome: OutcomeSent})
}

func (n *Notifier) finish(kind domain.InquiryKind, r Result) Result {
	metrics.RecordNotification(string(kind), string(r.Outcome))
	return r
}
