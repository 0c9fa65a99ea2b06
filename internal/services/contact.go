package services

import (
	"context"

	"go.uber.org/zap"

	"inquirydesk/internal/domain"
	"inquirydesk/internal/logger"
	"inquirydesk/internal/metrics"
	"inquirydesk/internal/notify"
	"inquirydesk/internal/storage"
)

// ContactSubmitPayload is the contact form body
type ContactSubmitPayload struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Subject *string `json:"subject,omitempty"`
	Message string  `json:"message"`
}

// GeneralNotifier announces persisted contact inquiries
type GeneralNotifier interface {
	NotifyGeneral(ctx context.Context, in *domain.GeneralInquiry) notify.Result
}

// ContactService implements the contact form
type ContactService struct {
	store    storage.InquiryStore
	notifier GeneralNotifier
	log      *zap.Logger
}

// NewContactService creates a new contact service
func NewContactService(store storage.InquiryStore, notifier GeneralNotifier, log *zap.Logger) *ContactService {
	return &ContactService{
		store:    store,
		notifier: notifier,
		log:      logger.OrNop(log).Named("contact"),
	}
}

// Submit validates and stores a contact inquiry, then notifies the team.
// A notification failure only adds a warning; a storage failure is returned
// and nobody is notified.
func (s *ContactService) Submit(ctx context.Context, p ContactSubmitPayload) (*SubmitResult, error) {
	in := domain.GeneralInquiry{Inquiry: domain.Inquiry{
		Name:    p.Name,
		Email:   p.Email,
		Phone:   p.Phone,
		Subject: p.Subject,
		Message: p.Message,
	}}
	normalizeInquiry(&in.Inquiry)

	if err := validateInquiry(&in.Inquiry); err != nil {
		s.log.Info("submission rejected", zap.Error(err))
		return nil, invalidSubmission(err)
	}

	saved, err := s.store.SaveGeneralInquiry(ctx, in)
	if err != nil {
		s.log.Error("failed to save contact inquiry", zap.Error(err))
		return nil, notPersisted("save contact inquiry", err)
	}
	metrics.RecordInquiry(string(domain.KindGeneral))
	s.log.Info("contact inquiry saved", zap.String("id", saved.ID))

	res := s.notifier.NotifyGeneral(ctx, saved)
	return &SubmitResult{
		ID:           saved.ID,
		Message:      "Thank you for contacting us! We'll get back to you soon.",
		Warning:      res.Warning(),
		Notification: res.Outcome,
	}, nil
}

// List returns every contact inquiry, newest first
func (s *ContactService) List(ctx context.Context) ([]domain.GeneralInquiry, error) {
	inquiries, err := s.store.ListGeneralInquiries(ctx)
	if err != nil {
		s.log.Error("failed to list contact inquiries", zap.Error(err))
		return nil, notPersisted("list contact inquiries", err)
	}
	s.log.Debug("listed contact inquiries", zap.Int("count", len(inquiries)))
	return inquiries, nil
}
