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

// InvestorSubmitPayload is the investor form body
type InvestorSubmitPayload struct {
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	Subject          *string  `json:"subject,omitempty"`
	Message          string   `json:"message"`
	Company          *string  `json:"company,omitempty"`
	InvestmentAmount *float64 `json:"investment_amount,omitempty"`
}

// InvestorNotifier announces persisted investor inquiries
type InvestorNotifier interface {
	NotifyInvestor(ctx context.Context, in *domain.InvestorInquiry) notify.Result
}

// InvestmentService implements the investor form
type InvestmentService struct {
	store    storage.InquiryStore
	notifier InvestorNotifier
	log      *zap.Logger
}

// NewInvestmentService creates a new investment service
func NewInvestmentService(store storage.InquiryStore, notifier InvestorNotifier, log *zap.Logger) *InvestmentService {
	return &InvestmentService{
		store:    store,
		notifier: notifier,
		log:      logger.OrNop(log).Named("investment"),
	}
}

// Submit validates and stores an investor inquiry, then notifies the team
func (s *InvestmentService) Submit(ctx context.Context, p InvestorSubmitPayload) (*SubmitResult, error) {
	in := domain.InvestorInquiry{
		Inquiry: domain.Inquiry{
			Name:    p.Name,
			Email:   p.Email,
			Phone:   p.Phone,
			Subject: p.Subject,
			Message: p.Message,
		},
		Company:          optional(p.Company),
		InvestmentAmount: p.InvestmentAmount,
	}
	normalizeInquiry(&in.Inquiry)

	if err := validateInvestor(&in); err != nil {
		s.log.Info("submission rejected", zap.Error(err))
		return nil, invalidSubmission(err)
	}

	saved, err := s.store.SaveInvestorInquiry(ctx, in)
	if err != nil {
		s.log.Error("failed to save investor inquiry", zap.Error(err))
		return nil, notPersisted("save investor inquiry", err)
	}
	metrics.RecordInquiry(string(domain.KindInvestor))
	s.log.Info("investor inquiry saved", zap.String("id", saved.ID))

	res := s.notifier.NotifyInvestor(ctx, saved)
	return &SubmitResult{
		ID:           saved.ID,
		Message:      "Thank you for your interest! Our investor relations team will be in touch.",
		Warning:      res.Warning(),
		Notification: res.Outcome,
	}, nil
}

// List returns every investor inquiry, newest first
func (s *InvestmentService) List(ctx context.Context) ([]domain.InvestorInquiry, error) {
	inquiries, err := s.store.ListInvestorInquiries(ctx)
	if err != nil {
		s.log.Error("failed to list investor inquiries", zap.Error(err))
		return nil, notPersisted("list investor inquiries", err)
	}
	s.log.Debug("listed investor inquiries", zap.Int("count", len(inquiries)))
	return inquiries, nil
}
