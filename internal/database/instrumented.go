package database

import (
	"context"
	"time"

	"inquirydesk/internal/domain"
	"inquirydesk/internal/metrics"
	"inquirydesk/internal/storage"
	apperrors "inquirydesk/pkg/errors"
)

// instrumented records the latency and outcome of every store call
type instrumented struct {
	next storage.Store
}

// Instrument wraps s so each operation is reported to the storage metrics.
func Instrument(s storage.Store) storage.Store {
	if _, ok := s.(*instrumented); ok {
		return s
	}
	return &instrumented{next: s}
}

func (i *instrumented) observe(op string, start time.Time, err error) {
	// An absent account is an answer, not a failure.
	if apperrors.IsNotFound(err) {
		err = nil
	}
	metrics.RecordDBQuery(i.next.Backend(), op, time.Since(start), err)
}

func (i *instrumented) Backend() string { return i.next.Backend() }

func (i *instrumented) Ping(ctx context.Context) error {
	start := time.Now()
	err := i.next.Ping(ctx)
	i.observe("ping", start, err)
	return err
}

func (i *instrumented) Close(ctx context.Context) error {
	return i.next.Close(ctx)
}

func (i *instrumented) GetAccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	start := time.Now()
	acc, err := i.next.GetAccountByID(ctx, id)
	i.observe("get_account_by_id", start, err)
	return acc, err
}

func (i *instrumented) GetAccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	start := time.Now()
	acc, err := i.next.GetAccountByUsername(ctx, username)
	i.observe("get_account_by_username", start, err)
	return acc, err
}

func (i *instrumented) CreateAccount(ctx context.Context, draft domain.AccountDraft) (*domain.Account, error) {
	start := time.Now()
	acc, err := i.next.CreateAccount(ctx, draft)
	i.observe("create_account", start, err)
	return acc, err
}

func (i *instrumented) SaveGeneralInquiry(ctx context.Context, in domain.GeneralInquiry) (*domain.GeneralInquiry, error) {
	start := time.Now()
	out, err := i.next.SaveGeneralInquiry(ctx, in)
	i.observe("save_general_inquiry", start, err)
	return out, err
}

func (i *instrumented) ListGeneralInquiries(ctx context.Context) ([]domain.GeneralInquiry, error) {
	start := time.Now()
	out, err := i.next.ListGeneralInquiries(ctx)
	i.observe("list_general_inquiries", start, err)
	return out, err
}

func (i *instrumented) SaveInvestorInquiry(ctx context.Context, in domain.InvestorInquiry) (*domain.InvestorInquiry, error) {
	start := time.Now()
	out, err := i.next.SaveInvestorInquiry(ctx, in)
	i.observe("save_investor_inquiry", start, err)
	return out, err
}

func (i *instrumented) ListInvestorInquiries(ctx context.Context) ([]domain.InvestorInquiry, error) {
	start := time.Now()
	out, err := i.next.ListInvestorInquiries(ctx)
	i.observe("list_investor_inquiries", start, err)
	return out, err
}
