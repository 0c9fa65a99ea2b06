// Package memory is the process-lifetime storage backend. Nothing survives a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"inquirydesk/internal/domain"
	"inquirydesk/internal/logger"
	"inquirydesk/internal/storage"
	apperrors "inquirydesk/pkg/errors"
)

var _ storage.Store = (*Store)(nil)

// Store keeps accounts and inquiries in memory. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	nextID   int64
	accounts []domain.Account
	general  []domain.GeneralInquiry
	investor []domain.InvestorInquiry

	now func() time.Time
	log *zap.Logger
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used to stamp inquiries and accounts
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

// New creates an empty store whose first account id is 1.
func New(opts ...Option) *Store {
	s := &Store{
		nextID: 1,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.OrNop(s.log).Named("storage.memory")
	return s
}

// Backend implements storage.Store
func (s *Store) Backend() string { return storage.BackendMemory }

// Ping implements storage.Store
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

// Close implements storage.Store
func (s *Store) Close(context.Context) error { return nil }

// GetAccountByID implements storage.AccountStore
func (s *Store) GetAccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, storage.PersistenceFailure("get account", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			acc := s.accounts[i].Clone()
			return &acc, nil
		}
	}
	return nil, storage.AccountNotFound()
}

// GetAccountByUsername implements storage.AccountStore
func (s *Store) GetAccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, storage.PersistenceFailure("get account", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.accounts {
		if s.accounts[i].Username == username {
			acc := s.accounts[i].Clone()
			return &acc, nil
		}
	}
	return nil, storage.AccountNotFound()
}

// CreateAccount implements storage.AccountStore
func (s *Store) CreateAccount(ctx context.Context, draft domain.AccountDraft) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, storage.PersistenceFailure("create account", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.accounts {
		if s.accounts[i].Username == draft.Username {
			return nil, apperrors.New(apperrors.ErrCodeConflict, "username already registered")
		}
		if s.accounts[i].Email == draft.Email {
			return nil, apperrors.New(apperrors.ErrCodeConflict, "email already registered")
		}
	}

	acc := domain.Account{
		ID:          s.nextID,
		Username:    draft.Username,
		Email:       draft.Email,
		SecretHash:  draft.SecretHash,
		DisplayName: draft.DisplayName,
		CreatedAt:   s.now().UTC(),
	}
	s.accounts = append(s.accounts, acc.Clone())
	s.nextID++

	s.log.Debug("account created", zap.Int64("id", acc.ID), zap.String("username", acc.Username))
	return &acc, nil
}

// SaveGeneralInquiry implements storage.InquiryStore
func (s *Store) SaveGeneralInquiry(ctx context.Context, in domain.GeneralInquiry) (*domain.GeneralInquiry, error) {
	if err := ctx.Err(); err != nil {
		return nil, storage.PersistenceFailure("save general inquiry", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	in.Stamp(uuid.NewString(), s.now().UTC())
	s.general = append(s.general, in.Clone())
	out := in.Clone()
	return &out, nil
}

// ListGeneralInquiries implements storage.InquiryStore
func (s *Store) ListGeneralInquiries(ctx context.Context) ([]domain.GeneralInquiry, error) {
	if err := ctx.Err(); err != nil {
		return nil, storage.PersistenceFailure("list general inquiries", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := storage.NewestFirst(s.general, func(i domain.GeneralInquiry) time.Time { return i.CreatedAt })
	for i := range out {
		out[i] = out[i].Clone()
	}
	return out, nil
}

// SaveInvestorInquiry implements storage.InquiryStore
func (s *Store) SaveInvestorInquiry(ctx context.Context, in domain.InvestorInquiry) (*domain.InvestorInquiry, error) {
	if err := ctx.Err(); err != nil {
		return nil, storage.PersistenceFailure("save investor inquiry", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	in.Stamp(uuid.NewString(), s.now().UTC())
	s.investor = append(s.investor, in.Clone())
	out := in.Clone()
	return &out, nil
}

// ListInvestorInquiries implements storage.InquiryStore
func (s *Store) ListInvestorInquiries(ctx context.Context) ([]domain.InvestorInquiry, error) {
	if err := ctx.Err(); err != nil {
		return nil, storage.PersistenceFailure("list investor inquiries", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := storage.NewestFirst(s.investor, func(i domain.InvestorInquiry) time.Time { return i.CreatedAt })
	for i := range out {
		out[i] = out[i].Clone()
	}
	return out, nil
}
