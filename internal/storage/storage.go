// Package storage defines the persistence contract shared by every backend.
package storage

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks inquirydesk/internal/storage Store

import (
	"context"

	"inquirydesk/internal/domain"
	apperrors "inquirydesk/pkg/errors"
)

// Backend names reported by Store.Backend.
const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
	BackendSQL    = "sql"
)

// AccountStore persists login identities.
type AccountStore interface {
	// GetAccountByID returns a NOT_FOUND error when no account has the id.
	GetAccountByID(ctx context.Context, id int64) (*domain.Account, error)
	// GetAccountByUsername returns a NOT_FOUND error when no account has the username.
	GetAccountByUsername(ctx context.Context, username string) (*domain.Account, error)
	// CreateAccount assigns the next identity. Duplicate usernames or emails are rejected with CONFLICT.
	CreateAccount(ctx context.Context, draft domain.AccountDraft) (*domain.Account, error)
}

// InquiryStore persists form submissions.
//
// Save methods stamp ID, CreatedAt and UpdatedAt and return the stored form only
// after the backend has recorded it. List methods return every saved inquiry,
// newest first.
type InquiryStore interface {
	SaveGeneralInquiry(ctx context.Context, in domain.GeneralInquiry) (*domain.GeneralInquiry, error)
	ListGeneralInquiries(ctx context.Context) ([]domain.GeneralInquiry, error)
	SaveInvestorInquiry(ctx context.Context, in domain.InvestorInquiry) (*domain.InvestorInquiry, error)
	ListInvestorInquiries(ctx context.Context) ([]domain.InvestorInquiry, error)
}

// Store is the single contract both the transient and durable backends satisfy.
type Store interface {
	AccountStore
	InquiryStore

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
	// Close releases backend resources.
	Close(ctx context.Context) error
	// Backend names the active implementation.
	Backend() string
}

// AccountNotFound is the explicit "absent" result of the account lookups.
func AccountNotFound() error {
	return apperrors.New(apperrors.ErrCodeNotFound, "account not found")
}

// PersistenceFailure marks err as "not persisted".
func PersistenceFailure(op string, err error) error {
	return apperrors.Wrap(apperrors.ErrCodePersistence, op, err)
}
