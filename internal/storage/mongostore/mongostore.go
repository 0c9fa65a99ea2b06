// Package mongostore is the document storage backend on MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"inquirydesk/internal/config"
	"inquirydesk/internal/domain"
	"inquirydesk/internal/logger"
	"inquirydesk/internal/storage"
	apperrors "inquirydesk/pkg/errors"
)

const (
	connectTimeout = 10 * time.Second
	pingTimeout    = 5 * time.Second
)

var _ storage.Store = (*Store)(nil)

// newestFirst is the list order; _id breaks ties between equal timestamps.
var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

// Store persists accounts and inquiries in MongoDB collections.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	now    func() time.Time
	log    *zap.Logger

	// mu serializes account creation so the counter and the insert move together
	mu     sync.Mutex
	nextID int64
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used to stamp documents
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

// Open connects to cfg.URL, ensures indexes and recovers the account counter.
// The store is not returned unless all three succeed.
func Open(ctx context.Context, cfg config.StorageConfig, opts ...Option) (*Store, error) {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.OrNop(s.log).Named("storage.mongo")

	s.log.Info("connecting to MongoDB", zap.String("scheme", cfg.Scheme()), zap.String("database", cfg.MongoDatabase))
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URL).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(connectTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	s.client = client
	s.db = client.Database(cfg.MongoDatabase)

	if err := s.init(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *Store) init(ctx context.Context) error {
	if err := s.Ping(ctx); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}
	if err := s.ensureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	maxID, err := s.storedMaxID(ctx)
	if err != nil {
		return fmt.Errorf("failed to recover account identity counter: %w", err)
	}
	s.nextID = maxID + 1

	s.log.Info("database ready", zap.Int64("next_account_id", s.nextID))
	return nil
}

// storedMaxID returns the highest account _id, or 0 for an empty collection
func (s *Store) storedMaxID(ctx context.Context) (int64, error) {
	var last accountDoc
	err := s.db.Collection(accountsCollection).
		FindOne(ctx, bson.D{}, options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})).
		Decode(&last)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return last.ID, nil
}

// reseed moves the counter past every stored id. Callers hold mu.
func (s *Store) reseed(ctx context.Context) error {
	maxID, err := s.storedMaxID(ctx)
	if err != nil {
		return err
	}
	s.nextID = max(s.nextID, maxID+1)
	s.log.Warn("account counter reseeded", zap.Int64("next_account_id", s.nextID))
	return nil
}

func (s *Store) idTaken(ctx context.Context, id int64) bool {
	n, err := s.db.Collection(accountsCollection).CountDocuments(ctx, bson.D{{Key: "_id", Value: id}})
	return err == nil && n > 0
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(accountsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return err
	}
	for _, name := range []string{contactCollection, investmentCollection} {
		if _, err := s.db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{Keys: newestFirst}); err != nil {
			return err
		}
	}
	return nil
}

// stampTime is the store clock at the precision BSON dates keep
func (s *Store) stampTime() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// Backend implements storage.Store
func (s *Store) Backend() string { return storage.BackendMongo }

// Ping implements storage.Store
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return s.client.Ping(ctx, readpref.Primary())
}

// Close implements storage.Store
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// GetAccountByID implements storage.AccountStore
func (s *Store) GetAccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	return s.findAccount(ctx, bson.D{{Key: "_id", Value: id}})
}

// GetAccountByUsername implements storage.AccountStore
func (s *Store) GetAccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return s.findAccount(ctx, bson.D{{Key: "username", Value: username}})
}

func (s *Store) findAccount(ctx context.Context, filter bson.D) (*domain.Account, error) {
	var doc accountDoc
	if err := s.db.Collection(accountsCollection).FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.AccountNotFound()
		}
		return nil, storage.PersistenceFailure("get account", err)
	}
	return doc.toDomain(), nil
}

// CreateAccount implements storage.AccountStore
func (s *Store) CreateAccount(ctx context.Context, draft domain.AccountDraft) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := accountDoc{
		ID:          s.nextID,
		Username:    draft.Username,
		Email:       draft.Email,
		SecretHash:  draft.SecretHash,
		DisplayName: draft.DisplayName,
		CreatedAt:   s.stampTime(),
	}
	accounts := s.db.Collection(accountsCollection)
	_, err := accounts.InsertOne(ctx, doc)
	if err != nil && s.idTaken(ctx, doc.ID) {
		// The id was written outside this store, or by an attempt whose reply was lost
		if reseedErr := s.reseed(ctx); reseedErr == nil {
			doc.ID = s.nextID
			_, err = accounts.InsertOne(ctx, doc)
		}
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) && !s.idTaken(ctx, doc.ID) {
			return nil, apperrors.Wrap(apperrors.ErrCodeConflict, "username or email already registered", err)
		}
		// An attempted id is never handed out again, even when the attempt failed
		s.nextID = max(s.nextID, doc.ID+1)
		return nil, storage.PersistenceFailure("create account", err)
	}
	s.nextID = doc.ID + 1

	s.log.Debug("account created", zap.Int64("id", doc.ID), zap.String("username", doc.Username))
	return doc.toDomain(), nil
}

func (s *Store) insertInquiry(ctx context.Context, collection string, doc *inquiryDoc) error {
	now := s.stampTime()
	doc.ID = uuid.NewString()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	_, err := s.db.Collection(collection).InsertOne(ctx, doc)
	return err
}

func (s *Store) findInquiries(ctx context.Context, collection string) ([]inquiryDoc, error) {
	cur, err := s.db.Collection(collection).Find(ctx, bson.D{}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, err
	}
	docs := []inquiryDoc{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// SaveGeneralInquiry implements storage.InquiryStore
func (s *Store) SaveGeneralInquiry(ctx context.Context, in domain.GeneralInquiry) (*domain.GeneralInquiry, error) {
	doc := newInquiryDoc(in.Inquiry)
	if err := s.insertInquiry(ctx, contactCollection, &doc); err != nil {
		return nil, storage.PersistenceFailure("save general inquiry", err)
	}
	return &domain.GeneralInquiry{Inquiry: doc.inquiry()}, nil
}

// ListGeneralInquiries implements storage.InquiryStore
func (s *Store) ListGeneralInquiries(ctx context.Context) ([]domain.GeneralInquiry, error) {
	docs, err := s.findInquiries(ctx, contactCollection)
	if err != nil {
		return nil, storage.PersistenceFailure("list general inquiries", err)
	}
	out := make([]domain.GeneralInquiry, 0, len(docs))
	for i := range docs {
		out = append(out, domain.GeneralInquiry{Inquiry: docs[i].inquiry()})
	}
	return out, nil
}

// SaveInvestorInquiry implements storage.InquiryStore
func (s *Store) SaveInvestorInquiry(ctx context.Context, in domain.InvestorInquiry) (*domain.InvestorInquiry, error) {
	doc := newInquiryDoc(in.Inquiry)
	doc.Company = in.Company
	doc.InvestmentAmount = in.InvestmentAmount
	if err := s.insertInquiry(ctx, investmentCollection, &doc); err != nil {
		return nil, storage.PersistenceFailure("save investor inquiry", err)
	}
	return investorFromDoc(&doc), nil
}

// ListInvestorInquiries implements storage.InquiryStore
func (s *Store) ListInvestorInquiries(ctx context.Context) ([]domain.InvestorInquiry, error) {
	docs, err := s.findInquiries(ctx, investmentCollection)
	if err != nil {
		return nil, storage.PersistenceFailure("list investor inquiries", err)
	}
	out := make([]domain.InvestorInquiry, 0, len(docs))
	for i := range docs {
		out = append(out, *investorFromDoc(&docs[i]))
	}
	return out, nil
}

func investorFromDoc(d *inquiryDoc) *domain.InvestorInquiry {
	return &domain.InvestorInquiry{
		Inquiry:          d.inquiry(),
		Company:          d.Company,
		InvestmentAmount: d.InvestmentAmount,
	}
}
