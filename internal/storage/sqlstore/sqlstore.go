// Package sqlstore is the relational storage backend, on PostgreSQL or SQLite through gorm.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"inquirydesk/internal/config"
	"inquirydesk/internal/domain"
	"inquirydesk/internal/logger"
	"inquirydesk/internal/metrics"
	"inquirydesk/internal/storage"
	apperrors "inquirydesk/pkg/errors"
)

const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
	connMaxIdleTime = 10 * time.Minute
	pingTimeout     = 5 * time.Second
)

var _ storage.Store = (*Store)(nil)

// Store persists accounts and inquiries in a SQL database.
type Store struct {
	db  *gorm.DB
	now func() time.Time
	log *zap.Logger

	// mu serializes account creation so the counter and the insert move together
	mu     sync.Mutex
	nextID int64

	migrate    bool
	sqlitePath string
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used to stamp rows
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

// SkipMigration leaves the schema alone, for databases migrated out of band
func SkipMigration() Option {
	return func(s *Store) { s.migrate = false }
}

// Open connects to the database named by cfg.URL and returns a ready store.
func Open(ctx context.Context, cfg config.StorageConfig, opts ...Option) (*Store, error) {
	s := newStore(opts)
	log := s.log

	var dialector gorm.Dialector
	switch {
	case cfg.IsPostgres():
		log.Info("connecting to PostgreSQL database")
		dialector = postgres.Open(cfg.URL)
	case cfg.IsSQLite():
		dbPath := cfg.GetSQLitePath()
		s.sqlitePath = dbPath
		log.Info("connecting to SQLite database", zap.String("path", dbPath))
		sqlDB, err := sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database: %w", err)
		}
		dialector = sqlite.Dialector{
			DriverName: "sqlite",
			DSN:        dbPath,
			Conn:       sqlDB,
		}
	default:
		return nil, fmt.Errorf("unsupported SQL database scheme %q", cfg.Scheme())
	}

	// Never log SQL: queries carry personal data from the forms.
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if cfg.IsPostgres() {
		sqlDB.SetMaxOpenConns(maxOpenConns)
		sqlDB.SetMaxIdleConns(maxIdleConns)
		sqlDB.SetConnMaxLifetime(connMaxLifetime)
		sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
		log.Info("connection pool configured", zap.Int("max_open", maxOpenConns), zap.Int("max_idle", maxIdleConns))
	} else {
		// SQLite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	}

	if err := s.init(ctx, db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open gorm connection. It migrates the schema unless told not to
// and recovers the account counter; if either step fails the store is not built.
func New(ctx context.Context, db *gorm.DB, opts ...Option) (*Store, error) {
	s := newStore(opts)
	if err := s.init(ctx, db); err != nil {
		return nil, err
	}
	return s, nil
}

func newStore(opts []Option) *Store {
	s := &Store{
		now:     time.Now,
		migrate: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.OrNop(s.log).Named("storage.sql")
	return s
}

func (s *Store) init(ctx context.Context, db *gorm.DB) error {
	s.db = db.Session(&gorm.Session{
		NewDB: true,
		NowFunc: func() time.Time {
			return s.now().UTC()
		},
	})

	if err := s.Ping(ctx); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}

	if s.migrate {
		s.log.Info("running database migrations")
		if err := s.db.WithContext(ctx).AutoMigrate(&accountRecord{}, &contactRecord{}, &investmentRecord{}); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	maxID, err := s.storedMaxID(ctx)
	if err != nil {
		return fmt.Errorf("failed to recover account identity counter: %w", err)
	}
	s.nextID = maxID + 1

	s.log.Info("database ready", zap.Int64("next_account_id", s.nextID))
	return nil
}

// Backend implements storage.Store
func (s *Store) Backend() string { return storage.BackendSQL }

// Ping implements storage.Store and refreshes the connection pool gauges
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	stats := sqlDB.Stats()
	metrics.UpdateDBConnections(stats.InUse, stats.Idle)
	return nil
}

// Close implements storage.Store
func (s *Store) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetAccountByID implements storage.AccountStore
func (s *Store) GetAccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	return s.findAccount(ctx, "id = ?", id)
}

// GetAccountByUsername implements storage.AccountStore
func (s *Store) GetAccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return s.findAccount(ctx, "username = ?", username)
}

func (s *Store) findAccount(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var rec accountRecord
	if err := s.db.WithContext(ctx).Where(query, arg).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.AccountNotFound()
		}
		return nil, storage.PersistenceFailure("get account", err)
	}
	return rec.toDomain(), nil
}

// CreateAccount implements storage.AccountStore
func (s *Store) CreateAccount(ctx context.Context, draft domain.AccountDraft) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing []accountRecord
	if err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", draft.Username, draft.Email).
		Limit(1).
		Find(&existing).Error; err != nil {
		return nil, storage.PersistenceFailure("check account uniqueness", err)
	}
	if len(existing) > 0 {
		if existing[0].Username == draft.Username {
			return nil, apperrors.New(apperrors.ErrCodeConflict, "username already registered")
		}
		return nil, apperrors.New(apperrors.ErrCodeConflict, "email already registered")
	}

	rec := accountRecord{
		ID:          s.nextID,
		Username:    draft.Username,
		Email:       draft.Email,
		SecretHash:  draft.SecretHash,
		DisplayName: draft.DisplayName,
	}
	err := s.db.WithContext(ctx).Create(&rec).Error
	if err != nil && s.idTaken(ctx, rec.ID) {
		// The id was written outside this store, or by an attempt whose reply was lost
		if reseedErr := s.reseed(ctx); reseedErr == nil {
			rec.ID = s.nextID
			err = s.db.WithContext(ctx).Create(&rec).Error
		}
	}
	// An attempted id is never handed out again, even when the attempt failed
	s.nextID = max(s.nextID, rec.ID+1)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Wrap(apperrors.ErrCodeConflict, "account already registered", err)
		}
		return nil, storage.PersistenceFailure("create account", err)
	}

	s.log.Debug("account created", zap.Int64("id", rec.ID), zap.String("username", rec.Username))
	return rec.toDomain(), nil
}

func (s *Store) storedMaxID(ctx context.Context) (int64, error) {
	var maxID int64
	err := s.db.WithContext(ctx).Model(&accountRecord{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error
	return maxID, err
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
	var n int64
	if err := s.db.WithContext(ctx).Model(&accountRecord{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false
	}
	return n > 0
}

// SaveGeneralInquiry implements storage.InquiryStore
func (s *Store) SaveGeneralInquiry(ctx context.Context, in domain.GeneralInquiry) (*domain.GeneralInquiry, error) {
	rec := contactRecord{InquiryColumns: newInquiryColumns(in.Inquiry)}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, storage.PersistenceFailure("save general inquiry", err)
	}
	out := rec.toDomain()
	return &out, nil
}

// ListGeneralInquiries implements storage.InquiryStore
func (s *Store) ListGeneralInquiries(ctx context.Context) ([]domain.GeneralInquiry, error) {
	var recs []contactRecord
	if err := s.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&recs).Error; err != nil {
		return nil, storage.PersistenceFailure("list general inquiries", err)
	}
	out := make([]domain.GeneralInquiry, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].toDomain())
	}
	return out, nil
}

// SaveInvestorInquiry implements storage.InquiryStore
func (s *Store) SaveInvestorInquiry(ctx context.Context, in domain.InvestorInquiry) (*domain.InvestorInquiry, error) {
	rec := investmentRecord{
		InquiryColumns:   newInquiryColumns(in.Inquiry),
		Company:          in.Company,
		InvestmentAmount: in.InvestmentAmount,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, storage.PersistenceFailure("save investor inquiry", err)
	}
	out := rec.toDomain()
	return &out, nil
}

// ListInvestorInquiries implements storage.InquiryStore
func (s *Store) ListInvestorInquiries(ctx context.Context) ([]domain.InvestorInquiry, error) {
	var recs []investmentRecord
	if err := s.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&recs).Error; err != nil {
		return nil, storage.PersistenceFailure("list investor inquiries", err)
	}
	out := make([]domain.InvestorInquiry, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].toDomain())
	}
	return out, nil
}
