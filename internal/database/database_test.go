package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"inquirydesk/internal/config"
	"inquirydesk/internal/domain"
	"inquirydesk/internal/storage"
	"inquirydesk/internal/storage/mocks"
	apperrors "inquirydesk/pkg/errors"
)

func TestOpenWithoutURLUsesMemoryAndWarns(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	store, err := Open(context.Background(), config.StorageConfig{}, zap.New(core))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	assert.Equal(t, storage.BackendMemory, store.Backend())
	assert.Equal(t, 1, logs.FilterMessageSnippet("in-memory storage").Len())
}

func TestOpenSQLite(t *testing.T) {
	cfg := config.StorageConfig{URL: "sqlite:///" + filepath.Join(t.TempDir(), "forms.db")}

	store, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	assert.Equal(t, storage.BackendSQL, store.Backend())
	require.NoError(t, store.Ping(context.Background()))
}

func TestOpenRejectsUnknownScheme(t *testing.T) {
	_, err := Open(context.Background(), config.StorageConfig{URL: "redis://localhost:6379"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}

func TestInstrumentPassesResultsThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockStore(ctrl)
	store := Instrument(next)

	saved := &domain.GeneralInquiry{Inquiry: domain.Inquiry{ID: "abc"}}
	boom := storage.PersistenceFailure("save general inquiry", errors.New("disk full"))

	next.EXPECT().Backend().Return(storage.BackendMemory).AnyTimes()
	gomock.InOrder(
		next.EXPECT().SaveGeneralInquiry(gomock.Any(), gomock.Any()).Return(saved, nil),
		next.EXPECT().SaveGeneralInquiry(gomock.Any(), gomock.Any()).Return(nil, boom),
	)
	next.EXPECT().GetAccountByUsername(gomock.Any(), "nobody").Return(nil, storage.AccountNotFound())

	got, err := store.SaveGeneralInquiry(context.Background(), domain.GeneralInquiry{})
	require.NoError(t, err)
	assert.Equal(t, "abc", got.ID)

	_, err = store.SaveGeneralInquiry(context.Background(), domain.GeneralInquiry{})
	assert.True(t, apperrors.IsPersistence(err))

	_, err = store.GetAccountByUsername(context.Background(), "nobody")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestInstrumentDoesNotDoubleWrap(t *testing.T) {
	ctrl := gomock.NewController(t)
	once := Instrument(mocks.NewMockStore(ctrl))
	assert.Same(t, once, Instrument(once))
}
