//go:build integration

package mongostore

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inquirydesk/internal/config"
	"inquirydesk/internal/storage"
	"inquirydesk/internal/storage/storagetest"
)

// startMongo runs a throwaway MongoDB and returns its connection string.
func startMongo(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := tcmongo.Run(ctx, "mongo:7")
	testcontainers.CleanupContainer(t, container)
	if err != nil {
		t.Fatalf("failed to start mongo container: %v", err)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get mongo connection string: %v", err)
	}
	return uri
}

func TestContract(t *testing.T) {
	uri := startMongo(t)
	cfgs := map[storage.Store]config.StorageConfig{}

	storagetest.Run(t, storagetest.Harness{
		New: func(t *testing.T, now func() time.Time) storage.Store {
			cfg := config.StorageConfig{
				URL:           uri,
				MongoDatabase: "test_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
			}
			s, err := Open(context.Background(), cfg, WithClock(now))
			require.NoError(t, err)
			cfgs[s] = cfg
			return s
		},
		Reopen: func(t *testing.T, s storage.Store, now func() time.Time) storage.Store {
			cfg := cfgs[s]
			require.NoError(t, s.Close(context.Background()))
			reopened, err := Open(context.Background(), cfg, WithClock(now))
			require.NoError(t, err)
			cfgs[reopened] = cfg
			return reopened
		},
		SeedAccount: func(t *testing.T, s storage.Store, id int64, username string) {
			doc := accountDoc{ID: id, Username: username, Email: username + "@example.com", SecretHash: "x"}
			_, err := s.(*Store).db.Collection(accountsCollection).InsertOne(context.Background(), doc)
			require.NoError(t, err)
		},
	})
}

func TestTimestampsKeepMillisecondPrecision(t *testing.T) {
	uri := startMongo(t)
	at := time.Date(2026, time.March, 14, 9, 30, 0, 123456789, time.UTC)

	s, err := Open(context.Background(), config.StorageConfig{URL: uri, MongoDatabase: "precision"},
		WithClock(func() time.Time { return at }))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	saved, err := s.SaveGeneralInquiry(context.Background(), storagetest.General("Ada Lovelace"))
	require.NoError(t, err)

	list, err := s.ListGeneralInquiries(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.True(t, list[0].CreatedAt.Equal(saved.CreatedAt), "saved %v listed %v", saved.CreatedAt, list[0].CreatedAt)
	require.True(t, saved.CreatedAt.Equal(at.Truncate(time.Millisecond)))
}

func TestOpenFailsWhenCounterCannotBeRecovered(t *testing.T) {
	uri := startMongo(t)
	ctx := context.Background()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	// String ids sort above numbers, so the highest _id cannot be decoded as a counter
	_, err = client.Database("legacy").Collection(accountsCollection).
		InsertOne(ctx, bson.D{{Key: "_id", Value: "admin"}, {Key: "username", Value: "admin"}, {Key: "email", Value: "admin@example.com"}})
	require.NoError(t, err)

	_, err = Open(ctx, config.StorageConfig{URL: uri, MongoDatabase: "legacy"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "recover account identity counter")
}
