package defaults

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/quangdm/stmail/model"
	"github.com/quangdm/stmail/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newTestStore connects to a local MongoDB instance. Skipped when none is
// running.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI("mongodb://localhost:27017"))
	if err != nil {
		t.Skipf("mongodb not available: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Skipf("mongodb not available: %v", err)
	}
	t.Cleanup(func() {
		client.Disconnect(context.Background())
	})
	return NewStore(client)
}

func testOwner() string {
	return fmt.Sprintf("store-test-%d@example.com", time.Now().UnixNano())
}

func TestLoadProvisionsEmptyRecord(t *testing.T) {
	store := newTestStore(t)
	owner := testOwner()
	t.Cleanup(func() {
		store.coll.DeleteOne(context.Background(), bson.M{"user": owner})
	})

	record, err := store.Load(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, owner, record.Owner)
	assert.Empty(t, record.Subject)
	assert.Empty(t, record.Body)
	assert.Empty(t, record.Files)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	owner := testOwner()
	t.Cleanup(func() {
		store.coll.DeleteOne(context.Background(), bson.M{"user": owner})
	})

	meta := []model.FileMetadata{
		{Name: "report.pdf", Size: 1024},
		{Name: "notes.txt", Size: 42},
	}
	require.NoError(t, store.Save(context.Background(), owner, "S", "B", meta))

	record, err := store.Load(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, "S", record.Subject)
	assert.Equal(t, "B", record.Body)
	assert.Equal(t, meta, record.Files)

	// save replaces wholesale
	require.NoError(t, store.Save(context.Background(), owner, "S2", "B2", nil))
	record, err = store.Load(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, "S2", record.Subject)
	assert.Equal(t, "B2", record.Body)
	assert.Empty(t, record.Files)
}

func TestStoreUsesConfiguredNamespace(t *testing.T) {
	store := newTestStore(t)
	assert.Equal(t, params.MongoDatabase, store.coll.Database().Name())
	assert.Equal(t, params.MongoCollection, store.coll.Name())
}
