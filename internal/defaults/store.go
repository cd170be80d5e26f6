package defaults

import (
	"context"

	"github.com/quangdm/stmail/model"
	"github.com/quangdm/stmail/params"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Store persists one defaults document per owner mailbox address.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewStore(client *mongo.Client) *Store {
	return &Store{
		client: client,
		coll:   client.Database(params.MongoDatabase).Collection(params.MongoCollection),
	}
}

// Load returns the owner's defaults document. When none exists yet an empty
// one is created and returned in the same operation, first load is
// provisioning rather than an error.
func (s *Store) Load(ctx context.Context, owner string) (*model.DefaultsRecord, error) {
	filter := bson.M{"user": owner}
	update := bson.M{"$setOnInsert": bson.M{
		"user":          owner,
		"subject":       "",
		"body":          "",
		"file_metadata": []model.FileMetadata{},
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var record model.DefaultsRecord
	if err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Save upserts the owner's defaults, replacing subject, body and attachment
// metadata wholesale. The key field is never touched.
func (s *Store) Save(ctx context.Context, owner string, subject, body string, files []model.FileMetadata) error {
	if files == nil {
		files = []model.FileMetadata{}
	}
	filter := bson.M{"user": owner}
	update := bson.M{"$set": bson.M{
		"subject":       subject,
		"body":          body,
		"file_metadata": files,
	}}
	_, err := s.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// Ping checks document store connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}
