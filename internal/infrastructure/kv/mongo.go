package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// documentRecord is the Mongo shape of one stored document.
type documentRecord struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// Mongo keeps every key as one document in a single collection.
type Mongo struct {
	client     *mongo.Client
	collection *mongo.Collection
	ownsClient bool
}

// OpenMongo connects with the stable server API and pings before returning.
func OpenMongo(ctx context.Context, cfg Config) (*Mongo, error) {
	timeout := cfg.MongoConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	m := NewMongo(client.Database(cfg.MongoDatabase), cfg.MongoCollection)
	m.ownsClient = true
	return m, nil
}

// NewMongo wraps an existing database handle. Close leaves the client connected.
func NewMongo(db *mongo.Database, collectionName string) *Mongo {
	if collectionName == "" {
		collectionName = "talentflow_documents"
	}
	return &Mongo{client: db.Client(), collection: db.Collection(collectionName)}
}

func (m *Mongo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc documentRecord
	err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(doc.Value), true, nil
}

func (m *Mongo) Set(ctx context.Context, key string, value []byte) error {
	doc := documentRecord{Key: key, Value: string(value), UpdatedAt: time.Now().UTC()}
	_, err := m.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	return err
}

func (m *Mongo) Delete(ctx context.Context, key string) error {
	_, err := m.collection.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

func (m *Mongo) Close(ctx context.Context) error {
	if !m.ownsClient {
		return nil
	}
	return m.client.Disconnect(ctx)
}
