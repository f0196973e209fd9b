package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/prem-2323/CleanCity/pkg/security"
)

// MongoStore persists snapshot blobs in a single collection, one document
// per key. When a non-nil encryption key is set, blobs are sealed with
// AES-GCM before they leave the process.
type MongoStore struct {
	coll   *mongo.Collection
	encKey []byte
}

type snapshotDoc struct {
	ID        string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection("snapshots")}
}

// WithEncryption enables at-rest encryption for all subsequent reads and
// writes. The key must be 32 bytes.
func (s *MongoStore) WithEncryption(key []byte) *MongoStore {
	s.encKey = key
	return s
}

func (s *MongoStore) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc snapshotDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %q: %w", key, err)
	}

	if s.encKey != nil {
		plain, err := security.DecryptBytes(s.encKey, doc.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt snapshot %q: %w", key, err)
		}
		return plain, nil
	}
	return doc.Data, nil
}

func (s *MongoStore) Set(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	data := value
	if s.encKey != nil {
		sealed, err := security.EncryptBytes(s.encKey, value)
		if err != nil {
			return fmt.Errorf("failed to encrypt snapshot %q: %w", key, err)
		}
		data = sealed
	}

	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": key},
		snapshotDoc{ID: key, Data: data, UpdatedAt: time.Now()},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to write snapshot %q: %w", key, err)
	}
	return nil
}
