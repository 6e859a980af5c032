package kvstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// kvDocument is the MongoDB representation of a key-value entry.
type kvDocument struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStore is a Store backed by a MongoDB collection. Change
// notifications are process-local: every write through this store is
// broadcast to its own subscribers. Writes from other processes are
// not observed, which is sufficient for session state owned by a
// single instance.
type MongoStore struct {
	collection *mongo.Collection
	*broadcaster
}

// NewMongoStore creates a Store over the given collection.
func NewMongoStore(collection *mongo.Collection) *MongoStore {
	return &MongoStore{
		collection:  collection,
		broadcaster: newBroadcaster(),
	}
}

// Get returns the value stored under key, or false when absent.
func (s *MongoStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc kvDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return doc.Value, true, nil
}

// Set upserts the value under key and notifies subscribers.
func (s *MongoStore) Set(ctx context.Context, key string, value []byte) error {
	update := bson.M{"$set": bson.M{
		"value":      value,
		"updated_at": time.Now(),
	}}
	_, err := s.collection.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
	if err != nil {
		return err
	}
	s.publish(Change{Key: key})
	return nil
}

// Delete removes key. Only an actual removal is broadcast.
func (s *MongoStore) Delete(ctx context.Context, key string) error {
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": key})
	if err != nil {
		return err
	}
	if res.DeletedCount > 0 {
		s.publish(Change{Key: key, Deleted: true})
	}
	return nil
}

// DeletePrefix removes every key starting with prefix.
func (s *MongoStore) DeletePrefix(ctx context.Context, prefix string) error {
	filter := bson.M{"_id": bson.M{"$regex": "^" + escapeRegex(prefix)}}

	// Collect the keys first so each removal can be broadcast.
	cursor, err := s.collection.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return err
	}
	var docs []kvDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return err
	}

	if _, err := s.collection.DeleteMany(ctx, filter); err != nil {
		return err
	}
	for _, doc := range docs {
		s.publish(Change{Key: doc.Key, Deleted: true})
	}
	return nil
}

// Subscribe registers a change listener.
func (s *MongoStore) Subscribe(buffer int) (<-chan Change, func()) {
	return s.subscribe(buffer)
}

// Close closes subscriber channels. The underlying client is owned by
// the caller and is not disconnected here.
func (s *MongoStore) Close() error {
	s.closeAll()
	return nil
}

// escapeRegex escapes regex metacharacters so prefixes like
// "cart:a.b" match literally.
func escapeRegex(s string) string {
	const meta = `\.+*?()|[]{}^$`
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		for j := 0; j < len(meta); j++ {
			if s[i] == meta[j] {
				out = append(out, '\\')
				break
			}
		}
		out = append(out, s[i])
	}
	return string(out)
}
