package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/themobileprof/careportal-assistant/internal/memory"
)

const mongoCollection = "chat_messages"

type mongoMessage struct {
	ID        string            `bson:"_id"`
	SessionID string            `bson:"session_id"`
	Sender    string            `bson:"sender"`
	Text      string            `bson:"text"`
	Widget    string            `bson:"widget,omitempty"`
	Payload   map[string]string `bson:"payload,omitempty"`
	CreatedAt time.Time         `bson:"created_at"`
}

// MongoStore keeps message logs in a MongoDB collection
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore wraps an existing collection. Close leaves its client open.
func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// OpenMongo connects to uri, pings the primary and creates indexes
func OpenMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	if database == "" {
		return nil, fmt.Errorf("mongodb database name not set")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	s := &MongoStore{client: client, coll: client.Database(database).Collection(mongoCollection)}
	if err := s.createIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Printf("Connected to MongoDB database: %s", database)
	return s, nil
}

func (s *MongoStore) createIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "session_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
	}
	if _, err := s.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create message indexes: %w", err)
	}
	return nil
}

func (s *MongoStore) Append(ctx context.Context, sessionID string, msg memory.Message) error {
	doc := mongoMessage{
		ID:        msg.ID,
		SessionID: sessionID,
		Sender:    string(msg.Sender),
		Text:      msg.Text,
		Widget:    msg.Widget,
		Payload:   msg.Payload,
		CreatedAt: msg.CreatedAt,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// List reads newest first so the limit keeps the most recent messages, then
// reverses into chronological order
func (s *MongoStore) List(ctx context.Context, sessionID string, limit int) ([]memory.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.coll.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoMessage
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}

	messages := make([]memory.Message, len(docs))
	for i, d := range docs {
		messages[len(docs)-1-i] = memory.Message{
			ID:        d.ID,
			Sender:    memory.Sender(d.Sender),
			Text:      d.Text,
			CreatedAt: d.CreatedAt,
			Widget:    d.Widget,
			Payload:   d.Payload,
		}
	}
	return messages, nil
}

func (s *MongoStore) Delete(ctx context.Context, sessionID string) error {
	if _, err := s.coll.DeleteMany(ctx, bson.M{"session_id": sessionID}); err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}
	return nil
}

// Close disconnects the client opened by OpenMongo
func (s *MongoStore) Close() error {
	if s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	return nil
}
