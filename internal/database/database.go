package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrKeyNotFound is returned by Get when the key has never been set or was deleted.
var ErrKeyNotFound = errors.New("key not found")

// Service is the key-value store the application persists into.
type Service interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Health() map[string]string
	Close(ctx context.Context) error
}

const kvCollection = "kv"

type entry struct {
	Key   string `bson:"_id"`
	Value []byte `bson:"value"`
}

type service struct {
	client *mongo.Client
	kv     *mongo.Collection
}

// New connects to MongoDB and stores values in the "kv" collection of dbName.
func New(ctx context.Context, uri, dbName string) (Service, error) {
	if uri == "" {
		return nil, errors.New("mongo uri is empty")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	log.Info().Str("database", dbName).Msg("Connected to MongoDB")
	return &service{
		client: client,
		kv:     client.Database(dbName).Collection(kvCollection),
	}, nil
}

func (s *service) Get(ctx context.Context, key string) ([]byte, error) {
	var e entry
	err := s.kv.FindOne(ctx, bson.M{"_id": key}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to get %q: %w", key, err)
	}
	return e.Value, nil
}

func (s *service) Set(ctx context.Context, key string, value []byte) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.kv.ReplaceOne(ctx, bson.M{"_id": key}, entry{Key: key, Value: value}, opts)
	if err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	return nil
}

func (s *service) Delete(ctx context.Context, key string) error {
	if _, err := s.kv.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	err := s.client.Ping(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("Database health check failed")
		return map[string]string{
			"message": "db down",
			"error":   err.Error(),
		}
	}

	return map[string]string{
		"message": "It's healthy",
	}
}

func (s *service) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
