package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/hongminglow/hospcare-be/internal/models"
	"github.com/hongminglow/hospcare-be/internal/storage"
)

// Ensure Store satisfies the storage.UserStore interface at compile time.
var _ storage.UserStore = (*Store)(nil)

// Store keeps each category in its own collection of the configured database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewUserStore connects to MongoDB, verifies the connection and ensures the
// per-collection unique email indexes exist.
func NewUserStore(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := &Store{client: client, db: client.Database(database)}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

// Close disconnects the underlying client.
func (s *Store) Close() {
	if s.client != nil {
		_ = s.client.Disconnect(context.Background())
	}
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	for _, category := range models.Categories {
		_, err := s.collection(category).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		})
		if err != nil {
			return fmt.Errorf("create email index on %s: %w", category.Partition(), err)
		}
	}
	return nil
}

func (s *Store) collection(category models.Category) *mongo.Collection {
	return s.db.Collection(category.Partition())
}

// CreateUser inserts a new user document.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	doc := toDocument(user)
	res, err := s.collection(user.Category).InsertOne(ctx, doc)
	if err != nil {
		switch {
		case mongo.IsDuplicateKeyError(err):
			return models.User{}, storage.ErrAlreadyExists
		case errors.Is(err, mongo.ErrUnacknowledgedWrite):
			return models.User{}, storage.ErrNotAcknowledged
		}
		return models.User{}, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return models.User{}, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	user.ID = id.Hex()
	return user, nil
}

// FindByEmail fetches a user by email within one category collection.
func (s *Store) FindByEmail(ctx context.Context, category models.Category, email string) (models.User, error) {
	var doc userDocument
	err := s.collection(category).FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return doc.toModel(), nil
}

// ListByCategory returns all users in a category collection.
func (s *Store) ListByCategory(ctx context.Context, category models.Category) ([]models.User, error) {
	cur, err := s.collection(category).Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, doc.toModel())
	}
	return users, nil
}
