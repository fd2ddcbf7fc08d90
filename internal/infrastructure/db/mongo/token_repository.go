package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openlingu/lingua-server/internal/core/domain"
)

const tokensCollection = "tokens"

// TokenRepository persists one document per issued session token in the users
// database. Deletion of an absent document is a no-op by design: the
// per-request sweep, explicit logout and lazy eviction on verify all race on
// the same expired rows.
type TokenRepository struct {
	col *mongo.Collection
}

func NewTokenRepository(db *mongo.Database) *TokenRepository {
	return &TokenRepository{col: db.Collection(tokensCollection)}
}

type tokenDoc struct {
	Token   string `bson:"token"`
	Expires int64  `bson:"expires"`
}

func (r *TokenRepository) Insert(ctx context.Context, token *domain.Token) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, tokenDoc{
		Token:   token.Token,
		Expires: token.Expires.Unix(),
	})
	if err != nil {
		return fmt.Errorf("insert token: %w", err)
	}
	return nil
}

func (r *TokenRepository) Find(ctx context.Context, token string) (*domain.Token, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc tokenDoc
	if err := r.col.FindOne(ctx, bson.M{"token": token}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("find token: %w", err)
	}

	return &domain.Token{Token: doc.Token, Expires: unixToTime(doc.Expires)}, nil
}

func (r *TokenRepository) Delete(ctx context.Context, token string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"token": token})
	if err != nil {
		return false, fmt.Errorf("delete token: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *TokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"expires": bson.M{"$lt": before.Unix()}})
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the unique token index and the expiry index used by
// the sweep.
func (r *TokenRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "token", Value: 1}}, Options: uniqueIndex()},
		{Keys: bson.D{{Key: "expires", Value: 1}}},
	})
	return err
}
