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

const (
	usersCollection        = "users"
	contributorsCollection = "contributors"
)

// CredentialRepository persists users and contributors in separate
// collections within the users database.
type CredentialRepository struct {
	users        *mongo.Collection
	contributors *mongo.Collection
}

func NewCredentialRepository(db *mongo.Database) *CredentialRepository {
	return &CredentialRepository{
		users:        db.Collection(usersCollection),
		contributors: db.Collection(contributorsCollection),
	}
}

type userDoc struct {
	Username       string `bson:"username"`
	Email          string `bson:"email"`
	HashedPassword string `bson:"hashed_password"`
	Disabled       bool   `bson:"disabled"`
	CreatedAt      int64  `bson:"created_at"`
}

type contributorDoc struct {
	Username       string `bson:"username"`
	HashedPassword string `bson:"hashed_password"`
	IsAdmin        bool   `bson:"is_admin"`
}

func (r *CredentialRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := userDoc{
		Username:       user.Username,
		Email:          user.Email,
		HashedPassword: user.HashedPassword,
		Disabled:       user.Disabled,
		CreatedAt:      user.CreatedAt.Unix(),
	}

	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return r.FindUser(ctx, user.Username)
}

func (r *CredentialRepository) FindUser(ctx context.Context, username string) (*domain.User, error) {
	return r.findUser(ctx, bson.M{"username": username})
}

func (r *CredentialRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findUser(ctx, bson.M{"email": email})
}

func (r *CredentialRepository) findUser(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &domain.User{
		Username:       doc.Username,
		Email:          doc.Email,
		HashedPassword: doc.HashedPassword,
		Disabled:       doc.Disabled,
		CreatedAt:      unixToTime(doc.CreatedAt),
	}, nil
}

func (r *CredentialRepository) DeleteUser(ctx context.Context, username string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.users.DeleteOne(ctx, bson.M{"username": username})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *CredentialRepository) FindContributor(ctx context.Context, username string) (*domain.Contributor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc contributorDoc
	if err := r.contributors.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContributorNotFound
		}
		return nil, fmt.Errorf("find contributor: %w", err)
	}

	return &domain.Contributor{
		Username:       doc.Username,
		HashedPassword: doc.HashedPassword,
		IsAdmin:        doc.IsAdmin,
	}, nil
}

// EnsureIndexes creates the unique indexes that back conflict detection on
// registration.
func (r *CredentialRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: uniqueIndex()},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: uniqueIndex()},
	})
	if err != nil {
		return err
	}

	_, err = r.contributors.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: uniqueIndex()},
	})
	return err
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
