package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish the MongoDB
// connection. The service keeps two independent databases on one deployment:
// one for principals and tokens, one for languages and lections. There are no
// cross-database references; consistency between them is enforced at the
// application layer.
type Config struct {
	URI       string
	UsersDB   string
	ContentDB string
	Timeout   time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns the client plus handles for the users and content databases.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.UsersDB), client.Database(cfg.ContentDB), nil
}

func uniqueIndex() *options.IndexOptions {
	return options.Index().SetUnique(true)
}
