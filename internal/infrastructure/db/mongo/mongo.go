package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

const (
	collectionUsers    = "users"
	collectionTweets   = "tweets"
	collectionReplies  = "replies"
	collectionLikes    = "likes"
	collectionRetweets = "retweets"
	collectionFollows  = "follows"
	collectionCounters = "counters"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// Ping returns a readiness check for db.
func Ping(db *mongo.Database) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
	}
}

type counter struct {
	Seq int64 `bson:"seq"`
}

// nextID hands out the next integer id for a collection. Ids come from a
// monotonically increasing counter and are never reused.
func nextID(ctx context.Context, db *mongo.Database, name string) (int64, error) {
	var c counter
	err := db.Collection(collectionCounters).FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", name, err)
	}
	return c.Seq, nil
}

// EnsureIndexes creates the unique and lookup indexes every repository relies on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)
	indexes := map[string][]mongo.IndexModel{
		collectionUsers: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		},
		collectionTweets: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}}},
			{Keys: bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}},
		},
		collectionReplies: {
			{Keys: bson.D{{Key: "tweet_id", Value: 1}, {Key: "_id", Value: 1}}},
		},
		collectionLikes: {
			{Keys: bson.D{{Key: "tweet_id", Value: 1}, {Key: "user_id", Value: 1}}, Options: unique},
		},
		collectionRetweets: {
			{Keys: bson.D{{Key: "tweet_id", Value: 1}, {Key: "user_id", Value: 1}}, Options: unique},
		},
		collectionFollows: {
			{Keys: bson.D{{Key: "following_id", Value: 1}, {Key: "follower_id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "follower_id", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", name, err)
		}
	}
	return nil
}
