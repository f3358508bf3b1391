package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/twittoo/twittoo-api/internal/core/domain"
)

type followDocument struct {
	ID          int64     `bson:"_id"`
	FollowerID  int64     `bson:"follower_id"`
	FollowingID int64     `bson:"following_id"`
	CreatedAt   time.Time `bson:"created_at"`
}

// FollowRepository is the MongoDB implementation of ports.FollowRepository.
type FollowRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewFollowRepository(db *mongo.Database) *FollowRepository {
	return &FollowRepository{db: db, coll: db.Collection(collectionFollows)}
}

func (r *FollowRepository) Toggle(ctx context.Context, followerID, followingID int64) (bool, int, error) {
	if followerID == followingID {
		return false, 0, domain.ErrSelfFollow
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	err := r.db.Collection(collectionUsers).FindOne(ctx, bson.M{"_id": followingID},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, 0, domain.ErrUserNotFound
	}
	if err != nil {
		return false, 0, fmt.Errorf("find followed user: %w", err)
	}

	filter := bson.M{"follower_id": followerID, "following_id": followingID}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return false, 0, fmt.Errorf("toggle follow: %w", err)
	}

	following := false
	if res.DeletedCount == 0 {
		id, err := nextID(ctx, r.db, collectionFollows)
		if err != nil {
			return false, 0, err
		}
		doc := followDocument{ID: id, FollowerID: followerID, FollowingID: followingID, CreatedAt: time.Now().UTC()}
		if _, err := r.coll.InsertOne(ctx, doc); err != nil && !mongo.IsDuplicateKeyError(err) {
			return false, 0, fmt.Errorf("toggle follow: %w", err)
		}
		following = true
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"following_id": followingID})
	if err != nil {
		return false, 0, fmt.Errorf("count followers: %w", err)
	}
	return following, int(n), nil
}

func (r *FollowRepository) Counts(ctx context.Context, userID int64) (int, int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	followers, err := r.coll.CountDocuments(ctx, bson.M{"following_id": userID})
	if err != nil {
		return 0, 0, fmt.Errorf("count followers: %w", err)
	}
	following, err := r.coll.CountDocuments(ctx, bson.M{"follower_id": userID})
	if err != nil {
		return 0, 0, fmt.Errorf("count following: %w", err)
	}
	return int(followers), int(following), nil
}

func (r *FollowRepository) IsFollowing(ctx context.Context, followerID, followingID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx,
		bson.M{"follower_id": followerID, "following_id": followingID},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, fmt.Errorf("find follow: %w", err)
	}
	return n > 0, nil
}
