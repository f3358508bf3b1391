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

type engagementDocument struct {
	ID        int64     `bson:"_id"`
	TweetID   int64     `bson:"tweet_id"`
	UserID    int64     `bson:"user_id"`
	CreatedAt time.Time `bson:"created_at"`
}

type replyDocument struct {
	ID        int64     `bson:"_id"`
	TweetID   int64     `bson:"tweet_id"`
	UserID    int64     `bson:"user_id"`
	Username  string    `bson:"username"`
	Content   string    `bson:"content"`
	Timestamp time.Time `bson:"timestamp"`
}

func (d replyDocument) toDomain() *domain.Reply {
	return &domain.Reply{
		ID:        d.ID,
		TweetID:   d.TweetID,
		UserID:    d.UserID,
		Username:  d.Username,
		Content:   d.Content,
		Timestamp: d.Timestamp,
	}
}

// EngagementRepository is the MongoDB implementation of ports.EngagementRepository.
// Likes and retweets live in their own collections with a unique
// (tweet_id, user_id) index, so a pair can be stored at most once.
type EngagementRepository struct {
	db *mongo.Database
}

func NewEngagementRepository(db *mongo.Database) *EngagementRepository {
	return &EngagementRepository{db: db}
}

func collectionFor(kind domain.EngagementKind) string {
	if kind == domain.Retweet {
		return collectionRetweets
	}
	return collectionLikes
}

func (r *EngagementRepository) tweetExists(ctx context.Context, tweetID int64) error {
	err := r.db.Collection(collectionTweets).FindOne(ctx, bson.M{"_id": tweetID},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrTweetNotFound
	}
	return err
}

func (r *EngagementRepository) Toggle(ctx context.Context, kind domain.EngagementKind, tweetID, userID int64) (bool, int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := r.tweetExists(ctx, tweetID); err != nil {
		return false, 0, err
	}

	name := collectionFor(kind)
	coll := r.db.Collection(name)
	filter := bson.M{"tweet_id": tweetID, "user_id": userID}

	res, err := coll.DeleteOne(ctx, filter)
	if err != nil {
		return false, 0, fmt.Errorf("toggle %s: %w", kind, err)
	}

	active := false
	if res.DeletedCount == 0 {
		id, err := nextID(ctx, r.db, name)
		if err != nil {
			return false, 0, err
		}
		doc := engagementDocument{ID: id, TweetID: tweetID, UserID: userID, CreatedAt: time.Now().UTC()}
		if _, err := coll.InsertOne(ctx, doc); err != nil && !mongo.IsDuplicateKeyError(err) {
			return false, 0, fmt.Errorf("toggle %s: %w", kind, err)
		}
		// A concurrent toggle that inserted first leaves the pair active.
		active = true
	}

	n, err := coll.CountDocuments(ctx, bson.M{"tweet_id": tweetID})
	if err != nil {
		return false, 0, fmt.Errorf("count %s: %w", name, err)
	}
	return active, int(n), nil
}

type tweetCount struct {
	TweetID int64 `bson:"_id"`
	Count   int   `bson:"count"`
}

func (r *EngagementRepository) countByTweet(ctx context.Context, name string, ids []int64) (map[int64]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"tweet_id": bson.M{"$in": ids}}}},
		{{Key: "$group", Value: bson.M{"_id": "$tweet_id", "count": bson.M{"$sum": 1}}}},
	}
	cur, err := r.db.Collection(name).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", name, err)
	}
	defer cur.Close(ctx)

	var rows []tweetCount
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode %s counts: %w", name, err)
	}
	out := make(map[int64]int, len(rows))
	for _, row := range rows {
		out[row.TweetID] = row.Count
	}
	return out, nil
}

func (r *EngagementRepository) viewerTweets(ctx context.Context, name string, ids []int64, viewerID int64) (map[int64]bool, error) {
	out := make(map[int64]bool)
	if viewerID == 0 {
		return out, nil
	}
	cur, err := r.db.Collection(name).Find(ctx, bson.M{"tweet_id": bson.M{"$in": ids}, "user_id": viewerID})
	if err != nil {
		return nil, fmt.Errorf("find viewer %s: %w", name, err)
	}
	defer cur.Close(ctx)

	var docs []engagementDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode viewer %s: %w", name, err)
	}
	for _, d := range docs {
		out[d.TweetID] = true
	}
	return out, nil
}

func (r *EngagementRepository) Stats(ctx context.Context, tweetIDs []int64, viewerID int64) (map[int64]domain.Engagement, error) {
	out := make(map[int64]domain.Engagement, len(tweetIDs))
	if len(tweetIDs) == 0 {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	likes, err := r.countByTweet(ctx, collectionLikes, tweetIDs)
	if err != nil {
		return nil, err
	}
	retweets, err := r.countByTweet(ctx, collectionRetweets, tweetIDs)
	if err != nil {
		return nil, err
	}
	replies, err := r.countByTweet(ctx, collectionReplies, tweetIDs)
	if err != nil {
		return nil, err
	}
	liked, err := r.viewerTweets(ctx, collectionLikes, tweetIDs, viewerID)
	if err != nil {
		return nil, err
	}
	retweeted, err := r.viewerTweets(ctx, collectionRetweets, tweetIDs, viewerID)
	if err != nil {
		return nil, err
	}

	for _, id := range tweetIDs {
		out[id] = domain.Engagement{
			Likes:     likes[id],
			Retweets:  retweets[id],
			Replies:   replies[id],
			Liked:     liked[id],
			Retweeted: retweeted[id],
		}
	}
	return out, nil
}

func (r *EngagementRepository) AddReply(ctx context.Context, reply *domain.Reply) (*domain.Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := r.tweetExists(ctx, reply.TweetID); err != nil {
		return nil, err
	}

	id, err := nextID(ctx, r.db, collectionReplies)
	if err != nil {
		return nil, err
	}
	doc := replyDocument{
		ID:        id,
		TweetID:   reply.TweetID,
		UserID:    reply.UserID,
		Username:  reply.Username,
		Content:   reply.Content,
		Timestamp: reply.Timestamp,
	}
	if doc.Timestamp.IsZero() {
		doc.Timestamp = time.Now().UTC()
	}
	if _, err := r.db.Collection(collectionReplies).InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert reply: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *EngagementRepository) ListReplies(ctx context.Context, tweetID int64) ([]*domain.Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.db.Collection(collectionReplies).Find(ctx,
		bson.M{"tweet_id": tweetID},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find replies: %w", err)
	}
	defer cur.Close(ctx)

	var docs []replyDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode replies: %w", err)
	}
	out := make([]*domain.Reply, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}
