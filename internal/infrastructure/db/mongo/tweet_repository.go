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

type tweetDocument struct {
	ID              int64      `bson:"_id"`
	UserID          int64      `bson:"user_id"`
	Username        string     `bson:"username"`
	Content         string     `bson:"content"`
	Images          []string   `bson:"images"`
	Timestamp       time.Time  `bson:"timestamp"`
	UpdatedAt       *time.Time `bson:"updated_at,omitempty"`
	IsRetweet       bool       `bson:"is_retweet"`
	OriginalTweetID *int64     `bson:"original_tweet_id,omitempty"`
	ReplyToID       *int64     `bson:"reply_to_id,omitempty"`
}

func (d tweetDocument) toDomain() *domain.Tweet {
	images := d.Images
	if images == nil {
		images = []string{}
	}
	return &domain.Tweet{
		ID:              d.ID,
		UserID:          d.UserID,
		Username:        d.Username,
		Content:         d.Content,
		Images:          images,
		Timestamp:       d.Timestamp,
		UpdatedAt:       d.UpdatedAt,
		IsRetweet:       d.IsRetweet,
		OriginalTweetID: d.OriginalTweetID,
		ReplyToID:       d.ReplyToID,
	}
}

// newestFirst orders by timestamp and breaks ties on the higher id.
var newestFirst = bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}

// TweetRepository is the MongoDB implementation of ports.TweetRepository.
type TweetRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewTweetRepository(db *mongo.Database) *TweetRepository {
	return &TweetRepository{db: db, coll: db.Collection(collectionTweets)}
}

func (r *TweetRepository) Create(ctx context.Context, tweet *domain.Tweet) (*domain.Tweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, collectionTweets)
	if err != nil {
		return nil, err
	}

	doc := tweetDocument{
		ID:              id,
		UserID:          tweet.UserID,
		Username:        tweet.Username,
		Content:         tweet.Content,
		Images:          tweet.Images,
		Timestamp:       tweet.Timestamp,
		UpdatedAt:       tweet.UpdatedAt,
		IsRetweet:       tweet.IsRetweet,
		OriginalTweetID: tweet.OriginalTweetID,
		ReplyToID:       tweet.ReplyToID,
	}
	if doc.Timestamp.IsZero() {
		doc.Timestamp = time.Now().UTC()
	}
	if doc.Images == nil {
		doc.Images = []string{}
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert tweet: %w", err)
	}

	_, err = r.db.Collection(collectionUsers).UpdateOne(ctx,
		bson.M{"_id": doc.UserID},
		bson.M{"$inc": bson.M{"tweets_count": 1}},
	)
	if err != nil {
		return nil, fmt.Errorf("increment tweets count: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TweetRepository) FindByID(ctx context.Context, id int64) (*domain.Tweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc tweetDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTweetNotFound
		}
		return nil, fmt.Errorf("find tweet: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TweetRepository) List(ctx context.Context) ([]*domain.Tweet, error) {
	return r.find(ctx, bson.M{})
}

func (r *TweetRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Tweet, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *TweetRepository) find(ctx context.Context, filter bson.M) ([]*domain.Tweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("find tweets: %w", err)
	}
	defer cur.Close(ctx)

	var docs []tweetDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tweets: %w", err)
	}

	out := make([]*domain.Tweet, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *TweetRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("count tweets: %w", err)
	}
	return int(n), nil
}

func (r *TweetRepository) UpdateContent(ctx context.Context, id int64, content string, at time.Time) (*domain.Tweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc tweetDocument
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"content": content, "updated_at": at}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTweetNotFound
		}
		return nil, fmt.Errorf("update tweet: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TweetRepository) Delete(ctx context.Context, id int64) (*domain.Tweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc tweetDocument
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTweetNotFound
		}
		return nil, fmt.Errorf("delete tweet: %w", err)
	}

	for _, name := range []string{collectionLikes, collectionRetweets, collectionReplies} {
		if _, err := r.db.Collection(name).DeleteMany(ctx, bson.M{"tweet_id": id}); err != nil {
			return nil, fmt.Errorf("cascade %s: %w", name, err)
		}
	}

	_, err := r.db.Collection(collectionUsers).UpdateOne(ctx,
		bson.M{"_id": doc.UserID, "tweets_count": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"tweets_count": -1}},
	)
	if err != nil {
		return nil, fmt.Errorf("decrement tweets count: %w", err)
	}
	return doc.toDomain(), nil
}
