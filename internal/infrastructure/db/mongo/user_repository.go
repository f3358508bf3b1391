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

type userDocument struct {
	ID           int64     `bson:"_id"`
	Username     string    `bson:"username"`
	PasswordHash string    `bson:"password_hash"`
	Role         string    `bson:"role"`
	DisplayName  string    `bson:"display_name"`
	Bio          string    `bson:"bio"`
	Location     string    `bson:"location"`
	Website      string    `bson:"website"`
	Avatar       string    `bson:"avatar"`
	Banner       string    `bson:"banner"`
	Verified     bool      `bson:"verified"`
	TweetsCount  int       `bson:"tweets_count"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func newUserDocument(u *domain.User) userDocument {
	return userDocument{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		DisplayName:  u.DisplayName,
		Bio:          u.Bio,
		Location:     u.Location,
		Website:      u.Website,
		Avatar:       u.Avatar,
		Banner:       u.Banner,
		Verified:     u.Verified,
		TweetsCount:  u.TweetsCount,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (d userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		Role:         d.Role,
		DisplayName:  d.DisplayName,
		Bio:          d.Bio,
		Location:     d.Location,
		Website:      d.Website,
		Avatar:       d.Avatar,
		Banner:       d.Banner,
		Verified:     d.Verified,
		TweetsCount:  d.TweetsCount,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// UserRepository is the MongoDB implementation of ports.UserRepository.
type UserRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{db: db, coll: db.Collection(collectionUsers)}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, collectionUsers)
	if err != nil {
		return nil, err
	}

	doc := newUserDocument(user)
	doc.ID = id
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = doc.CreatedAt
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]*domain.User, error) {
	out := make(map[int64]*domain.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	docs, err := r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		out[d.ID] = d.toDomain()
	}
	return out, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	docs, err := r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := make([]*domain.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *UserRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]userDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cur.Close(ctx)

	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return docs, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role string) (*domain.User, error) {
	return r.update(ctx, id, bson.M{"role": role})
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, p domain.Profile) (*domain.User, error) {
	return r.update(ctx, id, bson.M{
		"display_name": p.DisplayName,
		"bio":          p.Bio,
		"location":     p.Location,
		"website":      p.Website,
		"avatar":       p.Avatar,
		"banner":       p.Banner,
	})
}

func (r *UserRepository) update(ctx context.Context, id int64, set bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set["updated_at"] = time.Now().UTC()

	var doc userDocument
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDocument
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("delete user: %w", err)
	}
	return doc.toDomain(), nil
}
