// Package seed loads the demo accounts, tweets and follows shipped with the
// API into an empty store.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/twittoo/twittoo-api/internal/core/domain"
	"github.com/twittoo/twittoo-api/internal/core/ports"
)

//go:embed seed.yaml
var fixture []byte

type userFixture struct {
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	Role        string `yaml:"role"`
	DisplayName string `yaml:"display_name"`
	Bio         string `yaml:"bio"`
	Location    string `yaml:"location"`
	Website     string `yaml:"website"`
	Avatar      string `yaml:"avatar"`
	Banner      string `yaml:"banner"`
	Verified    bool   `yaml:"verified"`
}

type tweetFixture struct {
	Author  string   `yaml:"author"`
	Content string   `yaml:"content"`
	Images  []string `yaml:"images"`
}

type followFixture struct {
	Follower  string `yaml:"follower"`
	Following string `yaml:"following"`
}

// Data is the parsed fixture.
type Data struct {
	Users   []userFixture   `yaml:"users"`
	Tweets  []tweetFixture  `yaml:"tweets"`
	Follows []followFixture `yaml:"follows"`
}

// Parse decodes a fixture document.
func Parse(raw []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("seed: parse fixture: %w", err)
	}
	return &d, nil
}

// Repositories are the stores the seeder writes through.
type Repositories struct {
	Users   ports.UserRepository
	Tweets  ports.TweetRepository
	Follows ports.FollowRepository
}

// Seeder populates an empty store from the embedded fixture.
type Seeder struct {
	repos  Repositories
	logger zerolog.Logger
	faker  *gofakeit.Faker
	cost   int
	now    func() time.Time
}

type Option func(*Seeder)

// WithRandSeed makes generated timestamps reproducible.
func WithRandSeed(seed int64) Option {
	return func(s *Seeder) { s.faker = gofakeit.New(seed) }
}

// WithHashCost overrides the bcrypt cost used for fixture passwords.
func WithHashCost(cost int) Option {
	return func(s *Seeder) { s.cost = cost }
}

func New(repos Repositories, logger zerolog.Logger, opts ...Option) *Seeder {
	s := &Seeder{
		repos:  repos,
		logger: logger,
		faker:  gofakeit.New(0),
		cost:   bcrypt.DefaultCost,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run loads the embedded fixture. It does nothing when the store already
// holds accounts, so a persistent backend is seeded only once.
func (s *Seeder) Run(ctx context.Context) error {
	data, err := Parse(fixture)
	if err != nil {
		return err
	}
	return s.Load(ctx, data)
}

// Load writes d into the store unless it already holds accounts.
func (s *Seeder) Load(ctx context.Context, d *Data) error {
	existing, err := s.repos.Users.List(ctx)
	if err != nil {
		return fmt.Errorf("seed: list users: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Info().Int("users", len(existing)).Msg("store already populated, skipping seed")
		return nil
	}

	now := s.now()
	ids := make(map[string]int64, len(d.Users))
	for _, u := range d.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), s.cost)
		if err != nil {
			return fmt.Errorf("seed: hash password for %s: %w", u.Username, err)
		}
		joined := s.faker.DateRange(now.AddDate(-1, 0, 0), now).UTC()
		created, err := s.repos.Users.Create(ctx, &domain.User{
			Username:     u.Username,
			PasswordHash: string(hash),
			Role:         u.Role,
			DisplayName:  u.DisplayName,
			Bio:          u.Bio,
			Location:     u.Location,
			Website:      u.Website,
			Avatar:       u.Avatar,
			Banner:       u.Banner,
			Verified:     u.Verified,
			CreatedAt:    joined,
			UpdatedAt:    joined,
		})
		if err != nil {
			return fmt.Errorf("seed: create user %s: %w", u.Username, err)
		}
		ids[u.Username] = created.ID
	}

	for i, t := range d.Tweets {
		authorID, ok := ids[t.Author]
		if !ok {
			return fmt.Errorf("seed: tweet %d: unknown author %q", i, t.Author)
		}
		_, err := s.repos.Tweets.Create(ctx, &domain.Tweet{
			UserID:    authorID,
			Username:  t.Author,
			Content:   t.Content,
			Images:    t.Images,
			Timestamp: s.faker.DateRange(now.AddDate(0, 0, -7), now).UTC(),
		})
		if err != nil {
			return fmt.Errorf("seed: create tweet %d: %w", i, err)
		}
	}

	for _, f := range d.Follows {
		follower, ok1 := ids[f.Follower]
		following, ok2 := ids[f.Following]
		if !ok1 || !ok2 {
			return fmt.Errorf("seed: follow %s -> %s: unknown user", f.Follower, f.Following)
		}
		if _, _, err := s.repos.Follows.Toggle(ctx, follower, following); err != nil {
			return fmt.Errorf("seed: follow %s -> %s: %w", f.Follower, f.Following, err)
		}
	}

	s.logger.Info().
		Int("users", len(d.Users)).
		Int("tweets", len(d.Tweets)).
		Int("follows", len(d.Follows)).
		Msg("seed data loaded")
	return nil
}
