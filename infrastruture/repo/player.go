package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/penguin-maze/domain"
	"github.com/beka-birhanu/penguin-maze/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultWriteTimeout = time.Second
	defaultReadTimeout  = 2 * time.Second
)

var (
	ErrPlayerNotFound   = errors.New("player not found")
	ErrUsernameConflict = dmn.ErrUsernameTaken
)

var (
	_ i.PlayerRepo = &PlayerRepo{}
	_ i.LevelStore = &PlayerRepo{}
)

// PlayerRepo handles the persistence of players, including their difficulty level.
type PlayerRepo struct {
	collection *mongo.Collection
}

// NewPlayerRepo creates a new PlayerRepo with the given MongoDB client, database name, and collection name.
func NewPlayerRepo(client *mongo.Client, dbName, collectionName string) *PlayerRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &PlayerRepo{
		collection: collection,
	}
}

// EnsureIndexes creates the unique username index.
func (p *PlayerRepo) EnsureIndexes(ctx context.Context) error {
	_, err := p.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Save inserts or updates a player in the repository.
func (p *PlayerRepo) Save(ctx context.Context, player *dmn.Player) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	filter := bson.M{"_id": player.ID}
	update := bson.M{
		"$set": bson.M{
			"username":     player.Username,
			"passwordHash": player.PasswordHash,
			"level":        player.Level,
			"updatedAt":    time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := p.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrUsernameConflict
		}
		return fmt.Errorf("saving player %s: %w", player.ID, err)
	}

	return nil
}

// ByID retrieves a player by their ID.
func (p *PlayerRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.Player, error) {
	return p.findOne(ctx, bson.M{"_id": id})
}

// ByUsername retrieves a player by their username.
func (p *PlayerRepo) ByUsername(ctx context.Context, username string) (*dmn.Player, error) {
	return p.findOne(ctx, bson.M{"username": username})
}

// Level implements i.LevelStore using the level stored on the player document.
func (p *PlayerRepo) Level(ctx context.Context, playerID uuid.UUID) (int, bool, error) {
	player, err := p.ByID(ctx, playerID)
	if errors.Is(err, ErrPlayerNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return player.Level, true, nil
}

// SaveLevel implements i.LevelStore. Only the level field is touched.
func (p *PlayerRepo) SaveLevel(ctx context.Context, playerID uuid.UUID, level int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"level": level, "updatedAt": time.Now()}}
	res, err := p.collection.UpdateOne(ctx, bson.M{"_id": playerID}, update)
	if err != nil {
		return fmt.Errorf("saving level for player %s: %w", playerID, err)
	}
	if res.MatchedCount == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func (p *PlayerRepo) findOne(ctx context.Context, filter bson.M) (*dmn.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	var player dmn.Player
	if err := p.collection.FindOne(ctx, filter).Decode(&player); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("finding player: %w", err)
	}
	return &player, nil
}
