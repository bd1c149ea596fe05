package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"discography/internal/models"
	"discography/internal/store"
)

// MongoSeedRepository reads and replaces the seed in MongoDB
type MongoSeedRepository interface {
	SeedRepository
	SeedWriter
}

// mongoSeedRepository implements MongoSeedRepository over the artists, albums
// and songs collections
type mongoSeedRepository struct {
	db *models.Database
}

// NewMongoSeedRepository creates a new MongoDB-backed seed repository
func NewMongoSeedRepository(db *models.Database) MongoSeedRepository {
	return &mongoSeedRepository{db: db}
}

// Load reads every document of the three collections ordered by id
func (r *mongoSeedRepository) Load(ctx context.Context) (store.Seed, error) {
	var seed store.Seed
	var err error

	seed.Artists, err = findAll[models.Artist](ctx, r.db.DB.Collection(models.ArtistsCollection), "artistId")
	if err != nil {
		return store.Seed{}, err
	}

	seed.Albums, err = findAll[models.Album](ctx, r.db.DB.Collection(models.AlbumsCollection), "albumId")
	if err != nil {
		return store.Seed{}, err
	}

	seed.Songs, err = findAll[models.Song](ctx, r.db.DB.Collection(models.SongsCollection), "songId")
	if err != nil {
		return store.Seed{}, err
	}

	return seed, nil
}

// Replace drops the current documents, writes seed and recreates the indexes
func (r *mongoSeedRepository) Replace(ctx context.Context, seed store.Seed) error {
	if err := replaceAll(ctx, r.db.DB.Collection(models.ArtistsCollection), seed.Artists); err != nil {
		return err
	}
	if err := replaceAll(ctx, r.db.DB.Collection(models.AlbumsCollection), seed.Albums); err != nil {
		return err
	}
	if err := replaceAll(ctx, r.db.DB.Collection(models.SongsCollection), seed.Songs); err != nil {
		return err
	}

	if err := r.db.CreateIndexes(ctx); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func findAll[T any](ctx context.Context, collection *mongo.Collection, idField string) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: idField, Value: 1}})

	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection.Name(), err)
	}
	defer cursor.Close(ctx)

	records := []T{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", collection.Name(), err)
	}

	return records, nil
}

func replaceAll[T any](ctx context.Context, collection *mongo.Collection, records []T) error {
	if _, err := collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear %s: %w", collection.Name(), err)
	}
	if len(records) == 0 {
		return nil
	}

	docs := make([]interface{}, len(records))
	for i, record := range records {
		docs[i] = record
	}

	if _, err := collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", collection.Name(), err)
	}
	return nil
}
