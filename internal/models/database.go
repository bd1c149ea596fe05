package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used by the MongoDB seed source
const (
	ArtistsCollection = "artists"
	AlbumsCollection  = "albums"
	SongsCollection   = "songs"
)

// Database represents the database connection
type Database struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewDatabase creates a new database connection
func NewDatabase(ctx context.Context, mongoURL, dbName string) (*Database, error) {
	clientOptions := options.Client().
		ApplyURI(mongoURL).
		SetMaxPoolSize(10).
		SetMinPoolSize(1).
		SetMaxConnIdleTime(30 * time.Second).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Ping the database to verify connection
	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &Database{
		Client: client,
		DB:     client.Database(dbName),
	}, nil
}

// Close closes the database connection
func (d *Database) Close(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}

// CreateIndexes creates the primary key and foreign key indexes for the seed collections
func (d *Database) CreateIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		ArtistsCollection: {
			{Keys: bson.D{{Key: "artistId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		AlbumsCollection: {
			{Keys: bson.D{{Key: "albumId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "artistId", Value: 1}}},
		},
		SongsCollection: {
			{Keys: bson.D{{Key: "songId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "albumId", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := d.DB.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}

	return nil
}
