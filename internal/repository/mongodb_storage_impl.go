package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoStorageEntry struct {
	Key       string `bson:"_id"`
	Value     []byte `bson:"value"`
	UpdatedAt int64  `bson:"updated_at"`
}

type MongoDBStorageImpl struct {
	db *mongo.Database
}

func CreateMongoDBStorage(db *mongo.Database) Storage {
	return &MongoDBStorageImpl{db: db}
}

func (r *MongoDBStorageImpl) Get(ctx context.Context, key string) ([]byte, error) {
	var entry mongoStorageEntry
	filter := bson.D{{Key: "_id", Value: key}}

	err := r.db.Collection("storage_entries").FindOne(ctx, filter).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "MongoDBStorage.Get").Msg("")
		return nil, err
	}

	return entry.Value, nil
}

func (r *MongoDBStorageImpl) Set(ctx context.Context, key string, value []byte) error {
	filter := bson.D{{Key: "_id", Value: key}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "value", Value: value},
		{Key: "updated_at", Value: time.Now().UnixMilli()},
	}}}

	_, err := r.db.Collection("storage_entries").UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "MongoDBStorage.Set").Msg("")
	}

	return err
}

func (r *MongoDBStorageImpl) Clear(ctx context.Context, key string) error {
	filter := bson.D{{Key: "_id", Value: key}}

	_, err := r.db.Collection("storage_entries").DeleteOne(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "MongoDBStorage.Clear").Msg("")
	}

	return err
}
