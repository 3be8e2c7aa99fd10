package rosterRepo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"guildroster/database"
	"guildroster/models"
)

type mongoRosterRepo struct {
	coll *mongo.Collection
}

// NewMongoRosterRepo returns a new Repository instance using MongoDB.
func NewMongoRosterRepo() Repository {
	db := database.MongoClient.Database("guildroster")
	return &mongoRosterRepo{
		coll: db.Collection("members"),
	}
}

// Upsert writes the full canonical profile for a member, creating the
// document when the name is new.
func (r *mongoRosterRepo) Upsert(ctx context.Context, profile models.MemberProfile) error {
	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"name": profile.Name},
		profile,
		options.Replace().SetUpsert(true),
	)
	return err
}

// GetRawByName returns the stored roster document as a plain tree.
func (r *mongoRosterRepo) GetRawByName(ctx context.Context, name string) (map[string]any, error) {
	var raw bson.M
	err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	doc, _ := toPlain(raw).(map[string]any)
	return doc, nil
}

// GetAllRaw returns every roster document keyed by member name.
func (r *mongoRosterRepo) GetAllRaw(ctx context.Context) (map[string]map[string]any, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := make(map[string]map[string]any)
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, err
		}
		doc, _ := toPlain(raw).(map[string]any)
		if doc == nil {
			continue
		}
		name, _ := doc["name"].(string)
		if name == "" {
			continue
		}
		docs[name] = doc
	}
	return docs, cursor.Err()
}

// Delete removes a roster entry by name.
func (r *mongoRosterRepo) Delete(ctx context.Context, name string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
