package teamRepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"guildroster/database"
	"guildroster/models"
)

type mongoTeamRepo struct {
	coll *mongo.Collection
}

// NewMongoTeamRepo returns a new Repository instance using MongoDB.
func NewMongoTeamRepo() Repository {
	db := database.MongoClient.Database("guildroster")
	return &mongoTeamRepo{
		coll: db.Collection("teams"),
	}
}

// Create inserts a new team document and returns its ID.
func (r *mongoTeamRepo) Create(ctx context.Context, team models.Team) (string, error) {
	if team.ID == "" {
		team.ID = uuid.New().String()
	}
	if _, err := r.coll.InsertOne(ctx, team); err != nil {
		return "", err
	}
	return team.ID, nil
}

// GetRawByID returns the stored document as a plain JSON-like tree.
func (r *mongoTeamRepo) GetRawByID(ctx context.Context, id string) (map[string]any, error) {
	var raw bson.M
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	doc, _ := toPlain(raw).(map[string]any)
	return doc, nil
}

// GetAllRaw returns every team document keyed by team ID. Documents without
// a usable string ID are skipped.
func (r *mongoTeamRepo) GetAllRaw(ctx context.Context) (map[string]map[string]any, error) {
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
		id, _ := doc["id"].(string)
		if id == "" {
			continue
		}
		docs[id] = doc
	}
	return docs, cursor.Err()
}

// ReplaceSchedules overwrites the team's whole schedules subtree with the
// canonical two-window set.
func (r *mongoTeamRepo) ReplaceSchedules(ctx context.Context, id string, schedules models.ScheduleSet) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"schedules": schedules}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateMeta replaces the team's name, remark and member list.
func (r *mongoTeamRepo) UpdateMeta(ctx context.Context, id string, name, remark string, members []models.TeamMember) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{
			"teamName":   name,
			"teamRemark": remark,
			"member":     members,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a team document by ID.
func (r *mongoTeamRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
