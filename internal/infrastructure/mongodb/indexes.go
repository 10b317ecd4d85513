package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the domain invariants rely on. Unique
// indexes are partial on deleted:false so a tombstoned document releases its
// natural key, and concurrent duplicate writes collapse into a driver
// duplicate-key error that the repositories convert to Conflict.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	notDeleted := bson.M{"deleted": false}

	_, err := db.Collection(CollUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "mobile", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(notDeleted),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(CollCompanies).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(notDeleted),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(CollProjects).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return err
	}

	// One active grant per (entity, entity_id, user_id); revoked grants stay
	// behind the partial filter as audit records.
	_, err = db.Collection(CollManagers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "entity", Value: 1}, {Key: "entity_id", Value: 1}, {Key: "user_id", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(notDeleted),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(CollResumes).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "project_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	return err
}
