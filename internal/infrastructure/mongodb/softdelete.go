package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hiredeck/hiredeck/pkg/apperr"
)

// Document ids are ObjectID hex strings generated at create time; request
// validation guarantees their shape before a repository sees them.
func newID() string { return primitive.NewObjectID().Hex() }

// activeFilter is the single chokepoint that scopes a query to non-deleted
// documents. Every default read and every uniqueness check in this package
// must build its filter through it.
func activeFilter(f bson.M) bson.M {
	if f == nil {
		f = bson.M{}
	}
	f["deleted"] = false
	return f
}

// anyFilter passes a filter through untouched; it exists so call sites that
// intentionally include tombstones read explicitly.
func anyFilter(f bson.M) bson.M {
	if f == nil {
		f = bson.M{}
	}
	return f
}

// softDeleteByID tombstones one active document, stamping who deleted it and
// when. NotFound when the id resolves to nothing active.
func softDeleteByID(ctx context.Context, coll *mongo.Collection, id, deletedBy, what string) error {
	now := time.Now().UTC()
	res, err := coll.UpdateOne(ctx,
		activeFilter(bson.M{"_id": id}),
		bson.M{"$set": bson.M{
			"deleted":    true,
			"deleted_at": now,
			"deleted_by": deletedBy,
			"updated_at": now,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound(what + " not found")
	}
	return nil
}
