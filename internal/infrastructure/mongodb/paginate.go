package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hiredeck/hiredeck/internal/domain/repository"
)

// paginate runs a count + skip/limit find over an already active-scoped
// filter, newest first, and assembles the page envelope.
func paginate[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, req repository.PageRequest) (*repository.Page[T], error) {
	req = req.Normalize()

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((req.Page - 1) * req.Size).
		SetLimit(req.Size)

	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	items := make([]T, 0, req.Size)
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return repository.NewPage(items, total, req), nil
}
