package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hiredeck/hiredeck/internal/domain/entity"
	"github.com/hiredeck/hiredeck/internal/domain/repository"
	"github.com/hiredeck/hiredeck/pkg/apperr"
)

type ManagerRepository struct {
	coll  *mongo.Collection
	users *mongo.Collection
}

func NewManagerRepository(db *mongo.Database) *ManagerRepository {
	return &ManagerRepository{
		coll:  db.Collection(CollManagers),
		users: db.Collection(CollUsers),
	}
}

// Create inserts a grant. The unique partial index on
// (entity, entity_id, user_id) turns a concurrent duplicate into a
// duplicate-key error, reported as Conflict.
func (r *ManagerRepository) Create(ctx context.Context, m *entity.Manager) error {
	now := time.Now().UTC()
	m.ID = newID()
	m.CreatedAt = now
	m.UpdatedAt = now
	m.Deleted = false

	if _, err := r.coll.InsertOne(ctx, m); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("the user is already a manager of this entity")
		}
		return err
	}
	return nil
}

func (r *ManagerRepository) FindActive(ctx context.Context, kind entity.Kind, entityID, userID string) (*entity.Manager, error) {
	m := &entity.Manager{}
	filter := activeFilter(bson.M{"entity": kind, "entity_id": entityID, "user_id": userID})
	if err := r.coll.FindOne(ctx, filter).Decode(m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("manager not found")
		}
		return nil, err
	}
	return m, nil
}

func (r *ManagerRepository) ExistsActive(ctx context.Context, kind entity.Kind, entityID, userID string) (bool, error) {
	filter := activeFilter(bson.M{"entity": kind, "entity_id": entityID, "user_id": userID})
	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListActive returns active grants oldest first (the owner grant is always
// the first record) with each user's public profile resolved.
func (r *ManagerRepository) ListActive(ctx context.Context, kind entity.Kind, entityID string) ([]entity.ManagerWithUser, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.coll.Find(ctx, activeFilter(bson.M{"entity": kind, "entity_id": entityID}), opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	grants := []entity.Manager{}
	if err := cur.All(ctx, &grants); err != nil {
		return nil, err
	}
	if len(grants) == 0 {
		return []entity.ManagerWithUser{}, nil
	}

	ids := make([]string, 0, len(grants))
	for _, g := range grants {
		ids = append(ids, g.UserID)
	}
	profiles, err := r.profilesByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]entity.ManagerWithUser, 0, len(grants))
	for _, g := range grants {
		out = append(out, entity.ManagerWithUser{Manager: g, User: profiles[g.UserID]})
	}
	return out, nil
}

// profilesByID resolves users without the tombstone filter so historical
// grants still render when their user was deleted.
func (r *ManagerRepository) profilesByID(ctx context.Context, ids []string) (map[string]entity.PublicProfile, error) {
	cur, err := r.users.Find(ctx, anyFilter(bson.M{"_id": bson.M{"$in": ids}}))
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	users := []entity.PublicProfile{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	byID := make(map[string]entity.PublicProfile, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}

func (r *ManagerRepository) SoftDelete(ctx context.Context, id, deletedBy string) error {
	return softDeleteByID(ctx, r.coll, id, deletedBy, "manager")
}

var _ repository.ManagerRepository = (*ManagerRepository)(nil)
