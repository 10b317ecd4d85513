package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hiredeck/hiredeck/internal/domain/entity"
	"github.com/hiredeck/hiredeck/internal/domain/repository"
	"github.com/hiredeck/hiredeck/pkg/apperr"
)

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(CollUsers)}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	now := time.Now().UTC()
	u.ID = newID()
	u.CreatedAt = now
	u.UpdatedAt = now
	u.Deleted = false

	if _, err := r.coll.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("a user with this mobile already exists")
		}
		return err
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, activeFilter(bson.M{"_id": id}))
}

func (r *UserRepository) FindByIDAny(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, anyFilter(bson.M{"_id": id}))
}

func (r *UserRepository) FindByMobile(ctx context.Context, mobile string) (*entity.User, error) {
	return r.findOne(ctx, activeFilter(bson.M{"mobile": mobile}))
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	u := &entity.User{}
	if err := r.coll.FindOne(ctx, filter).Decode(u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx,
		activeFilter(bson.M{"_id": u.ID}),
		bson.M{"$set": bson.M{
			"firstname":  u.Firstname,
			"lastname":   u.Lastname,
			"email":      u.Email,
			"avatar_url": u.AvatarURL,
			"password":   u.Password,
			"updated_at": u.UpdatedAt,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (r *UserRepository) SetBanned(ctx context.Context, id string, banned bool) error {
	res, err := r.coll.UpdateOne(ctx,
		activeFilter(bson.M{"_id": id}),
		bson.M{"$set": bson.M{"is_banned": banned, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (r *UserRepository) SoftDelete(ctx context.Context, id, deletedBy string) error {
	return softDeleteByID(ctx, r.coll, id, deletedBy, "user")
}

func (r *UserRepository) List(ctx context.Context, query string, req repository.PageRequest) (*repository.Page[entity.User], error) {
	filter := bson.M{}
	if query != "" {
		rx := bson.M{"$regex": query, "$options": "i"}
		filter["$or"] = bson.A{bson.M{"firstname": rx}, bson.M{"lastname": rx}, bson.M{"mobile": rx}}
	}
	return paginate[entity.User](ctx, r.coll, activeFilter(filter), req)
}

var _ repository.UserRepository = (*UserRepository)(nil)
