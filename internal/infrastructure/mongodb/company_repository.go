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

type CompanyRepository struct {
	coll *mongo.Collection
}

func NewCompanyRepository(db *mongo.Database) *CompanyRepository {
	return &CompanyRepository{coll: db.Collection(CollCompanies)}
}

func (r *CompanyRepository) Create(ctx context.Context, c *entity.Company) error {
	now := time.Now().UTC()
	c.ID = newID()
	c.CreatedAt = now
	c.UpdatedAt = now
	c.Deleted = false

	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("a company with this name already exists")
		}
		return err
	}
	return nil
}

func (r *CompanyRepository) FindByID(ctx context.Context, id string) (*entity.Company, error) {
	return r.findOne(ctx, activeFilter(bson.M{"_id": id}))
}

func (r *CompanyRepository) FindByIDAny(ctx context.Context, id string) (*entity.Company, error) {
	return r.findOne(ctx, anyFilter(bson.M{"_id": id}))
}

func (r *CompanyRepository) FindByName(ctx context.Context, name string) (*entity.Company, error) {
	return r.findOne(ctx, activeFilter(bson.M{"name": name}))
}

func (r *CompanyRepository) findOne(ctx context.Context, filter bson.M) (*entity.Company, error) {
	c := &entity.Company{}
	if err := r.coll.FindOne(ctx, filter).Decode(c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("company not found")
		}
		return nil, err
	}
	return c, nil
}

func (r *CompanyRepository) Update(ctx context.Context, c *entity.Company) error {
	c.UpdatedAt = time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx,
		activeFilter(bson.M{"_id": c.ID}),
		bson.M{"$set": bson.M{
			"name":       c.Name,
			"logo_url":   c.LogoURL,
			"is_active":  c.IsActive,
			"updated_at": c.UpdatedAt,
		}},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("a company with this name already exists")
		}
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("company not found")
	}
	return nil
}

func (r *CompanyRepository) SoftDelete(ctx context.Context, id, deletedBy string) error {
	return softDeleteByID(ctx, r.coll, id, deletedBy, "company")
}

func (r *CompanyRepository) List(ctx context.Context, query string, req repository.PageRequest) (*repository.Page[entity.Company], error) {
	filter := bson.M{}
	if query != "" {
		filter["name"] = bson.M{"$regex": query, "$options": "i"}
	}
	return paginate[entity.Company](ctx, r.coll, activeFilter(filter), req)
}

var _ repository.CompanyRepository = (*CompanyRepository)(nil)
