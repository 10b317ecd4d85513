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

type ProjectRepository struct {
	coll *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{coll: db.Collection(CollProjects)}
}

func (r *ProjectRepository) Create(ctx context.Context, p *entity.Project) error {
	now := time.Now().UTC()
	p.ID = newID()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.Deleted = false

	_, err := r.coll.InsertOne(ctx, p)
	return err
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*entity.Project, error) {
	return r.findOne(ctx, activeFilter(bson.M{"_id": id}))
}

func (r *ProjectRepository) FindByIDAny(ctx context.Context, id string) (*entity.Project, error) {
	return r.findOne(ctx, anyFilter(bson.M{"_id": id}))
}

func (r *ProjectRepository) findOne(ctx context.Context, filter bson.M) (*entity.Project, error) {
	p := &entity.Project{}
	if err := r.coll.FindOne(ctx, filter).Decode(p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("project not found")
		}
		return nil, err
	}
	return p, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *entity.Project) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx,
		activeFilter(bson.M{"_id": p.ID}),
		bson.M{"$set": bson.M{
			"name":        p.Name,
			"description": p.Description,
			"company_id":  p.CompanyID,
			"is_active":   p.IsActive,
			"updated_at":  p.UpdatedAt,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("project not found")
	}
	return nil
}

func (r *ProjectRepository) SoftDelete(ctx context.Context, id, deletedBy string) error {
	return softDeleteByID(ctx, r.coll, id, deletedBy, "project")
}

func (r *ProjectRepository) List(ctx context.Context, query string, req repository.PageRequest) (*repository.Page[entity.Project], error) {
	filter := bson.M{}
	if query != "" {
		filter["name"] = bson.M{"$regex": query, "$options": "i"}
	}
	return paginate[entity.Project](ctx, r.coll, activeFilter(filter), req)
}

func (r *ProjectRepository) ListByCompany(ctx context.Context, companyID string) ([]entity.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, activeFilter(bson.M{"company_id": companyID}), opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	projects := []entity.Project{}
	if err := cur.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

var _ repository.ProjectRepository = (*ProjectRepository)(nil)
