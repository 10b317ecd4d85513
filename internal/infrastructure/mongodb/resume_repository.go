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

type ResumeRepository struct {
	coll *mongo.Collection
}

func NewResumeRepository(db *mongo.Database) *ResumeRepository {
	return &ResumeRepository{coll: db.Collection(CollResumes)}
}

func (r *ResumeRepository) Create(ctx context.Context, res *entity.Resume) error {
	now := time.Now().UTC()
	res.ID = newID()
	res.CreatedAt = now
	res.UpdatedAt = now
	res.Deleted = false

	_, err := r.coll.InsertOne(ctx, res)
	return err
}

func (r *ResumeRepository) FindByID(ctx context.Context, id string) (*entity.Resume, error) {
	return r.findOne(ctx, activeFilter(bson.M{"_id": id}))
}

func (r *ResumeRepository) FindByIDAny(ctx context.Context, id string) (*entity.Resume, error) {
	return r.findOne(ctx, anyFilter(bson.M{"_id": id}))
}

func (r *ResumeRepository) findOne(ctx context.Context, filter bson.M) (*entity.Resume, error) {
	res := &entity.Resume{}
	if err := r.coll.FindOne(ctx, filter).Decode(res); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("resume not found")
		}
		return nil, err
	}
	return res, nil
}

func (r *ResumeRepository) Update(ctx context.Context, res *entity.Resume) error {
	res.UpdatedAt = time.Now().UTC()
	out, err := r.coll.ReplaceOne(ctx, activeFilter(bson.M{"_id": res.ID}), res)
	if err != nil {
		return err
	}
	if out.MatchedCount == 0 {
		return apperr.NotFound("resume not found")
	}
	return nil
}

func (r *ResumeRepository) SoftDelete(ctx context.Context, id, deletedBy string) error {
	return softDeleteByID(ctx, r.coll, id, deletedBy, "resume")
}

func (r *ResumeRepository) List(ctx context.Context, f repository.ResumeFilter, req repository.PageRequest) (*repository.Page[entity.Resume], error) {
	filter := bson.M{}
	if f.CompanyID != "" {
		filter["company_id"] = f.CompanyID
	}
	if f.ProjectID != "" {
		filter["project_id"] = f.ProjectID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Query != "" {
		rx := bson.M{"$regex": f.Query, "$options": "i"}
		filter["$or"] = bson.A{bson.M{"firstname": rx}, bson.M{"lastname": rx}, bson.M{"mobile": rx}}
	}
	return paginate[entity.Resume](ctx, r.coll, activeFilter(filter), req)
}

func (r *ResumeRepository) ListByCompany(ctx context.Context, companyID string) ([]entity.Resume, error) {
	return r.list(ctx, bson.M{"company_id": companyID})
}

func (r *ResumeRepository) ListByProject(ctx context.Context, projectID string) ([]entity.Resume, error) {
	return r.list(ctx, bson.M{"project_id": projectID})
}

func (r *ResumeRepository) list(ctx context.Context, filter bson.M) ([]entity.Resume, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, activeFilter(filter), opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	resumes := []entity.Resume{}
	if err := cur.All(ctx, &resumes); err != nil {
		return nil, err
	}
	return resumes, nil
}

var _ repository.ResumeRepository = (*ResumeRepository)(nil)
