package application

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/hiredeck/hiredeck/internal/domain/entity"
	"github.com/hiredeck/hiredeck/internal/domain/repository"
	"github.com/hiredeck/hiredeck/internal/events"
	"github.com/hiredeck/hiredeck/internal/events/subscribers"
	"github.com/hiredeck/hiredeck/pkg/apperr"
	"github.com/hiredeck/hiredeck/pkg/helpers"
)

const companyCacheTTL = 5 * time.Minute

// companyCacheEntry is the Redis value for a cached company. The entity's
// tombstone fields are json:"-" so they would not survive a round trip;
// the envelope carries the deleted flag explicitly, letting reads refuse a
// tombstone even when the invalidator missed the delete.
type companyCacheEntry struct {
	Company *entity.Company `json:"company"`
	Deleted bool            `json:"deleted"`
}

// CompanyInput carries the writable company fields.
type CompanyInput struct {
	Name     string `json:"name" binding:"required,min=2,max=120"`
	LogoURL  string `json:"logo_url" binding:"omitempty,url"`
	IsActive *bool  `json:"is_active"`
}

// CompanyService owns the company lifecycle. Creation also seeds the
// creator's owner grant, so an entity is never left without an owner.
type CompanyService struct {
	companies repository.CompanyRepository
	managers  repository.ManagerRepository
	bus       *events.Bus
	rdb       *redis.Client
	logger    *logrus.Logger
}

func NewCompanyService(
	companies repository.CompanyRepository,
	managers repository.ManagerRepository,
	bus *events.Bus,
	rdb *redis.Client,
	logger *logrus.Logger,
) *CompanyService {
	return &CompanyService{companies: companies, managers: managers, bus: bus, rdb: rdb, logger: logger}
}

// Create inserts the company, grants the creator the owner role, then
// publishes companies.CREATE. A live company with the same name yields
// Conflict, but a name held only by deleted companies is free to reuse.
func (s *CompanyService) Create(ctx context.Context, in CompanyInput, actorID string) (*entity.Company, error) {
	c := &entity.Company{
		Name:      in.Name,
		LogoURL:   in.LogoURL,
		IsActive:  true,
		CreatedBy: actorID,
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if err := s.companies.Create(ctx, c); err != nil {
		return nil, err
	}
	owner := &entity.Manager{
		UserID:    actorID,
		Entity:    entity.KindCompanies,
		EntityID:  c.ID,
		Role:      entity.RoleOwner,
		CreatedBy: actorID,
	}
	if err := s.managers.Create(ctx, owner); err != nil {
		// The company exists either way; surface the grant failure rather
		// than leave the caller thinking creation failed entirely.
		s.logger.WithError(err).WithField("company_id", c.ID).Error("owner grant failed")
		return nil, err
	}
	s.bus.Publish(ctx, events.Topic{Entity: entity.KindCompanies, Kind: events.Create}, c,
		events.Meta{ActorID: actorID})
	return c, nil
}

// Get resolves one company, read-through cached in Redis.
func (s *CompanyService) Get(ctx context.Context, id string) (*entity.Company, error) {
	if s.rdb != nil {
		var cached companyCacheEntry
		hit, err := helpers.RedisGetJSON(ctx, s.rdb, subscribers.CompanyCacheKey(id), &cached)
		if err != nil {
			s.logger.WithError(err).Warn("company cache read failed")
		} else if hit {
			if cached.Deleted {
				return nil, apperr.NotFound("company not found")
			}
			if cached.Company != nil {
				return cached.Company, nil
			}
		}
	}
	c, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.rdb != nil {
		entry := companyCacheEntry{Company: c}
		if err := helpers.RedisSetJSON(ctx, s.rdb, subscribers.CompanyCacheKey(id), entry, companyCacheTTL); err != nil {
			s.logger.WithError(err).Warn("company cache write failed")
		}
	}
	return c, nil
}

// requireGrant checks the actor holds an active grant on the company.
func (s *CompanyService) requireGrant(ctx context.Context, companyID, actorID string) error {
	ok, err := s.managers.ExistsActive(ctx, entity.KindCompanies, companyID, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Forbidden("not a manager of this company")
	}
	return nil
}

// Update applies the input to an existing company. Only a manager of the
// company may update it. Renaming onto another live company's name is
// Conflict.
func (s *CompanyService) Update(ctx context.Context, id string, in CompanyInput, actorID string) (*entity.Company, error) {
	c, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireGrant(ctx, id, actorID); err != nil {
		return nil, err
	}
	if in.Name != c.Name {
		_, err := s.companies.FindByName(ctx, in.Name)
		switch {
		case err == nil:
			return nil, apperr.Conflictf("company %q already exists", in.Name)
		case apperr.KindOf(err) != apperr.KindNotFound:
			return nil, err
		}
	}
	c.Name = in.Name
	c.LogoURL = in.LogoURL
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if err := s.companies.Update(ctx, c); err != nil {
		return nil, err
	}
	s.bus.Publish(ctx, events.Topic{Entity: entity.KindCompanies, Kind: events.Update}, c,
		events.Meta{ActorID: actorID})
	return c, nil
}

// Delete tombstones the company and publishes companies.DELETE. Grants on
// the company stay in place; access checks fail anyway once the entity
// resolver stops finding it.
func (s *CompanyService) Delete(ctx context.Context, id, actorID string) error {
	c, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireGrant(ctx, id, actorID); err != nil {
		return err
	}
	if err := s.companies.SoftDelete(ctx, id, actorID); err != nil {
		return err
	}
	if s.rdb != nil {
		// Write-through tombstone: even if the cache invalidator misses the
		// DELETE event, reads refuse the entry for the rest of its TTL.
		entry := companyCacheEntry{Deleted: true}
		if err := helpers.RedisSetJSON(ctx, s.rdb, subscribers.CompanyCacheKey(id), entry, companyCacheTTL); err != nil {
			s.logger.WithError(err).Warn("company cache tombstone failed")
		}
	}
	s.bus.Publish(ctx, events.Topic{Entity: entity.KindCompanies, Kind: events.Delete}, c,
		events.Meta{ActorID: actorID})
	return nil
}

// List pages through live companies, optionally filtered by a name query.
func (s *CompanyService) List(ctx context.Context, query string, req repository.PageRequest) (*repository.Page[entity.Company], error) {
	return s.companies.List(ctx, query, req)
}
