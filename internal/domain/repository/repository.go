// Package repository defines the persistence interfaces consumed by the
// application layer. Every read excludes tombstoned documents unless the
// method name says Any; every delete is a soft delete. Implementations
// return apperr kinds (NotFound, Conflict) for the failures callers must
// distinguish.
package repository

import (
	"context"

	"github.com/hiredeck/hiredeck/internal/domain/entity"
)

// UserRepository persists user identities.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	// FindByIDAny also resolves tombstoned users (administrative path).
	FindByIDAny(ctx context.Context, id string) (*entity.User, error)
	FindByMobile(ctx context.Context, mobile string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	SetBanned(ctx context.Context, id string, banned bool) error
	SoftDelete(ctx context.Context, id, deletedBy string) error
	List(ctx context.Context, query string, req PageRequest) (*Page[entity.User], error)
}

// CompanyRepository persists companies. Name uniqueness is scoped to
// non-deleted documents.
type CompanyRepository interface {
	Create(ctx context.Context, c *entity.Company) error
	FindByID(ctx context.Context, id string) (*entity.Company, error)
	FindByIDAny(ctx context.Context, id string) (*entity.Company, error)
	// FindByName resolves an active company by its natural key; NotFound
	// when no active company carries the name.
	FindByName(ctx context.Context, name string) (*entity.Company, error)
	Update(ctx context.Context, c *entity.Company) error
	SoftDelete(ctx context.Context, id, deletedBy string) error
	List(ctx context.Context, query string, req PageRequest) (*Page[entity.Company], error)
}

// ProjectRepository persists projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *entity.Project) error
	FindByID(ctx context.Context, id string) (*entity.Project, error)
	FindByIDAny(ctx context.Context, id string) (*entity.Project, error)
	Update(ctx context.Context, p *entity.Project) error
	SoftDelete(ctx context.Context, id, deletedBy string) error
	List(ctx context.Context, query string, req PageRequest) (*Page[entity.Project], error)
	ListByCompany(ctx context.Context, companyID string) ([]entity.Project, error)
}

// ResumeFilter narrows resume listings.
type ResumeFilter struct {
	CompanyID string
	ProjectID string
	Status    entity.ResumeStatus
	Query     string
}

// ResumeRepository persists candidate applications.
type ResumeRepository interface {
	Create(ctx context.Context, r *entity.Resume) error
	FindByID(ctx context.Context, id string) (*entity.Resume, error)
	FindByIDAny(ctx context.Context, id string) (*entity.Resume, error)
	Update(ctx context.Context, r *entity.Resume) error
	SoftDelete(ctx context.Context, id, deletedBy string) error
	List(ctx context.Context, f ResumeFilter, req PageRequest) (*Page[entity.Resume], error)
	ListByCompany(ctx context.Context, companyID string) ([]entity.Resume, error)
	ListByProject(ctx context.Context, projectID string) ([]entity.Resume, error)
}

// ManagerRepository persists polymorphic manager grants. Create must fail
// with Conflict when an active grant already links the same
// (entity, entity_id, user_id) triple, even under concurrent callers.
type ManagerRepository interface {
	Create(ctx context.Context, m *entity.Manager) error
	// FindActive resolves the active grant for one user on one entity;
	// NotFound when none exists.
	FindActive(ctx context.Context, kind entity.Kind, entityID, userID string) (*entity.Manager, error)
	// ListActive returns active grants with resolved public user profiles.
	ListActive(ctx context.Context, kind entity.Kind, entityID string) ([]entity.ManagerWithUser, error)
	ExistsActive(ctx context.Context, kind entity.Kind, entityID, userID string) (bool, error)
	SoftDelete(ctx context.Context, id, deletedBy string) error
}
