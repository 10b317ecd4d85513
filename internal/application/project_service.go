package application

import (
	"context"

	"github.com/hiredeck/hiredeck/internal/domain/entity"
	"github.com/hiredeck/hiredeck/internal/domain/repository"
	"github.com/hiredeck/hiredeck/internal/events"
	"github.com/hiredeck/hiredeck/pkg/apperr"
)

// ProjectInput carries the writable project fields.
type ProjectInput struct {
	Name        string `json:"name" binding:"required,min=2,max=120"`
	Description string `json:"description" binding:"max=2000"`
	CompanyID   string `json:"company_id" binding:"required,objectid"`
	IsActive    *bool  `json:"is_active"`
}

// ProjectService owns the project lifecycle. Every write validates the
// parent company is still live first.
type ProjectService struct {
	projects  repository.ProjectRepository
	companies repository.CompanyRepository
	managers  repository.ManagerRepository
	bus       *events.Bus
}

func NewProjectService(
	projects repository.ProjectRepository,
	companies repository.CompanyRepository,
	managers repository.ManagerRepository,
	bus *events.Bus,
) *ProjectService {
	return &ProjectService{projects: projects, companies: companies, managers: managers, bus: bus}
}

// Create inserts the project under an existing company, grants the
// creator the owner role, then publishes projects.CREATE.
func (s *ProjectService) Create(ctx context.Context, in ProjectInput, actorID string) (*entity.Project, error) {
	if _, err := s.companies.FindByID(ctx, in.CompanyID); err != nil {
		return nil, err
	}
	p := &entity.Project{
		Name:        in.Name,
		Description: in.Description,
		CompanyID:   in.CompanyID,
		IsActive:    true,
		CreatedBy:   actorID,
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	owner := &entity.Manager{
		UserID:    actorID,
		Entity:    entity.KindProjects,
		EntityID:  p.ID,
		Role:      entity.RoleOwner,
		CreatedBy: actorID,
	}
	if err := s.managers.Create(ctx, owner); err != nil {
		return nil, err
	}
	s.bus.Publish(ctx, events.Topic{Entity: entity.KindProjects, Kind: events.Create}, p,
		events.Meta{ActorID: actorID})
	return p, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*entity.Project, error) {
	return s.projects.FindByID(ctx, id)
}

// requireGrant checks the actor holds an active grant on the project.
func (s *ProjectService) requireGrant(ctx context.Context, projectID, actorID string) error {
	ok, err := s.managers.ExistsActive(ctx, entity.KindProjects, projectID, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Forbidden("not a manager of this project")
	}
	return nil
}

// Update applies the input; only a manager of the project may update it,
// and moving a project to another company revalidates the new parent.
func (s *ProjectService) Update(ctx context.Context, id string, in ProjectInput, actorID string) (*entity.Project, error) {
	p, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireGrant(ctx, id, actorID); err != nil {
		return nil, err
	}
	if in.CompanyID != p.CompanyID {
		if _, err := s.companies.FindByID(ctx, in.CompanyID); err != nil {
			return nil, err
		}
	}
	p.Name = in.Name
	p.Description = in.Description
	p.CompanyID = in.CompanyID
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	s.bus.Publish(ctx, events.Topic{Entity: entity.KindProjects, Kind: events.Update}, p,
		events.Meta{ActorID: actorID})
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, id, actorID string) error {
	p, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireGrant(ctx, id, actorID); err != nil {
		return err
	}
	if err := s.projects.SoftDelete(ctx, id, actorID); err != nil {
		return err
	}
	s.bus.Publish(ctx, events.Topic{Entity: entity.KindProjects, Kind: events.Delete}, p,
		events.Meta{ActorID: actorID})
	return nil
}

func (s *ProjectService) List(ctx context.Context, query string, req repository.PageRequest) (*repository.Page[entity.Project], error) {
	return s.projects.List(ctx, query, req)
}

// ListByCompany returns the live projects of one company, for the company
// sub-listing endpoint. The company must itself be live.
func (s *ProjectService) ListByCompany(ctx context.Context, companyID string) ([]entity.Project, error) {
	if _, err := s.companies.FindByID(ctx, companyID); err != nil {
		return nil, err
	}
	return s.projects.ListByCompany(ctx, companyID)
}
