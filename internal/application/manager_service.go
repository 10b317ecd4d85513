package application

import (
	"context"

	"github.com/hiredeck/hiredeck/internal/domain/entity"
	"github.com/hiredeck/hiredeck/internal/domain/repository"
	"github.com/hiredeck/hiredeck/internal/events"
	"github.com/hiredeck/hiredeck/pkg/apperr"
)

// targetResolver loads one manageable entity by id, returning it as the
// event payload. NotFound propagates to the caller untouched.
type targetResolver func(ctx context.Context, id string) (any, error)

// ManagerService implements the polymorphic grant operations shared by
// every manageable entity kind. Adding a kind means adding one resolver;
// the grant logic itself never changes.
type ManagerService struct {
	managers  repository.ManagerRepository
	users     repository.UserRepository
	bus       *events.Bus
	resolvers map[entity.Kind]targetResolver
}

func NewManagerService(
	managers repository.ManagerRepository,
	users repository.UserRepository,
	companies repository.CompanyRepository,
	projects repository.ProjectRepository,
	bus *events.Bus,
) *ManagerService {
	return &ManagerService{
		managers: managers,
		users:    users,
		bus:      bus,
		resolvers: map[entity.Kind]targetResolver{
			entity.KindCompanies: func(ctx context.Context, id string) (any, error) {
				return companies.FindByID(ctx, id)
			},
			entity.KindProjects: func(ctx context.Context, id string) (any, error) {
				return projects.FindByID(ctx, id)
			},
		},
	}
}

func (s *ManagerService) resolve(ctx context.Context, kind entity.Kind, id string) (any, error) {
	r, ok := s.resolvers[kind]
	if !ok {
		return nil, apperr.BadRequestf("unknown entity kind %q", kind)
	}
	return r(ctx, id)
}

// requireGrant checks the actor holds an active grant on the entity.
// Owners and managers pass alike; everyone else is Forbidden.
func (s *ManagerService) requireGrant(ctx context.Context, kind entity.Kind, entityID, actorID string) error {
	ok, err := s.managers.ExistsActive(ctx, kind, entityID, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Forbidden("not a manager of this entity")
	}
	return nil
}

// Assign grants userID manager access to the entity. The actor must hold
// a grant themselves. It fails with NotFound when the entity or user does
// not exist, BadRequest when the user is banned, and Conflict when an
// active grant already exists. The unique index on active grants backs
// the Conflict guarantee under concurrent callers; the ExistsActive probe
// only gives the common case a cleaner path.
func (s *ManagerService) Assign(ctx context.Context, kind entity.Kind, entityID, userID, actorID string) (*entity.Manager, error) {
	target, err := s.resolve(ctx, kind, entityID)
	if err != nil {
		return nil, err
	}
	if err := s.requireGrant(ctx, kind, entityID, actorID); err != nil {
		return nil, err
	}
	grantee, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if grantee.IsBanned {
		return nil, apperr.BadRequest("user is banned")
	}
	exists, err := s.managers.ExistsActive(ctx, kind, entityID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("user is already a manager of this entity")
	}
	m := &entity.Manager{
		UserID:    userID,
		Entity:    kind,
		EntityID:  entityID,
		Role:      entity.RoleManager,
		CreatedBy: actorID,
	}
	if err := s.managers.Create(ctx, m); err != nil {
		return nil, err
	}
	s.bus.Publish(ctx, events.Topic{Entity: kind, Kind: events.SetManager}, target,
		events.Meta{ActorID: actorID, SubjectID: userID})
	return m, nil
}

// Unassign revokes userID's manager grant on the entity. A missing grant
// is NotFound; an owner grant is BadRequest, owners cannot be revoked.
func (s *ManagerService) Unassign(ctx context.Context, kind entity.Kind, entityID, userID, actorID string) error {
	target, err := s.resolve(ctx, kind, entityID)
	if err != nil {
		return err
	}
	if err := s.requireGrant(ctx, kind, entityID, actorID); err != nil {
		return err
	}
	grant, err := s.managers.FindActive(ctx, kind, entityID, userID)
	if err != nil {
		return err
	}
	if grant.Role == entity.RoleOwner {
		return apperr.BadRequest("cannot revoke the owner")
	}
	if err := s.managers.SoftDelete(ctx, grant.ID, actorID); err != nil {
		return err
	}
	s.bus.Publish(ctx, events.Topic{Entity: kind, Kind: events.UnsetManager}, target,
		events.Meta{ActorID: actorID, SubjectID: userID})
	return nil
}

// List returns the active grants on the entity with resolved user
// profiles, oldest grant first, so the owner leads the list.
func (s *ManagerService) List(ctx context.Context, kind entity.Kind, entityID string) ([]entity.ManagerWithUser, error) {
	if _, err := s.resolve(ctx, kind, entityID); err != nil {
		return nil, err
	}
	return s.managers.ListActive(ctx, kind, entityID)
}

// IsManagerOf reports whether userID holds any active grant on the entity.
func (s *ManagerService) IsManagerOf(ctx context.Context, kind entity.Kind, entityID, userID string) (bool, error) {
	if !entity.ValidKind(kind) {
		return false, apperr.BadRequestf("unknown entity kind %q", kind)
	}
	return s.managers.ExistsActive(ctx, kind, entityID, userID)
}
