package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiredeck/hiredeck/internal/domain/entity"
	"github.com/hiredeck/hiredeck/internal/events"
	"github.com/hiredeck/hiredeck/pkg/apperr"
)

type managerFixture struct {
	svc       *ManagerService
	users     *memUserRepo
	companies *memCompanyRepo
	projects  *memProjectRepo
	managers  *memManagerRepo
	rec       *recorder

	owner   *entity.User
	grantee *entity.User
	company *entity.Company
}

func newManagerFixture(t *testing.T) *managerFixture {
	t.Helper()
	ctx := context.Background()

	users := newMemUserRepo()
	companies := newMemCompanyRepo()
	projects := newMemProjectRepo()
	managers := newMemManagerRepo(users)
	bus, rec := recordingBus()

	owner := &entity.User{Firstname: "Owner", Lastname: "One", Mobile: "09120000001"}
	require.NoError(t, users.Create(ctx, owner))
	grantee := &entity.User{Firstname: "Grantee", Lastname: "Two", Mobile: "09120000002"}
	require.NoError(t, users.Create(ctx, grantee))

	company := &entity.Company{Name: "Acme", IsActive: true, CreatedBy: owner.ID}
	require.NoError(t, companies.Create(ctx, company))
	require.NoError(t, managers.Create(ctx, &entity.Manager{
		UserID: owner.ID, Entity: entity.KindCompanies, EntityID: company.ID,
		Role: entity.RoleOwner, CreatedBy: owner.ID,
	}))

	return &managerFixture{
		svc:       NewManagerService(managers, users, companies, projects, bus),
		users:     users,
		companies: companies,
		projects:  projects,
		managers:  managers,
		rec:       rec,
		owner:     owner,
		grantee:   grantee,
		company:   company,
	}
}

func TestAssignCreatesGrantAndPublishes(t *testing.T) {
	f := newManagerFixture(t)
	ctx := context.Background()

	m, err := f.svc.Assign(ctx, entity.KindCompanies, f.company.ID, f.grantee.ID, f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, m.Role)
	assert.Equal(t, f.grantee.ID, m.UserID)
	assert.Equal(t, f.owner.ID, m.CreatedBy)

	evts := f.rec.all()
	require.Len(t, evts, 1)
	e := evts[0]
	assert.Equal(t, events.Topic{Entity: entity.KindCompanies, Kind: events.SetManager}, e.Topic)
	assert.Equal(t, f.owner.ID, e.Meta.ActorID)
	assert.Equal(t, f.grantee.ID, e.Meta.SubjectID)
	payload, ok := e.Payload.(*entity.Company)
	require.True(t, ok, "payload should be the managed entity")
	assert.Equal(t, f.company.ID, payload.ID)
}

func TestAssignDuplicateIsConflict(t *testing.T) {
	f := newManagerFixture(t)
	ctx := context.Background()

	_, err := f.svc.Assign(ctx, entity.KindCompanies, f.company.ID, f.grantee.ID, f.owner.ID)
	require.NoError(t, err)

	_, err = f.svc.Assign(ctx, entity.KindCompanies, f.company.ID, f.grantee.ID, f.owner.ID)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Len(t, f.rec.all(), 1, "failed assign must not publish")
}

func TestAssignMissingEntityIsNotFound(t *testing.T) {
	f := newManagerFixture(t)

	_, err := f.svc.Assign(context.Background(), entity.KindCompanies, "000000000000000000000000", f.grantee.ID, f.owner.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Empty(t, f.rec.all())
}

func TestAssignMissingUserIsNotFound(t *testing.T) {
	f := newManagerFixture(t)

	_, err := f.svc.Assign(context.Background(), entity.KindCompanies, f.company.ID, "000000000000000000000000", f.owner.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestAssignBannedUserIsBadRequest(t *testing.T) {
	f := newManagerFixture(t)
	ctx := context.Background()
	require.NoError(t, f.users.SetBanned(ctx, f.grantee.ID, true))

	_, err := f.svc.Assign(ctx, entity.KindCompanies, f.company.ID, f.grantee.ID, f.owner.ID)
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
}

func TestAssignUnknownKindIsBadRequest(t *testing.T) {
	f := newManagerFixture(t)

	_, err := f.svc.Assign(context.Background(), "widgets", f.company.ID, f.grantee.ID, f.owner.ID)
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
}

func TestAssignByNonManagerIsForbidden(t *testing.T) {
	f := newManagerFixture(t)
	ctx := context.Background()

	outsider := &entity.User{Firstname: "Out", Lastname: "Sider", Mobile: "09120000003"}
	require.NoError(t, f.users.Create(ctx, outsider))

	_, err := f.svc.Assign(ctx, entity.KindCompanies, f.company.ID, f.grantee.ID, outsider.ID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	assert.Empty(t, f.rec.all())
}

func TestUnassignByNonManagerIsForbidden(t *testing.T) {
	f := newManagerFixture(t)
	ctx := context.Background()

	_, err := f.svc.Assign(ctx, entity.KindCompanies, f.company.ID, f.grantee.ID, f.owner.ID)
	require.NoError(t, err)

	outsider := &entity.User{Firstname: "Out", Lastname: "Sider", Mobile: "09120000003"}
	require.NoError(t, f.users.Create(ctx, outsider))

	err = f.svc.Unassign(ctx, entity.KindCompanies, f.company.ID, f.grantee.ID, outsider.ID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	ok, err := f.svc.IsManagerOf(ctx, entity.KindCompanies, f.company.ID, f.grantee.ID)
	require.NoError(t, err)
	assert.True(t, ok, "grant must survive the attempt")
}

func TestUnassignRevokesAndPublishes(t *testing.T) {
	f := newManagerFixture(t)
	ctx := context.Background()

	_, err := f.svc.Assign(ctx, entity.KindCompanies, f.company.ID, f.grantee.ID, f.owner.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Unassign(ctx, entity.KindCompanies, f.company.ID, f.grantee.ID, f.owner.ID))

	ok, err := f.svc.IsManagerOf(ctx, entity.KindCompanies, f.company.ID, f.grantee.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	evts := f.rec.all()
	require.Len(t, evts, 2)
	assert.Equal(t, events.UnsetManager, evts[1].Topic.Kind)
	assert.Equal(t, f.grantee.ID, evts[1].Meta.SubjectID)
}

func TestUnassignMissingGrantIsNotFound(t *testing.T) {
	f := newManagerFixture(t)

	err := f.svc.Unassign(context.Background(), entity.KindCompanies, f.company.ID, f.grantee.ID, f.owner.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUnassignOwnerIsBadRequest(t *testing.T) {
	f := newManagerFixture(t)

	err := f.svc.Unassign(context.Background(), entity.KindCompanies, f.company.ID, f.owner.ID, f.owner.ID)
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))

	ok, err := f.svc.IsManagerOf(context.Background(), entity.KindCompanies, f.company.ID, f.owner.ID)
	require.NoError(t, err)
	assert.True(t, ok, "owner grant must survive the attempt")
}

func TestReassignAfterRevokeSucceeds(t *testing.T) {
	f := newManagerFixture(t)
	ctx := context.Background()

	_, err := f.svc.Assign(ctx, entity.KindCompanies, f.company.ID, f.grantee.ID, f.owner.ID)
	require.NoError(t, err)
	require.NoError(t, f.svc.Unassign(ctx, entity.KindCompanies, f.company.ID, f.grantee.ID, f.owner.ID))

	_, err = f.svc.Assign(ctx, entity.KindCompanies, f.company.ID, f.grantee.ID, f.owner.ID)
	require.NoError(t, err, "revoked grant must not block a new one")

	grants, err := f.svc.List(ctx, entity.KindCompanies, f.company.ID)
	require.NoError(t, err)
	assert.Len(t, grants, 2, "owner plus the fresh grant; the tombstoned one stays hidden")
}

func TestListResolvesProfilesOwnerFirst(t *testing.T) {
	f := newManagerFixture(t)
	ctx := context.Background()

	_, err := f.svc.Assign(ctx, entity.KindCompanies, f.company.ID, f.grantee.ID, f.owner.ID)
	require.NoError(t, err)

	grants, err := f.svc.List(ctx, entity.KindCompanies, f.company.ID)
	require.NoError(t, err)
	require.Len(t, grants, 2)
	assert.Equal(t, entity.RoleOwner, grants[0].Role)
	assert.Equal(t, "Owner", grants[0].User.Firstname)
	assert.Equal(t, entity.RoleManager, grants[1].Role)
	assert.Equal(t, "Grantee", grants[1].User.Firstname)
}

func TestListMissingEntityIsNotFound(t *testing.T) {
	f := newManagerFixture(t)

	_, err := f.svc.List(context.Background(), entity.KindCompanies, "000000000000000000000000")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestGrantsPerKindAreIndependent(t *testing.T) {
	f := newManagerFixture(t)
	ctx := context.Background()

	p := &entity.Project{Name: "Backend", CompanyID: f.company.ID, IsActive: true, CreatedBy: f.owner.ID}
	require.NoError(t, f.projects.Create(ctx, p))
	require.NoError(t, f.managers.Create(ctx, &entity.Manager{
		UserID: f.owner.ID, Entity: entity.KindProjects, EntityID: p.ID,
		Role: entity.RoleOwner, CreatedBy: f.owner.ID,
	}))

	_, err := f.svc.Assign(ctx, entity.KindProjects, p.ID, f.grantee.ID, f.owner.ID)
	require.NoError(t, err)

	ok, err := f.svc.IsManagerOf(ctx, entity.KindCompanies, f.company.ID, f.grantee.ID)
	require.NoError(t, err)
	assert.False(t, ok, "a project grant must not leak to the company")
}
