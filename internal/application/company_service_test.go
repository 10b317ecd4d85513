package application

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiredeck/hiredeck/internal/domain/entity"
	"github.com/hiredeck/hiredeck/internal/events"
	"github.com/hiredeck/hiredeck/pkg/apperr"
)

type companyFixture struct {
	svc       *CompanyService
	companies *memCompanyRepo
	managers  *memManagerRepo
	rec       *recorder
	actor     *entity.User
}

func newCompanyFixture(t *testing.T) *companyFixture {
	t.Helper()
	users := newMemUserRepo()
	companies := newMemCompanyRepo()
	managers := newMemManagerRepo(users)
	bus, rec := recordingBus()

	actor := &entity.User{Firstname: "Ada", Lastname: "Admin", Mobile: "09120000009"}
	require.NoError(t, users.Create(context.Background(), actor))

	return &companyFixture{
		svc:       NewCompanyService(companies, managers, bus, nil, testLogger()),
		companies: companies,
		managers:  managers,
		rec:       rec,
		actor:     actor,
	}
}

func TestCreateCompanyGrantsOwnerAndPublishes(t *testing.T) {
	f := newCompanyFixture(t)
	ctx := context.Background()

	c, err := f.svc.Create(ctx, CompanyInput{Name: "Acme"}, f.actor.ID)
	require.NoError(t, err)
	assert.True(t, c.IsActive)
	assert.Equal(t, f.actor.ID, c.CreatedBy)

	grant, err := f.managers.FindActive(ctx, entity.KindCompanies, c.ID, f.actor.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleOwner, grant.Role)

	evts := f.rec.all()
	require.Len(t, evts, 1)
	assert.Equal(t, events.Topic{Entity: entity.KindCompanies, Kind: events.Create}, evts[0].Topic)
	assert.Equal(t, f.actor.ID, evts[0].Meta.ActorID)
}

func TestCreateCompanyDuplicateNameIsConflict(t *testing.T) {
	f := newCompanyFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, CompanyInput{Name: "Acme"}, f.actor.ID)
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, CompanyInput{Name: "Acme"}, f.actor.ID)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestDeletedCompanyFreesItsName(t *testing.T) {
	f := newCompanyFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, CompanyInput{Name: "Acme"}, f.actor.ID)
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, first.ID, f.actor.ID))

	second, err := f.svc.Create(ctx, CompanyInput{Name: "Acme"}, f.actor.ID)
	require.NoError(t, err, "tombstoned company must not hold the name")
	assert.NotEqual(t, first.ID, second.ID)

	_, err = f.svc.Get(ctx, first.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUpdateCompanyRenameOntoLiveNameIsConflict(t *testing.T) {
	f := newCompanyFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, CompanyInput{Name: "Acme"}, f.actor.ID)
	require.NoError(t, err)
	other, err := f.svc.Create(ctx, CompanyInput{Name: "Globex"}, f.actor.ID)
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, other.ID, CompanyInput{Name: "Acme"}, f.actor.ID)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestUpdateCompanyPublishesUpdate(t *testing.T) {
	f := newCompanyFixture(t)
	ctx := context.Background()

	c, err := f.svc.Create(ctx, CompanyInput{Name: "Acme"}, f.actor.ID)
	require.NoError(t, err)

	inactive := false
	updated, err := f.svc.Update(ctx, c.ID, CompanyInput{Name: "Acme Corp", IsActive: &inactive}, f.actor.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", updated.Name)
	assert.False(t, updated.IsActive)

	evts := f.rec.all()
	require.Len(t, evts, 2)
	assert.Equal(t, events.Update, evts[1].Topic.Kind)
}

func TestCompanyCacheEntryRoundTripsDeletedFlag(t *testing.T) {
	// The entity's tombstone fields are json:"-", so caching the entity
	// directly would silently drop the deleted flag. The envelope must
	// carry it through a marshal/unmarshal round trip.
	raw, err := json.Marshal(companyCacheEntry{
		Company: &entity.Company{Name: "Acme"},
		Deleted: true,
	})
	require.NoError(t, err)

	var got companyCacheEntry
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.True(t, got.Deleted)
	require.NotNil(t, got.Company)
	assert.Equal(t, "Acme", got.Company.Name)
}

func TestSoftDeletedCompanyReadableWithTombstones(t *testing.T) {
	f := newCompanyFixture(t)
	ctx := context.Background()

	c, err := f.svc.Create(ctx, CompanyInput{Name: "Acme"}, f.actor.ID)
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, c.ID, f.actor.ID))

	_, err = f.companies.FindByID(ctx, c.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	got, err := f.companies.FindByIDAny(ctx, c.ID)
	require.NoError(t, err, "tombstoned record must stay reachable by direct id lookup")
	assert.True(t, got.Deleted)
	assert.Equal(t, f.actor.ID, got.DeletedBy)
}

func TestWriteCompanyByNonManagerIsForbidden(t *testing.T) {
	f := newCompanyFixture(t)
	ctx := context.Background()

	c, err := f.svc.Create(ctx, CompanyInput{Name: "Acme"}, f.actor.ID)
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, c.ID, CompanyInput{Name: "Acme Corp"}, "000000000000000000000099")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	err = f.svc.Delete(ctx, c.ID, "000000000000000000000099")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	assert.Len(t, f.rec.all(), 1, "forbidden writes must not publish")
}

func TestDeleteCompanyPublishesDeleteWithEntityPayload(t *testing.T) {
	f := newCompanyFixture(t)
	ctx := context.Background()

	c, err := f.svc.Create(ctx, CompanyInput{Name: "Acme"}, f.actor.ID)
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, c.ID, f.actor.ID))

	evts := f.rec.all()
	require.Len(t, evts, 2)
	assert.Equal(t, events.Delete, evts[1].Topic.Kind)
	payload, ok := evts[1].Payload.(*entity.Company)
	require.True(t, ok)
	assert.Equal(t, c.ID, payload.ID)

	err = f.svc.Delete(ctx, c.ID, f.actor.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err), "second delete must not find the tombstone")
	assert.Len(t, f.rec.all(), 2, "failed delete must not publish")
}
