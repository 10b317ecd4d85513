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

type resumeFixture struct {
	svc     *ResumeService
	rec     *recorder
	company *entity.Company
	project *entity.Project
	actorID string
}

func newResumeFixture(t *testing.T) *resumeFixture {
	t.Helper()
	ctx := context.Background()

	companies := newMemCompanyRepo()
	projects := newMemProjectRepo()
	resumes := newMemResumeRepo()
	bus, rec := recordingBus()

	company := &entity.Company{Name: "Acme", IsActive: true}
	require.NoError(t, companies.Create(ctx, company))
	project := &entity.Project{Name: "Backend", CompanyID: company.ID, IsActive: true}
	require.NoError(t, projects.Create(ctx, project))

	return &resumeFixture{
		svc:     NewResumeService(resumes, companies, projects, bus),
		rec:     rec,
		company: company,
		project: project,
		actorID: nextID(),
	}
}

func validResumeInput(f *resumeFixture) ResumeInput {
	return ResumeInput{
		CompanyID: f.company.ID,
		ProjectID: f.project.ID,
		Firstname: "Jamie",
		Lastname:  "Doe",
		Mobile:    "09121234567",
	}
}

func TestCreateResumeStartsPendingWithHistory(t *testing.T) {
	f := newResumeFixture(t)

	r, err := f.svc.Create(context.Background(), validResumeInput(f), f.actorID)
	require.NoError(t, err)
	assert.Equal(t, entity.ResumePending, r.Status)
	require.Len(t, r.StatusHistory, 1)
	assert.Equal(t, entity.ResumePending, r.StatusHistory[0].Status)
	assert.Equal(t, f.actorID, r.StatusHistory[0].ChangedBy)

	evts := f.rec.all()
	require.Len(t, evts, 1)
	assert.Equal(t, events.Topic{Entity: entity.KindResumes, Kind: events.Create}, evts[0].Topic)
}

func TestCreateResumeMissingParentsIsNotFound(t *testing.T) {
	f := newResumeFixture(t)
	ctx := context.Background()

	in := validResumeInput(f)
	in.CompanyID = "000000000000000000000000"
	_, err := f.svc.Create(ctx, in, f.actorID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	in = validResumeInput(f)
	in.ProjectID = "000000000000000000000000"
	_, err = f.svc.Create(ctx, in, f.actorID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCreateResumeMismatchedParentsIsBadRequest(t *testing.T) {
	f := newResumeFixture(t)
	ctx := context.Background()

	companies := newMemCompanyRepo()
	projects := newMemProjectRepo()
	resumes := newMemResumeRepo()
	bus, _ := recordingBus()

	a := &entity.Company{Name: "Acme", IsActive: true}
	require.NoError(t, companies.Create(ctx, a))
	b := &entity.Company{Name: "Globex", IsActive: true}
	require.NoError(t, companies.Create(ctx, b))
	p := &entity.Project{Name: "Backend", CompanyID: a.ID, IsActive: true}
	require.NoError(t, projects.Create(ctx, p))

	svc := NewResumeService(resumes, companies, projects, bus)
	in := ResumeInput{CompanyID: b.ID, ProjectID: p.ID, Firstname: "Jamie", Lastname: "Doe", Mobile: "09121234567"}

	_, err := svc.Create(ctx, in, f.actorID)
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
}

func TestSetStatusAppendsHistoryAndPublishes(t *testing.T) {
	f := newResumeFixture(t)
	ctx := context.Background()

	r, err := f.svc.Create(ctx, validResumeInput(f), f.actorID)
	require.NoError(t, err)

	updated, err := f.svc.SetStatus(ctx, r.ID, entity.ResumeReviewing, f.actorID)
	require.NoError(t, err)
	assert.Equal(t, entity.ResumeReviewing, updated.Status)
	require.Len(t, updated.StatusHistory, 2)
	assert.Equal(t, entity.ResumeReviewing, updated.StatusHistory[1].Status)

	evts := f.rec.all()
	require.Len(t, evts, 2)
	assert.Equal(t, events.Update, evts[1].Topic.Kind)
}

func TestSetStatusRejectsUnknownAndRepeatedStages(t *testing.T) {
	f := newResumeFixture(t)
	ctx := context.Background()

	r, err := f.svc.Create(ctx, validResumeInput(f), f.actorID)
	require.NoError(t, err)

	_, err = f.svc.SetStatus(ctx, r.ID, "archived", f.actorID)
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))

	_, err = f.svc.SetStatus(ctx, r.ID, entity.ResumePending, f.actorID)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestDeleteResumeHidesItFromListings(t *testing.T) {
	f := newResumeFixture(t)
	ctx := context.Background()

	r, err := f.svc.Create(ctx, validResumeInput(f), f.actorID)
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, r.ID, f.actorID))

	_, err = f.svc.Get(ctx, r.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	byProject, err := f.svc.ListByProject(ctx, f.project.ID)
	require.NoError(t, err)
	assert.Empty(t, byProject)
}
