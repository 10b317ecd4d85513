package application

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hiredeck/hiredeck/internal/domain/entity"
	"github.com/hiredeck/hiredeck/internal/domain/repository"
	"github.com/hiredeck/hiredeck/internal/events"
	"github.com/hiredeck/hiredeck/pkg/apperr"
)

// In-memory repository fakes. They model the same contract the Mongo
// implementations honor: active reads skip tombstones, deletes only
// stamp them, and uniqueness is scoped to live documents.

var idSeq int

func nextID() string {
	idSeq++
	return fmt.Sprintf("%024d", idSeq)
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// recorder captures every event a bus publishes on the given topics.
type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) handler(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) all() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Event(nil), r.events...)
}

// recordingBus returns a bus with the recorder subscribed to every topic
// the services publish on.
func recordingBus() (*events.Bus, *recorder) {
	bus := events.NewBus(testLogger())
	rec := &recorder{}
	kinds := []entity.Kind{entity.KindUsers, entity.KindCompanies, entity.KindProjects, entity.KindResumes}
	ops := []events.Kind{events.Create, events.Update, events.Delete, events.SetManager, events.UnsetManager}
	for _, k := range kinds {
		for _, op := range ops {
			bus.Subscribe(events.Topic{Entity: k, Kind: op}, "recorder", rec.handler)
		}
	}
	return bus, rec
}

type memUserRepo struct {
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{users: map[string]*entity.User{}} }

func (m *memUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, e := range m.users {
		if !e.Deleted && e.Mobile == u.Mobile {
			return apperr.Conflict("a user with this mobile already exists")
		}
	}
	u.ID = nextID()
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := m.users[id]
	if !ok || u.Deleted {
		return nil, apperr.NotFound("user not found")
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) FindByIDAny(_ context.Context, id string) (*entity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) FindByMobile(_ context.Context, mobile string) (*entity.User, error) {
	for _, u := range m.users {
		if !u.Deleted && u.Mobile == mobile {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

func (m *memUserRepo) Update(_ context.Context, u *entity.User) error {
	cur, ok := m.users[u.ID]
	if !ok || cur.Deleted {
		return apperr.NotFound("user not found")
	}
	cp := *u
	cp.UpdatedAt = time.Now().UTC()
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserRepo) SetBanned(_ context.Context, id string, banned bool) error {
	u, ok := m.users[id]
	if !ok || u.Deleted {
		return apperr.NotFound("user not found")
	}
	u.IsBanned = banned
	return nil
}

func (m *memUserRepo) SoftDelete(_ context.Context, id, deletedBy string) error {
	u, ok := m.users[id]
	if !ok || u.Deleted {
		return apperr.NotFound("user not found")
	}
	now := time.Now().UTC()
	u.Deleted = true
	u.DeletedAt = &now
	u.DeletedBy = deletedBy
	return nil
}

func (m *memUserRepo) List(_ context.Context, query string, req repository.PageRequest) (*repository.Page[entity.User], error) {
	var items []entity.User
	for _, u := range m.users {
		if u.Deleted {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(u.Firstname+" "+u.Lastname+" "+u.Mobile), strings.ToLower(query)) {
			continue
		}
		items = append(items, *u)
	}
	return repository.NewPage(items, int64(len(items)), req), nil
}

type memCompanyRepo struct {
	companies map[string]*entity.Company
}

func newMemCompanyRepo() *memCompanyRepo {
	return &memCompanyRepo{companies: map[string]*entity.Company{}}
}

func (m *memCompanyRepo) Create(_ context.Context, c *entity.Company) error {
	for _, e := range m.companies {
		if !e.Deleted && e.Name == c.Name {
			return apperr.Conflictf("company %q already exists", c.Name)
		}
	}
	c.ID = nextID()
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	m.companies[c.ID] = &cp
	return nil
}

func (m *memCompanyRepo) FindByID(_ context.Context, id string) (*entity.Company, error) {
	c, ok := m.companies[id]
	if !ok || c.Deleted {
		return nil, apperr.NotFound("company not found")
	}
	cp := *c
	return &cp, nil
}

func (m *memCompanyRepo) FindByIDAny(_ context.Context, id string) (*entity.Company, error) {
	c, ok := m.companies[id]
	if !ok {
		return nil, apperr.NotFound("company not found")
	}
	cp := *c
	return &cp, nil
}

func (m *memCompanyRepo) FindByName(_ context.Context, name string) (*entity.Company, error) {
	for _, c := range m.companies {
		if !c.Deleted && c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("company not found")
}

func (m *memCompanyRepo) Update(_ context.Context, c *entity.Company) error {
	cur, ok := m.companies[c.ID]
	if !ok || cur.Deleted {
		return apperr.NotFound("company not found")
	}
	cp := *c
	cp.UpdatedAt = time.Now().UTC()
	m.companies[c.ID] = &cp
	return nil
}

func (m *memCompanyRepo) SoftDelete(_ context.Context, id, deletedBy string) error {
	c, ok := m.companies[id]
	if !ok || c.Deleted {
		return apperr.NotFound("company not found")
	}
	now := time.Now().UTC()
	c.Deleted = true
	c.DeletedAt = &now
	c.DeletedBy = deletedBy
	return nil
}

func (m *memCompanyRepo) List(_ context.Context, query string, req repository.PageRequest) (*repository.Page[entity.Company], error) {
	var items []entity.Company
	for _, c := range m.companies {
		if c.Deleted {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) {
			continue
		}
		items = append(items, *c)
	}
	return repository.NewPage(items, int64(len(items)), req), nil
}

type memProjectRepo struct {
	projects map[string]*entity.Project
}

func newMemProjectRepo() *memProjectRepo {
	return &memProjectRepo{projects: map[string]*entity.Project{}}
}

func (m *memProjectRepo) Create(_ context.Context, p *entity.Project) error {
	p.ID = nextID()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.projects[p.ID] = &cp
	return nil
}

func (m *memProjectRepo) FindByID(_ context.Context, id string) (*entity.Project, error) {
	p, ok := m.projects[id]
	if !ok || p.Deleted {
		return nil, apperr.NotFound("project not found")
	}
	cp := *p
	return &cp, nil
}

func (m *memProjectRepo) FindByIDAny(_ context.Context, id string) (*entity.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, apperr.NotFound("project not found")
	}
	cp := *p
	return &cp, nil
}

func (m *memProjectRepo) Update(_ context.Context, p *entity.Project) error {
	cur, ok := m.projects[p.ID]
	if !ok || cur.Deleted {
		return apperr.NotFound("project not found")
	}
	cp := *p
	cp.UpdatedAt = time.Now().UTC()
	m.projects[p.ID] = &cp
	return nil
}

func (m *memProjectRepo) SoftDelete(_ context.Context, id, deletedBy string) error {
	p, ok := m.projects[id]
	if !ok || p.Deleted {
		return apperr.NotFound("project not found")
	}
	now := time.Now().UTC()
	p.Deleted = true
	p.DeletedAt = &now
	p.DeletedBy = deletedBy
	return nil
}

func (m *memProjectRepo) List(_ context.Context, query string, req repository.PageRequest) (*repository.Page[entity.Project], error) {
	var items []entity.Project
	for _, p := range m.projects {
		if p.Deleted {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			continue
		}
		items = append(items, *p)
	}
	return repository.NewPage(items, int64(len(items)), req), nil
}

func (m *memProjectRepo) ListByCompany(_ context.Context, companyID string) ([]entity.Project, error) {
	var items []entity.Project
	for _, p := range m.projects {
		if !p.Deleted && p.CompanyID == companyID {
			items = append(items, *p)
		}
	}
	return items, nil
}

type memResumeRepo struct {
	resumes map[string]*entity.Resume
}

func newMemResumeRepo() *memResumeRepo { return &memResumeRepo{resumes: map[string]*entity.Resume{}} }

func (m *memResumeRepo) Create(_ context.Context, r *entity.Resume) error {
	r.ID = nextID()
	r.CreatedAt = time.Now().UTC()
	r.UpdatedAt = r.CreatedAt
	cp := *r
	m.resumes[r.ID] = &cp
	return nil
}

func (m *memResumeRepo) FindByID(_ context.Context, id string) (*entity.Resume, error) {
	r, ok := m.resumes[id]
	if !ok || r.Deleted {
		return nil, apperr.NotFound("resume not found")
	}
	cp := *r
	return &cp, nil
}

func (m *memResumeRepo) FindByIDAny(_ context.Context, id string) (*entity.Resume, error) {
	r, ok := m.resumes[id]
	if !ok {
		return nil, apperr.NotFound("resume not found")
	}
	cp := *r
	return &cp, nil
}

func (m *memResumeRepo) Update(_ context.Context, r *entity.Resume) error {
	cur, ok := m.resumes[r.ID]
	if !ok || cur.Deleted {
		return apperr.NotFound("resume not found")
	}
	cp := *r
	cp.UpdatedAt = time.Now().UTC()
	m.resumes[r.ID] = &cp
	return nil
}

func (m *memResumeRepo) SoftDelete(_ context.Context, id, deletedBy string) error {
	r, ok := m.resumes[id]
	if !ok || r.Deleted {
		return apperr.NotFound("resume not found")
	}
	now := time.Now().UTC()
	r.Deleted = true
	r.DeletedAt = &now
	r.DeletedBy = deletedBy
	return nil
}

func (m *memResumeRepo) List(_ context.Context, f repository.ResumeFilter, req repository.PageRequest) (*repository.Page[entity.Resume], error) {
	var items []entity.Resume
	for _, r := range m.resumes {
		if r.Deleted {
			continue
		}
		if f.CompanyID != "" && r.CompanyID != f.CompanyID {
			continue
		}
		if f.ProjectID != "" && r.ProjectID != f.ProjectID {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		items = append(items, *r)
	}
	return repository.NewPage(items, int64(len(items)), req), nil
}

func (m *memResumeRepo) ListByCompany(_ context.Context, companyID string) ([]entity.Resume, error) {
	var items []entity.Resume
	for _, r := range m.resumes {
		if !r.Deleted && r.CompanyID == companyID {
			items = append(items, *r)
		}
	}
	return items, nil
}

func (m *memResumeRepo) ListByProject(_ context.Context, projectID string) ([]entity.Resume, error) {
	var items []entity.Resume
	for _, r := range m.resumes {
		if !r.Deleted && r.ProjectID == projectID {
			items = append(items, *r)
		}
	}
	return items, nil
}

type memManagerRepo struct {
	grants map[string]*entity.Manager
	users  *memUserRepo
}

func newMemManagerRepo(users *memUserRepo) *memManagerRepo {
	return &memManagerRepo{grants: map[string]*entity.Manager{}, users: users}
}

func (m *memManagerRepo) Create(_ context.Context, g *entity.Manager) error {
	for _, e := range m.grants {
		if !e.Deleted && e.Entity == g.Entity && e.EntityID == g.EntityID && e.UserID == g.UserID {
			return apperr.Conflict("user is already a manager of this entity")
		}
	}
	g.ID = nextID()
	g.CreatedAt = time.Now().UTC()
	g.UpdatedAt = g.CreatedAt
	cp := *g
	m.grants[g.ID] = &cp
	return nil
}

func (m *memManagerRepo) FindActive(_ context.Context, kind entity.Kind, entityID, userID string) (*entity.Manager, error) {
	for _, g := range m.grants {
		if !g.Deleted && g.Entity == kind && g.EntityID == entityID && g.UserID == userID {
			cp := *g
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("manager grant not found")
}

func (m *memManagerRepo) ListActive(_ context.Context, kind entity.Kind, entityID string) ([]entity.ManagerWithUser, error) {
	var out []entity.ManagerWithUser
	for _, g := range m.grants {
		if g.Deleted || g.Entity != kind || g.EntityID != entityID {
			continue
		}
		item := entity.ManagerWithUser{Manager: *g}
		if u, ok := m.users.users[g.UserID]; ok {
			item.User = u.Public()
		}
		out = append(out, item)
	}
	// Oldest grant first so the owner leads.
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.Before(out[i].CreatedAt) || (out[j].CreatedAt.Equal(out[i].CreatedAt) && out[j].ID < out[i].ID) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (m *memManagerRepo) ExistsActive(_ context.Context, kind entity.Kind, entityID, userID string) (bool, error) {
	for _, g := range m.grants {
		if !g.Deleted && g.Entity == kind && g.EntityID == entityID && g.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memManagerRepo) SoftDelete(_ context.Context, id, deletedBy string) error {
	g, ok := m.grants[id]
	if !ok || g.Deleted {
		return apperr.NotFound("manager grant not found")
	}
	now := time.Now().UTC()
	g.Deleted = true
	g.DeletedAt = &now
	g.DeletedBy = deletedBy
	return nil
}

var (
	_ repository.UserRepository    = (*memUserRepo)(nil)
	_ repository.CompanyRepository = (*memCompanyRepo)(nil)
	_ repository.ProjectRepository = (*memProjectRepo)(nil)
	_ repository.ResumeRepository  = (*memResumeRepo)(nil)
	_ repository.ManagerRepository = (*memManagerRepo)(nil)
)
