package application

import (
	"context"
	"time"

	"github.com/hiredeck/hiredeck/internal/domain/entity"
	"github.com/hiredeck/hiredeck/internal/domain/repository"
	"github.com/hiredeck/hiredeck/internal/events"
	"github.com/hiredeck/hiredeck/pkg/apperr"
)

// ResumeInput carries the writable resume fields.
type ResumeInput struct {
	CompanyID     string `json:"company_id" binding:"required,objectid"`
	ProjectID     string `json:"project_id" binding:"required,objectid"`
	Firstname     string `json:"firstname" binding:"required,min=2,max=60"`
	Lastname      string `json:"lastname" binding:"required,min=2,max=60"`
	Gender        string `json:"gender" binding:"omitempty,oneof=male female other"`
	Email         string `json:"email" binding:"omitempty,email"`
	Mobile        string `json:"mobile" binding:"required,mobile"`
	BirthYear     int    `json:"birth_year" binding:"omitempty,min=1900,max=2100"`
	ResidenceCity string `json:"residence_city" binding:"max=80"`
	WorkCity      string `json:"work_city" binding:"max=80"`
	Education     string `json:"education" binding:"max=120"`
	MinSalary     int    `json:"min_salary" binding:"omitempty,min=0"`
	MaxSalary     int    `json:"max_salary" binding:"omitempty,min=0"`
}

// ResumeService owns candidate applications and their status pipeline.
type ResumeService struct {
	resumes   repository.ResumeRepository
	companies repository.CompanyRepository
	projects  repository.ProjectRepository
	bus       *events.Bus
}

func NewResumeService(
	resumes repository.ResumeRepository,
	companies repository.CompanyRepository,
	projects repository.ProjectRepository,
	bus *events.Bus,
) *ResumeService {
	return &ResumeService{resumes: resumes, companies: companies, projects: projects, bus: bus}
}

// checkParents verifies the company is live, the project is live, and the
// project actually belongs to the company.
func (s *ResumeService) checkParents(ctx context.Context, companyID, projectID string) error {
	if _, err := s.companies.FindByID(ctx, companyID); err != nil {
		return err
	}
	p, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if p.CompanyID != companyID {
		return apperr.BadRequest("project does not belong to company")
	}
	return nil
}

// Create inserts a resume in the pending stage and publishes
// resumes.CREATE.
func (s *ResumeService) Create(ctx context.Context, in ResumeInput, actorID string) (*entity.Resume, error) {
	if err := s.checkParents(ctx, in.CompanyID, in.ProjectID); err != nil {
		return nil, err
	}
	r := &entity.Resume{
		CompanyID:     in.CompanyID,
		ProjectID:     in.ProjectID,
		Firstname:     in.Firstname,
		Lastname:      in.Lastname,
		Gender:        in.Gender,
		Email:         in.Email,
		Mobile:        in.Mobile,
		BirthYear:     in.BirthYear,
		ResidenceCity: in.ResidenceCity,
		WorkCity:      in.WorkCity,
		Education:     in.Education,
		MinSalary:     in.MinSalary,
		MaxSalary:     in.MaxSalary,
		Status:        entity.ResumePending,
		CreatedBy:     actorID,
	}
	r.StatusHistory = []entity.StatusChange{{
		Status:    entity.ResumePending,
		ChangedBy: actorID,
		ChangedAt: time.Now().UTC(),
	}}
	if err := s.resumes.Create(ctx, r); err != nil {
		return nil, err
	}
	s.bus.Publish(ctx, events.Topic{Entity: entity.KindResumes, Kind: events.Create}, r,
		events.Meta{ActorID: actorID})
	return r, nil
}

func (s *ResumeService) Get(ctx context.Context, id string) (*entity.Resume, error) {
	return s.resumes.FindByID(ctx, id)
}

// Update rewrites the candidate fields. Status does not change here; use
// SetStatus so every transition lands in the history.
func (s *ResumeService) Update(ctx context.Context, id string, in ResumeInput, actorID string) (*entity.Resume, error) {
	r, err := s.resumes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.CompanyID != r.CompanyID || in.ProjectID != r.ProjectID {
		if err := s.checkParents(ctx, in.CompanyID, in.ProjectID); err != nil {
			return nil, err
		}
	}
	r.CompanyID = in.CompanyID
	r.ProjectID = in.ProjectID
	r.Firstname = in.Firstname
	r.Lastname = in.Lastname
	r.Gender = in.Gender
	r.Email = in.Email
	r.Mobile = in.Mobile
	r.BirthYear = in.BirthYear
	r.ResidenceCity = in.ResidenceCity
	r.WorkCity = in.WorkCity
	r.Education = in.Education
	r.MinSalary = in.MinSalary
	r.MaxSalary = in.MaxSalary
	if err := s.resumes.Update(ctx, r); err != nil {
		return nil, err
	}
	s.bus.Publish(ctx, events.Topic{Entity: entity.KindResumes, Kind: events.Update}, r,
		events.Meta{ActorID: actorID})
	return r, nil
}

// SetStatus moves the resume to a new pipeline stage and appends the
// transition to its history. An unknown stage is BadRequest; re-applying
// the current stage is a no-op Conflict so accidental double clicks do not
// pad the history.
func (s *ResumeService) SetStatus(ctx context.Context, id string, status entity.ResumeStatus, actorID string) (*entity.Resume, error) {
	if !entity.ValidResumeStatus(status) {
		return nil, apperr.BadRequestf("unknown resume status %q", status)
	}
	r, err := s.resumes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status == status {
		return nil, apperr.Conflictf("resume is already %s", status)
	}
	r.Status = status
	r.StatusHistory = append(r.StatusHistory, entity.StatusChange{
		Status:    status,
		ChangedBy: actorID,
		ChangedAt: time.Now().UTC(),
	})
	if err := s.resumes.Update(ctx, r); err != nil {
		return nil, err
	}
	s.bus.Publish(ctx, events.Topic{Entity: entity.KindResumes, Kind: events.Update}, r,
		events.Meta{ActorID: actorID})
	return r, nil
}

func (s *ResumeService) Delete(ctx context.Context, id, actorID string) error {
	r, err := s.resumes.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.resumes.SoftDelete(ctx, id, actorID); err != nil {
		return err
	}
	s.bus.Publish(ctx, events.Topic{Entity: entity.KindResumes, Kind: events.Delete}, r,
		events.Meta{ActorID: actorID})
	return nil
}

func (s *ResumeService) List(ctx context.Context, f repository.ResumeFilter, req repository.PageRequest) (*repository.Page[entity.Resume], error) {
	if f.Status != "" && !entity.ValidResumeStatus(f.Status) {
		return nil, apperr.BadRequestf("unknown resume status %q", f.Status)
	}
	return s.resumes.List(ctx, f, req)
}

// ListByCompany feeds the company sub-listing endpoint.
func (s *ResumeService) ListByCompany(ctx context.Context, companyID string) ([]entity.Resume, error) {
	if _, err := s.companies.FindByID(ctx, companyID); err != nil {
		return nil, err
	}
	return s.resumes.ListByCompany(ctx, companyID)
}

// ListByProject feeds the project sub-listing endpoint.
func (s *ResumeService) ListByProject(ctx context.Context, projectID string) ([]entity.Resume, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.resumes.ListByProject(ctx, projectID)
}
