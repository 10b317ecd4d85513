package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/hiredeck/hiredeck/config"
	"github.com/hiredeck/hiredeck/internal/domain/entity"
	"github.com/hiredeck/hiredeck/internal/infrastructure/mongodb"
	"github.com/hiredeck/hiredeck/pkg/apperr"
	"github.com/hiredeck/hiredeck/pkg/helpers"
)

// Seeds a demo user with one company, one project and one resume so a
// fresh environment has something to click through.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	client, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoConnTimeout)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(cfg.MongoDB)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("failed to ensure indexes: %v", err)
	}

	users := mongodb.NewUserRepository(db)
	companies := mongodb.NewCompanyRepository(db)
	projects := mongodb.NewProjectRepository(db)
	resumes := mongodb.NewResumeRepository(db)
	managers := mongodb.NewManagerRepository(db)

	mobile := "09120000000"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	demo := &entity.User{
		Firstname: "Demo",
		Lastname:  "User",
		Mobile:    mobile,
		Email:     "demo@example.com",
		Password:  hash,
	}
	if err := users.Create(ctx, demo); err != nil {
		if apperr.KindOf(err) != apperr.KindConflict {
			log.Fatalf("failed to seed user: %v", err)
		}
		demo, err = users.FindByMobile(ctx, mobile)
		if err != nil {
			log.Fatalf("failed to resolve existing demo user: %v", err)
		}
	}
	fmt.Printf("seeded user: id=%s mobile=%s password=%s\n", demo.ID, mobile, password)

	company := &entity.Company{Name: "Demo Recruiting Co", IsActive: true, CreatedBy: demo.ID}
	if err := companies.Create(ctx, company); err != nil {
		if apperr.KindOf(err) != apperr.KindConflict {
			log.Fatalf("failed to seed company: %v", err)
		}
		company, err = companies.FindByName(ctx, company.Name)
		if err != nil {
			log.Fatalf("failed to resolve existing demo company: %v", err)
		}
	} else {
		owner := &entity.Manager{
			UserID:    demo.ID,
			Entity:    entity.KindCompanies,
			EntityID:  company.ID,
			Role:      entity.RoleOwner,
			CreatedBy: demo.ID,
		}
		if err := managers.Create(ctx, owner); err != nil {
			log.Fatalf("failed to seed owner grant: %v", err)
		}
	}
	fmt.Printf("seeded company: id=%s name=%q\n", company.ID, company.Name)

	existing, err := projects.ListByCompany(ctx, company.ID)
	if err != nil {
		log.Fatalf("failed to list projects: %v", err)
	}
	if len(existing) == 0 {
		project := &entity.Project{
			Name:        "Backend Hiring 2026",
			Description: "Go engineers for the platform team",
			CompanyID:   company.ID,
			IsActive:    true,
			CreatedBy:   demo.ID,
		}
		if err := projects.Create(ctx, project); err != nil {
			log.Fatalf("failed to seed project: %v", err)
		}
		owner := &entity.Manager{
			UserID:    demo.ID,
			Entity:    entity.KindProjects,
			EntityID:  project.ID,
			Role:      entity.RoleOwner,
			CreatedBy: demo.ID,
		}
		if err := managers.Create(ctx, owner); err != nil {
			log.Fatalf("failed to seed project owner grant: %v", err)
		}

		resume := &entity.Resume{
			CompanyID: company.ID,
			ProjectID: project.ID,
			Firstname: "Jamie",
			Lastname:  "Applicant",
			Mobile:    "09121112233",
			Email:     "jamie@example.com",
			Status:    entity.ResumePending,
			CreatedBy: demo.ID,
		}
		if err := resumes.Create(ctx, resume); err != nil {
			log.Fatalf("failed to seed resume: %v", err)
		}
		fmt.Printf("seeded project: id=%s resume: id=%s\n", project.ID, resume.ID)
	}
}
