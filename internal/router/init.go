package router

import (
	"github.com/hiredeck/hiredeck/internal/application"
	"github.com/hiredeck/hiredeck/internal/container"
	"github.com/hiredeck/hiredeck/internal/infrastructure/mongodb"
	handlers "github.com/hiredeck/hiredeck/internal/interface/http"
	"github.com/hiredeck/hiredeck/internal/router/modules"
)

// InitModules builds repositories, services and handlers from the
// container singletons and registers every feature module on the registry.
// Called once during startup, after the container is populated.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	db := container.GetMongo()
	logger := container.GetLogger()
	bus := container.GetBus()

	users := mongodb.NewUserRepository(db)
	companies := mongodb.NewCompanyRepository(db)
	projects := mongodb.NewProjectRepository(db)
	resumes := mongodb.NewResumeRepository(db)
	managers := mongodb.NewManagerRepository(db)

	authSvc := application.NewAuthService(
		users,
		container.GetRedis(),
		container.GetJWT(),
		bus,
		container.GetRabbitPub(),
		logger,
		cfg.RefreshTTL,
	)
	userSvc := application.NewUserService(
		users,
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetRedis(),
		container.GetES(),
		cfg.ESIndexPrefix+"-users",
		bus,
		logger,
	)
	managerSvc := application.NewManagerService(managers, users, companies, projects, bus)
	companySvc := application.NewCompanyService(companies, managers, bus, container.GetRedis(), logger)
	projectSvc := application.NewProjectService(projects, companies, managers, bus)
	resumeSvc := application.NewResumeService(resumes, companies, projects, bus)

	authHandler := handlers.NewAuthHandler(authSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	userHandler := handlers.NewUserHandler(userSvc, logger)
	managerHandler := handlers.NewManagerHandler(managerSvc)
	companyHandler := handlers.NewCompanyHandler(companySvc, projectSvc, resumeSvc)
	projectHandler := handlers.NewProjectHandler(projectSvc, resumeSvc)
	resumeHandler := handlers.NewResumeHandler(resumeSvc)

	r.Add(modules.NewAuthModule(authHandler, authSvc))
	r.Add(modules.NewUserModule(userHandler, authSvc))
	r.Add(modules.NewCompanyModule(companyHandler, managerHandler, authSvc))
	r.Add(modules.NewProjectModule(projectHandler, managerHandler, authSvc))
	r.Add(modules.NewResumeModule(resumeHandler, authSvc))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
