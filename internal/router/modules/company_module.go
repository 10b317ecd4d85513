package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hiredeck/hiredeck/internal/application"
	"github.com/hiredeck/hiredeck/internal/container"
	"github.com/hiredeck/hiredeck/internal/domain/entity"
	handlers "github.com/hiredeck/hiredeck/internal/interface/http"
	"github.com/hiredeck/hiredeck/internal/interface/middleware"
)

// CompanyModule wires company CRUD, its manager grant endpoints and the
// project/resume sub-listings.
type CompanyModule struct {
	Handler  *handlers.CompanyHandler
	Managers *handlers.ManagerHandler
	Auth     *application.AuthService
}

func NewCompanyModule(h *handlers.CompanyHandler, managers *handlers.ManagerHandler, auth *application.AuthService) *CompanyModule {
	return &CompanyModule{Handler: h, Managers: managers, Auth: auth}
}

func (m *CompanyModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/companies")
	auth.Use(middleware.Auth(m.Auth, container.GetJWT()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("", m.Handler.Create)
		auth.GET("", m.Handler.List)
		auth.GET("/:id", m.Handler.Get)
		auth.PUT("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)

		auth.GET("/:id/managers", m.Managers.List(entity.KindCompanies))
		auth.POST("/:id/managers", m.Managers.Assign(entity.KindCompanies))
		auth.DELETE("/:id/managers/:userID", m.Managers.Unassign(entity.KindCompanies))

		auth.GET("/:id/projects", m.Handler.ListProjects)
		auth.GET("/:id/resumes", m.Handler.ListResumes)
	}
}
