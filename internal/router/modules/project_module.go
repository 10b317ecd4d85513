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

// ProjectModule wires project CRUD, its manager grant endpoints and the
// resume sub-listing.
type ProjectModule struct {
	Handler  *handlers.ProjectHandler
	Managers *handlers.ManagerHandler
	Auth     *application.AuthService
}

func NewProjectModule(h *handlers.ProjectHandler, managers *handlers.ManagerHandler, auth *application.AuthService) *ProjectModule {
	return &ProjectModule{Handler: h, Managers: managers, Auth: auth}
}

func (m *ProjectModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/projects")
	auth.Use(middleware.Auth(m.Auth, container.GetJWT()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("", m.Handler.Create)
		auth.GET("", m.Handler.List)
		auth.GET("/:id", m.Handler.Get)
		auth.PUT("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)

		auth.GET("/:id/managers", m.Managers.List(entity.KindProjects))
		auth.POST("/:id/managers", m.Managers.Assign(entity.KindProjects))
		auth.DELETE("/:id/managers/:userID", m.Managers.Unassign(entity.KindProjects))

		auth.GET("/:id/resumes", m.Handler.ListResumes)
	}
}
