package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hiredeck/hiredeck/internal/application"
	"github.com/hiredeck/hiredeck/internal/container"
	handlers "github.com/hiredeck/hiredeck/internal/interface/http"
	"github.com/hiredeck/hiredeck/internal/interface/middleware"
)

// ResumeModule wires candidate application routes including the status
// transition endpoint.
type ResumeModule struct {
	Handler *handlers.ResumeHandler
	Auth    *application.AuthService
}

func NewResumeModule(h *handlers.ResumeHandler, auth *application.AuthService) *ResumeModule {
	return &ResumeModule{Handler: h, Auth: auth}
}

func (m *ResumeModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/resumes")
	auth.Use(middleware.Auth(m.Auth, container.GetJWT()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("", m.Handler.Create)
		auth.GET("", m.Handler.List)
		auth.GET("/:id", m.Handler.Get)
		auth.PUT("/:id", m.Handler.Update)
		auth.PATCH("/:id/status", m.Handler.SetStatus)
		auth.DELETE("/:id", m.Handler.Delete)
	}
}
