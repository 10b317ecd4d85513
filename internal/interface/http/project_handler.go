package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hiredeck/hiredeck/internal/application"
	"github.com/hiredeck/hiredeck/pkg/response"
	"github.com/hiredeck/hiredeck/pkg/validation"
)

type ProjectHandler struct {
	Svc     *application.ProjectService
	Resumes *application.ResumeService
}

func NewProjectHandler(svc *application.ProjectService, resumes *application.ResumeService) *ProjectHandler {
	return &ProjectHandler{Svc: svc, Resumes: resumes}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req application.ProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), req, c.GetString("userID"))
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "project created", nil)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "project", nil)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	var req application.ProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req, c.GetString("userID"))
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "project updated", nil)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Svc.Delete(c.Request.Context(), id, c.GetString("userID")); err != nil {
		response.AppError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"id": id, "deleted": true}, "project deleted", nil)
}

func (h *ProjectHandler) List(c *gin.Context) {
	page, err := h.Svc.List(c.Request.Context(), c.Query("q"), pageRequest(c))
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page, "projects", nil)
}

// ListResumes handles GET /projects/:id/resumes.
func (h *ProjectHandler) ListResumes(c *gin.Context) {
	items, err := h.Resumes.ListByProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, "project resumes", nil)
}
