package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hiredeck/hiredeck/internal/application"
	"github.com/hiredeck/hiredeck/pkg/response"
	"github.com/hiredeck/hiredeck/pkg/validation"
)

type CompanyHandler struct {
	Svc      *application.CompanyService
	Projects *application.ProjectService
	Resumes  *application.ResumeService
}

func NewCompanyHandler(svc *application.CompanyService, projects *application.ProjectService, resumes *application.ResumeService) *CompanyHandler {
	return &CompanyHandler{Svc: svc, Projects: projects, Resumes: resumes}
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var req application.CompanyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	co, err := h.Svc.Create(c.Request.Context(), req, c.GetString("userID"))
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, co, "company created", nil)
}

func (h *CompanyHandler) Get(c *gin.Context) {
	co, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, co, "company", nil)
}

func (h *CompanyHandler) Update(c *gin.Context) {
	var req application.CompanyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	co, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req, c.GetString("userID"))
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, co, "company updated", nil)
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Svc.Delete(c.Request.Context(), id, c.GetString("userID")); err != nil {
		response.AppError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"id": id, "deleted": true}, "company deleted", nil)
}

func (h *CompanyHandler) List(c *gin.Context) {
	page, err := h.Svc.List(c.Request.Context(), c.Query("q"), pageRequest(c))
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page, "companies", nil)
}

// ListProjects handles GET /companies/:id/projects.
func (h *CompanyHandler) ListProjects(c *gin.Context) {
	items, err := h.Projects.ListByCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, "company projects", nil)
}

// ListResumes handles GET /companies/:id/resumes.
func (h *CompanyHandler) ListResumes(c *gin.Context) {
	items, err := h.Resumes.ListByCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, "company resumes", nil)
}
