package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hiredeck/hiredeck/internal/application"
	"github.com/hiredeck/hiredeck/internal/domain/entity"
	"github.com/hiredeck/hiredeck/internal/domain/repository"
	"github.com/hiredeck/hiredeck/pkg/response"
	"github.com/hiredeck/hiredeck/pkg/validation"
)

type ResumeHandler struct {
	Svc *application.ResumeService
}

func NewResumeHandler(svc *application.ResumeService) *ResumeHandler {
	return &ResumeHandler{Svc: svc}
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *ResumeHandler) Create(c *gin.Context) {
	var req application.ResumeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	r, err := h.Svc.Create(c.Request.Context(), req, c.GetString("userID"))
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, r, "resume created", nil)
}

func (h *ResumeHandler) Get(c *gin.Context) {
	r, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, r, "resume", nil)
}

func (h *ResumeHandler) Update(c *gin.Context) {
	var req application.ResumeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	r, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req, c.GetString("userID"))
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, r, "resume updated", nil)
}

// SetStatus handles PATCH /resumes/:id/status.
func (h *ResumeHandler) SetStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	r, err := h.Svc.SetStatus(c.Request.Context(), c.Param("id"), entity.ResumeStatus(req.Status), c.GetString("userID"))
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, r, "resume status updated", nil)
}

func (h *ResumeHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Svc.Delete(c.Request.Context(), id, c.GetString("userID")); err != nil {
		response.AppError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"id": id, "deleted": true}, "resume deleted", nil)
}

func (h *ResumeHandler) List(c *gin.Context) {
	filter := repository.ResumeFilter{
		CompanyID: c.Query("company_id"),
		ProjectID: c.Query("project_id"),
		Status:    entity.ResumeStatus(c.Query("status")),
		Query:     c.Query("q"),
	}
	page, err := h.Svc.List(c.Request.Context(), filter, pageRequest(c))
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page, "resumes", nil)
}
