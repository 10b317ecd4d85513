package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hiredeck/hiredeck/internal/application"
	"github.com/hiredeck/hiredeck/internal/domain/entity"
	"github.com/hiredeck/hiredeck/pkg/response"
	"github.com/hiredeck/hiredeck/pkg/validation"
)

// ManagerHandler serves the grant endpoints mounted under every
// manageable entity. The entity kind is fixed per route at registration;
// one handler covers companies and projects alike.
type ManagerHandler struct {
	Svc *application.ManagerService
}

func NewManagerHandler(svc *application.ManagerService) *ManagerHandler {
	return &ManagerHandler{Svc: svc}
}

type assignManagerRequest struct {
	UserID string `json:"user_id" binding:"required,objectid"`
}

// Assign handles POST /:id/managers.
func (h *ManagerHandler) Assign(kind entity.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req assignManagerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
			return
		}
		m, err := h.Svc.Assign(c.Request.Context(), kind, c.Param("id"), req.UserID, c.GetString("userID"))
		if err != nil {
			response.AppError(c, err)
			return
		}
		response.Success(c, http.StatusCreated, m, "manager assigned", nil)
	}
}

// Unassign handles DELETE /:id/managers/:userID.
func (h *ManagerHandler) Unassign(kind entity.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := h.Svc.Unassign(c.Request.Context(), kind, c.Param("id"), c.Param("userID"), c.GetString("userID"))
		if err != nil {
			response.AppError(c, err)
			return
		}
		response.Success[any](c, http.StatusOK, map[string]any{"revoked": true}, "manager revoked", nil)
	}
}

// List handles GET /:id/managers.
func (h *ManagerHandler) List(kind entity.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		grants, err := h.Svc.List(c.Request.Context(), kind, c.Param("id"))
		if err != nil {
			response.AppError(c, err)
			return
		}
		response.Success(c, http.StatusOK, grants, "managers", nil)
	}
}
