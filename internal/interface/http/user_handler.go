package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hiredeck/hiredeck/internal/application"
	"github.com/hiredeck/hiredeck/internal/domain/repository"
	"github.com/hiredeck/hiredeck/pkg/response"
	"github.com/hiredeck/hiredeck/pkg/validation"
)

const maxAvatarBytes = 5 << 20

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type setBannedRequest struct {
	Banned *bool `json:"banned" binding:"required"`
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile", nil)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req application.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile updated", nil)
}

func (h *UserHandler) UploadAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing avatar file", nil)
		return
	}
	if file.Size > maxAvatarBytes {
		response.Error[any](c, http.StatusBadRequest, "avatar exceeds 5MB", nil)
		return
	}
	src, err := file.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable avatar file", nil)
		return
	}
	defer func() { _ = src.Close() }()

	u, err := h.Svc.UploadAvatar(c.Request.Context(), c.GetString("userID"), file.Header.Get("Content-Type"), src)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "avatar uploaded", nil)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u.Public(), "user", nil)
}

func (h *UserHandler) SetBanned(c *gin.Context) {
	var req setBannedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	id := c.Param("id")
	if err := h.Svc.SetBanned(c.Request.Context(), id, *req.Banned, c.GetString("userID")); err != nil {
		response.AppError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"id": id, "banned": *req.Banned}, "ban flag updated", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Svc.Delete(c.Request.Context(), id, c.GetString("userID")); err != nil {
		response.AppError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"id": id, "deleted": true}, "user deleted", nil)
}

// Search queries the Elasticsearch user mirror.
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", nil)
}

func (h *UserHandler) List(c *gin.Context) {
	page, err := h.Svc.List(c.Request.Context(), c.Query("q"), pageRequest(c))
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page, "users", nil)
}

// pageRequest reads page and size query params; the repository clamps them.
func pageRequest(c *gin.Context) repository.PageRequest {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	size, _ := strconv.ParseInt(c.DefaultQuery("size", "10"), 10, 64)
	return repository.PageRequest{Page: page, Size: size}
}
