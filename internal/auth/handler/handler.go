// Package handler exposes the auth module over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalogo_backend/internal/auth/service"
	"catalogo_backend/internal/auth/transport"
	"catalogo_backend/platform/httpkit"
	"catalogo_backend/platform/validator"
)

// Handler handles HTTP requests for authentication.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new auth handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Login authenticates an admin and returns an access token.
// POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req transport.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.svc.Login(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// AdminCheck reports whether the authenticated caller is an admin.
// GET /api/v1/user/admin
func (h *Handler) AdminCheck(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	httpkit.OK(c, transport.AdminCheckResponse{IsAdmin: identity.HasRole("admin")})
}
