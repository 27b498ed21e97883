// Package handler exposes selection sessions over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"catalogo_backend/internal/selection/service"
	"catalogo_backend/internal/selection/transport"
	"catalogo_backend/platform/httpkit"
	"catalogo_backend/platform/validator"
)

// Handler handles HTTP requests for selection sessions.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidCatalogID = "invalid catalog ID"
	msgMissingToken     = "missing session token"
)

// New creates a new selection handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// CreateSession opens a selection session over a catalog.
// POST /api/v1/catalogs/:id/sessions
func (h *Handler) CreateSession(c *gin.Context) {
	catalogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidCatalogID, nil)
		return
	}

	result, err := h.svc.CreateSession(c.Request.Context(), catalogID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// GetSession returns the current session view.
// GET /api/v1/sessions/:token
func (h *Handler) GetSession(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		httpkit.Error(c, http.StatusBadRequest, msgMissingToken, nil)
		return
	}

	result, err := h.svc.GetSession(token)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Toggle flips membership of one item.
// POST /api/v1/sessions/:token/toggle
func (h *Handler) Toggle(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		httpkit.Error(c, http.StatusBadRequest, msgMissingToken, nil)
		return
	}

	var req transport.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Toggle(token, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ChangeQuantity adjusts the quantity of a selected item.
// POST /api/v1/sessions/:token/quantity
func (h *Handler) ChangeQuantity(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		httpkit.Error(c, http.StatusBadRequest, msgMissingToken, nil)
		return
	}

	var req transport.QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.ChangeQuantity(token, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateView applies presentation changes to the session.
// PUT /api/v1/sessions/:token/view
func (h *Handler) UpdateView(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		httpkit.Error(c, http.StatusBadRequest, msgMissingToken, nil)
		return
	}

	var req transport.UpdateViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.UpdateView(token, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
