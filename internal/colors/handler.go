package colors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"catalogo_backend/platform/httpkit"
	"catalogo_backend/platform/validator"
)

// ColorResponse carries a catalog accent color and a readable text
// color for it.
type ColorResponse struct {
	Color     string `json:"color"`
	TextColor string `json:"textColor"`
}

// SetColorRequest is the payload for changing a catalog accent color.
type SetColorRequest struct {
	Color string `json:"color" validate:"required,hexcolor6"`
}

// Handler handles HTTP requests for catalog colors.
type Handler struct {
	store Store
	val   *validator.Validator
}

// NewHandler creates a new colors handler.
func NewHandler(store Store, val *validator.Validator) *Handler {
	return &Handler{store: store, val: val}
}

// Get returns the accent color of a catalog.
// GET /api/v1/catalogs/:id/color
func (h *Handler) Get(c *gin.Context) {
	catalogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid catalog ID", nil)
		return
	}

	color, err := h.store.Get(c.Request.Context(), catalogID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, ColorResponse{Color: color, TextColor: TextColorFor(color)})
}

// Set changes the accent color of a catalog.
// PUT /api/v1/admin/catalogs/:id/color
func (h *Handler) Set(c *gin.Context) {
	catalogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid catalog ID", nil)
		return
	}

	var req SetColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	if err := h.store.Set(c.Request.Context(), catalogID, req.Color); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, ColorResponse{Color: req.Color, TextColor: TextColorFor(req.Color)})
}
