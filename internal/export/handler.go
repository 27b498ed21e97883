package export

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalogo_backend/platform/httpkit"
	"catalogo_backend/platform/validator"
)

// Handler handles HTTP requests for quotation exports.
type Handler struct {
	svc *Service
	val *validator.Validator
}

// NewHandler creates a new export handler.
func NewHandler(svc *Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Export renders the session selection as a PDF download.
// POST /api/v1/sessions/:token/export
//
// An empty selection returns 204 and produces nothing, matching the
// export button being a no-op until something is selected.
func (h *Handler) Export(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		httpkit.Error(c, http.StatusBadRequest, "missing session token", nil)
		return
	}

	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.svc.Export(c.Request.Context(), token, req)
	if httpkit.HandleError(c, err) {
		return
	}

	if result.Empty {
		c.Status(http.StatusNoContent)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, "application/pdf", result.PDF)
}
