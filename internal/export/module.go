// Module wiring for the export bounded context.
package export

import (
	apphttp "catalogo_backend/internal/http"
	"catalogo_backend/internal/events"
	"catalogo_backend/internal/selection/session"
	"catalogo_backend/platform/logger"
	"catalogo_backend/platform/validator"
)

// Module is the export bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	service *Service
}

// NewModule creates and initializes the export module. archiver may be
// nil when object storage is not configured.
func NewModule(sessions *session.Store, bus events.Bus, archiver *Archiver, val *validator.Validator, log *logger.Logger) *Module {
	svc := New(sessions, bus, archiver, log)
	h := NewHandler(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "export"
}

// Service returns the service layer for external use.
func (m *Module) Service() *Service {
	return m.service
}

// RegisterRoutes mounts the export route on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/sessions/:token/export", m.handler.Export)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
