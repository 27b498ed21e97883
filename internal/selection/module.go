// Package selection provides the selection bounded context module.
// A visitor on the public catalog page opens a session, toggles items
// in and out of their selection, tunes quantities and presentation,
// and finally exports the result as a quotation PDF.
package selection

import (
	apphttp "catalogo_backend/internal/http"
	"catalogo_backend/internal/selection/handler"
	"catalogo_backend/internal/selection/service"
	"catalogo_backend/internal/selection/session"
	"catalogo_backend/platform/logger"
	"catalogo_backend/platform/validator"
)

// Module is the selection bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	store   *session.Store
}

// NewModule creates and initializes the selection module.
func NewModule(catalogs service.CatalogProvider, store *session.Store, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(catalogs, store, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		store:   store,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "selection"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Store returns the session store for collaborating modules.
func (m *Module) Store() *session.Store {
	return m.store
}

// RegisterRoutes mounts selection session routes on the provided router context.
// All routes are public: sessions belong to anonymous visitors and are
// addressed by unguessable tokens.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/catalogs/:id/sessions", m.handler.CreateSession)

	sessions := ctx.V1.Group("/sessions")
	sessions.GET("/:token", m.handler.GetSession)
	sessions.POST("/:token/toggle", m.handler.Toggle)
	sessions.POST("/:token/quantity", m.handler.ChangeQuantity)
	sessions.PUT("/:token/view", m.handler.UpdateView)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
