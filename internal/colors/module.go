// Module wiring for the catalog colors bounded context.
package colors

import (
	apphttp "catalogo_backend/internal/http"
	"catalogo_backend/platform/validator"
)

// Module is the colors bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	store   Store
}

// NewModule creates and initializes the colors module around the given store.
func NewModule(store Store, val *validator.Validator) *Module {
	return &Module{
		handler: NewHandler(store, val),
		store:   store,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "colors"
}

// Store returns the color store for external use.
func (m *Module) Store() Store {
	return m.store
}

// RegisterRoutes mounts color routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/catalogs/:id/color", m.handler.Get)
	ctx.Admin.PUT("/catalogs/:id/color", m.handler.Set)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
