// Package catalog provides the catalog bounded context module.
// It manages catalogs together with the services and packages a
// visitor can select from on the public catalog page.
package catalog

import (
	apphttp "catalogo_backend/internal/http"
	"catalogo_backend/internal/catalog/handler"
	"catalogo_backend/internal/catalog/repository"
	"catalogo_backend/internal/catalog/service"
	"catalogo_backend/internal/events"
	"catalogo_backend/platform/logger"
	"catalogo_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the catalog module with all its dependencies.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public catalog page aggregate
	ctx.V1.GET("/catalogs/:id", m.handler.GetAggregate)

	// Admin-only CRUD endpoints
	catalogGroup := ctx.Admin.Group("/catalogs")
	catalogGroup.GET("", m.handler.ListCatalogs)
	catalogGroup.POST("", m.handler.CreateCatalog)
	catalogGroup.PUT("/:id", m.handler.UpdateCatalog)
	catalogGroup.DELETE("/:id", m.handler.DeleteCatalog)
	catalogGroup.POST("/:id/services", m.handler.CreateService)

	serviceGroup := ctx.Admin.Group("/services")
	serviceGroup.PUT("/:id", m.handler.UpdateService)
	serviceGroup.DELETE("/:id", m.handler.DeleteService)

	packageGroup := ctx.Admin.Group("/packages")
	packageGroup.GET("", m.handler.ListPackages)
	packageGroup.POST("", m.handler.CreatePackage)
	packageGroup.PUT("/:id", m.handler.UpdatePackage)
	packageGroup.DELETE("/:id", m.handler.DeletePackage)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
