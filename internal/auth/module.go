// Package auth provides the authentication bounded context module.
// It issues access tokens for the catalog administration endpoints.
package auth

import (
	apphttp "catalogo_backend/internal/http"
	"catalogo_backend/internal/auth/handler"
	"catalogo_backend/internal/auth/repository"
	"catalogo_backend/internal/auth/service"
	"catalogo_backend/platform/config"
	"catalogo_backend/platform/logger"
	"catalogo_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the auth module with all its dependencies.
func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts auth routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Login is public but rate limited harder than the rest of the API
	ctx.V1.POST("/auth/login", ctx.AuthRateLimiter.RateLimit(), m.handler.Login)

	ctx.Protected.GET("/user/admin", m.handler.AdminCheck)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
