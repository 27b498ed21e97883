package notification

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"catalogo_backend/internal/events"
	apphttp "catalogo_backend/internal/http"
	"catalogo_backend/platform/httpkit"
	"catalogo_backend/platform/logger"
)

// Module is the notification bounded context module implementing http.Module.
type Module struct {
	feed *Feed
	log  *logger.Logger
}

// NewModule creates and initializes the notification module.
func NewModule(log *logger.Logger) *Module {
	return &Module{
		feed: NewFeed(),
		log:  log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "notification"
}

// Feed returns the in-app notification feed.
func (m *Module) Feed() *Feed {
	return m.feed
}

// RegisterHandlers subscribes to the domain events surfaced in the feed.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.QuoteExported{}.EventName(), m)
	bus.Subscribe(events.CatalogCreated{}.EventName(), m)
	bus.Subscribe(events.CatalogDeleted{}.EventName(), m)
}

// Handle routes events to feed entries.
func (m *Module) Handle(_ context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.QuoteExported:
		m.feed.Add("export", "Reporte generado, revisa Descargas")
		m.log.Debug("export notification queued", "filename", e.Filename)
	case events.CatalogCreated:
		m.feed.Add("catalog", fmt.Sprintf("Catálogo %q creado", e.Name))
	case events.CatalogDeleted:
		m.feed.Add("catalog", fmt.Sprintf("Catálogo %q eliminado", e.Name))
	}

	return nil
}

// RegisterRoutes mounts the notification feed on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Admin.GET("/notifications", m.list)
}

func (m *Module) list(c *gin.Context) {
	httpkit.OK(c, gin.H{"notifications": m.feed.List()})
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

// Compile-time check that Module handles events
var _ events.Handler = (*Module)(nil)
