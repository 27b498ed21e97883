// Package events re-exports the platform event bus for convenience and
// declares the domain events the modules exchange.
package events

import (
	platformevents "catalogo_backend/platform/events"
	"catalogo_backend/platform/logger"

	"github.com/google/uuid"
)

// Bus is a type alias to the platform Bus interface.
type Bus = platformevents.Bus

// Event is a type alias to the platform Event interface.
type Event = platformevents.Event

// Handler is a type alias to the platform Handler interface.
type Handler = platformevents.Handler

// InMemoryBus is a type alias to the platform InMemoryBus.
type InMemoryBus = platformevents.InMemoryBus

// NewInMemoryBus creates a new in-memory event bus.
// This is a convenience re-export from platform/events.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}

// CatalogCreated is published when an admin creates a catalog.
type CatalogCreated struct {
	platformevents.BaseEvent
	CatalogID uuid.UUID
	Name      string
}

// EventName returns the event identifier.
func (CatalogCreated) EventName() string { return "catalog.created" }

// CatalogDeleted is published when an admin deletes a catalog.
type CatalogDeleted struct {
	platformevents.BaseEvent
	CatalogID uuid.UUID
	Name      string
}

// EventName returns the event identifier.
func (CatalogDeleted) EventName() string { return "catalog.deleted" }

// QuoteExported is published when a visitor exports a quotation PDF.
type QuoteExported struct {
	platformevents.BaseEvent
	CatalogID  uuid.UUID
	Filename   string
	Items      int
	TotalCents int64
}

// EventName returns the event identifier.
func (QuoteExported) EventName() string { return "quote.exported" }

// NewCatalogCreated builds a CatalogCreated event with the current timestamp.
func NewCatalogCreated(id uuid.UUID, name string) CatalogCreated {
	return CatalogCreated{BaseEvent: platformevents.NewBaseEvent(), CatalogID: id, Name: name}
}

// NewCatalogDeleted builds a CatalogDeleted event with the current timestamp.
func NewCatalogDeleted(id uuid.UUID, name string) CatalogDeleted {
	return CatalogDeleted{BaseEvent: platformevents.NewBaseEvent(), CatalogID: id, Name: name}
}

// NewQuoteExported builds a QuoteExported event with the current timestamp.
func NewQuoteExported(catalogID uuid.UUID, filename string, items int, totalCents int64) QuoteExported {
	return QuoteExported{
		BaseEvent:  platformevents.NewBaseEvent(),
		CatalogID:  catalogID,
		Filename:   filename,
		Items:      items,
		TotalCents: totalCents,
	}
}
