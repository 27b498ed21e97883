// Package transport defines request and response DTOs for the selection module.
package transport

import "github.com/google/uuid"

// ToggleRequest flips membership of one item.
type ToggleRequest struct {
	Key string `json:"key" validate:"required"`
}

// QuantityRequest adjusts the quantity of a selected item. A zero delta
// is a valid no-op, so the field carries no validation.
type QuantityRequest struct {
	Key   string `json:"key" validate:"required"`
	Delta int    `json:"delta"`
}

// UpdateViewRequest mutates the presentation state. Omitted fields are
// left unchanged.
type UpdateViewRequest struct {
	Filter        *string `json:"filter" validate:"omitempty,oneof=all service package"`
	SortBy        *string `json:"sortBy" validate:"omitempty,oneof=none name price"`
	SortDir       *string `json:"sortDir" validate:"omitempty,oneof=asc desc"`
	UsePackages   *bool   `json:"usePackages"`
	UseQuantities *bool   `json:"useQuantities"`
}

// CatalogInfo identifies the catalog a session is pinned to.
type CatalogInfo struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ViewState is the API representation of the session presentation state.
type ViewState struct {
	Filter        string `json:"filter"`
	SortBy        string `json:"sortBy"`
	SortDir       string `json:"sortDir"`
	UsePackages   bool   `json:"usePackages"`
	UseQuantities bool   `json:"useQuantities"`
}

// DisplayItem is one row of the derived item list, annotated with the
// caller's selection state.
type DisplayItem struct {
	Key         string    `json:"key"`
	Kind        string    `json:"kind"`
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"priceCents"`
	Services    []string  `json:"services,omitempty"`
	Selected    bool      `json:"selected"`
	Quantity    int       `json:"quantity"`
}

// SelectedEntry is one selected line in insertion order.
type SelectedEntry struct {
	Key            string `json:"key"`
	Kind           string `json:"kind"`
	Name           string `json:"name"`
	PriceCents     int64  `json:"priceCents"`
	Quantity       int    `json:"quantity"`
	LineTotalCents int64  `json:"lineTotalCents"`
}

// SessionResponse is the full session view returned by every session
// operation, so the client never has to merge partial updates.
type SessionResponse struct {
	Token      string          `json:"token"`
	Catalog    CatalogInfo     `json:"catalog"`
	View       ViewState       `json:"view"`
	Items      []DisplayItem   `json:"items"`
	Selected   []SelectedEntry `json:"selected"`
	Count      int             `json:"count"`
	TotalCents int64           `json:"totalCents"`
}
