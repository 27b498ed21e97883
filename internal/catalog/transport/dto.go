// Package transport defines request and response DTOs for the catalog module.
package transport

import "github.com/google/uuid"

// CreateCatalogRequest is the payload for creating a catalog.
type CreateCatalogRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// UpdateCatalogRequest is the payload for renaming a catalog.
type UpdateCatalogRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// CreateServiceRequest is the payload for adding a service to a catalog.
type CreateServiceRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=5000"`
	PriceCents  int64  `json:"priceCents" validate:"min=0"`
}

// UpdateServiceRequest is the payload for updating a service.
// Omitted fields are left unchanged.
type UpdateServiceRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	PriceCents  *int64  `json:"priceCents" validate:"omitempty,min=0"`
}

// CreatePackageRequest is the payload for creating a package.
type CreatePackageRequest struct {
	CatalogID   uuid.UUID   `json:"catalogId" validate:"required"`
	Name        string      `json:"name" validate:"required,min=1,max=200"`
	Description string      `json:"description" validate:"max=5000"`
	PriceCents  int64       `json:"priceCents" validate:"min=0"`
	ServiceIDs  []uuid.UUID `json:"serviceIds" validate:"omitempty,dive,required"`
}

// UpdatePackageRequest is the payload for updating a package.
// Omitted fields are left unchanged; a present serviceIds replaces the
// membership list.
type UpdatePackageRequest struct {
	Name        *string      `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string      `json:"description" validate:"omitempty,max=5000"`
	PriceCents  *int64       `json:"priceCents" validate:"omitempty,min=0"`
	ServiceIDs  *[]uuid.UUID `json:"serviceIds" validate:"omitempty,dive,required"`
}

// CatalogResponse is the API representation of a catalog.
type CatalogResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

// ServiceResponse is the API representation of a service.
type ServiceResponse struct {
	ID          uuid.UUID `json:"id"`
	CatalogID   uuid.UUID `json:"catalogId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"priceCents"`
}

// PackageResponse is the API representation of a package with its
// member services.
type PackageResponse struct {
	ID          uuid.UUID         `json:"id"`
	CatalogID   uuid.UUID         `json:"catalogId"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	PriceCents  int64             `json:"priceCents"`
	Services    []ServiceResponse `json:"services"`
}

// CatalogAggregateResponse is the public catalog page payload: the
// catalog plus everything a visitor can select from.
type CatalogAggregateResponse struct {
	ID       uuid.UUID         `json:"id"`
	Name     string            `json:"name"`
	Services []ServiceResponse `json:"services"`
	Packages []PackageResponse `json:"packages"`
}
