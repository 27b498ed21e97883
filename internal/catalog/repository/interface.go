package repository

import (
	"context"

	"github.com/google/uuid"
)

// Catalog groups services and packages under a single public page.
type Catalog struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	CreatedAt string    `db:"created_at"`
	UpdatedAt string    `db:"updated_at"`
}

// Service is an individual offering belonging to a catalog.
type Service struct {
	ID          uuid.UUID `db:"id"`
	CatalogID   uuid.UUID `db:"catalog_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	PriceCents  int64     `db:"price_cents"`
	CreatedAt   string    `db:"created_at"`
	UpdatedAt   string    `db:"updated_at"`
}

// Package is a bundle of services sold at its own price.
type Package struct {
	ID          uuid.UUID `db:"id"`
	CatalogID   uuid.UUID `db:"catalog_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	PriceCents  int64     `db:"price_cents"`
	Services    []Service `db:"-"`
	CreatedAt   string    `db:"created_at"`
	UpdatedAt   string    `db:"updated_at"`
}

// CreateCatalogParams contains parameters for creating a catalog.
type CreateCatalogParams struct {
	Name string
}

// UpdateCatalogParams contains parameters for renaming a catalog.
type UpdateCatalogParams struct {
	ID   uuid.UUID
	Name string
}

// CreateServiceParams contains parameters for creating a service.
type CreateServiceParams struct {
	CatalogID   uuid.UUID
	Name        string
	Description string
	PriceCents  int64
}

// UpdateServiceParams contains parameters for updating a service.
// Nil fields are left unchanged.
type UpdateServiceParams struct {
	ID          uuid.UUID
	Name        *string
	Description *string
	PriceCents  *int64
}

// CreatePackageParams contains parameters for creating a package and
// linking its member services in a single transaction.
type CreatePackageParams struct {
	CatalogID   uuid.UUID
	Name        string
	Description string
	PriceCents  int64
	ServiceIDs  []uuid.UUID
}

// UpdatePackageParams contains parameters for updating a package.
// Nil fields are left unchanged; a non-nil ServiceIDs replaces the
// membership list wholesale.
type UpdatePackageParams struct {
	ID          uuid.UUID
	Name        *string
	Description *string
	PriceCents  *int64
	ServiceIDs  *[]uuid.UUID
}

// CatalogReader provides read operations for catalogs.
type CatalogReader interface {
	GetCatalogByID(ctx context.Context, id uuid.UUID) (Catalog, error)
	ListCatalogs(ctx context.Context) ([]Catalog, error)
	CatalogExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// CatalogWriter provides write operations for catalogs.
type CatalogWriter interface {
	CreateCatalog(ctx context.Context, params CreateCatalogParams) (Catalog, error)
	UpdateCatalog(ctx context.Context, params UpdateCatalogParams) (Catalog, error)
	DeleteCatalog(ctx context.Context, id uuid.UUID) (Catalog, error)
}

// ServiceReader provides read operations for services.
type ServiceReader interface {
	GetServiceByID(ctx context.Context, id uuid.UUID) (Service, error)
	ListServicesByCatalog(ctx context.Context, catalogID uuid.UUID) ([]Service, error)
	CountServicesInCatalog(ctx context.Context, catalogID uuid.UUID, ids []uuid.UUID) (int, error)
}

// ServiceWriter provides write operations for services.
type ServiceWriter interface {
	CreateService(ctx context.Context, params CreateServiceParams) (Service, error)
	UpdateService(ctx context.Context, params UpdateServiceParams) (Service, error)
	DeleteService(ctx context.Context, id uuid.UUID) error
}

// PackageReader provides read operations for packages, always with
// their member services attached.
type PackageReader interface {
	GetPackageByID(ctx context.Context, id uuid.UUID) (Package, error)
	ListPackages(ctx context.Context) ([]Package, error)
	ListPackagesByCatalog(ctx context.Context, catalogID uuid.UUID) ([]Package, error)
}

// PackageWriter provides write operations for packages.
type PackageWriter interface {
	CreatePackage(ctx context.Context, params CreatePackageParams) (Package, error)
	UpdatePackage(ctx context.Context, params UpdatePackageParams) (Package, error)
	DeletePackage(ctx context.Context, id uuid.UUID) error
}

// Repository combines all catalog bounded context repository operations.
type Repository interface {
	CatalogReader
	CatalogWriter
	ServiceReader
	ServiceWriter
	PackageReader
	PackageWriter
}
