package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"catalogo_backend/platform/apperr"
)

const (
	catalogNotFoundMessage = "catalog not found"
	serviceNotFoundMessage = "service not found"
	packageNotFoundMessage = "package not found"
)

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetCatalogByID retrieves a catalog by its ID.
func (r *Repo) GetCatalogByID(ctx context.Context, id uuid.UUID) (Catalog, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM catalogs
		WHERE id = $1`

	var cat Catalog
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query, id).Scan(&cat.ID, &cat.Name, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Catalog{}, apperr.NotFound(catalogNotFoundMessage)
		}
		return Catalog{}, fmt.Errorf("get catalog by id: %w", err)
	}

	cat.CreatedAt = createdAt.Format(time.RFC3339)
	cat.UpdatedAt = updatedAt.Format(time.RFC3339)

	return cat, nil
}

// ListCatalogs retrieves all catalogs in creation order.
func (r *Repo) ListCatalogs(ctx context.Context) ([]Catalog, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM catalogs
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list catalogs: %w", err)
	}
	defer rows.Close()

	var results []Catalog
	for rows.Next() {
		var cat Catalog
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&cat.ID, &cat.Name, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan catalog: %w", err)
		}
		cat.CreatedAt = createdAt.Format(time.RFC3339)
		cat.UpdatedAt = updatedAt.Format(time.RFC3339)
		results = append(results, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalogs: %w", err)
	}

	return results, nil
}

// CatalogExists checks if a catalog exists by ID.
func (r *Repo) CatalogExists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM catalogs WHERE id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check catalog exists: %w", err)
	}

	return exists, nil
}

// CreateCatalog creates a new catalog.
func (r *Repo) CreateCatalog(ctx context.Context, params CreateCatalogParams) (Catalog, error) {
	query := `
		INSERT INTO catalogs (name)
		VALUES ($1)
		RETURNING id, name, created_at, updated_at`

	var cat Catalog
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query, params.Name).Scan(&cat.ID, &cat.Name, &createdAt, &updatedAt)
	if err != nil {
		return Catalog{}, fmt.Errorf("create catalog: %w", err)
	}

	cat.CreatedAt = createdAt.Format(time.RFC3339)
	cat.UpdatedAt = updatedAt.Format(time.RFC3339)

	return cat, nil
}

// UpdateCatalog renames an existing catalog.
func (r *Repo) UpdateCatalog(ctx context.Context, params UpdateCatalogParams) (Catalog, error) {
	query := `
		UPDATE catalogs SET name = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, name, created_at, updated_at`

	var cat Catalog
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query, params.ID, params.Name).Scan(&cat.ID, &cat.Name, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Catalog{}, apperr.NotFound(catalogNotFoundMessage)
		}
		return Catalog{}, fmt.Errorf("update catalog: %w", err)
	}

	cat.CreatedAt = createdAt.Format(time.RFC3339)
	cat.UpdatedAt = updatedAt.Format(time.RFC3339)

	return cat, nil
}

// DeleteCatalog removes a catalog and, via cascade, its services and
// packages. The deleted row is returned so callers can report it.
func (r *Repo) DeleteCatalog(ctx context.Context, id uuid.UUID) (Catalog, error) {
	query := `
		DELETE FROM catalogs
		WHERE id = $1
		RETURNING id, name, created_at, updated_at`

	var cat Catalog
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query, id).Scan(&cat.ID, &cat.Name, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Catalog{}, apperr.NotFound(catalogNotFoundMessage)
		}
		return Catalog{}, fmt.Errorf("delete catalog: %w", err)
	}

	cat.CreatedAt = createdAt.Format(time.RFC3339)
	cat.UpdatedAt = updatedAt.Format(time.RFC3339)

	return cat, nil
}

// GetServiceByID retrieves a service by its ID.
func (r *Repo) GetServiceByID(ctx context.Context, id uuid.UUID) (Service, error) {
	query := `
		SELECT id, catalog_id, name, description, price_cents, created_at, updated_at
		FROM services
		WHERE id = $1`

	var svc Service
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&svc.ID, &svc.CatalogID, &svc.Name, &svc.Description, &svc.PriceCents, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Service{}, apperr.NotFound(serviceNotFoundMessage)
		}
		return Service{}, fmt.Errorf("get service by id: %w", err)
	}

	svc.CreatedAt = createdAt.Format(time.RFC3339)
	svc.UpdatedAt = updatedAt.Format(time.RFC3339)

	return svc, nil
}

// ListServicesByCatalog retrieves the services of a catalog in creation order.
func (r *Repo) ListServicesByCatalog(ctx context.Context, catalogID uuid.UUID) ([]Service, error) {
	query := `
		SELECT id, catalog_id, name, description, price_cents, created_at, updated_at
		FROM services
		WHERE catalog_id = $1
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, catalogID)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	return scanServices(rows)
}

// CountServicesInCatalog counts how many of the given service IDs
// belong to the given catalog. Used to validate package membership.
func (r *Repo) CountServicesInCatalog(ctx context.Context, catalogID uuid.UUID, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := `SELECT COUNT(*) FROM services WHERE catalog_id = $1 AND id = ANY($2)`

	var count int
	if err := r.pool.QueryRow(ctx, query, catalogID, ids).Scan(&count); err != nil {
		return 0, fmt.Errorf("count services in catalog: %w", err)
	}

	return count, nil
}

// CreateService creates a new service in a catalog.
func (r *Repo) CreateService(ctx context.Context, params CreateServiceParams) (Service, error) {
	query := `
		INSERT INTO services (catalog_id, name, description, price_cents)
		VALUES ($1, $2, $3, $4)
		RETURNING id, catalog_id, name, description, price_cents, created_at, updated_at`

	var svc Service
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query,
		params.CatalogID, params.Name, params.Description, params.PriceCents,
	).Scan(
		&svc.ID, &svc.CatalogID, &svc.Name, &svc.Description, &svc.PriceCents, &createdAt, &updatedAt,
	)
	if err != nil {
		return Service{}, fmt.Errorf("create service: %w", err)
	}

	svc.CreatedAt = createdAt.Format(time.RFC3339)
	svc.UpdatedAt = updatedAt.Format(time.RFC3339)

	return svc, nil
}

// UpdateService updates an existing service.
func (r *Repo) UpdateService(ctx context.Context, params UpdateServiceParams) (Service, error) {
	query := `
		UPDATE services SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			price_cents = COALESCE($4, price_cents),
			updated_at = now()
		WHERE id = $1
		RETURNING id, catalog_id, name, description, price_cents, created_at, updated_at`

	var svc Service
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query,
		params.ID, params.Name, params.Description, params.PriceCents,
	).Scan(
		&svc.ID, &svc.CatalogID, &svc.Name, &svc.Description, &svc.PriceCents, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Service{}, apperr.NotFound(serviceNotFoundMessage)
		}
		return Service{}, fmt.Errorf("update service: %w", err)
	}

	svc.CreatedAt = createdAt.Format(time.RFC3339)
	svc.UpdatedAt = updatedAt.Format(time.RFC3339)

	return svc, nil
}

// DeleteService removes a service by ID.
func (r *Repo) DeleteService(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM services WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(serviceNotFoundMessage)
	}

	return nil
}

// GetPackageByID retrieves a package with its member services.
func (r *Repo) GetPackageByID(ctx context.Context, id uuid.UUID) (Package, error) {
	query := `
		SELECT id, catalog_id, name, description, price_cents, created_at, updated_at
		FROM packages
		WHERE id = $1`

	var pkg Package
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&pkg.ID, &pkg.CatalogID, &pkg.Name, &pkg.Description, &pkg.PriceCents, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Package{}, apperr.NotFound(packageNotFoundMessage)
		}
		return Package{}, fmt.Errorf("get package by id: %w", err)
	}

	pkg.CreatedAt = createdAt.Format(time.RFC3339)
	pkg.UpdatedAt = updatedAt.Format(time.RFC3339)

	if err := r.attachPackageServices(ctx, []*Package{&pkg}); err != nil {
		return Package{}, err
	}

	return pkg, nil
}

// ListPackages retrieves all packages with their member services.
func (r *Repo) ListPackages(ctx context.Context) ([]Package, error) {
	query := `
		SELECT id, catalog_id, name, description, price_cents, created_at, updated_at
		FROM packages
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer rows.Close()

	return r.scanAndAttach(ctx, rows)
}

// ListPackagesByCatalog retrieves a catalog's packages with their member services.
func (r *Repo) ListPackagesByCatalog(ctx context.Context, catalogID uuid.UUID) ([]Package, error) {
	query := `
		SELECT id, catalog_id, name, description, price_cents, created_at, updated_at
		FROM packages
		WHERE catalog_id = $1
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, catalogID)
	if err != nil {
		return nil, fmt.Errorf("list packages by catalog: %w", err)
	}
	defer rows.Close()

	return r.scanAndAttach(ctx, rows)
}

// CreatePackage creates a package and its service links in one transaction.
func (r *Repo) CreatePackage(ctx context.Context, params CreatePackageParams) (Package, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Package{}, fmt.Errorf("begin create package: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO packages (catalog_id, name, description, price_cents)
		VALUES ($1, $2, $3, $4)
		RETURNING id, catalog_id, name, description, price_cents, created_at, updated_at`

	var pkg Package
	var createdAt, updatedAt time.Time

	err = tx.QueryRow(ctx, query,
		params.CatalogID, params.Name, params.Description, params.PriceCents,
	).Scan(
		&pkg.ID, &pkg.CatalogID, &pkg.Name, &pkg.Description, &pkg.PriceCents, &createdAt, &updatedAt,
	)
	if err != nil {
		return Package{}, fmt.Errorf("create package: %w", err)
	}

	pkg.CreatedAt = createdAt.Format(time.RFC3339)
	pkg.UpdatedAt = updatedAt.Format(time.RFC3339)

	if err := insertPackageServices(ctx, tx, pkg.ID, params.ServiceIDs); err != nil {
		return Package{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Package{}, fmt.Errorf("commit create package: %w", err)
	}

	if err := r.attachPackageServices(ctx, []*Package{&pkg}); err != nil {
		return Package{}, err
	}

	return pkg, nil
}

// UpdatePackage updates a package and, when ServiceIDs is set, replaces
// its membership list in the same transaction.
func (r *Repo) UpdatePackage(ctx context.Context, params UpdatePackageParams) (Package, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Package{}, fmt.Errorf("begin update package: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE packages SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			price_cents = COALESCE($4, price_cents),
			updated_at = now()
		WHERE id = $1
		RETURNING id, catalog_id, name, description, price_cents, created_at, updated_at`

	var pkg Package
	var createdAt, updatedAt time.Time

	err = tx.QueryRow(ctx, query,
		params.ID, params.Name, params.Description, params.PriceCents,
	).Scan(
		&pkg.ID, &pkg.CatalogID, &pkg.Name, &pkg.Description, &pkg.PriceCents, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Package{}, apperr.NotFound(packageNotFoundMessage)
		}
		return Package{}, fmt.Errorf("update package: %w", err)
	}

	pkg.CreatedAt = createdAt.Format(time.RFC3339)
	pkg.UpdatedAt = updatedAt.Format(time.RFC3339)

	if params.ServiceIDs != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM package_services WHERE package_id = $1`, pkg.ID); err != nil {
			return Package{}, fmt.Errorf("clear package services: %w", err)
		}
		if err := insertPackageServices(ctx, tx, pkg.ID, *params.ServiceIDs); err != nil {
			return Package{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Package{}, fmt.Errorf("commit update package: %w", err)
	}

	if err := r.attachPackageServices(ctx, []*Package{&pkg}); err != nil {
		return Package{}, err
	}

	return pkg, nil
}

// DeletePackage removes a package by ID.
func (r *Repo) DeletePackage(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM packages WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete package: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(packageNotFoundMessage)
	}

	return nil
}

// insertPackageServices links services to a package preserving the
// order they were submitted in.
func insertPackageServices(ctx context.Context, tx pgx.Tx, packageID uuid.UUID, serviceIDs []uuid.UUID) error {
	query := `
		INSERT INTO package_services (package_id, service_id, position)
		VALUES ($1, $2, $3)`

	for i, serviceID := range serviceIDs {
		if _, err := tx.Exec(ctx, query, packageID, serviceID, i); err != nil {
			return fmt.Errorf("link package service: %w", err)
		}
	}

	return nil
}

// scanAndAttach scans package rows and loads their member services.
func (r *Repo) scanAndAttach(ctx context.Context, rows pgx.Rows) ([]Package, error) {
	var results []Package
	for rows.Next() {
		var pkg Package
		var createdAt, updatedAt time.Time
		err := rows.Scan(
			&pkg.ID, &pkg.CatalogID, &pkg.Name, &pkg.Description, &pkg.PriceCents, &createdAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan package: %w", err)
		}
		pkg.CreatedAt = createdAt.Format(time.RFC3339)
		pkg.UpdatedAt = updatedAt.Format(time.RFC3339)
		results = append(results, pkg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate packages: %w", err)
	}

	ptrs := make([]*Package, len(results))
	for i := range results {
		ptrs[i] = &results[i]
	}
	if err := r.attachPackageServices(ctx, ptrs); err != nil {
		return nil, err
	}

	return results, nil
}

// attachPackageServices loads the member services of the given packages
// in a single query and attaches them in link order.
func (r *Repo) attachPackageServices(ctx context.Context, pkgs []*Package) error {
	if len(pkgs) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(pkgs))
	byID := make(map[uuid.UUID]*Package, len(pkgs))
	for i, pkg := range pkgs {
		ids[i] = pkg.ID
		byID[pkg.ID] = pkg
		pkg.Services = []Service{}
	}

	query := `
		SELECT ps.package_id, s.id, s.catalog_id, s.name, s.description, s.price_cents, s.created_at, s.updated_at
		FROM package_services ps
		JOIN services s ON s.id = ps.service_id
		WHERE ps.package_id = ANY($1)
		ORDER BY ps.package_id, ps.position ASC`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("load package services: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var packageID uuid.UUID
		var svc Service
		var createdAt, updatedAt time.Time
		err := rows.Scan(
			&packageID, &svc.ID, &svc.CatalogID, &svc.Name, &svc.Description, &svc.PriceCents, &createdAt, &updatedAt,
		)
		if err != nil {
			return fmt.Errorf("scan package service: %w", err)
		}
		svc.CreatedAt = createdAt.Format(time.RFC3339)
		svc.UpdatedAt = updatedAt.Format(time.RFC3339)
		if pkg, ok := byID[packageID]; ok {
			pkg.Services = append(pkg.Services, svc)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate package services: %w", err)
	}

	return nil
}

// scanServices is a helper to scan multiple rows into a Service slice.
func scanServices(rows pgx.Rows) ([]Service, error) {
	var results []Service

	for rows.Next() {
		var svc Service
		var createdAt, updatedAt time.Time

		err := rows.Scan(
			&svc.ID, &svc.CatalogID, &svc.Name, &svc.Description, &svc.PriceCents, &createdAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}

		svc.CreatedAt = createdAt.Format(time.RFC3339)
		svc.UpdatedAt = updatedAt.Format(time.RFC3339)

		results = append(results, svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate services: %w", err)
	}

	return results, nil
}
