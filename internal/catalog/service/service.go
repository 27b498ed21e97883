// Package service implements the catalog business logic.
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"catalogo_backend/internal/catalog/repository"
	"catalogo_backend/internal/catalog/transport"
	"catalogo_backend/internal/events"
	"catalogo_backend/platform/apperr"
	"catalogo_backend/platform/logger"
)

// Service orchestrates catalog, service, and package operations.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new catalog service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// ListCatalogs returns all catalogs.
func (s *Service) ListCatalogs(ctx context.Context) ([]transport.CatalogResponse, error) {
	catalogs, err := s.repo.ListCatalogs(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]transport.CatalogResponse, 0, len(catalogs))
	for _, cat := range catalogs {
		results = append(results, toCatalogResponse(cat))
	}

	return results, nil
}

// GetCatalog returns a single catalog by ID.
func (s *Service) GetCatalog(ctx context.Context, id uuid.UUID) (transport.CatalogResponse, error) {
	cat, err := s.repo.GetCatalogByID(ctx, id)
	if err != nil {
		return transport.CatalogResponse{}, err
	}

	return toCatalogResponse(cat), nil
}

// Aggregate returns the public catalog page payload: the catalog with
// all its services and packages.
func (s *Service) Aggregate(ctx context.Context, id uuid.UUID) (transport.CatalogAggregateResponse, error) {
	cat, err := s.repo.GetCatalogByID(ctx, id)
	if err != nil {
		return transport.CatalogAggregateResponse{}, err
	}

	services, err := s.repo.ListServicesByCatalog(ctx, cat.ID)
	if err != nil {
		return transport.CatalogAggregateResponse{}, err
	}

	packages, err := s.repo.ListPackagesByCatalog(ctx, cat.ID)
	if err != nil {
		return transport.CatalogAggregateResponse{}, err
	}

	agg := transport.CatalogAggregateResponse{
		ID:       cat.ID,
		Name:     cat.Name,
		Services: make([]transport.ServiceResponse, 0, len(services)),
		Packages: make([]transport.PackageResponse, 0, len(packages)),
	}
	for _, svc := range services {
		agg.Services = append(agg.Services, toServiceResponse(svc))
	}
	for _, pkg := range packages {
		agg.Packages = append(agg.Packages, toPackageResponse(pkg))
	}

	return agg, nil
}

// CreateCatalog creates a catalog and announces it on the event bus.
func (s *Service) CreateCatalog(ctx context.Context, req transport.CreateCatalogRequest) (transport.CatalogResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return transport.CatalogResponse{}, apperr.Validation("catalog name is required")
	}

	cat, err := s.repo.CreateCatalog(ctx, repository.CreateCatalogParams{Name: name})
	if err != nil {
		return transport.CatalogResponse{}, err
	}

	s.log.Info("catalog created", "catalog_id", cat.ID, "name", cat.Name)
	s.bus.Publish(ctx, events.NewCatalogCreated(cat.ID, cat.Name))

	return toCatalogResponse(cat), nil
}

// UpdateCatalog renames a catalog.
func (s *Service) UpdateCatalog(ctx context.Context, id uuid.UUID, req transport.UpdateCatalogRequest) (transport.CatalogResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return transport.CatalogResponse{}, apperr.Validation("catalog name is required")
	}

	cat, err := s.repo.UpdateCatalog(ctx, repository.UpdateCatalogParams{ID: id, Name: name})
	if err != nil {
		return transport.CatalogResponse{}, err
	}

	return toCatalogResponse(cat), nil
}

// DeleteCatalog removes a catalog and announces it on the event bus.
// Services and packages go with it via cascade.
func (s *Service) DeleteCatalog(ctx context.Context, id uuid.UUID) error {
	cat, err := s.repo.DeleteCatalog(ctx, id)
	if err != nil {
		return err
	}

	s.log.Info("catalog deleted", "catalog_id", cat.ID, "name", cat.Name)
	s.bus.Publish(ctx, events.NewCatalogDeleted(cat.ID, cat.Name))

	return nil
}

// CreateService adds a service to a catalog.
func (s *Service) CreateService(ctx context.Context, catalogID uuid.UUID, req transport.CreateServiceRequest) (transport.ServiceResponse, error) {
	exists, err := s.repo.CatalogExists(ctx, catalogID)
	if err != nil {
		return transport.ServiceResponse{}, err
	}
	if !exists {
		return transport.ServiceResponse{}, apperr.NotFound("catalog not found")
	}

	svc, err := s.repo.CreateService(ctx, repository.CreateServiceParams{
		CatalogID:   catalogID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		PriceCents:  req.PriceCents,
	})
	if err != nil {
		return transport.ServiceResponse{}, err
	}

	return toServiceResponse(svc), nil
}

// UpdateService updates a service.
func (s *Service) UpdateService(ctx context.Context, id uuid.UUID, req transport.UpdateServiceRequest) (transport.ServiceResponse, error) {
	svc, err := s.repo.UpdateService(ctx, repository.UpdateServiceParams{
		ID:          id,
		Name:        trimPtr(req.Name),
		Description: req.Description,
		PriceCents:  req.PriceCents,
	})
	if err != nil {
		return transport.ServiceResponse{}, err
	}

	return toServiceResponse(svc), nil
}

// DeleteService removes a service.
func (s *Service) DeleteService(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteService(ctx, id)
}

// ListPackages returns all packages with their member services.
func (s *Service) ListPackages(ctx context.Context) ([]transport.PackageResponse, error) {
	packages, err := s.repo.ListPackages(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]transport.PackageResponse, 0, len(packages))
	for _, pkg := range packages {
		results = append(results, toPackageResponse(pkg))
	}

	return results, nil
}

// CreatePackage creates a package after checking every member service
// belongs to the package catalog.
func (s *Service) CreatePackage(ctx context.Context, req transport.CreatePackageRequest) (transport.PackageResponse, error) {
	exists, err := s.repo.CatalogExists(ctx, req.CatalogID)
	if err != nil {
		return transport.PackageResponse{}, err
	}
	if !exists {
		return transport.PackageResponse{}, apperr.NotFound("catalog not found")
	}

	serviceIDs := dedupe(req.ServiceIDs)
	if err := s.checkMembership(ctx, req.CatalogID, serviceIDs); err != nil {
		return transport.PackageResponse{}, err
	}

	pkg, err := s.repo.CreatePackage(ctx, repository.CreatePackageParams{
		CatalogID:   req.CatalogID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		PriceCents:  req.PriceCents,
		ServiceIDs:  serviceIDs,
	})
	if err != nil {
		return transport.PackageResponse{}, err
	}

	return toPackageResponse(pkg), nil
}

// UpdatePackage updates a package; a present serviceIds list is
// re-validated against the package catalog before replacing membership.
func (s *Service) UpdatePackage(ctx context.Context, id uuid.UUID, req transport.UpdatePackageRequest) (transport.PackageResponse, error) {
	var serviceIDs *[]uuid.UUID
	if req.ServiceIDs != nil {
		current, err := s.repo.GetPackageByID(ctx, id)
		if err != nil {
			return transport.PackageResponse{}, err
		}
		ids := dedupe(*req.ServiceIDs)
		if err := s.checkMembership(ctx, current.CatalogID, ids); err != nil {
			return transport.PackageResponse{}, err
		}
		serviceIDs = &ids
	}

	pkg, err := s.repo.UpdatePackage(ctx, repository.UpdatePackageParams{
		ID:          id,
		Name:        trimPtr(req.Name),
		Description: req.Description,
		PriceCents:  req.PriceCents,
		ServiceIDs:  serviceIDs,
	})
	if err != nil {
		return transport.PackageResponse{}, err
	}

	return toPackageResponse(pkg), nil
}

// DeletePackage removes a package.
func (s *Service) DeletePackage(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeletePackage(ctx, id)
}

// checkMembership rejects service IDs that do not belong to the catalog.
func (s *Service) checkMembership(ctx context.Context, catalogID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	count, err := s.repo.CountServicesInCatalog(ctx, catalogID, ids)
	if err != nil {
		return err
	}
	if count != len(ids) {
		return apperr.Validation("all package services must belong to the package catalog")
	}

	return nil
}

func toCatalogResponse(cat repository.Catalog) transport.CatalogResponse {
	return transport.CatalogResponse{
		ID:        cat.ID,
		Name:      cat.Name,
		CreatedAt: cat.CreatedAt,
		UpdatedAt: cat.UpdatedAt,
	}
}

func toServiceResponse(svc repository.Service) transport.ServiceResponse {
	return transport.ServiceResponse{
		ID:          svc.ID,
		CatalogID:   svc.CatalogID,
		Name:        svc.Name,
		Description: svc.Description,
		PriceCents:  svc.PriceCents,
	}
}

func toPackageResponse(pkg repository.Package) transport.PackageResponse {
	resp := transport.PackageResponse{
		ID:          pkg.ID,
		CatalogID:   pkg.CatalogID,
		Name:        pkg.Name,
		Description: pkg.Description,
		PriceCents:  pkg.PriceCents,
		Services:    make([]transport.ServiceResponse, 0, len(pkg.Services)),
	}
	for _, svc := range pkg.Services {
		resp.Services = append(resp.Services, toServiceResponse(svc))
	}

	return resp
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}

	return result
}
