package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"catalogo_backend/internal/catalog/repository"
	"catalogo_backend/internal/catalog/transport"
	"catalogo_backend/internal/events"
	"catalogo_backend/platform/apperr"
	"catalogo_backend/platform/logger"
)

// fakeRepo is an in-memory Repository for service-level tests.
type fakeRepo struct {
	catalogs map[uuid.UUID]repository.Catalog
	services map[uuid.UUID]repository.Service
	packages map[uuid.UUID]repository.Package
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		catalogs: make(map[uuid.UUID]repository.Catalog),
		services: make(map[uuid.UUID]repository.Service),
		packages: make(map[uuid.UUID]repository.Package),
	}
}

func (f *fakeRepo) GetCatalogByID(_ context.Context, id uuid.UUID) (repository.Catalog, error) {
	cat, ok := f.catalogs[id]
	if !ok {
		return repository.Catalog{}, apperr.NotFound("catalog not found")
	}
	return cat, nil
}

func (f *fakeRepo) ListCatalogs(context.Context) ([]repository.Catalog, error) {
	var results []repository.Catalog
	for _, cat := range f.catalogs {
		results = append(results, cat)
	}
	return results, nil
}

func (f *fakeRepo) CatalogExists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.catalogs[id]
	return ok, nil
}

func (f *fakeRepo) CreateCatalog(_ context.Context, params repository.CreateCatalogParams) (repository.Catalog, error) {
	cat := repository.Catalog{ID: uuid.New(), Name: params.Name}
	f.catalogs[cat.ID] = cat
	return cat, nil
}

func (f *fakeRepo) UpdateCatalog(_ context.Context, params repository.UpdateCatalogParams) (repository.Catalog, error) {
	cat, ok := f.catalogs[params.ID]
	if !ok {
		return repository.Catalog{}, apperr.NotFound("catalog not found")
	}
	cat.Name = params.Name
	f.catalogs[params.ID] = cat
	return cat, nil
}

func (f *fakeRepo) DeleteCatalog(_ context.Context, id uuid.UUID) (repository.Catalog, error) {
	cat, ok := f.catalogs[id]
	if !ok {
		return repository.Catalog{}, apperr.NotFound("catalog not found")
	}
	delete(f.catalogs, id)
	return cat, nil
}

func (f *fakeRepo) GetServiceByID(_ context.Context, id uuid.UUID) (repository.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return repository.Service{}, apperr.NotFound("service not found")
	}
	return svc, nil
}

func (f *fakeRepo) ListServicesByCatalog(_ context.Context, catalogID uuid.UUID) ([]repository.Service, error) {
	var results []repository.Service
	for _, svc := range f.services {
		if svc.CatalogID == catalogID {
			results = append(results, svc)
		}
	}
	return results, nil
}

func (f *fakeRepo) CountServicesInCatalog(_ context.Context, catalogID uuid.UUID, ids []uuid.UUID) (int, error) {
	count := 0
	for _, id := range ids {
		if svc, ok := f.services[id]; ok && svc.CatalogID == catalogID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) CreateService(_ context.Context, params repository.CreateServiceParams) (repository.Service, error) {
	svc := repository.Service{
		ID:          uuid.New(),
		CatalogID:   params.CatalogID,
		Name:        params.Name,
		Description: params.Description,
		PriceCents:  params.PriceCents,
	}
	f.services[svc.ID] = svc
	return svc, nil
}

func (f *fakeRepo) UpdateService(_ context.Context, params repository.UpdateServiceParams) (repository.Service, error) {
	svc, ok := f.services[params.ID]
	if !ok {
		return repository.Service{}, apperr.NotFound("service not found")
	}
	if params.Name != nil {
		svc.Name = *params.Name
	}
	if params.Description != nil {
		svc.Description = *params.Description
	}
	if params.PriceCents != nil {
		svc.PriceCents = *params.PriceCents
	}
	f.services[params.ID] = svc
	return svc, nil
}

func (f *fakeRepo) DeleteService(_ context.Context, id uuid.UUID) error {
	if _, ok := f.services[id]; !ok {
		return apperr.NotFound("service not found")
	}
	delete(f.services, id)
	return nil
}

func (f *fakeRepo) GetPackageByID(_ context.Context, id uuid.UUID) (repository.Package, error) {
	pkg, ok := f.packages[id]
	if !ok {
		return repository.Package{}, apperr.NotFound("package not found")
	}
	return pkg, nil
}

func (f *fakeRepo) ListPackages(context.Context) ([]repository.Package, error) {
	var results []repository.Package
	for _, pkg := range f.packages {
		results = append(results, pkg)
	}
	return results, nil
}

func (f *fakeRepo) ListPackagesByCatalog(_ context.Context, catalogID uuid.UUID) ([]repository.Package, error) {
	var results []repository.Package
	for _, pkg := range f.packages {
		if pkg.CatalogID == catalogID {
			results = append(results, pkg)
		}
	}
	return results, nil
}

func (f *fakeRepo) CreatePackage(_ context.Context, params repository.CreatePackageParams) (repository.Package, error) {
	pkg := repository.Package{
		ID:          uuid.New(),
		CatalogID:   params.CatalogID,
		Name:        params.Name,
		Description: params.Description,
		PriceCents:  params.PriceCents,
	}
	for _, id := range params.ServiceIDs {
		pkg.Services = append(pkg.Services, f.services[id])
	}
	f.packages[pkg.ID] = pkg
	return pkg, nil
}

func (f *fakeRepo) UpdatePackage(_ context.Context, params repository.UpdatePackageParams) (repository.Package, error) {
	pkg, ok := f.packages[params.ID]
	if !ok {
		return repository.Package{}, apperr.NotFound("package not found")
	}
	if params.Name != nil {
		pkg.Name = *params.Name
	}
	if params.PriceCents != nil {
		pkg.PriceCents = *params.PriceCents
	}
	if params.ServiceIDs != nil {
		pkg.Services = nil
		for _, id := range *params.ServiceIDs {
			pkg.Services = append(pkg.Services, f.services[id])
		}
	}
	f.packages[params.ID] = pkg
	return pkg, nil
}

func (f *fakeRepo) DeletePackage(_ context.Context, id uuid.UUID) error {
	if _, ok := f.packages[id]; !ok {
		return apperr.NotFound("package not found")
	}
	delete(f.packages, id)
	return nil
}

var _ repository.Repository = (*fakeRepo)(nil)

func fixture(t *testing.T) (*Service, *fakeRepo) {
	t.Helper()
	log := logger.New("development")
	repo := newFakeRepo()
	return New(repo, events.NewInMemoryBus(log), log), repo
}

func TestCreateCatalogTrimsName(t *testing.T) {
	svc, _ := fixture(t)

	cat, err := svc.CreateCatalog(context.Background(), transport.CreateCatalogRequest{Name: "  Marketing  "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if cat.Name != "Marketing" {
		t.Fatalf("name = %q, want trimmed", cat.Name)
	}
}

func TestCreateCatalogRejectsBlankName(t *testing.T) {
	svc, _ := fixture(t)

	if _, err := svc.CreateCatalog(context.Background(), transport.CreateCatalogRequest{Name: "   "}); err == nil {
		t.Fatal("blank name must be rejected")
	}
}

func TestCreatePackageValidatesMembership(t *testing.T) {
	svc, repo := fixture(t)
	ctx := context.Background()

	cat, err := svc.CreateCatalog(ctx, transport.CreateCatalogRequest{Name: "Marketing"})
	if err != nil {
		t.Fatalf("create catalog: %v", err)
	}
	other, err := svc.CreateCatalog(ctx, transport.CreateCatalogRequest{Name: "Otro"})
	if err != nil {
		t.Fatalf("create catalog: %v", err)
	}

	inside, err := svc.CreateService(ctx, cat.ID, transport.CreateServiceRequest{Name: "Consultoría", PriceCents: 10000})
	if err != nil {
		t.Fatalf("create service: %v", err)
	}
	outside, err := svc.CreateService(ctx, other.ID, transport.CreateServiceRequest{Name: "Ajena", PriceCents: 100})
	if err != nil {
		t.Fatalf("create service: %v", err)
	}

	_, err = svc.CreatePackage(ctx, transport.CreatePackageRequest{
		CatalogID:  cat.ID,
		Name:       "Básico",
		PriceCents: 12000,
		ServiceIDs: []uuid.UUID{inside.ID, outside.ID},
	})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("cross-catalog package err = %v, want validation error", err)
	}

	pkg, err := svc.CreatePackage(ctx, transport.CreatePackageRequest{
		CatalogID:  cat.ID,
		Name:       "Básico",
		PriceCents: 12000,
		ServiceIDs: []uuid.UUID{inside.ID, inside.ID},
	})
	if err != nil {
		t.Fatalf("create package: %v", err)
	}
	if len(pkg.Services) != 1 {
		t.Fatalf("duplicate service IDs must collapse, got %d", len(pkg.Services))
	}
	_ = repo
}

func TestCreateServiceRequiresCatalog(t *testing.T) {
	svc, _ := fixture(t)

	_, err := svc.CreateService(context.Background(), uuid.New(), transport.CreateServiceRequest{Name: "Consultoría"})
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestAggregateCombinesServicesAndPackages(t *testing.T) {
	svc, _ := fixture(t)
	ctx := context.Background()

	cat, err := svc.CreateCatalog(ctx, transport.CreateCatalogRequest{Name: "Marketing"})
	if err != nil {
		t.Fatalf("create catalog: %v", err)
	}
	created, err := svc.CreateService(ctx, cat.ID, transport.CreateServiceRequest{Name: "Consultoría", PriceCents: 10000})
	if err != nil {
		t.Fatalf("create service: %v", err)
	}
	if _, err := svc.CreatePackage(ctx, transport.CreatePackageRequest{
		CatalogID:  cat.ID,
		Name:       "Básico",
		PriceCents: 12000,
		ServiceIDs: []uuid.UUID{created.ID},
	}); err != nil {
		t.Fatalf("create package: %v", err)
	}

	agg, err := svc.Aggregate(ctx, cat.ID)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(agg.Services) != 1 || len(agg.Packages) != 1 {
		t.Fatalf("aggregate = %d services, %d packages", len(agg.Services), len(agg.Packages))
	}
	if agg.Packages[0].Services[0].Name != "Consultoría" {
		t.Fatalf("package services = %+v", agg.Packages[0].Services)
	}
}
