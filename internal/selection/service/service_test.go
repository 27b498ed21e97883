package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	catalogtransport "catalogo_backend/internal/catalog/transport"
	"catalogo_backend/internal/selection/session"
	"catalogo_backend/internal/selection/transport"
	"catalogo_backend/platform/logger"
	"catalogo_backend/platform/validator"
)

type fakeCatalogs struct {
	agg catalogtransport.CatalogAggregateResponse
	err error
}

func (f *fakeCatalogs) Aggregate(context.Context, uuid.UUID) (catalogtransport.CatalogAggregateResponse, error) {
	return f.agg, f.err
}

func fixtureAggregate() catalogtransport.CatalogAggregateResponse {
	catalogID := uuid.New()
	return catalogtransport.CatalogAggregateResponse{
		ID:   catalogID,
		Name: "Marketing",
		Services: []catalogtransport.ServiceResponse{
			{ID: uuid.New(), CatalogID: catalogID, Name: "Consultoría", PriceCents: 10000},
			{ID: uuid.New(), CatalogID: catalogID, Name: "Auditoría", PriceCents: 5000},
		},
		Packages: []catalogtransport.PackageResponse{
			{ID: uuid.New(), CatalogID: catalogID, Name: "Básico", PriceCents: 12000, Services: []catalogtransport.ServiceResponse{
				{Name: "Consultoría"},
			}},
		},
	}
}

func fixtureService(t *testing.T) *Service {
	t.Helper()

	log := logger.New("development")
	store := session.NewStore(time.Hour, log)
	t.Cleanup(store.Close)

	return New(&fakeCatalogs{agg: fixtureAggregate()}, store, log)
}

func TestCreateSessionDerivesInitialView(t *testing.T) {
	svc := fixtureService(t)

	resp, err := svc.CreateSession(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	if resp.Token == "" {
		t.Fatal("token must not be empty")
	}
	if resp.Catalog.Name != "Marketing" {
		t.Fatalf("catalog name = %q", resp.Catalog.Name)
	}
	// Packages stay hidden until the visitor opts in.
	if len(resp.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(resp.Items))
	}
	for _, item := range resp.Items {
		if item.Kind != "service" {
			t.Fatalf("fresh session leaked a %s", item.Kind)
		}
	}
	if resp.Count != 0 || resp.TotalCents != 0 {
		t.Fatalf("fresh session must be empty, count=%d total=%d", resp.Count, resp.TotalCents)
	}
	if resp.View.UsePackages || resp.View.Filter != "all" || resp.View.SortBy != "none" {
		t.Fatalf("default view = %+v", resp.View)
	}
}

func TestToggleThroughService(t *testing.T) {
	svc := fixtureService(t)

	created, err := svc.CreateSession(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	key := created.Items[1].Key
	resp, err := svc.Toggle(created.Token, transport.ToggleRequest{Key: key})
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if resp.Count != 1 {
		t.Fatalf("count = %d, want 1", resp.Count)
	}
	if resp.Selected[0].Key != key || resp.Selected[0].Quantity != 1 {
		t.Fatalf("selected = %+v", resp.Selected)
	}

	resp, err = svc.Toggle(created.Token, transport.ToggleRequest{Key: key})
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if resp.Count != 0 {
		t.Fatalf("count after untoggle = %d, want 0", resp.Count)
	}
}

func TestToggleUnknownKeyFails(t *testing.T) {
	svc := fixtureService(t)

	created, err := svc.CreateSession(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	if _, err := svc.Toggle(created.Token, transport.ToggleRequest{Key: "service-" + uuid.NewString()}); err == nil {
		t.Fatal("key outside the snapshot must be rejected")
	}
}

func TestQuantityAndTotals(t *testing.T) {
	svc := fixtureService(t)

	created, err := svc.CreateSession(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	// Pick the two services: 100.00 and 50.00.
	var keys []string
	for _, item := range created.Items {
		if item.Kind == "service" {
			keys = append(keys, item.Key)
		}
	}
	for _, key := range keys {
		if _, err := svc.Toggle(created.Token, transport.ToggleRequest{Key: key}); err != nil {
			t.Fatalf("toggle %s: %v", key, err)
		}
	}

	// Bump the first service to quantity 2.
	if _, err := svc.ChangeQuantity(created.Token, transport.QuantityRequest{Key: keys[0], Delta: 1}); err != nil {
		t.Fatalf("change quantity: %v", err)
	}

	// Quantities off: every line counts once.
	resp, err := svc.GetSession(created.Token)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if resp.TotalCents != 15000 {
		t.Fatalf("total without quantities = %d, want 15000", resp.TotalCents)
	}

	// Quantities on: line totals multiply.
	useQuantities := true
	resp, err = svc.UpdateView(created.Token, transport.UpdateViewRequest{UseQuantities: &useQuantities})
	if err != nil {
		t.Fatalf("update view: %v", err)
	}
	if resp.TotalCents != 25000 {
		t.Fatalf("total with quantities = %d, want 25000", resp.TotalCents)
	}
}

func TestZeroDeltaLeavesQuantityUntouched(t *testing.T) {
	svc := fixtureService(t)

	created, err := svc.CreateSession(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	key := created.Items[1].Key
	if _, err := svc.Toggle(created.Token, transport.ToggleRequest{Key: key}); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	req := transport.QuantityRequest{Key: key, Delta: 0}
	if err := validator.New().Struct(req); err != nil {
		t.Fatalf("zero delta must pass validation: %v", err)
	}

	resp, err := svc.ChangeQuantity(created.Token, req)
	if err != nil {
		t.Fatalf("change quantity: %v", err)
	}
	if resp.Selected[0].Quantity != 1 {
		t.Fatalf("quantity = %d, want 1", resp.Selected[0].Quantity)
	}
}

func TestUpdateViewSortExclusivity(t *testing.T) {
	svc := fixtureService(t)

	created, err := svc.CreateSession(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	sortBy := "name"
	sortDir := "desc"
	resp, err := svc.UpdateView(created.Token, transport.UpdateViewRequest{SortBy: &sortBy, SortDir: &sortDir})
	if err != nil {
		t.Fatalf("update view: %v", err)
	}
	if resp.View.SortBy != "name" || resp.View.SortDir != "desc" {
		t.Fatalf("view = %+v", resp.View)
	}

	sortBy = "price"
	sortDir = "asc"
	resp, err = svc.UpdateView(created.Token, transport.UpdateViewRequest{SortBy: &sortBy, SortDir: &sortDir})
	if err != nil {
		t.Fatalf("update view: %v", err)
	}
	if resp.View.SortBy != "price" || resp.View.SortDir != "asc" {
		t.Fatalf("price sort must replace name sort, view = %+v", resp.View)
	}

	for i := 1; i < len(resp.Items); i++ {
		if resp.Items[i-1].PriceCents > resp.Items[i].PriceCents {
			t.Fatalf("items not price sorted: %+v", resp.Items)
		}
	}
}

func TestUpdateViewFilterAndPackagesToggle(t *testing.T) {
	svc := fixtureService(t)

	created, err := svc.CreateSession(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	usePackages := false
	resp, err := svc.UpdateView(created.Token, transport.UpdateViewRequest{UsePackages: &usePackages})
	if err != nil {
		t.Fatalf("update view: %v", err)
	}
	for _, item := range resp.Items {
		if item.Kind == "package" {
			t.Fatal("packages must be hidden when disabled")
		}
	}

	usePackages = true
	filter := "package"
	resp, err = svc.UpdateView(created.Token, transport.UpdateViewRequest{UsePackages: &usePackages, Filter: &filter})
	if err != nil {
		t.Fatalf("update view: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Kind != "package" {
		t.Fatalf("package filter = %+v", resp.Items)
	}
}
