package engine

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func fixtureCatalog() Catalog {
	services := []Item{
		{Kind: KindService, ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), Name: "Consultoría", PriceCents: 10000},
		{Kind: KindService, ID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), Name: "Auditoría", PriceCents: 5000},
		{Kind: KindService, ID: uuid.MustParse("00000000-0000-0000-0000-000000000003"), Name: "Capacitación", PriceCents: 7500},
	}
	packages := []Item{
		{Kind: KindPackage, ID: uuid.MustParse("00000000-0000-0000-0000-000000000010"), Name: "Básico", PriceCents: 12000, ServiceNames: []string{"Consultoría", "Auditoría"}},
	}
	return NewCatalog(uuid.MustParse("00000000-0000-0000-0000-0000000000aa"), "Marketing", services, packages)
}

func TestToggleAddsAndRemoves(t *testing.T) {
	cat := fixtureCatalog()
	sel := NewSelection()
	item := cat.Services[0]

	if got := sel.Toggle(item); !got {
		t.Fatalf("first toggle should select, got %v", got)
	}
	if !sel.IsSelected(item.Key()) {
		t.Fatal("item should be selected after first toggle")
	}
	if got := sel.Quantity(item.Key()); got != 1 {
		t.Fatalf("new selection quantity = %d, want 1", got)
	}

	if got := sel.Toggle(item); got {
		t.Fatalf("second toggle should deselect, got %v", got)
	}
	if sel.IsSelected(item.Key()) {
		t.Fatal("item should be removed after second toggle")
	}
	if sel.Len() != 0 {
		t.Fatalf("selection length = %d, want 0", sel.Len())
	}
}

func TestToggleResetsQuantityOnReselect(t *testing.T) {
	cat := fixtureCatalog()
	sel := NewSelection()
	item := cat.Services[0]

	sel.Toggle(item)
	sel.ChangeQuantity(item.Key(), 4)
	if got := sel.Quantity(item.Key()); got != 5 {
		t.Fatalf("quantity = %d, want 5", got)
	}

	sel.Toggle(item)
	sel.Toggle(item)
	if got := sel.Quantity(item.Key()); got != 1 {
		t.Fatalf("re-selected quantity = %d, want 1", got)
	}
}

func TestChangeQuantityFloorsAtOne(t *testing.T) {
	cat := fixtureCatalog()
	sel := NewSelection()
	item := cat.Services[0]
	sel.Toggle(item)

	sel.ChangeQuantity(item.Key(), -10)
	if got := sel.Quantity(item.Key()); got != 1 {
		t.Fatalf("quantity after large decrement = %d, want 1", got)
	}
	if !sel.IsSelected(item.Key()) {
		t.Fatal("decrement must never remove the item")
	}
}

func TestChangeQuantityUnknownKeyIsNoOp(t *testing.T) {
	sel := NewSelection()
	sel.ChangeQuantity("service-"+uuid.NewString(), 3)

	if sel.Len() != 0 {
		t.Fatalf("unknown key must not create an entry, length = %d", sel.Len())
	}
}

func TestEntriesPreserveInsertionOrder(t *testing.T) {
	cat := fixtureCatalog()
	sel := NewSelection()

	sel.Toggle(cat.Services[2])
	sel.Toggle(cat.Packages[0])
	sel.Toggle(cat.Services[0])

	// Removing the middle entry keeps the order of the rest.
	sel.Toggle(cat.Packages[0])

	entries := sel.Entries()
	got := []string{entries[0].Item.Name, entries[1].Item.Name}
	want := []string{"Capacitación", "Consultoría"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("entry order = %v, want %v", got, want)
	}
}

func TestTotalWithAndWithoutQuantities(t *testing.T) {
	cat := fixtureCatalog()
	sel := NewSelection()

	sel.Toggle(cat.Services[0]) // 100.00
	sel.Toggle(cat.Services[1]) // 50.00
	sel.ChangeQuantity(cat.Services[0].Key(), 1)

	if got := sel.Total(true); got != 25000 {
		t.Fatalf("total with quantities = %d, want 25000", got)
	}
	if got := sel.Total(false); got != 15000 {
		t.Fatalf("total without quantities = %d, want 15000", got)
	}
}

func TestSetSortIsMutuallyExclusive(t *testing.T) {
	view := NewViewState()

	view.SetSort(SortName, Ascending)
	if view.SortBy != SortName || view.SortDir != Ascending {
		t.Fatalf("view sort = %s/%s, want name/asc", view.SortBy, view.SortDir)
	}

	view.SetSort(SortPrice, Descending)
	if view.SortBy != SortPrice || view.SortDir != Descending {
		t.Fatalf("view sort = %s/%s, want price/desc", view.SortBy, view.SortDir)
	}

	view.SetSort(SortNone, "")
	if view.SortBy != SortNone || view.SortDir != "" {
		t.Fatalf("view sort = %s/%s, want none cleared", view.SortBy, view.SortDir)
	}
}

func TestDefaultViewHidesPackages(t *testing.T) {
	cat := fixtureCatalog()
	view := NewViewState()

	if view.UsePackages {
		t.Fatal("packages must be off until the visitor opts in")
	}
	for _, item := range DisplayItems(cat, view) {
		if item.Kind == KindPackage {
			t.Fatal("default view leaked a package")
		}
	}
}

func TestDisplayItemsPackagesFirst(t *testing.T) {
	cat := fixtureCatalog()
	view := NewViewState()
	view.UsePackages = true

	items := DisplayItems(cat, view)
	if len(items) != 4 {
		t.Fatalf("item count = %d, want 4", len(items))
	}
	if items[0].Kind != KindPackage {
		t.Fatalf("first item kind = %s, want package", items[0].Kind)
	}
}

func TestDisplayItemsFilter(t *testing.T) {
	cat := fixtureCatalog()
	view := NewViewState()
	view.UsePackages = true
	view.Filter = FilterServices

	for _, item := range DisplayItems(cat, view) {
		if item.Kind != KindService {
			t.Fatalf("service filter leaked a %s", item.Kind)
		}
	}

	view.Filter = FilterPackages
	items := DisplayItems(cat, view)
	if len(items) != 1 || items[0].Kind != KindPackage {
		t.Fatalf("package filter = %v", items)
	}
}

func TestDisplayItemsHidesPackagesWhenDisabled(t *testing.T) {
	cat := fixtureCatalog()
	view := NewViewState()
	view.UsePackages = false

	for _, item := range DisplayItems(cat, view) {
		if item.Kind == KindPackage {
			t.Fatal("packages must be hidden when the packages toggle is off")
		}
	}
}

func TestDisplayItemsNameSortIsAccentAware(t *testing.T) {
	cat := fixtureCatalog()
	view := NewViewState()
	view.UsePackages = false
	view.SetSort(SortName, Ascending)

	items := DisplayItems(cat, view)
	got := []string{items[0].Name, items[1].Name, items[2].Name}
	want := []string{"Auditoría", "Capacitación", "Consultoría"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("name sort = %v, want %v", got, want)
	}
}

func TestDisplayItemsPriceSort(t *testing.T) {
	cat := fixtureCatalog()
	view := NewViewState()
	view.UsePackages = false
	view.SetSort(SortPrice, Descending)

	items := DisplayItems(cat, view)
	for i := 1; i < len(items); i++ {
		if items[i-1].PriceCents < items[i].PriceCents {
			t.Fatalf("price sort out of order at %d: %v", i, items)
		}
	}
}

func TestDisplayItemsIsDeterministic(t *testing.T) {
	cat := fixtureCatalog()
	view := NewViewState()
	view.SetSort(SortName, Ascending)

	first := DisplayItems(cat, view)
	second := DisplayItems(cat, view)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("same catalog and view must derive the same list")
	}
}

func TestDisplayItemsDoesNotMutateCatalog(t *testing.T) {
	cat := fixtureCatalog()
	before := append([]Item(nil), cat.Services...)

	view := NewViewState()
	view.SetSort(SortPrice, Ascending)
	DisplayItems(cat, view)

	if !reflect.DeepEqual(before, cat.Services) {
		t.Fatal("derivation must not reorder the catalog snapshot")
	}
}
