package engine

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Filter narrows the visible item kinds.
type Filter string

const (
	// FilterAll shows packages and services.
	FilterAll Filter = "all"
	// FilterServices shows only services.
	FilterServices Filter = "service"
	// FilterPackages shows only packages.
	FilterPackages Filter = "package"
)

// SortDimension selects which attribute ordering applies to.
type SortDimension string

const (
	// SortNone leaves items in catalog order.
	SortNone SortDimension = "none"
	// SortName orders alphabetically by item name.
	SortName SortDimension = "name"
	// SortPrice orders numerically by price.
	SortPrice SortDimension = "price"
)

// SortDirection is the ordering direction for an active sort.
type SortDirection string

const (
	// Ascending sorts low to high.
	Ascending SortDirection = "asc"
	// Descending sorts high to low.
	Descending SortDirection = "desc"
)

// ViewState holds the presentation toggles of a session. At most one
// sort dimension is active at a time.
type ViewState struct {
	Filter        Filter
	SortBy        SortDimension
	SortDir       SortDirection
	UsePackages   bool
	UseQuantities bool
}

// NewViewState returns the default view: no filter, no sort, packages
// hidden and quantities off until the visitor opts in.
func NewViewState() ViewState {
	return ViewState{
		Filter: FilterAll,
		SortBy: SortNone,
	}
}

// SetSort activates a sort dimension and direction as one transition.
// Activating name sort deactivates price sort and vice versa; SortNone
// clears ordering entirely.
func (v *ViewState) SetSort(dimension SortDimension, direction SortDirection) {
	if dimension == SortNone {
		v.SortBy = SortNone
		v.SortDir = ""
		return
	}

	v.SortBy = dimension
	v.SortDir = direction
}

// nameCollator orders names the way the Spanish-language UI expects,
// matching accents and case handling of locale-aware comparison.
var nameCollator = collate.New(language.Spanish, collate.IgnoreCase)

// DisplayItems derives the visible item list for a catalog and view.
// Packages precede services, the filter narrows kinds, and the active
// sort is applied stably over the combined list. The derivation never
// mutates the catalog snapshot.
func DisplayItems(catalog Catalog, view ViewState) []Item {
	capacity := len(catalog.Services)
	if view.UsePackages {
		capacity += len(catalog.Packages)
	}
	items := make([]Item, 0, capacity)

	if view.UsePackages && view.Filter != FilterServices {
		items = append(items, catalog.Packages...)
	}
	if view.Filter != FilterPackages {
		items = append(items, catalog.Services...)
	}

	switch view.SortBy {
	case SortName:
		sort.SliceStable(items, func(i, j int) bool {
			cmp := nameCollator.CompareString(items[i].Name, items[j].Name)
			if view.SortDir == Descending {
				return cmp > 0
			}
			return cmp < 0
		})
	case SortPrice:
		sort.SliceStable(items, func(i, j int) bool {
			if view.SortDir == Descending {
				return items[i].PriceCents > items[j].PriceCents
			}
			return items[i].PriceCents < items[j].PriceCents
		})
	}

	return items
}
