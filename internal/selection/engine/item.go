// Package engine implements the selection and quotation core: the
// selectable item model, the ordered selection set, and the view
// derivation (filtering and sorting) used by the public catalog page.
package engine

import (
	"github.com/google/uuid"
)

// ItemKind distinguishes the two selectable item families.
type ItemKind string

const (
	// KindService is an individual service offering.
	KindService ItemKind = "service"
	// KindPackage is a bundle of services with its own price.
	KindPackage ItemKind = "package"
)

// Item is a selectable catalog entry. Packages carry the names of
// their member services for display.
type Item struct {
	Kind         ItemKind
	ID           uuid.UUID
	Name         string
	Description  string
	PriceCents   int64
	ServiceNames []string
}

// Key returns the stable selection key for the item. Keys combine the
// kind and the ID so a service and a package can never collide.
func (i Item) Key() string {
	return string(i.Kind) + "-" + i.ID.String()
}

// Catalog is an immutable snapshot of a catalog's selectable items,
// taken when a session is created so later admin edits cannot shift
// the visitor's selection under them.
type Catalog struct {
	ID       uuid.UUID
	Name     string
	Services []Item
	Packages []Item

	byKey map[string]Item
}

// NewCatalog builds a catalog snapshot and indexes its items by key.
func NewCatalog(id uuid.UUID, name string, services, packages []Item) Catalog {
	c := Catalog{
		ID:       id,
		Name:     name,
		Services: services,
		Packages: packages,
		byKey:    make(map[string]Item, len(services)+len(packages)),
	}
	for _, item := range services {
		c.byKey[item.Key()] = item
	}
	for _, item := range packages {
		c.byKey[item.Key()] = item
	}

	return c
}

// ItemByKey looks up a selectable item by its selection key.
func (c Catalog) ItemByKey(key string) (Item, bool) {
	item, ok := c.byKey[key]
	return item, ok
}
