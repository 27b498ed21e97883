// Package service orchestrates selection sessions over catalog snapshots.
package service

import (
	"context"

	"github.com/google/uuid"

	catalogtransport "catalogo_backend/internal/catalog/transport"
	"catalogo_backend/internal/selection/engine"
	"catalogo_backend/internal/selection/session"
	"catalogo_backend/internal/selection/transport"
	"catalogo_backend/platform/logger"
)

// CatalogProvider supplies the catalog aggregate a session snapshots.
type CatalogProvider interface {
	Aggregate(ctx context.Context, id uuid.UUID) (catalogtransport.CatalogAggregateResponse, error)
}

// Service runs the selection session operations.
type Service struct {
	catalogs CatalogProvider
	store    *session.Store
	log      *logger.Logger
}

// New creates a new selection service.
func New(catalogs CatalogProvider, store *session.Store, log *logger.Logger) *Service {
	return &Service{catalogs: catalogs, store: store, log: log}
}

// Store exposes the session store for collaborating modules.
func (s *Service) Store() *session.Store {
	return s.store
}

// CreateSession snapshots the catalog and opens a session over it.
func (s *Service) CreateSession(ctx context.Context, catalogID uuid.UUID) (transport.SessionResponse, error) {
	agg, err := s.catalogs.Aggregate(ctx, catalogID)
	if err != nil {
		return transport.SessionResponse{}, err
	}

	snapshot := buildSnapshot(agg)
	sess, err := s.store.Create(snapshot)
	if err != nil {
		return transport.SessionResponse{}, err
	}

	s.log.Info("selection session created", "catalog_id", catalogID, "services", len(snapshot.Services), "packages", len(snapshot.Packages))

	return buildResponse(sess), nil
}

// GetSession returns the current view of a session.
func (s *Service) GetSession(token string) (transport.SessionResponse, error) {
	sess, err := s.store.Get(token)
	if err != nil {
		return transport.SessionResponse{}, err
	}

	return buildResponse(sess), nil
}

// Toggle flips membership of an item and returns the updated view.
func (s *Service) Toggle(token string, req transport.ToggleRequest) (transport.SessionResponse, error) {
	sess, err := s.store.Get(token)
	if err != nil {
		return transport.SessionResponse{}, err
	}

	if _, err := sess.Toggle(req.Key); err != nil {
		return transport.SessionResponse{}, err
	}

	return buildResponse(sess), nil
}

// ChangeQuantity adjusts the quantity of a selected item and returns
// the updated view. Unknown keys leave the selection untouched.
func (s *Service) ChangeQuantity(token string, req transport.QuantityRequest) (transport.SessionResponse, error) {
	sess, err := s.store.Get(token)
	if err != nil {
		return transport.SessionResponse{}, err
	}

	sess.ChangeQuantity(req.Key, req.Delta)

	return buildResponse(sess), nil
}

// UpdateView applies presentation changes and returns the updated view.
func (s *Service) UpdateView(token string, req transport.UpdateViewRequest) (transport.SessionResponse, error) {
	sess, err := s.store.Get(token)
	if err != nil {
		return transport.SessionResponse{}, err
	}

	sess.UpdateView(func(v *engine.ViewState) {
		if req.Filter != nil {
			v.Filter = engine.Filter(*req.Filter)
		}
		if req.SortBy != nil {
			dir := v.SortDir
			if req.SortDir != nil {
				dir = engine.SortDirection(*req.SortDir)
			}
			if dir == "" {
				dir = engine.Ascending
			}
			v.SetSort(engine.SortDimension(*req.SortBy), dir)
		} else if req.SortDir != nil && v.SortBy != engine.SortNone {
			v.SortDir = engine.SortDirection(*req.SortDir)
		}
		if req.UsePackages != nil {
			v.UsePackages = *req.UsePackages
		}
		if req.UseQuantities != nil {
			v.UseQuantities = *req.UseQuantities
		}
	})

	return buildResponse(sess), nil
}

// buildSnapshot converts the catalog aggregate into the immutable
// session snapshot the engine works on.
func buildSnapshot(agg catalogtransport.CatalogAggregateResponse) engine.Catalog {
	services := make([]engine.Item, 0, len(agg.Services))
	for _, svc := range agg.Services {
		services = append(services, engine.Item{
			Kind:        engine.KindService,
			ID:          svc.ID,
			Name:        svc.Name,
			Description: svc.Description,
			PriceCents:  svc.PriceCents,
		})
	}

	packages := make([]engine.Item, 0, len(agg.Packages))
	for _, pkg := range agg.Packages {
		names := make([]string, 0, len(pkg.Services))
		for _, svc := range pkg.Services {
			names = append(names, svc.Name)
		}
		packages = append(packages, engine.Item{
			Kind:         engine.KindPackage,
			ID:           pkg.ID,
			Name:         pkg.Name,
			Description:  pkg.Description,
			PriceCents:   pkg.PriceCents,
			ServiceNames: names,
		})
	}

	return engine.NewCatalog(agg.ID, agg.Name, services, packages)
}

func buildResponse(sess *session.Session) transport.SessionResponse {
	snap := sess.Snapshot()

	quantities := make(map[string]int, len(snap.Entries))
	for _, entry := range snap.Entries {
		quantities[entry.Item.Key()] = entry.Quantity
	}

	items := make([]transport.DisplayItem, 0, len(snap.Items))
	for _, item := range snap.Items {
		key := item.Key()
		qty, selected := quantities[key]
		items = append(items, transport.DisplayItem{
			Key:         key,
			Kind:        string(item.Kind),
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			PriceCents:  item.PriceCents,
			Services:    item.ServiceNames,
			Selected:    selected,
			Quantity:    qty,
		})
	}

	selected := make([]transport.SelectedEntry, 0, len(snap.Entries))
	for _, entry := range snap.Entries {
		lineTotal := entry.Item.PriceCents
		if snap.View.UseQuantities {
			lineTotal = entry.Item.PriceCents * int64(entry.Quantity)
		}
		selected = append(selected, transport.SelectedEntry{
			Key:            entry.Item.Key(),
			Kind:           string(entry.Item.Kind),
			Name:           entry.Item.Name,
			PriceCents:     entry.Item.PriceCents,
			Quantity:       entry.Quantity,
			LineTotalCents: lineTotal,
		})
	}

	return transport.SessionResponse{
		Token:   sess.Token(),
		Catalog: transport.CatalogInfo{ID: snap.Catalog.ID, Name: snap.Catalog.Name},
		View: transport.ViewState{
			Filter:        string(snap.View.Filter),
			SortBy:        string(snap.View.SortBy),
			SortDir:       string(snap.View.SortDir),
			UsePackages:   snap.View.UsePackages,
			UseQuantities: snap.View.UseQuantities,
		},
		Items:      items,
		Selected:   selected,
		Count:      len(snap.Entries),
		TotalCents: snap.TotalCents,
	}
}
