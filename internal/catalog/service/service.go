// Package service exposes catalog operations to the HTTP layer: snapshot
// info, product listing, accessory resolution probes, and conditional
// refresh. Indices are rebuilt once per snapshot swap, never per request.
package service

import (
	"context"
	"sync/atomic"

	"panelbom_backend/internal/catalog/domain"
	"panelbom_backend/internal/catalog/index"
	"panelbom_backend/internal/catalog/repository"
	"panelbom_backend/internal/events"
	"panelbom_backend/internal/quotation/engine"
	platformevents "panelbom_backend/platform/events"
	"panelbom_backend/platform/logger"
)

// Service is the catalog application service.
type Service struct {
	repo *repository.Repository
	bus  platformevents.Bus
	log  *logger.Logger
	view atomic.Pointer[index.View]
}

// New creates the catalog service.
func New(repo *repository.Repository, bus platformevents.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// Load performs the initial catalog load and builds the first view.
func (s *Service) Load(ctx context.Context) error {
	snap, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	s.view.Store(index.NewView(snap))
	return nil
}

// Refresh re-fingerprints the source and reloads only on change. A swapped
// snapshot rebuilds the indices and announces itself on the bus.
func (s *Service) Refresh(ctx context.Context) (*domain.CatalogSnapshot, bool, error) {
	snap, changed, err := s.repo.RefreshIfChanged(ctx)
	if err != nil {
		return nil, false, err
	}

	if changed {
		s.view.Store(index.NewView(snap))
		if s.bus != nil {
			s.bus.Publish(ctx, events.CatalogRefreshed{
				BaseEvent:   platformevents.NewBaseEvent(),
				Version:     snap.Version,
				Fingerprint: snap.Fingerprint,
				Products:    len(snap.Products),
				Accessories: len(snap.Accessories),
			})
		}
	}

	return snap, changed, nil
}

// View returns the current indexed view, rebuilding it if the repository
// swapped in a snapshot this service has not indexed yet.
func (s *Service) View() (*index.View, error) {
	snap, err := s.repo.Current()
	if err != nil {
		return nil, err
	}

	if v := s.view.Load(); v != nil && v.Snapshot == snap {
		return v, nil
	}

	v := index.NewView(snap)
	s.view.Store(v)
	return v, nil
}

// Ready reports whether a snapshot is loaded and servable.
func (s *Service) Ready() error {
	_, err := s.repo.Current()
	return err
}

// Snapshot returns the current raw snapshot.
func (s *Service) Snapshot() (*domain.CatalogSnapshot, error) {
	return s.repo.Current()
}

// ListProducts returns the snapshot's products, optionally filtered by family.
func (s *Service) ListProducts(family string) ([]domain.Product, error) {
	snap, err := s.repo.Current()
	if err != nil {
		return nil, err
	}

	if family == "" {
		return snap.Products, nil
	}

	filtered := make([]domain.Product, 0, len(snap.Products))
	for _, p := range snap.Products {
		if p.Family == domain.Family(family) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// ResolveAccessory runs the full resolution strategy chain for a query.
func (s *Service) ResolveAccessory(query string, family string) (engine.AccessoryMatch, error) {
	view, err := s.View()
	if err != nil {
		return engine.AccessoryMatch{}, err
	}
	return engine.NewAccessoryResolver(view.Accessories).Resolve(query, domain.Family(family))
}
