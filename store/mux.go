package store

import (
	"context"
	"fmt"
)

// Mux routes each kind to the Store that owns it. WordPress keeps posts, users,
// comments and terms in the database while taxonomies, post types, themes,
// plugins and menu locations are registered at runtime, so a deployment
// usually combines a SQL store with an in-memory one.
type Mux struct {
	routes   map[Kind]Store
	fallback Store
}

// NewMux creates a Mux sending every kind without an explicit route to fallback.
func NewMux(fallback Store) *Mux {
	return &Mux{routes: make(map[Kind]Store), fallback: fallback}
}

// Handle routes kinds to s.
func (m *Mux) Handle(s Store, kinds ...Kind) *Mux {
	for _, k := range kinds {
		m.routes[k] = s
	}
	return m
}

func (m *Mux) route(kind Kind) (Store, error) {
	if s, ok := m.routes[kind]; ok {
		return s, nil
	}
	if m.fallback == nil {
		return nil, fmt.Errorf("store: no route for kind %q", kind)
	}
	return m.fallback, nil
}

func (m *Mux) Get(ctx context.Context, kind Kind, id string) (*Record, error) {
	s, err := m.route(kind)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, kind, id)
}

func (m *Mux) List(ctx context.Context, kind Kind, filter Filter) ([]*Record, error) {
	s, err := m.route(kind)
	if err != nil {
		return nil, err
	}
	return s.List(ctx, kind, filter)
}

func (m *Mux) GetByName(ctx context.Context, kind Kind, name string) (*Record, error) {
	s, err := m.route(kind)
	if err != nil {
		return nil, err
	}
	return s.GetByName(ctx, kind, name)
}
