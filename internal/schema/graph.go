// Package schema declares the static entity graph of the survey store: each
// entity type, its primary key field, and the foreign-key edges that attach
// it to its parent types. The graph is purely declarative; it is validated
// once at startup and never changes afterwards.
package schema

import (
	"errors"
	"fmt"
)

// Graph validation errors. These indicate a corrupted declaration, never a
// data condition.
var (
	ErrDuplicateEntity = errors.New("duplicate entity declaration")
	ErrDanglingEdge    = errors.New("edge references undeclared parent entity")
	ErrCyclicGraph     = errors.New("entity graph contains a cycle")
	ErrNoRoot          = errors.New("graph must declare exactly one root entity")
	ErrEmptyKeyField   = errors.New("entity key field must not be empty")
	ErrEmptyRefField   = errors.New("edge reference field must not be empty")
)

// Edge is a directed reference from a child entity type to a parent entity
// type: rows of the child carry the parent's primary key in RefField.
type Edge struct {
	Parent   string
	RefField string
}

// Entity describes one entity type: its table name, the field holding its
// primary key, and zero or more edges into its parent types. An entity with
// more than one edge has fan-in: each row attaches through exactly one of
// the edges, but the type as a whole is reachable through all of them.
type Entity struct {
	Name     string
	KeyField string
	Edges    []Edge
}

// Graph is an immutable set of entity declarations forming a DAG rooted at
// the single entity with no edges.
type Graph struct {
	entities map[string]Entity
	declared []string // declaration order, used for stable tie-breaking
	order    []string // dependency order, computed once by New
	root     string
}

// New builds and validates a graph from entity declarations. The declaration
// order is significant: it breaks ties in the dependency order so that emit
// order is reproducible across runs.
func New(entities ...Entity) (*Graph, error) {
	g := &Graph{entities: make(map[string]Entity, len(entities))}

	for _, ent := range entities {
		if _, ok := g.entities[ent.Name]; ok {
			return nil, fmt.Errorf("%s: %w", ent.Name, ErrDuplicateEntity)
		}
		if ent.KeyField == "" {
			return nil, fmt.Errorf("%s: %w", ent.Name, ErrEmptyKeyField)
		}
		g.entities[ent.Name] = ent
		g.declared = append(g.declared, ent.Name)
		if len(ent.Edges) == 0 {
			if g.root != "" {
				return nil, fmt.Errorf("%s and %s: %w", g.root, ent.Name, ErrNoRoot)
			}
			g.root = ent.Name
		}
	}
	if g.root == "" {
		return nil, ErrNoRoot
	}

	for _, name := range g.declared {
		for _, edge := range g.entities[name].Edges {
			if edge.RefField == "" {
				return nil, fmt.Errorf("%s -> %s: %w", name, edge.Parent, ErrEmptyRefField)
			}
			if _, ok := g.entities[edge.Parent]; !ok {
				return nil, fmt.Errorf("%s -> %s: %w", name, edge.Parent, ErrDanglingEdge)
			}
		}
	}

	order, err := g.sort()
	if err != nil {
		return nil, err
	}
	g.order = order
	return g, nil
}

// Entity returns the declaration for the named entity type.
func (g *Graph) Entity(name string) (Entity, bool) {
	ent, ok := g.entities[name]
	return ent, ok
}

// Root returns the name of the root entity type.
func (g *Graph) Root() string {
	return g.root
}

// Order returns the entity names in dependency order: every parent strictly
// before all of its children, ties broken by declaration order. The returned
// slice is shared; callers must not modify it.
func (g *Graph) Order() []string {
	return g.order
}

// Len returns the number of declared entity types.
func (g *Graph) Len() int {
	return len(g.declared)
}

// sort runs Kahn's algorithm over the edge set, always picking the ready
// entity that was declared earliest. A remainder after the sort means the
// declarations contain a cycle.
func (g *Graph) sort() ([]string, error) {
	pending := make(map[string]int, len(g.declared))
	for _, name := range g.declared {
		pending[name] = len(g.entities[name].Edges)
	}

	order := make([]string, 0, len(g.declared))
	for len(order) < len(g.declared) {
		next := ""
		for _, name := range g.declared {
			if pending[name] == 0 {
				next = name
				break
			}
		}
		if next == "" {
			return nil, ErrCyclicGraph
		}
		order = append(order, next)
		pending[next] = -1 // never ready again

		for _, name := range g.declared {
			if pending[name] <= 0 {
				continue
			}
			for _, edge := range g.entities[name].Edges {
				if edge.Parent == next {
					pending[name]--
				}
			}
		}
	}
	return order, nil
}
