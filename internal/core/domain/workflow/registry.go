package workflow

import (
	"maps"
	"slices"

	"restaurantops/internal/pkg/errs"
)

// Registry resolves transition questions for any entity kind.
type Registry struct {
	tables map[Kind]*Table
}

// NewRegistry builds a registry from compiled tables. A later table for the
// same kind replaces an earlier one.
func NewRegistry(tables ...*Table) *Registry {
	r := &Registry{tables: make(map[Kind]*Table, len(tables))}
	for _, t := range tables {
		r.tables[t.Kind()] = t
	}
	return r
}

// Table returns the table registered for kind.
func (r *Registry) Table(kind Kind) (*Table, error) {
	t, ok := r.tables[kind]
	if !ok {
		return nil, errs.NewUnknownStateError("kind", string(kind))
	}
	return t, nil
}

// Kinds returns the registered kinds in lexical order.
func (r *Registry) Kinds() []Kind {
	return slices.Sorted(maps.Keys(r.tables))
}

// Check validates from -> to for kind. See Table.Check.
func (r *Registry) Check(kind Kind, from, to State) error {
	t, err := r.Table(kind)
	if err != nil {
		return err
	}
	return t.Check(from, to)
}

// IsValidTransition reports whether kind may move from -> to.
func (r *Registry) IsValidTransition(kind Kind, from, to State) bool {
	return r.Check(kind, from, to) == nil
}

// NextStep returns the next happy path state for kind. The boolean is false
// when from is terminal.
func (r *Registry) NextStep(kind Kind, from State) (State, bool, error) {
	t, err := r.Table(kind)
	if err != nil {
		return "", false, err
	}
	return t.Next(from)
}
