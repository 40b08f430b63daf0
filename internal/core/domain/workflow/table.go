package workflow

import (
	"errors"
	"fmt"
	"slices"

	"restaurantops/internal/pkg/errs"
)

// Kind names a family of entities sharing one transition table.
type Kind string

const (
	KindOrder       Kind = "order"
	KindDelivery    Kind = "delivery"
	KindPerson      Kind = "person"
	KindReservation Kind = "reservation"
)

// State is a status value as it appears on the wire, e.g. "PENDING" or "in_transit".
type State string

func (s State) String() string {
	return string(s)
}

// Edge is a single permitted move between two states.
type Edge struct {
	From State
	To   State
}

// Definition describes a transition table before it is compiled.
//
// Canonical is the ordered happy path; every consecutive pair becomes an edge.
// Extra lists additional edges off the happy path. Escapes are states reachable
// from every non-terminal state (typically a cancellation state). Terminal states
// have no outgoing edges. Initial must be one of the known states.
type Definition struct {
	Kind      Kind
	Canonical []State
	Extra     []Edge
	Escapes   []State
	Terminal  []State
	Initial   State
}

// Table is a compiled, immutable transition table for one entity kind.
type Table struct {
	kind      Kind
	initial   State
	canonical []State
	states    []State
	position  map[State]int
	terminal  map[State]struct{}
	edges     map[State]map[State]struct{}
}

// NewTable compiles a Definition into a Table.
//
// Returns an error when the definition is inconsistent: no states at all, an
// unknown initial state, or an edge leaving a terminal state.
func NewTable(def Definition) (*Table, error) {
	if def.Kind == "" {
		return nil, errs.NewValueIsRequiredError("kind")
	}

	t := &Table{
		kind:      def.Kind,
		initial:   def.Initial,
		canonical: slices.Clone(def.Canonical),
		position:  make(map[State]int, len(def.Canonical)),
		terminal:  make(map[State]struct{}, len(def.Terminal)),
		edges:     make(map[State]map[State]struct{}),
	}

	known := make(map[State]struct{})
	addState := func(s State) {
		if _, ok := known[s]; ok {
			return
		}
		known[s] = struct{}{}
		t.states = append(t.states, s)
	}
	addEdge := func(from, to State) {
		if t.edges[from] == nil {
			t.edges[from] = make(map[State]struct{})
		}
		t.edges[from][to] = struct{}{}
	}

	for i, s := range def.Canonical {
		addState(s)
		t.position[s] = i
		if i > 0 {
			addEdge(def.Canonical[i-1], s)
		}
	}
	for _, e := range def.Extra {
		addState(e.From)
		addState(e.To)
		addEdge(e.From, e.To)
	}
	for _, s := range def.Escapes {
		addState(s)
	}
	for _, s := range def.Terminal {
		addState(s)
		t.terminal[s] = struct{}{}
	}

	for _, s := range t.states {
		if t.IsTerminal(s) {
			continue
		}
		for _, esc := range def.Escapes {
			if esc != s {
				addEdge(s, esc)
			}
		}
	}

	if len(t.states) == 0 {
		return nil, errs.NewValueIsRequiredError("states")
	}
	if _, ok := known[def.Initial]; !ok {
		return nil, errs.NewUnknownStateError(string(def.Kind), string(def.Initial))
	}
	for from := range t.edges {
		if t.IsTerminal(from) {
			return nil, fmt.Errorf("%s table: %w", def.Kind,
				errs.NewInvalidTransitionErrorWithCause(string(def.Kind), string(from), "*",
					errors.New("terminal state has outgoing edges")))
		}
	}

	return t, nil
}

// MustNewTable is like NewTable but panics on an inconsistent definition.
// It is meant for package level tables declared next to their entity.
func MustNewTable(def Definition) *Table {
	t, err := NewTable(def)
	if err != nil {
		panic(err)
	}
	return t
}

// Kind returns the entity kind the table belongs to.
func (t *Table) Kind() Kind {
	return t.kind
}

// Initial returns the state assigned to newly created entities.
func (t *Table) Initial() State {
	return t.initial
}

// States returns every known state, canonical ones first.
func (t *Table) States() []State {
	return slices.Clone(t.states)
}

// Knows reports whether s is a state of this table.
func (t *Table) Knows(s State) bool {
	return slices.Contains(t.states, s)
}

// IsTerminal reports whether s permits no further transitions.
func (t *Table) IsTerminal(s State) bool {
	_, ok := t.terminal[s]
	return ok
}

// Position returns the index of s on the canonical path, or -1 when s is not on it.
func (t *Table) Position(s State) int {
	if i, ok := t.position[s]; ok {
		return i
	}
	return -1
}

// Validate returns an UnknownStateError when s is not part of the table.
func (t *Table) Validate(s State) error {
	if !t.Knows(s) {
		return errs.NewUnknownStateError(string(t.kind), string(s))
	}
	return nil
}

// Check validates the move from -> to.
//
// Returns:
//   - nil when the edge exists or from == to (no-op)
//   - UnknownStateError when either state is not part of the table
//   - InvalidTransitionError when the edge is not permitted, including any
//     move out of a terminal state
//
// Example:
//
//	if err := delivery.Flow.Check(delivery.Preparing, delivery.Delivered); err != nil {
//	    // errors.Is(err, errs.ErrInvalidTransition) == true
//	}
func (t *Table) Check(from, to State) error {
	if err := errors.Join(t.Validate(from), t.Validate(to)); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	if t.IsTerminal(from) {
		return errs.NewInvalidTransitionErrorWithCause(string(t.kind), string(from), string(to),
			fmt.Errorf("%s is terminal", from))
	}
	if _, ok := t.edges[from][to]; !ok {
		return errs.NewInvalidTransitionError(string(t.kind), string(from), string(to))
	}
	return nil
}

// IsValid reports whether Check(from, to) succeeds.
func (t *Table) IsValid(from, to State) bool {
	return t.Check(from, to) == nil
}

// Allowed returns the states reachable from s in one step, in table order.
// Terminal and unknown states yield nil.
func (t *Table) Allowed(s State) []State {
	targets := t.edges[s]
	if len(targets) == 0 {
		return nil
	}
	out := make([]State, 0, len(targets))
	for _, candidate := range t.states {
		if _, ok := targets[candidate]; ok {
			out = append(out, candidate)
		}
	}
	return out
}

// Next returns the state following from on the canonical path.
//
// The boolean is false when from is terminal or has no canonical successor;
// the error is an UnknownStateError when from is not part of the table.
func (t *Table) Next(from State) (State, bool, error) {
	if err := t.Validate(from); err != nil {
		return "", false, err
	}
	if t.IsTerminal(from) {
		return "", false, nil
	}
	i, ok := t.position[from]
	if !ok || i+1 >= len(t.canonical) {
		return "", false, nil
	}
	return t.canonical[i+1], true, nil
}
