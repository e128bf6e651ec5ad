package shuffle

import "fmt"

// Direction selects how a field group follows a mapping.
type Direction int

const (
	// Gather pulls fields into id from its mapped source: dst[id] <- snap[m[id]].
	// The row keeps its id and inherits another row's values.
	Gather Direction = iota
	// Scatter pushes fields from id onto its mapped target: dst[m[id]] <- snap[id].
	// The row that receives an identity also receives that identity's values.
	Scatter
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Gather:
		return "gather"
	case Scatter:
		return "scatter"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// FieldGroup is a named subset of record fields copied together.
type FieldGroup[R any] struct {
	Name      string
	Direction Direction
	// Copy writes the group's fields from src into dst and leaves the rest of dst alone.
	Copy func(dst *R, src R)
}

// ApplyFieldCopy re-pairs the listed field groups of table along m.
//
// Every value is read from a snapshot taken before the first write, so the
// result does not depend on the order keys are visited in. Rows whose ids
// are outside the mapping are never written.
//
// # Errors
//
//   - ErrNoFieldGroups when m is not empty and no group is given.
//   - ErrIDOutOfRange when a key or value of m is not a row of table. The
//     check runs before any write.
func ApplyFieldCopy[R any](table Table[R], m Mapping, groups ...FieldGroup[R]) error {
	if m.Len() == 0 {
		return nil
	}
	if len(groups) == 0 {
		return ErrNoFieldGroups
	}
	for i, g := range groups {
		if g.Copy == nil {
			return fmt.Errorf("field group %d (%s): copy function is required", i, g.Name)
		}
	}

	n := table.Len()
	for _, id := range m.keys {
		to := m.pairs[id]
		if id < 0 || id >= n {
			return fmt.Errorf("%w: id %d, table has %d rows", ErrIDOutOfRange, id, n)
		}
		if to < 0 || to >= n {
			return fmt.Errorf("%w: id %d, table has %d rows", ErrIDOutOfRange, to, n)
		}
	}

	snap := Snapshot(table)
	// Writes land in a working copy so gather and scatter groups on the same
	// row compose instead of overwriting each other.
	work := make([]R, len(snap))
	copy(work, snap)
	touched := make(map[int]struct{}, m.Len()*2)

	for _, id := range m.keys {
		to := m.pairs[id]
		for _, g := range groups {
			switch g.Direction {
			case Scatter:
				g.Copy(&work[to], snap[id])
				touched[to] = struct{}{}
			default:
				g.Copy(&work[id], snap[to])
				touched[id] = struct{}{}
			}
		}
	}

	for _, id := range m.keys {
		if _, ok := touched[id]; ok {
			table.Set(id, work[id])
		}
	}
	return nil
}

// ApplySlice is ApplyFieldCopy over a plain slice.
func ApplySlice[R any](rows []R, m Mapping, groups ...FieldGroup[R]) error {
	return ApplyFieldCopy[R](Slice[R](rows), m, groups...)
}
