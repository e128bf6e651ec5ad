package shuffle

// Table is a live host table of records indexed by small integer ids.
type Table[R any] interface {
	Len() int
	Get(id int) R
	Set(id int, record R)
}

// Slice adapts a slice to Table. Writes go to the backing array.
type Slice[R any] []R

// Len returns the number of rows.
func (s Slice[R]) Len() int { return len(s) }

// Get returns the row at id.
func (s Slice[R]) Get(id int) R { return s[id] }

// Set replaces the row at id.
func (s Slice[R]) Set(id int, record R) { s[id] = record }

// Snapshot copies every row of t.
func Snapshot[R any](t Table[R]) []R {
	out := make([]R, t.Len())
	for id := range out {
		out[id] = t.Get(id)
	}
	return out
}
