package shuffle

import "errors"

var (
	// ErrIDOutOfRange is returned when a mapping references a row the table does not have.
	ErrIDOutOfRange = errors.New("mapping id out of table range")

	// ErrNoFieldGroups is returned when ApplyFieldCopy is called without field groups.
	ErrNoFieldGroups = errors.New("at least one field group is required")

	// ErrNotPermutation is returned by FromPairs when values do not permute keys.
	ErrNotPermutation = errors.New("pairs are not a permutation of keys")
)
