// Package medium holds the physical stores a style record can live in.
//
// Every implementation gives the same guarantees: Replace is atomic (readers
// observe the old bytes or the new bytes, never a mix), Remove of a missing
// location succeeds, Read of a missing location fails with an error wrapping
// apperrors.ErrNotFound, and any other failure wraps apperrors.ErrStorage.
package medium

// Medium is a byte store addressed by resolved locations.
type Medium interface {
	// Exists probes for a record without reading it.
	Exists(location string) (bool, error)

	// Read returns the full record.
	Read(location string) ([]byte, error)

	// Replace atomically creates or overwrites the record.
	Replace(location string, data []byte) error

	// Remove deletes the record if present.
	Remove(location string) error
}

// Lister is implemented by media that can enumerate their records.
type Lister interface {
	// List returns every stored location, sorted.
	List() ([]string, error)
}

// Closer is implemented by media holding resources that must be released.
type Closer interface {
	Close() error
}

func copyBytes(src []byte) []byte {
	dst := make([]byte, len(src))
	copy(dst, src)
	return dst
}
