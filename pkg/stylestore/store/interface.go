package store

import "github.com/garunski/stylestore/pkg/stylestore/style"

// StyleStore keeps at most one style per feature type name.
//
// Errors carry one of the apperrors kinds: ErrNotFound, ErrDecode, ErrEncode,
// ErrStorage or ErrInvalid (for type names the location resolver rejects).
type StyleStore interface {
	// HasStyle reports whether a style is stored for typeName. It never
	// reads the style content.
	HasStyle(typeName string) (bool, error)

	// GetStyle returns the decoded style for typeName.
	GetStyle(typeName string) (*style.Style, error)

	// RemoveStyle deletes the style for typeName. Removing a missing style
	// succeeds.
	RemoveStyle(typeName string) error

	// StoreStyle creates or replaces the style for typeName. The previous
	// style is left untouched if encoding or writing fails.
	StoreStyle(typeName string, s *style.Style) error
}

// Ensure *Store implements StyleStore interface
var _ StyleStore = (*Store)(nil)
