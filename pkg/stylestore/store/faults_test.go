package store

import (
	"errors"
	"testing"

	"github.com/go-logr/logr"

	apperrors "github.com/garunski/stylestore/pkg/stylestore/errors"
	"github.com/garunski/stylestore/pkg/stylestore/location"
	"github.com/garunski/stylestore/pkg/stylestore/style"
)

var errDiskGone = errors.New("disk gone")

// faultyMedium fails every operation with an error that carries no kind.
type faultyMedium struct{}

func (faultyMedium) Exists(string) (bool, error)  { return false, errDiskGone }
func (faultyMedium) Read(string) ([]byte, error)  { return nil, errDiskGone }
func (faultyMedium) Replace(string, []byte) error { return errDiskGone }
func (faultyMedium) Remove(string) error          { return errDiskGone }

func TestStore_MediumFailures(t *testing.T) {
	s := New(location.NewKey("styles/"), style.SLDCodec{}, faultyMedium{}, logr.Discard())

	checks := []struct {
		name string
		err  error
	}{
		{name: "has", err: func() error { _, err := s.HasStyle("roads"); return err }()},
		{name: "get", err: func() error { _, err := s.GetStyle("roads"); return err }()},
		{name: "remove", err: s.RemoveStyle("roads")},
		{name: "store", err: s.StoreStyle("roads", testStyle("roads", "#000000"))},
	}

	for _, c := range checks {
		t.Run(c.name, func(t *testing.T) {
			if !errors.Is(c.err, apperrors.ErrStorage) {
				t.Errorf("expected ErrStorage, got %v", c.err)
			}
			if !errors.Is(c.err, errDiskGone) {
				t.Errorf("cause lost: %v", c.err)
			}
			if errors.Is(c.err, apperrors.ErrNotFound) {
				t.Errorf("storage failure reported as not found: %v", c.err)
			}
		})
	}
}

func TestStorageError_KeepsExistingKind(t *testing.T) {
	cause := apperrors.WrapStorage(errDiskGone, "write")
	err := storageError(cause, "store style %q", "roads")
	if !errors.Is(err, apperrors.ErrStorage) || !errors.Is(err, errDiskGone) {
		t.Errorf("storageError() = %v", err)
	}
}
