package datasource

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/google/go-cmp/cmp"

	apperrors "github.com/garunski/stylestore/pkg/stylestore/errors"
	"github.com/garunski/stylestore/pkg/stylestore/style"
	sstesting "github.com/garunski/stylestore/pkg/stylestore/testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", path, err)
	}
}

func newDirectory(t *testing.T) (*Directory, string) {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "roads.shp"), "shape")
	writeFile(t, filepath.Join(dir, "roads.dbf"), "attributes")
	writeFile(t, filepath.Join(dir, "RIVERS.SHP"), "shape")
	writeFile(t, filepath.Join(dir, "notes.txt"), "x")
	if err := os.Mkdir(filepath.Join(dir, "lakes.shp"), 0o755); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}

	d, err := OpenDirectory(dir, style.SLDCodec{}, logr.Discard())
	if err != nil {
		t.Fatalf("OpenDirectory() error = %v", err)
	}
	return d, dir
}

func TestDirectory_TypeNames(t *testing.T) {
	d, _ := newDirectory(t)

	got, err := d.TypeNames()
	if err != nil {
		t.Fatalf("TypeNames() error = %v", err)
	}
	if diff := cmp.Diff([]string{"RIVERS", "roads"}, got); diff != "" {
		t.Errorf("TypeNames() mismatch (-want +got):\n%s", diff)
	}
}

func TestDirectory_SidecarStyles(t *testing.T) {
	d, dir := newDirectory(t)

	if err := d.StoreStyle("roads", sstesting.NewTestStyle("roads")); err != nil {
		t.Fatalf("StoreStyle() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "roads.sld")); err != nil {
		t.Fatalf("sidecar file not written: %v", err)
	}

	writeFile(t, filepath.Join(dir, "RIVERS.sld"), `<Style name="default"/>`)
	got, err := d.GetStyle("RIVERS")
	if err != nil {
		t.Fatalf("GetStyle() error = %v", err)
	}
	if got.Name != "default" {
		t.Errorf("GetStyle().Name = %q, want default", got.Name)
	}

	names, err := d.ListStyles()
	if err != nil {
		t.Fatalf("ListStyles() error = %v", err)
	}
	if diff := cmp.Diff([]string{"RIVERS", "roads"}, names); diff != "" {
		t.Errorf("ListStyles() mismatch (-want +got):\n%s", diff)
	}
}

func TestDirectory_Unstyled(t *testing.T) {
	d, _ := newDirectory(t)

	if err := d.StoreStyle("roads", sstesting.NewTestStyle("roads")); err != nil {
		t.Fatalf("StoreStyle() error = %v", err)
	}
	got, err := d.Unstyled()
	if err != nil {
		t.Fatalf("Unstyled() error = %v", err)
	}
	if diff := cmp.Diff([]string{"RIVERS"}, got); diff != "" {
		t.Errorf("Unstyled() mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenDirectory_Errors(t *testing.T) {
	if _, err := OpenDirectory(filepath.Join(t.TempDir(), "missing"), style.SLDCodec{}, logr.Discard()); !errors.Is(err, apperrors.ErrStorage) {
		t.Errorf("OpenDirectory(missing) expected ErrStorage, got %v", err)
	}

	file := filepath.Join(t.TempDir(), "data.shp")
	writeFile(t, file, "shape")
	if _, err := OpenDirectory(file, style.SLDCodec{}, logr.Discard()); !errors.Is(err, apperrors.ErrInvalid) {
		t.Errorf("OpenDirectory(file) expected ErrInvalid, got %v", err)
	}
}
