package location

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/garunski/stylestore/pkg/stylestore/errors"
)

func TestValidateTypeName(t *testing.T) {
	tests := []struct {
		name     string
		typeName string
		wantErr  bool
	}{
		{"simple", "roads", false},
		{"with dots", "roads.v2", false},
		{"with spaces", "land use", false},
		{"empty", "", true},
		{"dot", ".", true},
		{"dotdot", "..", true},
		{"slash", "a/b", true},
		{"backslash", `a\b`, true},
		{"nul", "a\x00b", true},
		{"too long", strings.Repeat("x", 256), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTypeName(tt.typeName)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateTypeName(%q) error = %v, wantErr %v", tt.typeName, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, apperrors.ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestSidecar(t *testing.T) {
	dir := filepath.Join("data", "shapes")
	r := NewSidecar(dir, "sld")

	loc, err := r.Resolve("roads")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if want := filepath.Join(dir, "roads.sld"); loc != want {
		t.Errorf("Resolve() = %q, want %q", loc, want)
	}

	name, ok := r.TypeName(loc)
	if !ok || name != "roads" {
		t.Errorf("TypeName(%q) = %q, %v", loc, name, ok)
	}

	if _, ok := r.TypeName(filepath.Join(dir, ".roads.sld.tmp-123")); ok {
		t.Error("temp files should not reverse to a type name")
	}
	if _, ok := r.TypeName(filepath.Join(dir, "roads.shp")); ok {
		t.Error("other extensions should not reverse to a type name")
	}
	if _, ok := r.TypeName(filepath.Join("elsewhere", "roads.sld")); ok {
		t.Error("files outside the directory should not reverse to a type name")
	}

	if _, err := r.Resolve(".hidden"); !errors.Is(err, apperrors.ErrInvalid) {
		t.Errorf("expected ErrInvalid for hidden name, got %v", err)
	}
	if _, err := r.Resolve("../escape"); !errors.Is(err, apperrors.ErrInvalid) {
		t.Errorf("expected ErrInvalid for traversal, got %v", err)
	}
}

func TestSidecar_DistinctNamesDistinctLocations(t *testing.T) {
	r := NewSidecar("dir", ".sld")
	a, _ := r.Resolve("roads")
	b, _ := r.Resolve("rivers")
	if a == b {
		t.Errorf("distinct type names resolved to the same location %q", a)
	}
}

func TestKey(t *testing.T) {
	r := NewKey("styles/")

	loc, err := r.Resolve("parcels")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if loc != "styles/parcels" {
		t.Errorf("Resolve() = %q", loc)
	}

	name, ok := r.TypeName(loc)
	if !ok || name != "parcels" {
		t.Errorf("TypeName(%q) = %q, %v", loc, name, ok)
	}
	if _, ok := r.TypeName("events/123"); ok {
		t.Error("foreign keys should not reverse")
	}
	if _, err := r.Resolve(""); !errors.Is(err, apperrors.ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestConfigMapName(t *testing.T) {
	r := NewConfigMapName("style")

	loc, err := r.Resolve("roads")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if loc != "style-roads" {
		t.Errorf("Resolve() = %q", loc)
	}
	name, ok := r.TypeName(loc)
	if !ok || name != "roads" {
		t.Errorf("TypeName(%q) = %q, %v", loc, name, ok)
	}

	for _, bad := range []string{"Roads", "land use", "under_score"} {
		if _, err := r.Resolve(bad); !errors.Is(err, apperrors.ErrInvalid) {
			t.Errorf("Resolve(%q) expected ErrInvalid, got %v", bad, err)
		}
	}
	if _, ok := r.TypeName("other-roads"); ok {
		t.Error("names without the prefix should not reverse")
	}
}
