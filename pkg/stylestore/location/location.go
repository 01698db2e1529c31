// Package location maps type names onto the physical locations a medium
// understands. Resolvers are pure: they shape names and never touch storage.
package location

import (
	"fmt"
	"path/filepath"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation"

	apperrors "github.com/garunski/stylestore/pkg/stylestore/errors"
)

const maxTypeNameLength = 255

// Resolver maps a type name to a storage location.
type Resolver interface {
	Resolve(typeName string) (string, error)
}

// Reverser recovers the type name from a location produced by the same
// resolver. ok is false for locations the resolver would never produce.
type Reverser interface {
	TypeName(location string) (typeName string, ok bool)
}

// ValidateTypeName rejects names that cannot be used as a key on any medium.
func ValidateTypeName(typeName string) error {
	if typeName == "" {
		return fmt.Errorf("%w: type name cannot be empty", apperrors.ErrInvalid)
	}
	if len(typeName) > maxTypeNameLength {
		return fmt.Errorf("%w: type name must be %d characters or less", apperrors.ErrInvalid, maxTypeNameLength)
	}
	if typeName == "." || typeName == ".." {
		return fmt.Errorf("%w: type name %q is reserved", apperrors.ErrInvalid, typeName)
	}
	if strings.ContainsAny(typeName, "/\\\x00") {
		return fmt.Errorf("%w: type name %q contains a path separator or NUL", apperrors.ErrInvalid, typeName)
	}
	return nil
}

// Sidecar places each style next to the data file of its type:
// <dir>/<typeName><ext>, e.g. roads.shp is accompanied by roads.sld.
type Sidecar struct {
	Dir       string
	Extension string
}

func NewSidecar(dir, ext string) Sidecar {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return Sidecar{Dir: dir, Extension: ext}
}

func (s Sidecar) Resolve(typeName string) (string, error) {
	if err := ValidateTypeName(typeName); err != nil {
		return "", err
	}
	if strings.HasPrefix(typeName, ".") {
		return "", fmt.Errorf("%w: type name %q would produce a hidden file", apperrors.ErrInvalid, typeName)
	}
	return filepath.Join(s.Dir, typeName+s.Extension), nil
}

func (s Sidecar) TypeName(location string) (string, bool) {
	if filepath.Dir(location) != filepath.Clean(s.Dir) {
		return "", false
	}
	base := filepath.Base(location)
	if strings.HasPrefix(base, ".") || !strings.HasSuffix(base, s.Extension) {
		return "", false
	}
	name := strings.TrimSuffix(base, s.Extension)
	if name == "" {
		return "", false
	}
	return name, true
}

// Key prefixes the type name for key-value media: "styles/roads".
type Key struct {
	Prefix string
}

func NewKey(prefix string) Key {
	return Key{Prefix: prefix}
}

func (k Key) Resolve(typeName string) (string, error) {
	if err := ValidateTypeName(typeName); err != nil {
		return "", err
	}
	return k.Prefix + typeName, nil
}

func (k Key) TypeName(location string) (string, bool) {
	if !strings.HasPrefix(location, k.Prefix) {
		return "", false
	}
	name := strings.TrimPrefix(location, k.Prefix)
	if ValidateTypeName(name) != nil {
		return "", false
	}
	return name, true
}

// ConfigMapName maps a type name to a Kubernetes object name "<prefix>-<type>".
// Type names are not case-folded: a name that is not already a valid RFC 1123
// subdomain is rejected so two type names never share an object.
type ConfigMapName struct {
	Prefix string
}

func NewConfigMapName(prefix string) ConfigMapName {
	return ConfigMapName{Prefix: prefix}
}

func (c ConfigMapName) Resolve(typeName string) (string, error) {
	if err := ValidateTypeName(typeName); err != nil {
		return "", err
	}
	name := typeName
	if c.Prefix != "" {
		name = c.Prefix + "-" + typeName
	}
	if errs := validation.IsDNS1123Subdomain(name); len(errs) > 0 {
		return "", fmt.Errorf("%w: type name %q cannot be stored as ConfigMap %q: %s", apperrors.ErrInvalid, typeName, name, strings.Join(errs, "; "))
	}
	return name, nil
}

func (c ConfigMapName) TypeName(location string) (string, bool) {
	name := location
	if c.Prefix != "" {
		if !strings.HasPrefix(location, c.Prefix+"-") {
			return "", false
		}
		name = strings.TrimPrefix(location, c.Prefix+"-")
	}
	if name == "" {
		return "", false
	}
	return name, true
}

var (
	_ Resolver = Sidecar{}
	_ Reverser = Sidecar{}
	_ Resolver = Key{}
	_ Reverser = Key{}
	_ Resolver = ConfigMapName{}
	_ Reverser = ConfigMapName{}
)
