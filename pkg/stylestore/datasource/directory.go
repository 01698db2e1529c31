// Package datasource exposes a directory of shapefiles as a feature source
// whose styles live in sidecar files next to the data.
package datasource

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-logr/logr"

	apperrors "github.com/garunski/stylestore/pkg/stylestore/errors"
	"github.com/garunski/stylestore/pkg/stylestore/location"
	"github.com/garunski/stylestore/pkg/stylestore/medium"
	"github.com/garunski/stylestore/pkg/stylestore/store"
	"github.com/garunski/stylestore/pkg/stylestore/style"
)

const ShapefileExtension = ".shp"

// FeatureSource is a collection of named feature types that can carry a style
// each.
type FeatureSource interface {
	store.StyleStore

	// TypeNames lists the feature types the source serves.
	TypeNames() ([]string, error)
}

// Directory serves every *.shp file in dir as a feature type. The style for
// roads.shp lives beside it in roads.sld (or the codec's extension).
type Directory struct {
	*store.Store
	dir string
}

var _ FeatureSource = (*Directory)(nil)

func OpenDirectory(dir string, codec style.Codec, logger logr.Logger, opts ...store.Option) (*Directory, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, apperrors.WrapStorage(err, "open feature directory "+dir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", apperrors.ErrInvalid, dir)
	}

	m, err := medium.NewFile(dir, codec.Extension())
	if err != nil {
		return nil, err
	}

	resolver := location.NewSidecar(dir, codec.Extension())
	return &Directory{
		Store: store.New(resolver, codec, m, logger.WithName("styles"), opts...),
		dir:   dir,
	}, nil
}

func (d *Directory) Dir() string {
	return d.dir
}

func (d *Directory) TypeNames() ([]string, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, apperrors.WrapStorage(err, "read feature directory "+d.dir)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(extension(name), ShapefileExtension) {
			continue
		}
		typeName := name[:len(name)-len(ShapefileExtension)]
		if typeName == "" || strings.HasPrefix(typeName, ".") {
			continue
		}
		names = append(names, typeName)
	}
	sort.Strings(names)
	return names, nil
}

// Unstyled returns the feature types that have no style yet.
func (d *Directory) Unstyled() ([]string, error) {
	names, err := d.TypeNames()
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, name := range names {
		ok, err := d.HasStyle(name)
		if err != nil {
			return nil, err
		}
		if !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

func extension(name string) string {
	if len(name) < len(ShapefileExtension) {
		return ""
	}
	return name[len(name)-len(ShapefileExtension):]
}
