// Package seed loads default styles from a file tree, typically one embedded
// with //go:embed, and stores the ones a style store does not have yet.
package seed

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/garunski/stylestore/pkg/stylestore/errors"
	"github.com/garunski/stylestore/pkg/stylestore/store"
	"github.com/garunski/stylestore/pkg/stylestore/style"
)

const (
	DefaultRoot = "styles"

	applyConcurrency = 4
)

// Load decodes every file under root carrying the codec's extension. Styles are
// keyed by file base name without extension, so styles/roads.sld seeds the
// type "roads". A missing root yields an empty map.
func Load(fsys fs.FS, root string, codec style.Codec) (map[string]*style.Style, error) {
	styles := make(map[string]*style.Style)

	if root == "" {
		root = DefaultRoot
	}

	if _, err := fs.Stat(fsys, root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return styles, nil
		}
		return nil, fmt.Errorf("failed to stat seed root %s: %w", root, err)
	}

	sources := make(map[string]string)
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		base := path.Base(p)
		if strings.HasPrefix(base, ".") || !strings.HasSuffix(base, codec.Extension()) {
			return nil
		}
		typeName := strings.TrimSuffix(base, codec.Extension())
		if typeName == "" {
			return nil
		}

		if prev, dup := sources[typeName]; dup {
			return fmt.Errorf("%w: type %q defined by both %s and %s", apperrors.ErrInvalid, typeName, prev, p)
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}

		st, err := codec.Decode(data)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}

		styles[typeName] = st
		sources[typeName] = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk seed styles: %w", err)
	}

	return styles, nil
}

// Apply stores each style whose type has no style yet and returns the sorted
// type names it stored. Existing styles are never overwritten.
func Apply(s store.StyleStore, styles map[string]*style.Style, logger logr.Logger) ([]string, error) {
	var (
		mu     sync.Mutex
		stored []string
		g      errgroup.Group
	)
	g.SetLimit(applyConcurrency)

	for typeName, st := range styles {
		g.Go(func() error {
			exists, err := s.HasStyle(typeName)
			if err != nil {
				return fmt.Errorf("seed %q: %w", typeName, err)
			}
			if exists {
				logger.V(1).Info("style already present, not seeding", "typeName", typeName)
				return nil
			}
			if err := s.StoreStyle(typeName, st); err != nil {
				return fmt.Errorf("seed %q: %w", typeName, err)
			}

			mu.Lock()
			stored = append(stored, typeName)
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	sort.Strings(stored)
	if len(stored) > 0 {
		logger.Info("Seeded styles", "count", len(stored), "typeNames", stored)
	}
	return stored, err
}

// Validate checks that root exists in fsys and holds at least one file.
func Validate(fsys fs.FS, root string) error {
	if root == "" {
		root = "."
	}

	if _, err := fs.Stat(fsys, root); err != nil {
		return fmt.Errorf("root path %q does not exist in seed filesystem: %w", root, err)
	}

	hasFiles := false
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			hasFiles = true
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk seed filesystem: %w", err)
	}

	if !hasFiles {
		return fmt.Errorf("root path %q exists but contains no files", root)
	}
	return nil
}
