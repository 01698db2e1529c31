package medium

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "github.com/garunski/stylestore/pkg/stylestore/errors"
)

const tempSuffix = ".tmp-*"

// File keeps one file per record. Replace writes a temporary file next to the
// destination and renames it into place, so a reader opening the path sees
// either the previous file or the complete new one.
type File struct {
	root string
	ext  string
	perm os.FileMode
}

// NewFile creates a File medium whose List scans root for files ending in ext.
// Locations handed to the other methods may live anywhere; root only bounds
// enumeration.
func NewFile(root, ext string) (*File, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create style directory %s: %w", apperrors.ErrStorage, root, err)
	}
	return &File{root: filepath.Clean(root), ext: ext, perm: 0o644}, nil
}

func (f *File) Exists(location string) (bool, error) {
	info, err := os.Stat(location)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.WrapStorage(err, "stat "+location)
	}
	if info.IsDir() {
		return false, fmt.Errorf("%w: stat %s: location is a directory", apperrors.ErrStorage, location)
	}
	return true, nil
}

func (f *File) Read(location string) ([]byte, error) {
	data, err := os.ReadFile(location)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperrors.WrapNotFound(err, "read "+location)
	}
	if err != nil {
		return nil, apperrors.WrapStorage(err, "read "+location)
	}
	return data, nil
}

func (f *File) Replace(location string, data []byte) (err error) {
	dir := filepath.Dir(location)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.WrapStorage(err, "create directory "+dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(location)+tempSuffix)
	if err != nil {
		return apperrors.WrapStorage(err, "create temp file for "+location)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return apperrors.WrapStorage(err, "write "+tmpName)
	}
	if err = tmp.Sync(); err != nil {
		return apperrors.WrapStorage(err, "sync "+tmpName)
	}
	if err = tmp.Chmod(f.perm); err != nil {
		return apperrors.WrapStorage(err, "chmod "+tmpName)
	}
	if err = tmp.Close(); err != nil {
		return apperrors.WrapStorage(err, "close "+tmpName)
	}
	if err = os.Rename(tmpName, location); err != nil {
		return apperrors.WrapStorage(err, "rename onto "+location)
	}

	syncDir(dir)
	return nil
}

func (f *File) Remove(location string) error {
	info, err := os.Lstat(location)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return apperrors.WrapStorage(err, "stat "+location)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: remove %s: location is a directory", apperrors.ErrStorage, location)
	}

	if err := os.Remove(location); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperrors.WrapStorage(err, "remove "+location)
	}
	return nil
}

func (f *File) List() ([]string, error) {
	entries, err := os.ReadDir(f.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.WrapStorage(err, "list "+f.root)
	}

	var locations []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, f.ext) {
			continue
		}
		locations = append(locations, filepath.Join(f.root, name))
	}
	sort.Strings(locations)
	return locations, nil
}

// syncDir flushes the directory entry created by a rename. Not every platform
// lets a directory be opened for sync, so failures are ignored.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}

var (
	_ Medium = (*File)(nil)
	_ Lister = (*File)(nil)
)
