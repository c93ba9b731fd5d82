package driver

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/viant/afs/storage"
)

// PythonFiles matches python source and stub files
func PythonFiles(info os.FileInfo) bool {
	if info.IsDir() {
		return true
	}
	switch filepath.Ext(info.Name()) {
	case ".py", ".pyi":
		return true
	}
	return false
}

// expand resolves command line paths into files; "-" stands for stdin
func (d *Driver) expand(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	for _, location := range paths {
		if location == Stdin {
			files = append(files, location)
			continue
		}
		info, err := os.Stat(location)
		if err != nil || !info.IsDir() {
			files = append(files, location)
			continue
		}
		found, err := d.walk(ctx, location)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

// walk collects python files under root, skipping excluded names
func (d *Driver) walk(ctx context.Context, root string) ([]string, error) {
	var files []string
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if d.config.Excluded(info.Name()) {
			d.debug("excluded", "path", filepath.Join(root, parent, info.Name()))
			return !info.IsDir(), nil
		}
		if info.IsDir() || !PythonFiles(info) {
			return true, nil
		}
		files = append(files, filepath.Join(root, parent, info.Name()))
		return true, nil
	}
	if err := d.fs.Walk(ctx, root, visitor); err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
