// Package local discovers SVG sources in a local input directory.
//
// Discovery mirrors an upload directory workflow: list the SVG files present,
// load one on demand, and report a content hash so callers can detect when a
// file changed between invocations.
package local

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fromsvg/svgraster/pkg/cache"
	"github.com/fromsvg/svgraster/pkg/errors"
)

// File describes a discovered SVG source.
type File struct {
	Name    string // base name within the input directory
	Path    string // full path
	Size    int64
	ModTime time.Time
}

// List returns the SVG files in dir, sorted by name. The extension match is
// case-insensitive; subdirectories are not traversed.
func List(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "input directory %s", dir)
		}
		return nil, err
	}

	var files []File
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".svg") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, File{
			Name:    e.Name(),
			Path:    filepath.Join(dir, e.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// Load reads an SVG file and returns its bytes together with the SHA-256
// content hash used for change detection.
func Load(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "svg file %s", path)
		}
		return nil, "", err
	}
	return data, cache.Hash(data), nil
}
