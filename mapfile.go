package machokit

import (
	"fmt"
	"sync"

	"github.com/wippyai/machokit/macho"
)

// File is an image parsed from a file mapped into memory. The records of
// Image read straight from the mapping, so they must not be used after
// Close.
type File struct {
	*macho.Image

	path  string
	data  []byte
	unmap func([]byte) error
	once  sync.Once
}

// MapFile maps the file at path read-only and parses it without copying.
// On platforms without mmap the file is read into memory instead.
func MapFile(path string, opts ...macho.Option) (*File, error) {
	data, unmap, err := mapFile(path)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", path, err)
	}

	img, err := macho.Open(data, opts...)
	if err != nil {
		if unmap != nil {
			_ = unmap(data)
		}
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &File{Image: img, path: path, data: data, unmap: unmap}, nil
}

// Path returns the path the file was mapped from.
func (f *File) Path() string { return f.path }

// Size returns the number of bytes mapped.
func (f *File) Size() int { return len(f.data) }

// Close releases the mapping. It is safe to call more than once.
func (f *File) Close() error {
	var err error
	f.once.Do(func() {
		if f.unmap != nil {
			err = f.unmap(f.data)
		}
		f.data = nil
	})
	return err
}
