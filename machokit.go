package machokit

import (
	"fmt"
	"os"

	"github.com/wippyai/machokit/macho"
)

// Open parses data as a thin or universal Mach-O image.
func Open(data []byte, opts ...macho.Option) (*macho.Image, error) {
	return macho.Open(data, opts...)
}

// OpenFile reads the file at path and parses it.
func OpenFile(path string, opts ...macho.Option) (*macho.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	img, err := macho.Open(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return img, nil
}
