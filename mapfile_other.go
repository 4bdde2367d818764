//go:build !unix

package machokit

import "os"

func mapFile(path string) ([]byte, func([]byte) error, error) {
	data, err := os.ReadFile(path)
	return data, nil, err
}
