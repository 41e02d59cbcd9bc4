package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/peterbourgon/diskv/v3"
)

// Diskv stores one file per key under a base directory
type Diskv struct {
	d *diskv.Diskv
}

// NewDiskv creates a diskv backend rooted at basePath
func NewDiskv(basePath string) (*Diskv, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	d := diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
	})
	return &Diskv{d: d}, nil
}

func (s *Diskv) Read(key string) ([]byte, error) {
	val, err := s.d.Read(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return val, err
}

func (s *Diskv) Write(key string, value []byte) error {
	return s.d.Write(key, value)
}

func (s *Diskv) Delete(key string) error {
	err := s.d.Erase(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (s *Diskv) Close() error { return nil }
