package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

type FileDriver struct {
	path string
}

// NewFileDriver создает драйвер, хранящий снимок в JSON-файле.
func NewFileDriver(path string) (*FileDriver, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create snapshot dir %s: %w", dir, err)
	}

	return &FileDriver{path: path}, nil
}

func (d *FileDriver) Name() string {
	return "file"
}

func (d *FileDriver) Read(_ context.Context) ([]byte, error) {
	payload, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrSlotEmpty
		}
		return nil, err
	}

	return payload, nil
}

// Write пишет во временный файл и переименовывает его, чтобы не оставить частично записанный снимок.
func (d *FileDriver) Write(_ context.Context, payload []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(d.path), filepath.Base(d.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, d.path)
}

func (d *FileDriver) Delete(_ context.Context) error {
	if err := os.Remove(d.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (d *FileDriver) Close() error {
	return nil
}
