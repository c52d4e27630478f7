package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// FileDevice maps the device onto a regular file.
type FileDevice struct {
	mu   sync.Mutex
	file *os.File
}

// OpenFileDevice opens or creates the backing file.
func OpenFileDevice(path string) (*FileDevice, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create device directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open device file: %w", err)
	}
	return &FileDevice{file: f}, nil
}

func (d *FileDevice) WriteAt(ctx context.Context, addr int, data []byte) error {
	if err := checkRange(addr, len(data)); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := d.file.WriteAt(data, int64(addr)); err != nil {
		return fmt.Errorf("failed to write device file: %w", err)
	}
	if err := d.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync device file: %w", err)
	}
	return nil
}

// ReadAt reads buf. Bytes past the end of the file read as zero.
func (d *FileDevice) ReadAt(ctx context.Context, addr int, buf []byte) error {
	if err := checkRange(addr, len(buf)); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	n, err := d.file.ReadAt(buf, int64(addr))
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read device file: %w", err)
	}
	clear(buf[n:])
	return nil
}

func (d *FileDevice) Close() error {
	return d.file.Close()
}
