package storage

import (
	"context"
	"sync"
)

// MemoryDevice keeps the device in RAM. Used by tests and the soak host.
type MemoryDevice struct {
	mu   sync.RWMutex
	data [DeviceSize]byte
}

func NewMemoryDevice() *MemoryDevice {
	return &MemoryDevice{}
}

func (d *MemoryDevice) WriteAt(ctx context.Context, addr int, data []byte) error {
	if err := checkRange(addr, len(data)); err != nil {
		return err
	}
	d.mu.Lock()
	copy(d.data[addr:], data)
	d.mu.Unlock()
	return nil
}

func (d *MemoryDevice) ReadAt(ctx context.Context, addr int, buf []byte) error {
	if err := checkRange(addr, len(buf)); err != nil {
		return err
	}
	d.mu.RLock()
	copy(buf, d.data[addr:])
	d.mu.RUnlock()
	return nil
}
