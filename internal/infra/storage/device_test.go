package storage

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/MRamiBalles/sdop/internal/domain/timestamp"
	"github.com/MRamiBalles/sdop/internal/platform/config"
	"github.com/MRamiBalles/sdop/internal/save"
	"github.com/MRamiBalles/sdop/internal/sim"
)

var t0 = timestamp.MustParts(2025, 3, 1, 9, 0, 0)

// fakeRedis keeps strings in a map and emulates GETRANGE/SETRANGE.
type fakeRedis struct {
	mu   sync.Mutex
	data map[string][]byte
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string][]byte)}
}

func (f *fakeRedis) GetRange(ctx context.Context, key string, start, end int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	v := f.data[key]
	if start >= int64(len(v)) {
		return "", nil
	}
	if end >= int64(len(v)) {
		end = int64(len(v)) - 1
	}
	return string(v[start : end+1]), nil
}

func (f *fakeRedis) SetRange(ctx context.Context, key string, offset int64, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	v := f.data[key]
	if need := int(offset) + len(value); need > len(v) {
		v = append(v, make([]byte, need-len(v))...)
	}
	copy(v[offset:], value)
	f.data[key] = v
	return nil
}

func (f *fakeRedis) Ping(ctx context.Context) error { return f.err }

type namedDevice struct {
	name string
	dev  Device
}

func devices(t *testing.T) []namedDevice {
	t.Helper()
	dir := t.TempDir()

	fd, err := OpenFileDevice(filepath.Join(dir, "dev", "sdop.bin"))
	if err != nil {
		t.Fatalf("open file device: %v", err)
	}
	t.Cleanup(func() { fd.Close() })

	db, err := InitSQLite(filepath.Join(dir, "sdop.db"))
	if err != nil {
		t.Fatalf("init sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return []namedDevice{
		{"memory", NewMemoryDevice()},
		{"file", fd},
		{"sqlite", NewSQLiteDevice(db, "device-1")},
		{"redis", NewRedisDevice(newFakeRedis(), "sdop:device")},
	}
}

func TestDeviceReadsZeroWhenBlank(t *testing.T) {
	ctx := context.Background()
	for _, d := range devices(t) {
		t.Run(d.name, func(t *testing.T) {
			buf := bytes.Repeat([]byte{0xAA}, 32)
			if err := d.dev.ReadAt(ctx, DeviceSize-32, buf); err != nil {
				t.Fatalf("ReadAt: %v", err)
			}
			if !bytes.Equal(buf, make([]byte, 32)) {
				t.Errorf("blank device should read zeros, got %x", buf)
			}
		})
	}
}

func TestDeviceWriteThenRead(t *testing.T) {
	ctx := context.Background()
	for _, d := range devices(t) {
		t.Run(d.name, func(t *testing.T) {
			if err := d.dev.WriteAt(ctx, 10, []byte("hello")); err != nil {
				t.Fatalf("WriteAt: %v", err)
			}
			if err := d.dev.WriteAt(ctx, 12, []byte("LL")); err != nil {
				t.Fatalf("WriteAt: %v", err)
			}
			buf := make([]byte, 8)
			if err := d.dev.ReadAt(ctx, 9, buf); err != nil {
				t.Fatalf("ReadAt: %v", err)
			}
			want := []byte{0, 'h', 'e', 'L', 'L', 'o', 0, 0}
			if !bytes.Equal(buf, want) {
				t.Errorf("got %q, want %q", buf, want)
			}
		})
	}
}

func TestDeviceOutOfRange(t *testing.T) {
	ctx := context.Background()
	for _, d := range devices(t) {
		t.Run(d.name, func(t *testing.T) {
			if err := d.dev.WriteAt(ctx, DeviceSize-1, []byte{1, 2}); !errors.Is(err, ErrOutOfRange) {
				t.Errorf("write past end: got %v", err)
			}
			if err := d.dev.ReadAt(ctx, -1, make([]byte, 1)); !errors.Is(err, ErrOutOfRange) {
				t.Errorf("negative read: got %v", err)
			}
			if err := d.dev.WriteAt(ctx, DeviceSize-2, []byte{1, 2}); err != nil {
				t.Errorf("write ending at DeviceSize: %v", err)
			}
		})
	}
}

func TestSaveRoundTripThroughDevices(t *testing.T) {
	ctx := context.Background()
	game := sim.NewGameContext(t0)
	game.Money = 777
	want := save.Generate(t0, game)

	for _, d := range devices(t) {
		t.Run(d.name, func(t *testing.T) {
			if err := WriteSave(ctx, d.dev, want); err != nil {
				t.Fatalf("WriteSave: %v", err)
			}
			got, err := ReadSave(ctx, d.dev)
			if err != nil {
				t.Fatalf("ReadSave: %v", err)
			}
			if got.Money != 777 || got.Pet.Name != want.Pet.Name || !got.LastSaved.Equal(t0) {
				t.Errorf("save did not survive: %+v", got)
			}
		})
	}
}

func TestReadSaveBlankDeviceIsDecodeError(t *testing.T) {
	_, err := ReadSave(context.Background(), NewMemoryDevice())
	var de *save.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestFileDevicePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sdop.bin")

	fd, err := OpenFileDevice(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := fd.WriteAt(ctx, 0x200, []byte("pet")); err != nil {
		t.Fatal(err)
	}
	fd.Close()

	fd, err = OpenFileDevice(path)
	if err != nil {
		t.Fatal(err)
	}
	defer fd.Close()
	buf := make([]byte, 3)
	if err := fd.ReadAt(ctx, 0x200, buf); err != nil {
		t.Fatal(err)
	}
	if string(buf) != "pet" {
		t.Errorf("got %q", buf)
	}
}

func TestSQLiteDevicesAreIsolated(t *testing.T) {
	ctx := context.Background()
	db, err := InitSQLite(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	a := NewSQLiteDevice(db, "a")
	b := NewSQLiteDevice(db, "b")
	if err := a.WriteAt(ctx, 0, []byte{9}); err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, 1)
	if err := b.ReadAt(ctx, 0, buf); err != nil {
		t.Fatal(err)
	}
	if buf[0] != 0 {
		t.Errorf("device b saw device a's write")
	}
}

func TestRedisDeviceWrapsClientErrors(t *testing.T) {
	client := newFakeRedis()
	client.err = errors.New("connection refused")
	dev := NewRedisDevice(client, "k")

	err := dev.WriteAt(context.Background(), 0, []byte{1})
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("expected wrapped client error, got %v", err)
	}
	if err := dev.ReadAt(context.Background(), 0, make([]byte, 1)); err == nil {
		t.Errorf("expected read error")
	}
}

func TestOpenDeviceBackends(t *testing.T) {
	dir := t.TempDir()
	for _, backend := range []string{config.BackendMemory, config.BackendFile, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			cfg := &config.Config{Save: config.SaveConfig{
				Backend: backend,
				Path:    filepath.Join(dir, backend+".img"),
			}}
			dev, closeFn, err := OpenDevice(context.Background(), cfg)
			if err != nil {
				t.Fatal(err)
			}
			defer closeFn()
			if err := dev.WriteAt(context.Background(), 0, []byte{1}); err != nil {
				t.Fatal(err)
			}
		})
	}

	_, _, err := OpenDevice(context.Background(), &config.Config{Save: config.SaveConfig{Backend: "tape"}})
	if err == nil {
		t.Error("expected unknown backend error")
	}
}

func TestOpenJournalDisabled(t *testing.T) {
	repo, db, err := OpenJournal(&config.Config{})
	if repo != nil || db != nil || err != nil {
		t.Errorf("expected no journal, got %v %v %v", repo, db, err)
	}
}
