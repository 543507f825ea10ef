package storage

import (
	"fmt"
	"io"
	"sync"

	"github.com/shashiranjanraj/bistro/config"
	"github.com/shashiranjanraj/bistro/pkg/logger"
)

type manager struct {
	mu       sync.RWMutex
	disks    map[string]Disk
	fallback string
}

var mgr = &manager{disks: map[string]Disk{}, fallback: "local"}

// Connect boots the storage manager. Call once at application startup.
// The local disk is always available; the s3 disk is added when a bucket
// is configured, and the default falls back to local if the configured
// default never booted.
func Connect() {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()

	mgr.disks["local"] = newLocalDisk()
	if config.StorageS3Bucket() != "" {
		if d, err := newS3Disk(); err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			mgr.disks["s3"] = d
		}
	}

	mgr.fallback = config.StorageDefault()
	if _, ok := mgr.disks[mgr.fallback]; !ok {
		mgr.fallback = "local"
	}
}

// Use returns the named disk ("local" or "s3").
func Use(name string) Disk {
	mgr.mu.RLock()
	d, ok := mgr.disks[name]
	mgr.mu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// RegisterDisk lets you plug in a custom Disk implementation at boot time.
// Tests use this to install an in-memory disk.
func RegisterDisk(name string, d Disk) {
	mgr.mu.Lock()
	mgr.disks[name] = d
	mgr.mu.Unlock()
}

// SetDefault switches the default disk. Exposed for tests.
func SetDefault(name string) {
	mgr.mu.Lock()
	mgr.fallback = name
	mgr.mu.Unlock()
}

func active() Disk {
	mgr.mu.RLock()
	name := mgr.fallback
	mgr.mu.RUnlock()
	return Use(name)
}

// Put writes content to path on the default disk.
func Put(path string, content []byte) error { return active().Put(path, content) }

// PutStream writes from r to path on the default disk.
func PutStream(path string, r io.Reader) error { return active().PutStream(path, r) }

// Get returns file content from the default disk.
func Get(path string) ([]byte, error) { return active().Get(path) }

// Exists reports whether path exists on the default disk.
func Exists(path string) bool { return active().Exists(path) }

// Delete removes path from the default disk.
func Delete(path string) error { return active().Delete(path) }

// URL returns the public URL for path on the default disk.
func URL(path string) string { return active().URL(path) }
