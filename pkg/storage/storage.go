// Package storage abstracts where uploaded catalogue files are archived.
//
// Two drivers are available:
//   - "local" — local filesystem (default), rooted at STORAGE_LOCAL_ROOT
//   - "s3"    — S3-compatible object storage (AWS S3, MinIO, R2)
//
// Boot once in internal/server, then write through the default disk:
//
//	storage.Connect()
//	storage.Put("uploads/20260828-120000_catalog.xlsx", data)
package storage

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/kdalam/furnidex/config"
	"github.com/kdalam/furnidex/pkg/logger"
)

// Disk is the filesystem driver interface.
type Disk interface {
	// Put writes content to path, creating parents as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// GetStream returns a ReadCloser for the file. Caller must close it.
	GetStream(path string) (io.ReadCloser, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Size returns the byte size of the file.
	Size(path string) (int64, error)

	// LastModified returns the file's last-modified time.
	LastModified(path string) (time.Time, error)

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(path string) error

	// Files lists the files directly inside directory.
	Files(directory string) ([]string, error)

	// URL returns the public URL for path.
	URL(path string) string
}

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the storage manager. Call once at application startup.
func Connect() {
	managerMu.Lock()
	defer managerMu.Unlock()

	defaultDisk = config.Get("STORAGE_DISK", "local")
	disks["local"] = newLocalDisk()

	// The S3 disk only comes up when a bucket is configured.
	if config.Get("S3_BUCKET", "") != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}
}

// Use returns the named disk ("local" or "s3").
func Use(name string) Disk {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// RegisterDisk plugs in a custom Disk implementation, mainly for tests.
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	managerMu.Unlock()
}

// Default returns the disk named by STORAGE_DISK, booting the manager on
// first use if Connect was never called.
func Default() Disk {
	managerMu.RLock()
	name := defaultDisk
	managerMu.RUnlock()
	if name == "" {
		Connect()
		managerMu.RLock()
		name = defaultDisk
		managerMu.RUnlock()
	}
	return Use(name)
}

// Put writes content to path on the default disk.
func Put(path string, content []byte) error { return Default().Put(path, content) }

// PutStream writes from r to path on the default disk.
func PutStream(path string, r io.Reader) error { return Default().PutStream(path, r) }

// Get returns file content from the default disk.
func Get(path string) ([]byte, error) { return Default().Get(path) }

// Exists reports whether path exists on the default disk.
func Exists(path string) bool { return Default().Exists(path) }

// Delete removes path from the default disk.
func Delete(path string) error { return Default().Delete(path) }

// Files lists files in directory on the default disk.
func Files(directory string) ([]string, error) { return Default().Files(directory) }

// URL returns the public URL for path on the default disk.
func URL(path string) string { return Default().URL(path) }
