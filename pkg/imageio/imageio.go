// Package imageio loads encoded image bytes from files and named resources.
//
// A named resource resolves against an application-registered [fs.FS] first
// and the local filesystem second, so bundled assets and loose files share
// one lookup path.
package imageio

import (
	"fmt"
	"io/fs"
	"os"
	"sync"
)

var (
	resourceMu sync.RWMutex
	resources  fs.FS
)

// SetResources registers the filesystem used to resolve named resources.
// Pass nil to clear the registration.
func SetResources(fsys fs.FS) {
	resourceMu.Lock()
	defer resourceMu.Unlock()
	resources = fsys
}

// Load resolves a resource name to its bytes. The registered resource
// filesystem is consulted first, then the name is treated as an OS path.
func Load(name string) ([]byte, error) {
	resourceMu.RLock()
	fsys := resources
	resourceMu.RUnlock()

	if fsys != nil {
		data, err := fs.ReadFile(fsys, name)
		if err == nil {
			return data, nil
		}
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("resource %q: %w", name, err)
	}
	return data, nil
}

// LoadFile reads encoded image bytes from an OS path.
func LoadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
