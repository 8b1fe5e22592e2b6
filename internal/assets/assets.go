// Package assets resolves and loads the texture files a COLLADA model
// references.
package assets

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNotFound is returned when no search directory holds a referenced file.
var ErrNotFound = errors.New("asset not found")

// Manager loads files relative to a set of search directories.
type Manager struct {
	dirs  []string
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a manager searching dirs. Later directories take
// priority, as with AddSearchDir.
func NewManager(dirs ...string) *Manager {
	return &Manager{
		dirs:  append([]string(nil), dirs...),
		cache: NewCache(),
	}
}

// AddSearchDir adds a directory. Directories are searched in reverse order
// (last added = highest priority).
func (m *Manager) AddSearchDir(dir string) {
	m.mu.Lock()
	m.dirs = append(m.dirs, dir)
	m.mu.Unlock()
}

// Locate returns the on-disk path of an image reference.
func (m *Manager) Locate(ref string) (string, error) {
	name := CleanRef(ref)
	if name == "" {
		return "", fmt.Errorf("%w: empty reference", ErrNotFound)
	}
	if filepath.IsAbs(name) {
		if fileExists(name) {
			return name, nil
		}
		// Authoring machines leave absolute paths behind; retry the base name.
		name = filepath.Base(name)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.dirs) - 1; i >= 0; i-- {
		for _, candidate := range []string{name, filepath.Base(name)} {
			path := filepath.Join(m.dirs[i], candidate)
			if fileExists(path) {
				return path, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
}

// Load reads the file an image reference points at.
func (m *Manager) Load(ref string) ([]byte, error) {
	path, err := m.Locate(ref)
	if err != nil {
		return nil, err
	}
	if data, ok := m.cache.Get(path); ok {
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	m.cache.Set(path, data)
	return data, nil
}

// Cache returns the manager's file cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// CleanRef turns an image init_from value into a native relative or
// absolute path: file:// URLs are unwrapped, %-escapes decoded and
// backslashes treated as separators.
func CleanRef(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme == "file" {
		ref = u.Path
		if u.Host != "" && u.Host != "localhost" {
			ref = "//" + u.Host + ref
		}
	} else if unescaped, err := url.PathUnescape(ref); err == nil {
		ref = unescaped
	}
	ref = strings.ReplaceAll(ref, `\`, "/")

	// file:///C:/textures/a.png yields /C:/textures/a.png.
	if len(ref) > 3 && ref[0] == '/' && ref[2] == ':' {
		ref = ref[1:]
	}
	return filepath.FromSlash(ref)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Cache is an in-memory cache of loaded files.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
