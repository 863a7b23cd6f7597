// Package session provides the persisted client-side session state:
// a durable key/value store holding the bearer token and the cached
// post-login redirect URL, plus the coordinator reacting to expired
// sessions.
package session

import (
	"encoding/json"
	"os"
	"sync"
)

// Storage keys shared across the application.
const (
	// TokenKey is the key under which the session token is persisted.
	TokenKey = "lawyer-dashboard"
	// CachedRedirectKey is the key under which the pre-login URL is persisted.
	CachedRedirectKey = "cached-redirect-url"
)

// Store is the persisted session store. Values are JSON-serialized on
// write and parsed on read; a malformed stored value reads as absent
// rather than failing. Writes are immediately visible to every reader
// within the same process.
type Store interface {
	// Get returns the value stored under key, and whether it was present
	// and parseable.
	Get(key string) (string, bool)
	// Set stores value under key, replacing any previous value.
	Set(key, value string)
	// Remove deletes the value stored under key, if any.
	Remove(key string)
	// Clear deletes every stored value.
	Clear()
}

// FileStore persists values to a single JSON file. It is the durable
// store used by the client shell; tests use MemStore instead.
type FileStore struct {
	path   string
	mu     sync.Mutex
	values map[string]string
}

// NewFileStore opens the store backed by the file at path. A missing or
// unreadable file yields an empty store.
func NewFileStore(path string) *FileStore {
	fs := &FileStore{path: path, values: make(map[string]string)}
	fs.load()
	return fs
}

func (fs *FileStore) load() {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		return
	}
	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		// A corrupt storage file behaves like an empty one.
		return
	}
	fs.values = values
}

// save writes the current values back to disk. Persistence is
// best-effort: an unwritable file does not fail the in-memory update.
func (fs *FileStore) save() {
	data, err := json.Marshal(fs.values)
	if err != nil {
		return
	}
	_ = os.WriteFile(fs.path, data, 0o600)
}

// Get returns the value stored under key after JSON-decoding it.
func (fs *FileStore) Get(key string) (string, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	raw, ok := fs.values[key]
	if !ok {
		return "", false
	}
	var value string
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return "", false
	}
	return value, true
}

// Set JSON-encodes value and stores it under key.
func (fs *FileStore) Set(key, value string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	encoded, err := json.Marshal(value)
	if err != nil {
		return
	}
	fs.values[key] = string(encoded)
	fs.save()
}

// Remove deletes the value stored under key.
func (fs *FileStore) Remove(key string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	delete(fs.values, key)
	fs.save()
}

// Clear deletes every stored value.
func (fs *FileStore) Clear() {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.values = make(map[string]string)
	fs.save()
}

// MemStore is an in-memory Store used as a test double.
type MemStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (ms *MemStore) Get(key string) (string, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	v, ok := ms.values[key]
	return v, ok
}

// Set stores value under key.
func (ms *MemStore) Set(key, value string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.values[key] = value
}

// Remove deletes the value stored under key.
func (ms *MemStore) Remove(key string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.values, key)
}

// Clear deletes every stored value.
func (ms *MemStore) Clear() {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.values = make(map[string]string)
}
