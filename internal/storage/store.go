package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Collection names used by the API.
const (
	CollectionUsers  = "users"
	CollectionTokens = "tokens"
	CollectionChecks = "checks"
)

var (
	ErrAlreadyExists = errors.New("record already exists")
	ErrNotFound      = errors.New("record not found")
	ErrInvalidKey    = errors.New("record key contains characters outside [a-z0-9]")
)

// Store persists JSON documents as one file per record, grouped into
// collection directories under a base directory. It is the only place
// in the codebase that touches the filesystem for record data.
type Store struct {
	baseDir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStore creates the base data directory and one directory per
// collection if they do not already exist. Existing data is never
// cleared.
func NewStore(baseDir string) (*Store, error) {
	for _, collection := range []string{CollectionUsers, CollectionTokens, CollectionChecks} {
		if err := os.MkdirAll(filepath.Join(baseDir, collection), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create collection directory %s: %w", collection, err)
		}
	}
	return &Store{baseDir: baseDir, locks: make(map[string]*sync.Mutex)}, nil
}

// validKey reports whether a key is safe to use as a file name. Keys
// are restricted to lowercase alphanumerics so a crafted key can never
// escape its collection directory.
func validKey(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

func (s *Store) path(collection, key string) string {
	return filepath.Join(s.baseDir, collection, key+".json")
}

// Lock acquires the mutex guarding a single record and returns its
// unlock function. Read-modify-write sequences must hold it for the
// whole sequence so a concurrent writer cannot lose their update.
// Exclusive create needs no lock; the filesystem arbitrates it.
func (s *Store) Lock(collection, key string) func() {
	s.mu.Lock()
	name := collection + "/" + key
	m, ok := s.locks[name]
	if !ok {
		m = &sync.Mutex{}
		s.locks[name] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// Create writes a new record, failing with ErrAlreadyExists if a record
// is already stored under the key. On success the file contains exactly
// the JSON serialization of doc.
func (s *Store) Create(collection, key string, doc any) error {
	if !validKey(key) {
		return ErrInvalidKey
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize record: %w", err)
	}

	f, err := os.OpenFile(s.path(collection, key), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to create record file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// Read deserializes the stored record into out. A missing or unreadable
// record is reported as ErrNotFound.
func (s *Store) Read(collection, key string, out any) error {
	// No record can exist under an invalid key.
	if !validKey(key) {
		return ErrNotFound
	}

	data, err := os.ReadFile(s.path(collection, key))
	if err != nil {
		return ErrNotFound
	}
	if err := json.Unmarshal(data, out); err != nil {
		return ErrNotFound
	}
	return nil
}

// Update replaces the whole stored document with the serialization of
// doc. The record must already exist; there is no partial-field
// patching at this layer.
func (s *Store) Update(collection, key string, doc any) error {
	if !validKey(key) {
		return ErrNotFound
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize record: %w", err)
	}

	f, err := os.OpenFile(s.path(collection, key), os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to open record file for update: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// Delete removes the stored record.
func (s *Store) Delete(collection, key string) error {
	if !validKey(key) {
		return ErrNotFound
	}

	if err := os.Remove(s.path(collection, key)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete record file: %w", err)
	}
	return nil
}
