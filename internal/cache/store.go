package cache

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

// FileName is the name of the persisted cache file inside the output
// directory.
const FileName = ".cache.json"

// Entry is one cached artifact, exposed for display purposes.
type Entry struct {
	Key  string
	Path string
}

// Store maps cache keys to generated audio file paths. All mutating
// operations persist the full mapping synchronously, so the on-disk
// file never lags the in-memory state by more than the mutation in
// flight. Safe for concurrent use.
type Store struct {
	path string

	mu      sync.Mutex
	entries map[string]string
	order   []string // keys in insertion order, for display
}

// NewStore loads the store persisted at path. A missing or malformed
// file yields an empty store; corruption is never surfaced to the
// caller.
func NewStore(path string) *Store {
	s := &Store{
		path:    path,
		entries: make(map[string]string),
	}
	s.load()
	return s
}

// Path returns the location of the persisted cache file.
func (s *Store) Path() string {
	return s.path
}

// Get looks up the artifact path for key.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, ok := s.entries[key]
	return path, ok
}

// Put inserts or overwrites the entry for key and persists the store.
func (s *Store) Put(key, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; !exists {
		s.order = append(s.order, key)
	}
	s.entries[key] = path
	s.save()
}

// Invalidate removes the entry for key, if present, and persists the
// store. Used when a cached file no longer exists on disk.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; !exists {
		return
	}
	delete(s.entries, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.save()
}

// Clear removes every entry and deletes the persisted file. It returns
// the number of entries removed.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.entries)
	s.entries = make(map[string]string)
	s.order = nil

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		log.Warn("could not delete cache file", "path", s.path, "err", err)
	}
	return count
}

// Len reports the number of cached entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// Recent returns the last n inserted entries in insertion order.
func (s *Store) Recent(n int) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n > len(s.order) {
		n = len(s.order)
	}
	out := make([]Entry, 0, n)
	for _, key := range s.order[len(s.order)-n:] {
		out = append(out, Entry{Key: key, Path: s.entries[key]})
	}
	return out
}

// load reads the persisted mapping. The file is decoded token by token
// so that insertion order survives a reload. Any malformed content
// resets the store to empty.
func (s *Store) load() {
	f, err := os.Open(s.path)
	if err != nil {
		// Missing file is the normal first-run case.
		if !os.IsNotExist(err) {
			log.Debug("cache file unreadable, starting empty", "path", s.path, "err", err)
		}
		return
	}
	defer f.Close() //nolint:errcheck

	dec := json.NewDecoder(f)
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		s.reset("cache file malformed, starting empty")
		return
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			s.reset("cache file truncated, starting empty")
			return
		}
		key, ok := keyTok.(string)
		if !ok {
			s.reset("cache file malformed, starting empty")
			return
		}
		var path string
		if err := dec.Decode(&path); err != nil {
			s.reset("cache entry malformed, starting empty")
			return
		}
		if _, dup := s.entries[key]; !dup {
			s.order = append(s.order, key)
		}
		s.entries[key] = path
	}

	if _, err := dec.Token(); err != nil {
		s.reset("cache file truncated, starting empty")
	}
}

func (s *Store) reset(reason string) {
	log.Debug(reason, "path", s.path)
	s.entries = make(map[string]string)
	s.order = nil
}

// save persists the current mapping atomically (temp file + rename).
// Failure is logged and swallowed: the caller's primary operation has
// already succeeded in memory, and the next successful save rewrites
// the full file.
func (s *Store) save() {
	data, err := s.encode()
	if err != nil {
		log.Warn("could not encode cache", "path", s.path, "err", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		log.Warn("could not persist cache", "path", s.path, "err", err)
		return
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		log.Warn("could not persist cache", "path", s.path, "err", err)
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp) //nolint:errcheck
		log.Warn("could not persist cache", "path", s.path, "err", err)
	}
}

// encode renders the mapping as a pretty-printed JSON object with
// 2-space indentation, preserving insertion order.
func (s *Store) encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n  ")
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(s.entries[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteString(": ")
		buf.Write(v)
	}
	if len(s.order) > 0 {
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}
