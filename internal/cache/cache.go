// Package cache provides a file-based cache for API lookups.
//
// Cache files are JSON, scoped per resource type, API root and login.
// Default TTL is 5 minutes. Disable with OCTOGLUE_NO_CACHE=1.
package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const DefaultTTL = 5 * time.Minute

type entry[T any] struct {
	CachedAt time.Time `json:"cached_at"`
	Items    T         `json:"items"`
}

// Store reads and writes one cache file holding a T, keyed by resource,
// API root and login.
type Store[T any] struct {
	path string
	ttl  time.Duration
	now  func() time.Time
}

// NewStore creates a Store with the default 5-minute TTL.
// key is the resource type (e.g. "repos") and login the user or
// organization the items belong to.
func NewStore[T any](dir, key, baseURL, login string) *Store[T] {
	return NewStoreWithTTL[T](dir, key, baseURL, login, DefaultTTL)
}

// NewStoreWithTTL creates a Store with a custom TTL.
func NewStoreWithTTL[T any](dir, key, baseURL, login string, ttl time.Duration) *Store[T] {
	hash := sha1.Sum([]byte(strings.TrimSuffix(baseURL, "/")))
	filename := fmt.Sprintf("%s_%s_%s.json", sanitizeKey(key), hex.EncodeToString(hash[:6]), sanitizeLogin(login))
	return &Store[T]{
		path: filepath.Join(dir, filename),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Get returns the cached value. ok is false when the file is missing,
// unreadable or older than the TTL, or when caching is disabled.
func (s *Store[T]) Get() (items T, ok bool) {
	if disabled() {
		return items, false
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return items, false
	}
	var e entry[T]
	if err := json.Unmarshal(data, &e); err != nil {
		return items, false
	}
	if s.now().Sub(e.CachedAt) > s.ttl {
		return items, false
	}
	return e.Items, true
}

// Put replaces the cached value. Errors are ignored.
func (s *Store[T]) Put(items T) {
	if disabled() {
		return
	}
	data, err := json.Marshal(entry[T]{CachedAt: s.now(), Items: items})
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return
	}

	// Write then rename so readers never see a partial file.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return
	}
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if werr != nil || cerr != nil {
		_ = os.Remove(tmp.Name())
		return
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
	}
}

// Clear removes this cache file.
func (s *Store[T]) Clear() {
	_ = os.Remove(s.path)
}

// Files lists the cache files in dir.
func Files(dir string) []os.DirEntry {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []os.DirEntry
	for _, e := range entries {
		if !e.IsDir() && isCacheFilename(e.Name()) {
			out = append(out, e)
		}
	}
	return out
}

// ClearAll removes all cache files from the directory and returns how
// many were removed. Files not matching the cache filename scheme are left
// alone.
func ClearAll(dir string) int {
	n := 0
	for _, e := range Files(dir) {
		if os.Remove(filepath.Join(dir, e.Name())) == nil {
			n++
		}
	}
	return n
}

// DefaultDir returns "$XDG_CACHE_HOME/octoglue" or the platform equivalent.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "octoglue"), nil
}

func disabled() bool {
	return os.Getenv("OCTOGLUE_NO_CACHE") != ""
}

func sanitizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "cache"
	}
	return strings.NewReplacer("/", "-", "\\", "-", "_", "-").Replace(key)
}

var loginPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Logins are case-insensitive on GitHub.
func sanitizeLogin(login string) string {
	login = strings.ToLower(strings.TrimSpace(login))
	if !loginPattern.MatchString(login) {
		return "anonymous"
	}
	return login
}

func isCacheFilename(name string) bool {
	// Expected: "<key>_<12hex>_<login>.json"
	if filepath.Ext(name) != ".json" {
		return false
	}
	parts := strings.Split(strings.TrimSuffix(name, ".json"), "_")
	if len(parts) != 3 || parts[0] == "" {
		return false
	}
	if len(parts[1]) != 12 || !isHex(parts[1]) {
		return false
	}
	return loginPattern.MatchString(parts[2])
}

func isHex(s string) bool {
	_, err := hex.DecodeString(s)
	return err == nil
}
