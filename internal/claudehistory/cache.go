package claudehistory

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// DefaultTTL is how long a cached snapshot stays valid. The cache is
// invalidated by age alone, never by log content; sessions created inside
// the window only appear once it expires.
const DefaultTTL = 30 * time.Second

// Snapshot is the cached result of one full scan. Timestamp is epoch
// milliseconds at scan time.
type Snapshot struct {
	Sessions  []Session `json:"sessions"`
	Timestamp int64     `json:"timestamp"`
}

// Cache stores scan snapshots. Both operations are best-effort: Read
// reports ok=false on any failure, Write failures are silent, and the next
// scan simply repeats the work.
type Cache interface {
	Read() (Snapshot, bool)
	Write(Snapshot)
}

type fileCache struct {
	path string
	lock *flock.Flock
}

// NewFileCache returns a Cache backed by a JSON file. Writes are full
// atomic replacements guarded by a best-effort advisory lock, so concurrent
// pickers racing past an expired TTL overwrite each other harmlessly.
func NewFileCache(path string) Cache {
	return &fileCache{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

func (c *fileCache) Read() (Snapshot, bool) {
	b, err := os.ReadFile(c.path)
	if err != nil {
		return Snapshot{}, false
	}
	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return Snapshot{}, false
	}
	return snap, true
}

func (c *fileCache) Write(snap Snapshot) {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return
	}
	if ok, err := c.lock.TryLock(); err == nil && ok {
		defer func() { _ = c.lock.Unlock() }()
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return
	}
	_ = atomicWriteFile(c.path, b, 0o600)
}

// memoryCache is the in-process stand-in used by tests.
type memoryCache struct {
	snap Snapshot
	ok   bool
}

func (c *memoryCache) Read() (Snapshot, bool) { return c.snap, c.ok }

func (c *memoryCache) Write(snap Snapshot) {
	c.snap = snap
	c.ok = true
}
