// Package snapshot caches a completed run's recorded trace on disk, so
// `gcworkbench replay` can re-render frames without recomputing the
// demo. Modeled directly on the teacher's internal/driver disk cache:
// same sha256-keyed, atomic-rename-into-place msgpack store, narrowed
// to one payload kind instead of per-module compiler metadata.
package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// schemaVersion guards against stale caches surviving a wire-format change.
const schemaVersion uint16 = 1

// Key identifies one cached run by its inputs.
type Key [sha256.Size]byte

// KeyFor derives a cache key from the exact inputs that determine a
// run's trace: the ledger contents, the collector algorithm, and the
// heap size. Any change to any of the three must produce a new run.
func KeyFor(input []byte, algo string, heapSize int) Key {
	h := sha256.New()
	h.Write(input)
	h.Write([]byte{0})
	h.Write([]byte(algo))
	h.Write([]byte{0})
	fmt.Fprintf(h, "%d", heapSize)
	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

// Event mirrors trace.Event in a msgpack-friendly shape (trace.Event
// itself is left alone so the hot instrumentation path never pays an
// encoding tag cost per field).
type Event struct {
	Seq   uint64
	Kind  uint8
	Loc   uint32
	Loc2  uint32
	Size  int
	Count int
	Text  string
	Locs  []uint32
}

// Payload is everything `replay` needs to re-render a run without
// rebuilding the heap: the recorded event stream plus the parameters
// that produced it, for a sanity check against what the caller asks for.
type Payload struct {
	Schema   uint16
	Algo     string
	HeapSize int
	Events   []Event
}

// Cache stores Payloads on disk, keyed by Key. Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open initializes a cache rooted at dir (creating it if needed).
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("snapshot: create cache dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key Key) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".mp")
}

// Put serializes and atomically installs payload under key.
func (c *Cache) Put(key Key, payload *Payload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = schemaVersion
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	defer os.Remove(tmpName)

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, p)
}

// Get reads back the payload stored under key, if any.
func (c *Cache) Get(key Key) (*Payload, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload Payload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != schemaVersion {
		return nil, false, nil
	}
	return &payload, true, nil
}
