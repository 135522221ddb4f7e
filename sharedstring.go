package rbxdom

import (
	"encoding/hex"
	"runtime"
	"sync"

	"lukechampine.com/blake3"
)

// SharedStringHash is the content hash of a SharedString buffer: a 256-bit
// Blake3 digest in memory, truncated to its first 16 bytes for the on-disk
// SSTR chunk key (spec.md §3).
type SharedStringHash [32]byte

// Bytes16 returns the on-disk 128-bit truncated form of the hash.
func (h SharedStringHash) Bytes16() [16]byte {
	var out [16]byte
	copy(out[:], h[:16])
	return out
}

func (h SharedStringHash) String() string { return hex.EncodeToString(h[:]) }

type sharedStringCache struct {
	mu      sync.Mutex
	entries map[SharedStringHash]*sharedHandle
}

var globalSharedStringCache = &sharedStringCache{
	entries: make(map[SharedStringHash]*sharedHandle),
}

// sharedHandle is the single heap object shared by every ValueSharedString
// copy that refers to the same content. Because copying a ValueSharedString
// copies this pointer rather than the buffer, the handle becomes unreachable
// — and its finalizer fires — only once every copy has gone out of scope,
// which is the Go analogue of Rust's last-Arc-handle Drop.
type sharedHandle struct {
	data []byte
	hash SharedStringHash
}

// ValueSharedString is a content-addressed, reference-counted byte buffer.
// All SharedString values constructed from the same content share one heap
// allocation via a process-wide cache, keyed by hash; the cache entry is
// removed once the last handle referencing it is garbage collected.
type ValueSharedString struct {
	h *sharedHandle
}

// NewSharedString interns data into the process-wide cache and returns a
// handle to it. If an entry with the same hash already exists, the existing
// buffer is reused and data is discarded.
func NewSharedString(data []byte) ValueSharedString {
	return internSharedString(SharedStringHash(blake3.Sum256(data)), data)
}

// sharedStringFromHash builds a handle around an existing (or freshly
// decoded) buffer during binary/XML decode, once the SSTR table's entry for
// hash has been read. It does not re-hash data; callers must ensure hash
// actually matches data.
func sharedStringFromHash(hash SharedStringHash, data []byte) ValueSharedString {
	return internSharedString(hash, data)
}

// SharedStringFromHash is the exported form of sharedStringFromHash: it
// builds a ValueSharedString around an on-disk (hash, data) pair without
// recomputing the hash. Callers are expected to have already verified hash
// matches data themselves. The binary and xml decoders in this module do
// not use it; they call NewSharedString.
func SharedStringFromHash(hash SharedStringHash, data []byte) ValueSharedString {
	return sharedStringFromHash(hash, data)
}

func internSharedString(hash SharedStringHash, data []byte) ValueSharedString {
	c := globalSharedStringCache

	c.mu.Lock()
	h, ok := c.entries[hash]
	if !ok {
		h = &sharedHandle{data: data, hash: hash}
		c.entries[hash] = h
	}
	c.mu.Unlock()

	// The cache lock must never be held across the finalizer firing later
	// (eviction wants the same lock), so registration happens after Unlock.
	// Only a newly created handle gets one: the runtime rejects a second
	// finalizer on the same object.
	if !ok {
		runtime.SetFinalizer(h, func(h *sharedHandle) {
			c.mu.Lock()
			if c.entries[h.hash] == h {
				delete(c.entries, h.hash)
			}
			c.mu.Unlock()
		})
	}

	return ValueSharedString{h: h}
}

// Data returns the shared byte buffer. Callers must not mutate it.
func (v ValueSharedString) Data() []byte {
	if v.h == nil {
		return nil
	}
	return v.h.data
}

// Hash returns the content hash of the buffer.
func (v ValueSharedString) Hash() SharedStringHash {
	if v.h == nil {
		return SharedStringHash{}
	}
	return v.h.hash
}

func (ValueSharedString) Type() VariantType { return TypeSharedString }
func (v ValueSharedString) String() string  { return v.Hash().String() }
func (v ValueSharedString) Copy() Value     { return v }
