package binary

import "github.com/robloxapi/rbxdom"

// codecContext carries the per-file state that individual value columns
// need but that isn't local to one PROP chunk: the referent table (for Ref
// columns) and the shared-string table (for SharedString columns).
type codecContext struct {
	// refToReferent and referentToRef implement the bijective mapping
	// between a file-local i32 referent id and this DOM's Ref, built while
	// the INST chunks are read (decode) or while referents are allocated
	// (encode).
	refToReferent map[rbxdom.Ref]int32
	referentToRef map[int32]rbxdom.Ref

	// sharedStrings indexes the SSTR table in file order.
	sharedStrings []rbxdom.ValueSharedString
	hashToIndex   map[rbxdom.SharedStringHash]uint32
}

func newCodecContext() *codecContext {
	return &codecContext{
		refToReferent: make(map[rbxdom.Ref]int32),
		referentToRef: make(map[int32]rbxdom.Ref),
		hashToIndex:   make(map[rbxdom.SharedStringHash]uint32),
	}
}

const nullReferent int32 = -1

func (c *codecContext) referentFor(ref rbxdom.Ref) int32 {
	if ref.IsNull() {
		return nullReferent
	}
	return c.refToReferent[ref]
}

func (c *codecContext) refFor(referent int32) rbxdom.Ref {
	if referent == nullReferent {
		return rbxdom.NullRef
	}
	return c.referentToRef[referent]
}

func (c *codecContext) indexForSharedString(v rbxdom.ValueSharedString) uint32 {
	hash := v.Hash()
	if idx, ok := c.hashToIndex[hash]; ok {
		return idx
	}
	idx := uint32(len(c.sharedStrings))
	c.sharedStrings = append(c.sharedStrings, v)
	c.hashToIndex[hash] = idx
	return idx
}

func (c *codecContext) sharedStringAt(idx uint32) (rbxdom.ValueSharedString, bool) {
	if int(idx) >= len(c.sharedStrings) {
		return rbxdom.ValueSharedString{}, false
	}
	return c.sharedStrings[idx], true
}
