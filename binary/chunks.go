package binary

import (
	"encoding/binary"
	"fmt"
)

////////////////////////////////////////////////////////////////
// In-memory shapes of each chunk's payload, and their parse/build
// functions. Grounded on the teacher's rbxl/model.go chunk types
// (chunkMeta, chunkSharedStrings, chunkInstance, chunkProperty,
// chunkParent), generalized to this module's value matrix.

type metaPair struct{ Key, Value string }

func parseMeta(b []byte) ([]metaPair, error) {
	if len(b) < 4 {
		return nil, fmt.Errorf("truncated META count")
	}
	count := binary.LittleEndian.Uint32(b)
	b = b[4:]
	out := make([]metaPair, count)
	for i := range out {
		k, rest, err := readLengthPrefixed(b)
		if err != nil {
			return nil, fmt.Errorf("META key %d: %w", i, err)
		}
		v, rest2, err := readLengthPrefixed(rest)
		if err != nil {
			return nil, fmt.Errorf("META value %d: %w", i, err)
		}
		out[i] = metaPair{Key: k, Value: v}
		b = rest2
	}
	return out, nil
}

func buildMeta(pairs []metaPair) []byte {
	var b []byte
	var countBuf [4]byte
	binary.LittleEndian.PutUint32(countBuf[:], uint32(len(pairs)))
	b = append(b, countBuf[:]...)
	for _, p := range pairs {
		b = append(b, lengthPrefixed(p.Key)...)
		b = append(b, lengthPrefixed(p.Value)...)
	}
	return b
}

type sstrEntry struct {
	Hash [16]byte
	Data []byte
}

func parseSSTR(b []byte) ([]sstrEntry, error) {
	if len(b) < 8 {
		return nil, fmt.Errorf("truncated SSTR header")
	}
	// version := binary.LittleEndian.Uint32(b[0:4]) // must be 0, tolerated otherwise
	count := binary.LittleEndian.Uint32(b[4:8])
	b = b[8:]
	out := make([]sstrEntry, count)
	for i := range out {
		if len(b) < 16 {
			return nil, fmt.Errorf("truncated SSTR hash %d", i)
		}
		var hash [16]byte
		copy(hash[:], b[:16])
		b = b[16:]
		data, rest, err := readLengthPrefixedBytes(b)
		if err != nil {
			return nil, fmt.Errorf("SSTR entry %d: %w", i, err)
		}
		out[i] = sstrEntry{Hash: hash, Data: data}
		b = rest
	}
	return out, nil
}

func buildSSTR(entries []sstrEntry) []byte {
	var b []byte
	var hdr [8]byte
	binary.LittleEndian.PutUint32(hdr[0:4], 0)
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(len(entries)))
	b = append(b, hdr[:]...)
	for _, e := range entries {
		b = append(b, e.Hash[:]...)
		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(e.Data)))
		b = append(b, lenBuf[:]...)
		b = append(b, e.Data...)
	}
	return b
}

func readLengthPrefixedBytes(b []byte) ([]byte, []byte, error) {
	if len(b) < 4 {
		return nil, nil, fmt.Errorf("truncated length prefix")
	}
	l := binary.LittleEndian.Uint32(b)
	b = b[4:]
	if uint32(len(b)) < l {
		return nil, nil, fmt.Errorf("truncated byte body")
	}
	cp := make([]byte, l)
	copy(cp, b[:l])
	return cp, b[l:], nil
}

type instChunk struct {
	TypeID         uint32
	ClassName      string
	IsService      bool
	ServiceMarkers []bool
	Referents      []int32
}

func parseINST(b []byte) (instChunk, error) {
	var c instChunk
	if len(b) < 4 {
		return c, fmt.Errorf("truncated INST type id")
	}
	c.TypeID = binary.LittleEndian.Uint32(b)
	b = b[4:]
	name, rest, err := readLengthPrefixed(b)
	if err != nil {
		return c, fmt.Errorf("INST class name: %w", err)
	}
	c.ClassName = name
	b = rest
	if len(b) < 1 {
		return c, fmt.Errorf("truncated INST object format")
	}
	objectFormat := b[0]
	b = b[1:]
	c.IsService = objectFormat == 1
	if len(b) < 4 {
		return c, fmt.Errorf("truncated INST instance count")
	}
	n := binary.LittleEndian.Uint32(b)
	b = b[4:]
	if c.IsService {
		if uint32(len(b)) < n {
			return c, fmt.Errorf("truncated INST service markers")
		}
		c.ServiceMarkers = decodeBoolColumn(b[:n])
		b = b[n:]
	}
	refs, err := decodeReferentArray(b)
	if err != nil {
		return c, fmt.Errorf("INST referents: %w", err)
	}
	if uint32(len(refs)) != n {
		return c, fmt.Errorf("INST referent count %d does not match declared count %d", len(refs), n)
	}
	c.Referents = refs
	return c, nil
}

func buildINST(c instChunk) []byte {
	var b []byte
	var typeBuf [4]byte
	binary.LittleEndian.PutUint32(typeBuf[:], c.TypeID)
	b = append(b, typeBuf[:]...)
	b = append(b, lengthPrefixed(c.ClassName)...)
	if c.IsService {
		b = append(b, 1)
	} else {
		b = append(b, 0)
	}
	var countBuf [4]byte
	binary.LittleEndian.PutUint32(countBuf[:], uint32(len(c.Referents)))
	b = append(b, countBuf[:]...)
	if c.IsService {
		b = append(b, encodeBoolColumn(c.ServiceMarkers)...)
	}
	b = append(b, encodeReferentArray(c.Referents)...)
	return b
}

type propChunkHeader struct {
	TypeID       uint32
	PropertyName string
	Tag          valueTypeTag
}

func parsePropHeader(b []byte) (propChunkHeader, []byte, error) {
	var h propChunkHeader
	if len(b) < 4 {
		return h, nil, fmt.Errorf("truncated PROP type id")
	}
	h.TypeID = binary.LittleEndian.Uint32(b)
	b = b[4:]
	name, rest, err := readLengthPrefixed(b)
	if err != nil {
		return h, nil, fmt.Errorf("PROP property name: %w", err)
	}
	h.PropertyName = name
	b = rest
	if len(b) < 1 {
		return h, nil, fmt.Errorf("truncated PROP value type tag")
	}
	h.Tag = valueTypeTag(b[0])
	return h, b[1:], nil
}

func buildPropHeader(h propChunkHeader) []byte {
	var b []byte
	var typeBuf [4]byte
	binary.LittleEndian.PutUint32(typeBuf[:], h.TypeID)
	b = append(b, typeBuf[:]...)
	b = append(b, lengthPrefixed(h.PropertyName)...)
	b = append(b, byte(h.Tag))
	return b
}

func parsePRNT(b []byte) (children, parents []int32, err error) {
	if len(b) < 1 {
		return nil, nil, fmt.Errorf("truncated PRNT version")
	}
	// version := b[0] // must be 0, tolerated otherwise
	b = b[1:]
	if len(b) < 4 {
		return nil, nil, fmt.Errorf("truncated PRNT count")
	}
	n := binary.LittleEndian.Uint32(b)
	b = b[4:]
	if uint32(len(b))%4 != 0 {
		return nil, nil, fmt.Errorf("malformed PRNT referent arrays")
	}
	half := len(b) / 2
	children, err = decodeReferentArray(b[:half])
	if err != nil {
		return nil, nil, fmt.Errorf("PRNT children: %w", err)
	}
	parents, err = decodeReferentArray(b[half:])
	if err != nil {
		return nil, nil, fmt.Errorf("PRNT parents: %w", err)
	}
	if uint32(len(children)) != n || uint32(len(parents)) != n {
		return nil, nil, errParentCountMismatch
	}
	return children, parents, nil
}

func buildPRNT(children, parents []int32) []byte {
	var b []byte
	b = append(b, 0) // version
	var countBuf [4]byte
	binary.LittleEndian.PutUint32(countBuf[:], uint32(len(children)))
	b = append(b, countBuf[:]...)
	b = append(b, encodeReferentArray(children)...)
	b = append(b, encodeReferentArray(parents)...)
	return b
}
