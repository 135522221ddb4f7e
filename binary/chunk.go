package binary

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	lz4 "github.com/bkaradzic/go-lz4"
	"github.com/klauspost/compress/zstd"
)

// zstdMagic is the 4-byte prefix that identifies a Zstd frame, used to
// distinguish it from a raw LZ4 block (spec.md §6.1's chunk header note).
var zstdMagic = [4]byte{0x28, 0xB5, 0x2F, 0xFD}

// chunkSig is the 4-byte ASCII signature of a chunk.
type chunkSig uint32

func sigOf(name string) chunkSig {
	var b [4]byte
	copy(b[:], name)
	return chunkSig(binary.LittleEndian.Uint32(b[:]))
}

var (
	sigMETA = sigOf("META")
	sigSSTR = sigOf("SSTR")
	sigINST = sigOf("INST")
	sigPROP = sigOf("PROP")
	sigPRNT = sigOf("PRNT")
	sigEND  = sigOf("END\x00")
)

func (s chunkSig) String() string {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(s))
	return string(b[:])
}

// rawChunk is one decoded or to-be-encoded chunk: a signature plus its
// uncompressed payload. Compression is a transport detail resolved on
// read/write, not carried in the in-memory representation.
type rawChunk struct {
	sig     chunkSig
	payload []byte
}

// readChunk reads and decompresses one chunk from r.
func readChunk(r io.Reader) (rawChunk, error) {
	var hdr [16]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return rawChunk{}, fmt.Errorf("chunk header: %w", err)
	}
	sig := chunkSig(binary.LittleEndian.Uint32(hdr[0:4]))
	compressedLen := binary.LittleEndian.Uint32(hdr[4:8])
	uncompressedLen := binary.LittleEndian.Uint32(hdr[8:12])
	// hdr[12:16] is reserved and must be zero; tolerated if not, per the
	// container's general "tolerant on read" posture.

	if compressedLen == 0 {
		payload := make([]byte, uncompressedLen)
		if _, err := io.ReadFull(r, payload); err != nil {
			return rawChunk{}, chunkError{Sig: sig.String(), Cause: err}
		}
		return rawChunk{sig: sig, payload: payload}, nil
	}

	compressed := make([]byte, compressedLen)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return rawChunk{}, chunkError{Sig: sig.String(), Cause: err}
	}

	payload, err := decompressChunk(compressed, int(uncompressedLen))
	if err != nil {
		return rawChunk{}, chunkError{Sig: sig.String(), Cause: err}
	}
	return rawChunk{sig: sig, payload: payload}, nil
}

func decompressChunk(compressed []byte, uncompressedLen int) ([]byte, error) {
	if len(compressed) >= 4 && bytes.Equal(compressed[:4], zstdMagic[:]) {
		dec, err := zstd.NewReader(bytes.NewReader(compressed))
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer dec.Close()
		out := make([]byte, 0, uncompressedLen)
		buf := bytes.NewBuffer(out)
		if _, err := io.Copy(buf, dec); err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return buf.Bytes(), nil
	}

	// LZ4-block framing expects the uncompressed length to precede the
	// compressed bytes (bkaradzic/go-lz4's own convention).
	framed := make([]byte, 4+len(compressed))
	binary.LittleEndian.PutUint32(framed, uint32(uncompressedLen))
	copy(framed[4:], compressed)
	out := make([]byte, uncompressedLen)
	if _, err := lz4.Decode(out, framed); err != nil {
		return nil, fmt.Errorf("lz4: %w", err)
	}
	return out, nil
}

// writeChunk compresses (when requested) and writes one chunk to w.
func writeChunk(w io.Writer, c rawChunk, compress bool) error {
	var hdr [16]byte
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(c.sig))

	if !compress {
		binary.LittleEndian.PutUint32(hdr[4:8], 0)
		binary.LittleEndian.PutUint32(hdr[8:12], uint32(len(c.payload)))
		if _, err := w.Write(hdr[:]); err != nil {
			return err
		}
		_, err := w.Write(c.payload)
		return err
	}

	var framed []byte
	framed, err := lz4.Encode(framed, c.payload)
	if err != nil {
		return fmt.Errorf("lz4: %w", err)
	}
	// bkaradzic/go-lz4 prepends the uncompressed length; the chunk format
	// carries that length in its own header field instead.
	compressedPayload := framed[4:]

	binary.LittleEndian.PutUint32(hdr[4:8], uint32(len(compressedPayload)))
	binary.LittleEndian.PutUint32(hdr[8:12], uint32(len(c.payload)))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	_, err = w.Write(compressedPayload)
	return err
}
