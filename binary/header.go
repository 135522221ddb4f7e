package binary

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// fileMagic is the 8-byte file identifier, followed by a 6-byte signature
// and a 2-byte version (spec.md §6.1). Grounded on the teacher's
// rbxl/model.go robloxSig + binaryMarker + binaryHeader constants, which
// together spell out the same 14 bytes split the same way.
const (
	fileMagic     = "<roblox!"
	fileSignature = "\x89\xff\r\n\x1a\n"
)

type fileHeader struct {
	Version       uint16
	ClassCount    uint32
	InstanceCount uint32
}

func readFileHeader(r io.Reader) (fileHeader, error) {
	var magic [8]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return fileHeader{}, fmt.Errorf("reading file magic: %w", err)
	}
	if !bytes.Equal(magic[:], []byte(fileMagic)) {
		return fileHeader{}, errInvalidSig
	}

	var sig [6]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil {
		return fileHeader{}, fmt.Errorf("reading file signature: %w", err)
	}
	if !bytes.Equal(sig[:], []byte(fileSignature)) {
		return fileHeader{}, errCorruptHeader
	}

	var rest [18]byte
	if _, err := io.ReadFull(r, rest[:]); err != nil {
		return fileHeader{}, fmt.Errorf("reading file header: %w", err)
	}
	h := fileHeader{
		Version:       binary.LittleEndian.Uint16(rest[0:2]),
		ClassCount:    binary.LittleEndian.Uint32(rest[2:6]),
		InstanceCount: binary.LittleEndian.Uint32(rest[6:10]),
	}
	if h.Version != 0 {
		return fileHeader{}, errUnrecognizedVersion(h.Version)
	}
	// rest[10:18] is the 8-byte reserved field; tolerated if non-zero.
	return h, nil
}

func writeFileHeader(w io.Writer, h fileHeader) error {
	if _, err := w.Write([]byte(fileMagic)); err != nil {
		return err
	}
	if _, err := w.Write([]byte(fileSignature)); err != nil {
		return err
	}
	var rest [18]byte
	binary.LittleEndian.PutUint16(rest[0:2], h.Version)
	binary.LittleEndian.PutUint32(rest[2:6], h.ClassCount)
	binary.LittleEndian.PutUint32(rest[6:10], h.InstanceCount)
	_, err := w.Write(rest[:])
	return err
}
