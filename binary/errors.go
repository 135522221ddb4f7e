package binary

import (
	"fmt"

	rbxerrors "github.com/robloxapi/rbxdom/errors"
)

// Sentinel format errors, grounded on the teacher's rbxl/errors.go.
var (
	errInvalidSig         = rbxerrors.New("invalid signature")
	errCorruptHeader      = rbxerrors.New("corrupt header magic")
	errEndChunkContent    = rbxerrors.New("end chunk content is not `</roblox>`")
	errEndChunkNotLast    = rbxerrors.New("end chunk is not the last chunk")
	errParentCountMismatch = rbxerrors.New("length of parent array does not match length of child array")
)

// errUnrecognizedVersion indicates a format version not recognized by the
// codec.
type errUnrecognizedVersion uint16

func (err errUnrecognizedVersion) Error() string {
	return fmt.Sprintf("unrecognized version %d", uint16(err))
}

// errUnknownValueType indicates a property data type not known by the
// codec.
type errUnknownValueType byte

func (err errUnknownValueType) Error() string {
	return fmt.Sprintf("unknown value type tag 0x%02X", byte(err))
}

// chunkError wraps an error encountered while decoding or encoding one
// chunk.
type chunkError struct {
	Sig   string
	Cause error
}

func (err chunkError) Error() string { return fmt.Sprintf("%q chunk: %s", err.Sig, err.Cause) }
func (err chunkError) Unwrap() error { return err.Cause }
