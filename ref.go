// Package rbxdom implements a library for decoding and encoding Roblox
// instance file formats.
//
// This package can be used to manipulate Roblox instance trees outside of
// the Roblox client. A DOM owns a tree of Instances, each identified by an
// opaque Ref token. Instances carry a class name, a name, a map of
// properties, and an ordered list of children. Every available property
// value type is prefixed with "Value" and implements the Value interface.
package rbxdom

import (
	"crypto/rand"
	"encoding/hex"
)

// Ref is an opaque 128-bit identity token for an Instance. The zero Ref is
// the null reference: it never identifies a real instance.
type Ref [16]byte

// NullRef is the null reference, used for unset parents and dangling or
// intentionally empty Ref-typed property values.
var NullRef = Ref{}

// IsNull reports whether r is the null reference.
func (r Ref) IsNull() bool {
	return r == NullRef
}

// String returns a hex representation of the reference, suitable for
// referent strings in the XML codec and for debugging.
func (r Ref) String() string {
	if r.IsNull() {
		return "null"
	}
	var buf [32]byte
	hex.Encode(buf[:], r[:])
	return string(buf[:])
}

// NewRef draws a new Ref from a cryptographically random source. The
// probability of collision within a realistic DOM is negligible; callers
// that insert into a DOM should retry generation on the rare event that a
// freshly generated Ref already exists in that DOM's arena.
func NewRef() Ref {
	var r Ref
	if _, err := rand.Read(r[:]); err != nil {
		panic("rbxdom: failed to read random bytes for Ref: " + err.Error())
	}
	return r
}

// RefFromString parses the hex form produced by Ref.String. The XML codec
// does not use it: XML referents are short human-assigned strings and are
// tracked by a separate string-keyed table during decode (see xml.Decode).
func RefFromString(s string) (Ref, bool) {
	if s == "null" || s == "" {
		return NullRef, true
	}
	if len(s) != 32 {
		return Ref{}, false
	}
	var r Ref
	if _, err := hex.Decode(r[:], []byte(s)); err != nil {
		return Ref{}, false
	}
	return r, true
}
