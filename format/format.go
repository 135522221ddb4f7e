// Package format is the single entry point spec.md §6.3 describes: decode
// and encode either container format (binary .rbxm/.rbxl, XML .rbxmx/.rbxlx)
// against a common rbxdom.DOM, with one shared set of options for how
// properties the reflection database doesn't recognize are treated.
//
// The root rbxdom package cannot import binary or xml itself (both of those
// packages import rbxdom for the DOM/Value types), so this facade — grounded
// on the combined-format dispatch in the teacher's cmd/rbxfile-stat and
// cmd/rbxfile-dcomp tools — lives in its own package one level up.
package format

import (
	"fmt"
	"io"

	"github.com/robloxapi/rbxdom"
	"github.com/robloxapi/rbxdom/binary"
	rbxerrors "github.com/robloxapi/rbxdom/errors"
	"github.com/robloxapi/rbxdom/reflection"
	"github.com/robloxapi/rbxdom/xml"
)

// PropertyMode controls how Decode and Encode treat a property the
// reflection database does not recognize for its instance's class
// (spec.md §6.3's decode_property/encode_property options).
type PropertyMode int

const (
	// IgnoreUnknown silently drops properties the database doesn't
	// recognize. This is the default zero value.
	IgnoreUnknown PropertyMode = iota
	// ReadUnknown keeps unrecognized properties under their on-disk name
	// instead of dropping them.
	ReadUnknown
	// ErrorUnknown fails decode/encode the first time an unrecognized
	// property is seen.
	ErrorUnknown
	// NoReflection disables the reflection database entirely: property
	// names are passed through as-is and no unknown-property check runs.
	NoReflection
)

// DecodeOptions controls DecodeBinary and DecodeXML.
type DecodeOptions struct {
	// Database resolves serialized property names to their canonical form
	// and classifies unknown properties. A nil Database, with Properties
	// not set to NoReflection, falls back to reflection.Default().
	Database *reflection.Database
	// Properties selects how properties absent from Database are treated.
	Properties PropertyMode
}

// EncodeOptions controls EncodeBinary and EncodeXML.
type EncodeOptions struct {
	// Roots restricts serialization to the given refs and their
	// descendants. A nil slice serializes every direct child of the DOM's
	// synthetic root.
	Roots []rbxdom.Ref
	// Compress enables LZ4-block compression of binary chunks. Ignored by
	// EncodeXML.
	Compress bool
	// Database resolves each class's serialized property set and default
	// values, the same as DecodeOptions.Database.
	Database *reflection.Database
	// Properties selects how properties absent from Database are treated.
	Properties PropertyMode
}

func (opts DecodeOptions) database() *reflection.Database {
	if opts.Properties == NoReflection {
		return nil
	}
	if opts.Database != nil {
		return opts.Database
	}
	return reflection.Default()
}

func (opts EncodeOptions) database() *reflection.Database {
	if opts.Properties == NoReflection {
		return nil
	}
	if opts.Database != nil {
		return opts.Database
	}
	return reflection.Default()
}

// checkDecodedProperties walks every instance in dom starting at ref
// (inclusive) and applies mode to each property the database doesn't
// recognize for its class. It only ever deletes properties from dom, never
// from a caller-owned DOM passed to Encode*: dom here is always one Decode*
// just built, so the mutation is invisible to the caller.
func checkDecodedProperties(dom *rbxdom.DOM, ref rbxdom.Ref, db *reflection.Database, mode PropertyMode) error {
	if db == nil || mode == ReadUnknown || mode == NoReflection {
		return nil
	}
	for _, r := range dom.DescendantsSlice(ref) {
		inst := dom.Get(r)
		if inst == nil {
			continue
		}
		for name := range inst.Properties() {
			if _, err := db.Resolve(inst.ClassName(), name); err != nil {
				switch mode {
				case ErrorUnknown:
					return rbxerrors.SchemaError{Class: inst.ClassName(), Property: name, Cause: err}
				case IgnoreUnknown:
					inst.Set(name, nil)
				}
			}
		}
	}
	return nil
}

// checkEncodedProperties is the read-only counterpart used before Encode*:
// it never mutates the caller's dom, so ErrorUnknown is the only mode that
// does anything here. IgnoreUnknown and ReadUnknown are instead realized by
// binary.EncodeOptions.IncludeUnknownProperties / xml.EncodeOptions's field
// of the same name, which Encode* sets from opts.Properties.
func checkEncodedProperties(dom *rbxdom.DOM, roots []rbxdom.Ref, db *reflection.Database, mode PropertyMode) error {
	if db == nil || mode != ErrorUnknown {
		return nil
	}
	if roots == nil {
		roots = dom.Get(dom.Root()).Children()
	}
	for _, root := range roots {
		for _, r := range dom.DescendantsSlice(root) {
			inst := dom.Get(r)
			if inst == nil {
				continue
			}
			for name := range inst.Properties() {
				if _, err := db.Resolve(inst.ClassName(), name); err != nil {
					return rbxerrors.SchemaError{Class: inst.ClassName(), Property: name, Cause: err}
				}
			}
		}
	}
	return nil
}

// DecodeBinary reads a binary container (.rbxm/.rbxl) and returns the DOM
// it describes.
func DecodeBinary(r io.Reader, mode binary.Mode, opts DecodeOptions) (*rbxdom.DOM, error) {
	db := opts.database()
	dom, err := binary.Decode(r, mode, db)
	if err != nil {
		return nil, fmt.Errorf("format: decoding binary: %w", err)
	}
	if err := checkDecodedProperties(dom, dom.Root(), db, opts.Properties); err != nil {
		return nil, fmt.Errorf("format: decoding binary: %w", err)
	}
	return dom, nil
}

// DecodeXML reads an XML document (.rbxmx/.rbxlx) and returns the DOM it
// describes.
func DecodeXML(r io.Reader, opts DecodeOptions) (*rbxdom.DOM, error) {
	db := opts.database()
	dom, err := xml.Decode(r, db)
	if err != nil {
		return nil, fmt.Errorf("format: decoding xml: %w", err)
	}
	if err := checkDecodedProperties(dom, dom.Root(), db, opts.Properties); err != nil {
		return nil, fmt.Errorf("format: decoding xml: %w", err)
	}
	return dom, nil
}

// EncodeBinary writes dom (or the subtrees named by opts.Roots) as a binary
// container.
func EncodeBinary(w io.Writer, dom *rbxdom.DOM, mode binary.Mode, opts EncodeOptions) error {
	db := opts.database()
	if err := checkEncodedProperties(dom, opts.Roots, db, opts.Properties); err != nil {
		return fmt.Errorf("format: encoding binary: %w", err)
	}
	if err := binary.Encode(w, dom, mode, binary.EncodeOptions{
		Roots:                    opts.Roots,
		Compress:                 opts.Compress,
		Database:                 db,
		IncludeUnknownProperties: opts.Properties == ReadUnknown,
	}); err != nil {
		return fmt.Errorf("format: encoding binary: %w", err)
	}
	return nil
}

// EncodeXML writes dom (or the subtrees named by opts.Roots) as an XML
// document.
func EncodeXML(w io.Writer, dom *rbxdom.DOM, opts EncodeOptions) error {
	db := opts.database()
	if err := checkEncodedProperties(dom, opts.Roots, db, opts.Properties); err != nil {
		return fmt.Errorf("format: encoding xml: %w", err)
	}
	if err := xml.Encode(w, dom, xml.EncodeOptions{
		Roots:                    opts.Roots,
		Database:                 db,
		IncludeUnknownProperties: opts.Properties == ReadUnknown,
	}); err != nil {
		return fmt.Errorf("format: encoding xml: %w", err)
	}
	return nil
}
