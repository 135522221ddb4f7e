// Package reflection implements the read-only, process-wide database of
// class and property descriptors used by both codecs to resolve names,
// coerce values, and fall back when descriptors are missing (spec.md
// §4.C). No teacher file in RobloxAPI-rbxfile grounds this package
// directly — the teacher leans on an external rbxapi/rbxdump pair of
// modules that are not part of this module's dependency graph — so its
// shape follows spec.md §4.C directly, cross-checked against
// original_source/rbx_reflection for the descriptor fields.
package reflection

import (
	"fmt"

	"github.com/robloxapi/rbxdom"
)

// Scriptability describes how a property is exposed to Roblox scripts.
type Scriptability byte

const (
	ScriptNone Scriptability = iota
	ScriptRead
	ScriptWrite
	ScriptReadWrite
	ScriptCustom
)

// PropertyTag is a single tag attached to a PropertyDescriptor (hidden,
// read-only, not-scriptable, ...).
type PropertyTag string

const (
	TagHidden         PropertyTag = "Hidden"
	TagReadOnly       PropertyTag = "ReadOnly"
	TagNotScriptable  PropertyTag = "NotScriptable"
	TagDeprecated     PropertyTag = "Deprecated"
)

// ClassTag is a single tag attached to a ClassDescriptor (service,
// not-creatable, deprecated, ...).
type ClassTag string

const (
	ClassTagService      ClassTag = "Service"
	ClassTagNotCreatable ClassTag = "NotCreatable"
	ClassTagDeprecated   ClassTag = "Deprecated"
)

// DataType pairs a property's kind (plain data vs. enum) with the concrete
// VariantType or enum name it resolves to.
type DataType struct {
	// IsEnum distinguishes Data(VariantType) from Enum(name).
	IsEnum   bool
	Variant  rbxdom.VariantType
	EnumName string
}

// PropertyDescriptor describes one property of a class.
type PropertyDescriptor struct {
	Name          string
	DataType      DataType
	Tags          map[PropertyTag]bool
	Scriptability Scriptability

	// Serializes reports whether this property is ever written to disk at
	// all (independent of aliasing).
	Serializes bool

	// AliasFor, if non-empty, means this descriptor is not canonical: the
	// canonical descriptor lives under the named property in the same
	// class.
	AliasFor string

	// SerializesAs, if non-empty, names the descriptor in the same class
	// whose name this (canonical) property is stored under on disk.
	SerializesAs string
}

// HasTag reports whether the property carries tag.
func (p *PropertyDescriptor) HasTag(tag PropertyTag) bool { return p.Tags[tag] }

// ClassDescriptor describes one class: its superclass and properties.
type ClassDescriptor struct {
	Name       string
	Superclass string
	Tags       map[ClassTag]bool
	Properties map[string]*PropertyDescriptor
}

// HasTag reports whether the class carries tag.
func (c *ClassDescriptor) HasTag(tag ClassTag) bool { return c.Tags[tag] }

// Database is a read-only, process-wide database of class descriptors plus
// default property values, per spec.md §4.C/§6.4. The zero Database is
// empty but usable (all lookups miss).
type Database struct {
	Classes  map[string]*ClassDescriptor
	Defaults map[string]map[string]rbxdom.Value
}

// NewDatabase returns an empty, mutable Database — useful for tests and for
// callers building a custom database from scratch.
func NewDatabase() *Database {
	return &Database{
		Classes:  make(map[string]*ClassDescriptor),
		Defaults: make(map[string]map[string]rbxdom.Value),
	}
}

// Class returns the descriptor for name, or nil if the class is unknown.
func (db *Database) Class(name string) *ClassDescriptor {
	if db == nil {
		return nil
	}
	return db.Classes[name]
}

// Default returns the default value of (class, property), falling back to
// nil (meaning: use the value type's zero) if no default is recorded.
func (db *Database) Default(class, property string) rbxdom.Value {
	if db == nil {
		return nil
	}
	if m, ok := db.Defaults[class]; ok {
		return m[property]
	}
	return nil
}

// Role distinguishes which of the two roles DescriptorRole returns: the
// canonical (in-memory) name callers see, or the serialized (on-disk) name.
type Role int

const (
	RoleCanonical Role = iota
	RoleSerialized
)

// Resolution is the result of Resolve: up to two descriptors (canonical and
// serialized may be the same descriptor, or may differ, or the serialized
// one may be absent for a non-serializing property).
type Resolution struct {
	Class      string
	Canonical  *PropertyDescriptor
	Serialized *PropertyDescriptor
	// SerializedName is the on-disk property name, valid only if
	// Serialized != nil.
	SerializedName string
}

// ErrNotFound is returned by Resolve when no class in the superclass chain
// declares the property at all.
var ErrNotFound = fmt.Errorf("reflection: property not found in superclass chain")

// Resolve implements the descriptor lookup algorithm of spec.md §4.C: given
// a class and a property name (which may be either the canonical or
// serialized name — callers needing a specific role should check the
// returned Resolution's fields), walk the superclass chain and classify the
// descriptor found.
func (db *Database) Resolve(className, propertyName string) (Resolution, error) {
	for class := db.Class(className); class != nil; class = db.Class(class.Superclass) {
		desc, ok := class.Properties[propertyName]
		if !ok {
			continue
		}
		return db.classify(class, desc)
	}
	return Resolution{}, ErrNotFound
}

func (db *Database) classify(class *ClassDescriptor, desc *PropertyDescriptor) (Resolution, error) {
	if desc.AliasFor != "" {
		target, ok := class.Properties[desc.AliasFor]
		if !ok {
			return Resolution{}, ErrNotFound
		}
		return db.classify(class, target)
	}

	if !desc.Serializes {
		return Resolution{Class: class.Name, Canonical: desc}, nil
	}

	if desc.SerializesAs == "" {
		return Resolution{
			Class:          class.Name,
			Canonical:      desc,
			Serialized:     desc,
			SerializedName: desc.Name,
		}, nil
	}

	serialized, ok := class.Properties[desc.SerializesAs]
	if !ok {
		return Resolution{}, ErrNotFound
	}
	return Resolution{
		Class:          class.Name,
		Canonical:      desc,
		Serialized:     serialized,
		SerializedName: serialized.Name,
	}, nil
}

// CanonicalName resolves the in-memory property name a caller should use
// for (className, anyName), where anyName may be either the canonical or
// the on-disk serialized name. Used by codecs decoding a serialized name
// into the correct canonical property slot (spec.md's end-to-end scenario
// #3).
func (db *Database) CanonicalName(className, anyName string) (string, bool) {
	res, err := db.Resolve(className, anyName)
	if err != nil || res.Canonical == nil {
		return anyName, false
	}
	if res.Serialized == nil {
		// anyName may be the on-disk name another property's SerializesAs
		// points at; that property is the canonical slot.
		for _, desc := range db.Class(res.Class).Properties {
			if desc.Serializes && desc.AliasFor == "" && desc.SerializesAs == anyName {
				return desc.Name, true
			}
		}
	}
	return res.Canonical.Name, true
}
