package rbxdom

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrAttributeType is returned when a Value of a type outside the
// Attributes closed subtype set (no Ref, CFrame, or SharedString) is
// assigned into an Attributes map.
var ErrAttributeType = errors.New("rbxdom: value type not allowed inside Attributes")

// attributeAllowedTypes is the closed subtype set permitted inside an
// Attributes map, per spec.md §3.
var attributeAllowedTypes = map[VariantType]bool{
	TypeBinaryString:   true,
	TypeString:         true,
	TypeBool:           true,
	TypeFloat32:        true,
	TypeFloat64:        true,
	TypeUDim:           true,
	TypeUDim2:          true,
	TypeColor3:         true,
	TypeVector2:        true,
	TypeVector3:        true,
	TypeNumberSequence: true,
	TypeColorSequence:  true,
	TypeNumberRange:    true,
	TypeRect:           true,
	TypeBrickColor:     true,
}

// ValueAttributes is a map from attribute name to Value, restricted to
// attributeAllowedTypes. Construct through NewAttributes to get validation;
// the zero value behaves as an empty map.
type ValueAttributes struct {
	entries map[string]Value
}

// NewAttributes validates entries against the closed subtype set and
// returns the resulting ValueAttributes.
func NewAttributes(entries map[string]Value) (ValueAttributes, error) {
	out := ValueAttributes{entries: make(map[string]Value, len(entries))}
	for k, v := range entries {
		if v == nil {
			continue
		}
		if !attributeAllowedTypes[v.Type()] {
			return ValueAttributes{}, fmt.Errorf("%w: attribute %q has type %s", ErrAttributeType, k, v.Type())
		}
		out.entries[k] = v
	}
	return out, nil
}

func (ValueAttributes) Type() VariantType { return TypeAttributes }

func (v ValueAttributes) String() string {
	keys := v.sortedKeys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + v.entries[k].String()
	}
	return strings.Join(parts, ", ")
}

func (v ValueAttributes) Copy() Value {
	c := ValueAttributes{entries: make(map[string]Value, len(v.entries))}
	for k, val := range v.entries {
		c.entries[k] = val.Copy()
	}
	return c
}

// Get returns the value at key, or nil if it is unset.
func (v ValueAttributes) Get(key string) Value { return v.entries[key] }

// Len returns the number of attributes.
func (v ValueAttributes) Len() int { return len(v.entries) }

// Set assigns value at key, validating against the closed subtype set.
func (v *ValueAttributes) Set(key string, value Value) error {
	if value != nil && !attributeAllowedTypes[value.Type()] {
		return fmt.Errorf("%w: attribute %q has type %s", ErrAttributeType, key, value.Type())
	}
	if v.entries == nil {
		v.entries = make(map[string]Value)
	}
	if value == nil {
		delete(v.entries, key)
		return nil
	}
	v.entries[key] = value
	return nil
}

// sortedKeys returns attribute keys in deterministic (lexical) order, used
// both for String() and for deterministic blob encoding.
func (v ValueAttributes) sortedKeys() []string {
	keys := make([]string, 0, len(v.entries))
	for k := range v.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Range calls fn for every attribute in deterministic key order.
func (v ValueAttributes) Range(fn func(key string, value Value)) {
	for _, k := range v.sortedKeys() {
		fn(k, v.entries[k])
	}
}

// AttributeTypeTag is the single-byte type tag used inside an Attributes
// binary blob (spec.md §6.1). It intentionally differs from the PROP-chunk
// type tag table: the Attributes blob predates several PROP-level types
// and was never renumbered to match.
type AttributeTypeTag byte

const (
	AttrTagBinaryString    AttributeTypeTag = 0x02
	AttrTagBool            AttributeTypeTag = 0x03
	AttrTagFloat32         AttributeTypeTag = 0x05
	AttrTagFloat64         AttributeTypeTag = 0x06
	AttrTagUDim            AttributeTypeTag = 0x09
	AttrTagUDim2           AttributeTypeTag = 0x0A
	AttrTagBrickColor      AttributeTypeTag = 0x0E
	AttrTagColor3          AttributeTypeTag = 0x0F
	AttrTagVector2         AttributeTypeTag = 0x10
	AttrTagVector3         AttributeTypeTag = 0x11
	AttrTagNumberSequence  AttributeTypeTag = 0x17
	AttrTagColorSequence   AttributeTypeTag = 0x19
	AttrTagNumberRange     AttributeTypeTag = 0x1B
	AttrTagRect            AttributeTypeTag = 0x1C
)

// AttributeTypeTagFor returns the blob tag for t, and whether t is
// representable inside an Attributes blob at all.
func AttributeTypeTagFor(t VariantType) (AttributeTypeTag, bool) {
	switch t {
	case TypeBinaryString, TypeString:
		return AttrTagBinaryString, true
	case TypeBool:
		return AttrTagBool, true
	case TypeFloat32:
		return AttrTagFloat32, true
	case TypeFloat64:
		return AttrTagFloat64, true
	case TypeUDim:
		return AttrTagUDim, true
	case TypeUDim2:
		return AttrTagUDim2, true
	case TypeBrickColor:
		return AttrTagBrickColor, true
	case TypeColor3:
		return AttrTagColor3, true
	case TypeVector2:
		return AttrTagVector2, true
	case TypeVector3:
		return AttrTagVector3, true
	case TypeNumberSequence:
		return AttrTagNumberSequence, true
	case TypeColorSequence:
		return AttrTagColorSequence, true
	case TypeNumberRange:
		return AttrTagNumberRange, true
	case TypeRect:
		return AttrTagRect, true
	default:
		return 0, false
	}
}
