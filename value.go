package rbxdom

import (
	"strconv"
	"strings"
)

// VariantType identifies the concrete type carried by a Value.
type VariantType byte

const (
	TypeInvalid VariantType = iota
	TypeString
	TypeBinaryString
	TypeBool
	TypeInt32
	TypeInt64
	TypeFloat32
	TypeFloat64
	TypeUDim
	TypeUDim2
	TypeRay
	TypeFaces
	TypeAxes
	TypeBrickColor
	TypeColor3
	TypeColor3uint8
	TypeVector2
	TypeVector2int16
	TypeVector3
	TypeVector3int16
	TypeCFrame
	TypeOptionalCFrame
	TypeEnum
	TypeRef
	TypeSharedString
	TypeNumberSequence
	TypeColorSequence
	TypeNumberRange
	TypeRect
	TypeRegion3
	TypeRegion3int16
	TypePhysicalProperties
	TypeColor3Sequence // unused alias kept out of range checks; see ColorSequence
	TypeFont
	TypeContent
	TypeContentId
	TypeTags
	TypeAttributes
	TypeUniqueId
	TypeSecurityCapabilities
	TypeMaterialColors
	TypeSmoothGrid
)

var typeNames = map[VariantType]string{
	TypeString:               "String",
	TypeBinaryString:         "BinaryString",
	TypeBool:                 "Bool",
	TypeInt32:                "Int32",
	TypeInt64:                "Int64",
	TypeFloat32:              "Float32",
	TypeFloat64:              "Float64",
	TypeUDim:                 "UDim",
	TypeUDim2:                "UDim2",
	TypeRay:                  "Ray",
	TypeFaces:                "Faces",
	TypeAxes:                 "Axes",
	TypeBrickColor:           "BrickColor",
	TypeColor3:               "Color3",
	TypeColor3uint8:          "Color3uint8",
	TypeVector2:              "Vector2",
	TypeVector2int16:         "Vector2int16",
	TypeVector3:              "Vector3",
	TypeVector3int16:         "Vector3int16",
	TypeCFrame:               "CFrame",
	TypeOptionalCFrame:       "OptionalCFrame",
	TypeEnum:                 "Enum",
	TypeRef:                  "Ref",
	TypeSharedString:         "SharedString",
	TypeNumberSequence:       "NumberSequence",
	TypeColorSequence:        "ColorSequence",
	TypeNumberRange:          "NumberRange",
	TypeRect:                 "Rect",
	TypeRegion3:              "Region3",
	TypeRegion3int16:         "Region3int16",
	TypePhysicalProperties:   "PhysicalProperties",
	TypeFont:                 "Font",
	TypeContent:              "Content",
	TypeContentId:            "ContentId",
	TypeTags:                 "Tags",
	TypeAttributes:           "Attributes",
	TypeUniqueId:             "UniqueId",
	TypeSecurityCapabilities: "SecurityCapabilities",
	TypeMaterialColors:       "MaterialColors",
	TypeSmoothGrid:           "SmoothGrid",
}

// String returns the canonical name of the type, or "Invalid" if unknown.
func (t VariantType) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "Invalid"
}

// VariantTypeFromString is the inverse of VariantType.String.
func VariantTypeFromString(s string) VariantType {
	for t, name := range typeNames {
		if name == s {
			return t
		}
	}
	return TypeInvalid
}

// Value holds a value of a particular VariantType. Every concrete value
// type in this package implements Value.
type Value interface {
	// Type returns an identifier indicating the concrete type.
	Type() VariantType

	// String returns a human-readable representation of the value.
	String() string

	// Copy returns a value that can be mutated independently of the
	// receiver.
	Copy() Value
}

func joinstr(a ...string) string {
	return strings.Join(a, ", ")
}

func formatF32(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}

func formatF64(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatU64(u uint64) string {
	return strconv.FormatUint(u, 10)
}

////////////////////////////////////////////////////////////////
// Scalars

type ValueString string

func (ValueString) Type() VariantType    { return TypeString }
func (v ValueString) String() string     { return string(v) }
func (v ValueString) Copy() Value        { return v }

type ValueBinaryString []byte

func (ValueBinaryString) Type() VariantType { return TypeBinaryString }
func (v ValueBinaryString) String() string  { return string(v) }
func (v ValueBinaryString) Copy() Value {
	c := make(ValueBinaryString, len(v))
	copy(c, v)
	return c
}

type ValueBool bool

func (ValueBool) Type() VariantType { return TypeBool }
func (v ValueBool) String() string {
	if v {
		return "true"
	}
	return "false"
}
func (v ValueBool) Copy() Value { return v }

type ValueInt32 int32

func (ValueInt32) Type() VariantType { return TypeInt32 }
func (v ValueInt32) String() string  { return strconv.FormatInt(int64(v), 10) }
func (v ValueInt32) Copy() Value     { return v }

type ValueInt64 int64

func (ValueInt64) Type() VariantType { return TypeInt64 }
func (v ValueInt64) String() string  { return strconv.FormatInt(int64(v), 10) }
func (v ValueInt64) Copy() Value     { return v }

type ValueFloat32 float32

func (ValueFloat32) Type() VariantType { return TypeFloat32 }
func (v ValueFloat32) String() string  { return formatF32(float32(v)) }
func (v ValueFloat32) Copy() Value     { return v }

type ValueFloat64 float64

func (ValueFloat64) Type() VariantType { return TypeFloat64 }
func (v ValueFloat64) String() string  { return formatF64(float64(v)) }
func (v ValueFloat64) Copy() Value     { return v }

type ValueContent string

func (ValueContent) Type() VariantType { return TypeContent }
func (v ValueContent) String() string  { return string(v) }
func (v ValueContent) Copy() Value     { return v }

// ValueContentId is the legacy string-only form of Content, kept for
// backward-compatible property slots (e.g. "ContentId" serialized names).
type ValueContentId string

func (ValueContentId) Type() VariantType { return TypeContentId }
func (v ValueContentId) String() string  { return string(v) }
func (v ValueContentId) Copy() Value     { return v }

// ValueEnum is a raw enum token; the reflection layer resolves it to a name
// given the owning property's enum type.
type ValueEnum uint32

func (ValueEnum) Type() VariantType { return TypeEnum }
func (v ValueEnum) String() string  { return strconv.FormatUint(uint64(v), 10) }
func (v ValueEnum) Copy() Value     { return v }

// ValueRef is a Ref-typed property value: either null or the Ref of another
// instance in the same DOM.
type ValueRef struct {
	Ref Ref
}

func (ValueRef) Type() VariantType { return TypeRef }
func (v ValueRef) String() string  { return v.Ref.String() }
func (v ValueRef) Copy() Value     { return v }
