package declare

import (
	"github.com/robloxapi/rbxdom"
)

// Type names a rbxdom.VariantType in a Property declaration. It is the
// package's own alias rather than a re-export so TypeFromString and the
// value-normalization switch below stay colocated with their table.
type Type = rbxdom.VariantType

// The Type constants accepted by Property, one per rbxdom.Value kind a
// declarative tree can construct.
const (
	String               = rbxdom.TypeString
	BinaryString         = rbxdom.TypeBinaryString
	Bool                 = rbxdom.TypeBool
	Int                  = rbxdom.TypeInt32
	Int64                = rbxdom.TypeInt64
	Float                = rbxdom.TypeFloat32
	Double               = rbxdom.TypeFloat64
	UDim                 = rbxdom.TypeUDim
	UDim2                = rbxdom.TypeUDim2
	Ray                  = rbxdom.TypeRay
	Faces                = rbxdom.TypeFaces
	Axes                 = rbxdom.TypeAxes
	BrickColor           = rbxdom.TypeBrickColor
	Color3               = rbxdom.TypeColor3
	Color3uint8          = rbxdom.TypeColor3uint8
	Vector2              = rbxdom.TypeVector2
	Vector2int16         = rbxdom.TypeVector2int16
	Vector3              = rbxdom.TypeVector3
	Vector3int16         = rbxdom.TypeVector3int16
	CFrame               = rbxdom.TypeCFrame
	OptionalCFrame       = rbxdom.TypeOptionalCFrame
	Token                = rbxdom.TypeEnum
	Reference            = rbxdom.TypeRef
	SharedString         = rbxdom.TypeSharedString
	NumberSequence       = rbxdom.TypeNumberSequence
	ColorSequence        = rbxdom.TypeColorSequence
	NumberRange          = rbxdom.TypeNumberRange
	Rect2D               = rbxdom.TypeRect
	Region3              = rbxdom.TypeRegion3
	Region3int16         = rbxdom.TypeRegion3int16
	PhysicalProperties   = rbxdom.TypePhysicalProperties
	Font                 = rbxdom.TypeFont
	Content              = rbxdom.TypeContent
	ContentId            = rbxdom.TypeContentId
	Tags                 = rbxdom.TypeTags
	UniqueId             = rbxdom.TypeUniqueId
	SecurityCapabilities = rbxdom.TypeSecurityCapabilities
	MaterialColors       = rbxdom.TypeMaterialColors
	SmoothGrid           = rbxdom.TypeSmoothGrid
)

// TypeFromString returns the Type named by s, or TypeInvalid if s does not
// name a known Type.
func TypeFromString(s string) Type {
	return rbxdom.VariantTypeFromString(s)
}

func normUint8(v interface{}) uint8 {
	switch v := v.(type) {
	case int:
		return uint8(v)
	case uint:
		return uint8(v)
	case uint8:
		return v
	case uint16:
		return uint8(v)
	case uint32:
		return uint8(v)
	case uint64:
		return uint8(v)
	case int8:
		return uint8(v)
	case int16:
		return uint8(v)
	case int32:
		return uint8(v)
	case int64:
		return uint8(v)
	case float32:
		return uint8(v)
	case float64:
		return uint8(v)
	}
	return 0
}

func normInt16(v interface{}) int16 {
	switch v := v.(type) {
	case int:
		return int16(v)
	case uint:
		return int16(v)
	case uint8:
		return int16(v)
	case uint16:
		return int16(v)
	case uint32:
		return int16(v)
	case uint64:
		return int16(v)
	case int8:
		return int16(v)
	case int16:
		return v
	case int32:
		return int16(v)
	case int64:
		return int16(v)
	case float32:
		return int16(v)
	case float64:
		return int16(v)
	}
	return 0
}

func normInt32(v interface{}) int32 {
	switch v := v.(type) {
	case int:
		return int32(v)
	case uint:
		return int32(v)
	case uint8:
		return int32(v)
	case uint16:
		return int32(v)
	case uint32:
		return int32(v)
	case uint64:
		return int32(v)
	case int8:
		return int32(v)
	case int16:
		return int32(v)
	case int32:
		return v
	case int64:
		return int32(v)
	case float32:
		return int32(v)
	case float64:
		return int32(v)
	}
	return 0
}

func normInt64(v interface{}) int64 {
	switch v := v.(type) {
	case int:
		return int64(v)
	case uint:
		return int64(v)
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case float32:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

func normUint32(v interface{}) uint32 {
	switch v := v.(type) {
	case int:
		return uint32(v)
	case uint:
		return uint32(v)
	case uint8:
		return uint32(v)
	case uint16:
		return uint32(v)
	case uint32:
		return v
	case uint64:
		return uint32(v)
	case int8:
		return uint32(v)
	case int16:
		return uint32(v)
	case int32:
		return uint32(v)
	case int64:
		return uint32(v)
	case float32:
		return uint32(v)
	case float64:
		return uint32(v)
	}
	return 0
}

func normUint64(v interface{}) uint64 {
	switch v := v.(type) {
	case int:
		return uint64(v)
	case uint:
		return uint64(v)
	case uint8:
		return uint64(v)
	case uint16:
		return uint64(v)
	case uint32:
		return uint64(v)
	case uint64:
		return v
	case int8:
		return uint64(v)
	case int16:
		return uint64(v)
	case int32:
		return uint64(v)
	case int64:
		return uint64(v)
	case float32:
		return uint64(v)
	case float64:
		return uint64(v)
	}
	return 0
}

func normFloat32(v interface{}) float32 {
	switch v := v.(type) {
	case int:
		return float32(v)
	case uint:
		return float32(v)
	case uint8:
		return float32(v)
	case uint16:
		return float32(v)
	case uint32:
		return float32(v)
	case uint64:
		return float32(v)
	case int8:
		return float32(v)
	case int16:
		return float32(v)
	case int32:
		return float32(v)
	case int64:
		return float32(v)
	case float32:
		return v
	case float64:
		return float32(v)
	}
	return 0
}

func normFloat64(v interface{}) float64 {
	switch v := v.(type) {
	case int:
		return float64(v)
	case uint:
		return float64(v)
	case uint8:
		return float64(v)
	case uint16:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case int8:
		return float64(v)
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case float32:
		return float64(v)
	case float64:
		return v
	}
	return 0
}

func normBool(v interface{}) bool {
	vv, _ := v.(bool)
	return vv
}

func normBytes(v interface{}) []byte {
	switch v := v.(type) {
	case string:
		return []byte(v)
	case []byte:
		return v
	}
	return nil
}

func normString(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	}
	return ""
}

// assertValue returns v unchanged if it is already the rbxdom.Value that t
// would construct, saving the caller from re-deriving a value it already
// has (e.g. passing a ValueCFrame straight through to a CFrame property).
func assertValue(t Type, v interface{}) (value rbxdom.Value, ok bool) {
	switch t {
	case String:
		value, ok = v.(rbxdom.ValueString)
	case BinaryString:
		value, ok = v.(rbxdom.ValueBinaryString)
	case Bool:
		value, ok = v.(rbxdom.ValueBool)
	case Int:
		value, ok = v.(rbxdom.ValueInt32)
	case Int64:
		value, ok = v.(rbxdom.ValueInt64)
	case Float:
		value, ok = v.(rbxdom.ValueFloat32)
	case Double:
		value, ok = v.(rbxdom.ValueFloat64)
	case UDim:
		value, ok = v.(rbxdom.ValueUDim)
	case UDim2:
		value, ok = v.(rbxdom.ValueUDim2)
	case Ray:
		value, ok = v.(rbxdom.ValueRay)
	case Faces:
		value, ok = v.(rbxdom.ValueFaces)
	case Axes:
		value, ok = v.(rbxdom.ValueAxes)
	case BrickColor:
		value, ok = v.(rbxdom.ValueBrickColor)
	case Color3:
		value, ok = v.(rbxdom.ValueColor3)
	case Color3uint8:
		value, ok = v.(rbxdom.ValueColor3uint8)
	case Vector2:
		value, ok = v.(rbxdom.ValueVector2)
	case Vector2int16:
		value, ok = v.(rbxdom.ValueVector2int16)
	case Vector3:
		value, ok = v.(rbxdom.ValueVector3)
	case Vector3int16:
		value, ok = v.(rbxdom.ValueVector3int16)
	case CFrame:
		value, ok = v.(rbxdom.ValueCFrame)
	case OptionalCFrame:
		value, ok = v.(rbxdom.ValueOptionalCFrame)
	case Token:
		value, ok = v.(rbxdom.ValueEnum)
	case Reference:
		value, ok = v.(rbxdom.ValueRef)
	case SharedString:
		value, ok = v.(rbxdom.ValueSharedString)
	case NumberSequence:
		value, ok = v.(rbxdom.ValueNumberSequence)
	case ColorSequence:
		value, ok = v.(rbxdom.ValueColorSequence)
	case NumberRange:
		value, ok = v.(rbxdom.ValueNumberRange)
	case Rect2D:
		value, ok = v.(rbxdom.ValueRect)
	case Region3:
		value, ok = v.(rbxdom.ValueRegion3)
	case Region3int16:
		value, ok = v.(rbxdom.ValueRegion3int16)
	case PhysicalProperties:
		value, ok = v.(rbxdom.ValuePhysicalProperties)
	case Font:
		value, ok = v.(rbxdom.ValueFont)
	case Content:
		value, ok = v.(rbxdom.ValueContent)
	case ContentId:
		value, ok = v.(rbxdom.ValueContentId)
	case Tags:
		value, ok = v.(rbxdom.ValueTags)
	case rbxdom.TypeAttributes:
		value, ok = v.(rbxdom.ValueAttributes)
	case UniqueId:
		value, ok = v.(rbxdom.ValueUniqueId)
	case SecurityCapabilities:
		value, ok = v.(rbxdom.ValueSecurityCapabilities)
	case MaterialColors:
		value, ok = v.(rbxdom.ValueMaterialColors)
	case SmoothGrid:
		value, ok = v.(rbxdom.ValueSmoothGrid)
	}
	return
}

// declareValue converts a Property declaration's raw arguments into a rbxdom.Value
// of type t, following spec.md's Variant shapes. refs resolves a Reference
// declaration's string key to the Ref allocated for the Instance declared
// with a matching Ref element (see declare.go); a key with no matching
// Instance resolves to the null Ref, same as an absent instance pointer did
// in the teacher's rbxfile-based version.
func (t Type) declareValue(refs map[string]rbxdom.Ref, v []interface{}) rbxdom.Value {
	if len(v) == 0 {
		return zeroValue(t)
	}
	if value, ok := assertValue(t, v[0]); ok {
		return value
	}

	switch t {
	case String:
		return rbxdom.ValueString(normString(v[0]))
	case BinaryString:
		return rbxdom.ValueBinaryString(normBytes(v[0]))
	case Bool:
		return rbxdom.ValueBool(normBool(v[0]))
	case Int:
		return rbxdom.ValueInt32(normInt32(v[0]))
	case Int64:
		return rbxdom.ValueInt64(normInt64(v[0]))
	case Float:
		return rbxdom.ValueFloat32(normFloat32(v[0]))
	case Double:
		return rbxdom.ValueFloat64(normFloat64(v[0]))
	case UDim:
		if len(v) == 2 {
			return rbxdom.ValueUDim{Scale: normFloat32(v[0]), Offset: normInt32(v[1])}
		}
	case UDim2:
		switch len(v) {
		case 2:
			x, _ := v[0].(rbxdom.ValueUDim)
			y, _ := v[1].(rbxdom.ValueUDim)
			return rbxdom.ValueUDim2{X: x, Y: y}
		case 4:
			return rbxdom.ValueUDim2{
				X: rbxdom.ValueUDim{Scale: normFloat32(v[0]), Offset: normInt32(v[1])},
				Y: rbxdom.ValueUDim{Scale: normFloat32(v[2]), Offset: normInt32(v[3])},
			}
		}
	case Ray:
		switch len(v) {
		case 2:
			origin, _ := v[0].(rbxdom.ValueVector3)
			direction, _ := v[1].(rbxdom.ValueVector3)
			return rbxdom.ValueRay{Origin: origin, Direction: direction}
		case 6:
			return rbxdom.ValueRay{
				Origin:    rbxdom.ValueVector3{X: normFloat32(v[0]), Y: normFloat32(v[1]), Z: normFloat32(v[2])},
				Direction: rbxdom.ValueVector3{X: normFloat32(v[3]), Y: normFloat32(v[4]), Z: normFloat32(v[5])},
			}
		}
	case Faces:
		if len(v) == 6 {
			return rbxdom.ValueFaces{
				Right: normBool(v[0]), Top: normBool(v[1]), Back: normBool(v[2]),
				Left: normBool(v[3]), Bottom: normBool(v[4]), Front: normBool(v[5]),
			}
		}
	case Axes:
		if len(v) == 3 {
			return rbxdom.ValueAxes{X: normBool(v[0]), Y: normBool(v[1]), Z: normBool(v[2])}
		}
	case BrickColor:
		bc, _ := rbxdom.BrickColorByCode(normUint32(v[0]))
		return rbxdom.ValueBrickColor{BrickColor: bc}
	case Color3:
		if len(v) == 3 {
			return rbxdom.ValueColor3{R: normFloat32(v[0]), G: normFloat32(v[1]), B: normFloat32(v[2])}
		}
	case Color3uint8:
		if len(v) == 3 {
			return rbxdom.ValueColor3uint8{R: normUint8(v[0]), G: normUint8(v[1]), B: normUint8(v[2])}
		}
	case Vector2:
		if len(v) == 2 {
			return rbxdom.ValueVector2{X: normFloat32(v[0]), Y: normFloat32(v[1])}
		}
	case Vector2int16:
		if len(v) == 2 {
			return rbxdom.ValueVector2int16{X: normInt16(v[0]), Y: normInt16(v[1])}
		}
	case Vector3:
		if len(v) == 3 {
			return rbxdom.ValueVector3{X: normFloat32(v[0]), Y: normFloat32(v[1]), Z: normFloat32(v[2])}
		}
	case Vector3int16:
		if len(v) == 3 {
			return rbxdom.ValueVector3int16{X: normInt16(v[0]), Y: normInt16(v[1]), Z: normInt16(v[2])}
		}
	case CFrame:
		switch len(v) {
		case 10:
			p, _ := v[0].(rbxdom.ValueVector3)
			var m rbxdom.Matrix3
			for i := 0; i < 9; i++ {
				m[i] = normFloat32(v[i+1])
			}
			return rbxdom.ValueCFrame{Position: p, Rotation: m}
		case 12:
			p := rbxdom.ValueVector3{X: normFloat32(v[0]), Y: normFloat32(v[1]), Z: normFloat32(v[2])}
			var m rbxdom.Matrix3
			for i := 0; i < 9; i++ {
				m[i] = normFloat32(v[i+3])
			}
			return rbxdom.ValueCFrame{Position: p, Rotation: m}
		}
	case OptionalCFrame:
		if cf, ok := v[0].(rbxdom.ValueCFrame); ok {
			return rbxdom.ValueOptionalCFrame{CFrame: cf, Valid: true}
		}
	case Token:
		return rbxdom.ValueEnum(normUint32(v[0]))
	case Reference:
		switch v := v[0].(type) {
		case string:
			return rbxdom.ValueRef{Ref: refs[v]}
		case []byte:
			return rbxdom.ValueRef{Ref: refs[string(v)]}
		case rbxdom.Ref:
			return rbxdom.ValueRef{Ref: v}
		}
	case NumberSequence:
		if len(v) > 0 {
			if _, ok := v[0].(rbxdom.NumberSequenceKeypoint); ok {
				ns := make(rbxdom.ValueNumberSequence, len(v))
				for i, k := range v {
					ns[i], _ = k.(rbxdom.NumberSequenceKeypoint)
				}
				return ns
			} else if len(v)%3 == 0 && len(v) >= 3 {
				ns := make(rbxdom.ValueNumberSequence, len(v)/3)
				for i := 0; i < len(v); i += 3 {
					ns[i/3] = rbxdom.NumberSequenceKeypoint{
						Time: normFloat32(v[i]), Value: normFloat32(v[i+1]), Envelope: normFloat32(v[i+2]),
					}
				}
				return ns
			}
		}
	case ColorSequence:
		if len(v) > 0 {
			if _, ok := v[0].(rbxdom.ColorSequenceKeypoint); ok {
				cs := make(rbxdom.ValueColorSequence, len(v))
				for i, k := range v {
					cs[i], _ = k.(rbxdom.ColorSequenceKeypoint)
				}
				return cs
			} else if len(v)%5 == 0 && len(v) >= 5 {
				cs := make(rbxdom.ValueColorSequence, len(v)/5)
				for i := 0; i < len(v); i += 5 {
					cs[i/5] = rbxdom.ColorSequenceKeypoint{
						Time:     normFloat32(v[i]),
						Value:    rbxdom.ValueColor3{R: normFloat32(v[i+1]), G: normFloat32(v[i+2]), B: normFloat32(v[i+3])},
						Envelope: normFloat32(v[i+4]),
					}
				}
				return cs
			}
		}
	case NumberRange:
		if len(v) == 2 {
			return rbxdom.ValueNumberRange{Min: normFloat32(v[0]), Max: normFloat32(v[1])}
		}
	case Rect2D:
		switch len(v) {
		case 2:
			min, _ := v[0].(rbxdom.ValueVector2)
			max, _ := v[1].(rbxdom.ValueVector2)
			return rbxdom.ValueRect{Min: min, Max: max}
		case 4:
			return rbxdom.ValueRect{
				Min: rbxdom.ValueVector2{X: normFloat32(v[0]), Y: normFloat32(v[1])},
				Max: rbxdom.ValueVector2{X: normFloat32(v[2]), Y: normFloat32(v[3])},
			}
		}
	case Region3:
		if len(v) == 2 {
			min, _ := v[0].(rbxdom.ValueVector3)
			max, _ := v[1].(rbxdom.ValueVector3)
			return rbxdom.ValueRegion3{Min: min, Max: max}
		}
	case Region3int16:
		if len(v) == 2 {
			min, _ := v[0].(rbxdom.ValueVector3int16)
			max, _ := v[1].(rbxdom.ValueVector3int16)
			return rbxdom.ValueRegion3int16{Min: min, Max: max}
		}
	case PhysicalProperties:
		switch len(v) {
		case 0:
			return rbxdom.ValuePhysicalProperties{}
		case 3:
			return rbxdom.ValuePhysicalProperties{
				Custom: true, Density: normFloat32(v[0]), Friction: normFloat32(v[1]), Elasticity: normFloat32(v[2]),
			}
		case 5:
			return rbxdom.ValuePhysicalProperties{
				Custom: true, Density: normFloat32(v[0]), Friction: normFloat32(v[1]), Elasticity: normFloat32(v[2]),
				FrictionWeight: normFloat32(v[3]), ElasticityWeight: normFloat32(v[4]),
			}
		}
	case Font:
		if len(v) == 4 {
			family, _ := v[0].(string)
			cachedFaceId, _ := v[3].(string)
			return rbxdom.ValueFont{
				Family:       family,
				Weight:       rbxdom.FontWeight(normUint32(v[1])),
				Style:        rbxdom.FontStyle(normUint32(v[2])),
				CachedFaceId: cachedFaceId,
			}
		}
	case Content:
		return rbxdom.ValueContent(normString(v[0]))
	case ContentId:
		return rbxdom.ValueContentId(normString(v[0]))
	case Tags:
		tags := make(rbxdom.ValueTags, 0, len(v))
		for _, s := range v {
			if str, ok := s.(string); ok {
				tags = append(tags, str)
			}
		}
		return tags
	case UniqueId:
		if len(v) == 3 {
			return rbxdom.ValueUniqueId{
				Random: normUint64(v[0]), Time: normUint32(v[1]), Index: normUint32(v[2]),
			}
		}
	case SecurityCapabilities:
		return rbxdom.ValueSecurityCapabilities(normUint64(v[0]))
	case MaterialColors:
		if entries, ok := v[0].(rbxdom.ValueMaterialColors); ok {
			return entries
		}
	case SmoothGrid:
		if grid, ok := v[0].(rbxdom.ValueSmoothGrid); ok {
			return grid
		}
	}

	return zeroValue(t)
}

// zeroValue returns the empty rbxdom.Value for t, the Declare-time fallback
// when a Property's arguments don't match any accepted shape for its Type.
func zeroValue(t Type) rbxdom.Value {
	switch t {
	case String:
		return rbxdom.ValueString("")
	case BinaryString:
		return rbxdom.ValueBinaryString(nil)
	case Bool:
		return rbxdom.ValueBool(false)
	case Int:
		return rbxdom.ValueInt32(0)
	case Int64:
		return rbxdom.ValueInt64(0)
	case Float:
		return rbxdom.ValueFloat32(0)
	case Double:
		return rbxdom.ValueFloat64(0)
	case UDim:
		return rbxdom.ValueUDim{}
	case UDim2:
		return rbxdom.ValueUDim2{}
	case Ray:
		return rbxdom.ValueRay{}
	case Faces:
		return rbxdom.ValueFaces{}
	case Axes:
		return rbxdom.ValueAxes{}
	case BrickColor:
		return rbxdom.ValueBrickColor{}
	case Color3:
		return rbxdom.ValueColor3{}
	case Color3uint8:
		return rbxdom.ValueColor3uint8{}
	case Vector2:
		return rbxdom.ValueVector2{}
	case Vector2int16:
		return rbxdom.ValueVector2int16{}
	case Vector3:
		return rbxdom.ValueVector3{}
	case Vector3int16:
		return rbxdom.ValueVector3int16{}
	case CFrame:
		return rbxdom.ValueCFrame{}
	case OptionalCFrame:
		return rbxdom.ValueOptionalCFrame{}
	case Token:
		return rbxdom.ValueEnum(0)
	case Reference:
		return rbxdom.ValueRef{}
	case NumberSequence:
		return rbxdom.ValueNumberSequence{}
	case ColorSequence:
		return rbxdom.ValueColorSequence{}
	case NumberRange:
		return rbxdom.ValueNumberRange{}
	case Rect2D:
		return rbxdom.ValueRect{}
	case Region3:
		return rbxdom.ValueRegion3{}
	case Region3int16:
		return rbxdom.ValueRegion3int16{}
	case PhysicalProperties:
		return rbxdom.ValuePhysicalProperties{}
	case Font:
		return rbxdom.ValueFont{}
	case Content:
		return rbxdom.ValueContent("")
	case ContentId:
		return rbxdom.ValueContentId("")
	case Tags:
		return rbxdom.ValueTags(nil)
	case UniqueId:
		return rbxdom.ValueUniqueId{}
	case SecurityCapabilities:
		return rbxdom.ValueSecurityCapabilities(0)
	case SharedString:
		return rbxdom.NewSharedString(nil)
	case MaterialColors:
		return rbxdom.ValueMaterialColors(nil)
	case SmoothGrid:
		return rbxdom.ValueSmoothGrid{}
	default:
		return rbxdom.ValueString("")
	}
}
