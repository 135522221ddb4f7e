package binary

import (
	"github.com/robloxapi/rbxdom"
	"github.com/robloxapi/rbxdom/reflection"
)

// ConvertToDeclaredType attempts to coerce v, decoded per its on-disk type
// tag, into declared, the reflection database's expected type for the
// property it was read into (spec.md §4.C's conversion table / §4.D.1's
// type-tag-mismatch policy). It reports ok=false when no conversion from
// v.Type() to declared is known, in which case the caller keeps v under its
// on-disk type rather than losing the value.
func ConvertToDeclaredType(v rbxdom.Value, declared rbxdom.VariantType) (rbxdom.Value, bool) {
	if v == nil || v.Type() == declared {
		return v, true
	}

	switch declared {
	case rbxdom.TypeBool:
		switch vv := v.(type) {
		case rbxdom.ValueInt32:
			return rbxdom.ValueBool(vv != 0), true
		case rbxdom.ValueFloat32:
			return rbxdom.ValueBool(vv != 0), true
		}

	case rbxdom.TypeInt32:
		switch vv := v.(type) {
		case rbxdom.ValueBool:
			if vv {
				return rbxdom.ValueInt32(1), true
			}
			return rbxdom.ValueInt32(0), true
		case rbxdom.ValueInt64:
			return rbxdom.ValueInt32(vv), true
		case rbxdom.ValueFloat32:
			return rbxdom.ValueInt32(vv), true
		case rbxdom.ValueFloat64:
			return rbxdom.ValueInt32(vv), true
		case rbxdom.ValueEnum:
			return rbxdom.ValueInt32(vv), true
		}

	case rbxdom.TypeInt64:
		switch vv := v.(type) {
		case rbxdom.ValueInt32:
			return rbxdom.ValueInt64(vv), true
		case rbxdom.ValueFloat64:
			return rbxdom.ValueInt64(vv), true
		}

	case rbxdom.TypeFloat32:
		switch vv := v.(type) {
		case rbxdom.ValueInt32:
			return rbxdom.ValueFloat32(vv), true
		case rbxdom.ValueFloat64:
			return rbxdom.ValueFloat32(vv), true
		case rbxdom.ValueBool:
			if vv {
				return rbxdom.ValueFloat32(1), true
			}
			return rbxdom.ValueFloat32(0), true
		}

	case rbxdom.TypeFloat64:
		switch vv := v.(type) {
		case rbxdom.ValueInt32:
			return rbxdom.ValueFloat64(vv), true
		case rbxdom.ValueFloat32:
			return rbxdom.ValueFloat64(vv), true
		}

	case rbxdom.TypeEnum:
		if vv, ok := v.(rbxdom.ValueInt32); ok {
			return rbxdom.ValueEnum(vv), true
		}

	case rbxdom.TypeString:
		switch vv := v.(type) {
		case rbxdom.ValueBinaryString:
			return rbxdom.ValueString(vv), true
		case rbxdom.ValueContent:
			return rbxdom.ValueString(vv), true
		case rbxdom.ValueContentId:
			return rbxdom.ValueString(vv), true
		}

	case rbxdom.TypeBinaryString:
		if vv, ok := v.(rbxdom.ValueString); ok {
			return rbxdom.ValueBinaryString(vv), true
		}

	case rbxdom.TypeContent:
		if vv, ok := v.(rbxdom.ValueString); ok {
			return rbxdom.ValueContent(vv), true
		}

	case rbxdom.TypeContentId:
		if vv, ok := v.(rbxdom.ValueString); ok {
			return rbxdom.ValueContentId(vv), true
		}

	case rbxdom.TypeVector3int16:
		if vv, ok := v.(rbxdom.ValueVector3); ok {
			return rbxdom.ValueVector3int16{X: int16(vv.X), Y: int16(vv.Y), Z: int16(vv.Z)}, true
		}

	case rbxdom.TypeVector3:
		if vv, ok := v.(rbxdom.ValueVector3int16); ok {
			return rbxdom.ValueVector3{X: float32(vv.X), Y: float32(vv.Y), Z: float32(vv.Z)}, true
		}

	case rbxdom.TypeVector2int16:
		if vv, ok := v.(rbxdom.ValueVector2); ok {
			return rbxdom.ValueVector2int16{X: int16(vv.X), Y: int16(vv.Y)}, true
		}

	case rbxdom.TypeVector2:
		if vv, ok := v.(rbxdom.ValueVector2int16); ok {
			return rbxdom.ValueVector2{X: float32(vv.X), Y: float32(vv.Y)}, true
		}
	}

	return v, false
}

// DeclaredTypeFor returns the reflection database's expected VariantType for
// (className, name) and whether one is known at all (an unknown property
// has none; a property that exists but does not serialize still reports
// its declared type).
func DeclaredTypeFor(db *reflection.Database, className, name string) (rbxdom.VariantType, bool) {
	res, err := db.Resolve(className, name)
	if err != nil || res.Canonical == nil {
		return rbxdom.TypeInvalid, false
	}
	if res.Canonical.DataType.IsEnum {
		return rbxdom.TypeEnum, true
	}
	return res.Canonical.DataType.Variant, true
}
